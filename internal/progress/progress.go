// Package progress renders scan progress on the terminal.
package progress

import (
	"io"
	"os"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/term"
)

// Bar is a single mpb progress bar counting scanned windows. It is created
// lazily on Start so that an empty scan draws nothing.
type Bar struct {
	name string
	out  io.Writer

	p   *mpb.Progress
	bar *mpb.Bar
}

// New returns a bar labelled name that draws to stderr.
func New(name string) *Bar {
	return NewWriter(name, os.Stderr)
}

// NewWriter returns a bar labelled name that draws to w.
func NewWriter(name string, w io.Writer) *Bar {
	return &Bar{name: name, out: w}
}

// Start implements binarch.Progress.
func (b *Bar) Start(total int) {
	if total <= 0 {
		return
	}
	b.p = mpb.New(mpb.WithWidth(60), mpb.WithOutput(b.out))
	b.bar = b.p.New(int64(total),
		mpb.BarStyle().Lbound("[").Filler("=").Tip(">").Padding("-").Rbound("|"),
		mpb.PrependDecorators(
			decor.Name(b.name, decor.WC{W: len(b.name) + 1, C: decor.DindentRight}),
			// replace ETA decorator with "done" message, OnComplete event
			decor.OnComplete(
				decor.AverageETA(decor.ET_STYLE_GO, decor.WC{W: 4}), "✅ ",
			),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("%d/%d"),
			decor.Name(" ] "),
			decor.Percentage(),
		),
	)
}

// Increment implements binarch.Progress.
func (b *Bar) Increment() {
	if b.bar != nil {
		b.bar.Increment()
	}
}

// Finish implements binarch.Progress. A failed scan removes the bar.
func (b *Bar) Finish(err error) {
	if b.p == nil {
		return
	}
	if err != nil {
		b.bar.Abort(true)
	}
	b.p.Wait()
	b.p, b.bar = nil, nil
}

// Enabled reports whether a bar should be drawn. It never is when stderr is
// not a terminal.
func Enabled(disabled bool) bool {
	return !disabled && term.IsTerminal(int(os.Stderr.Fd()))
}
