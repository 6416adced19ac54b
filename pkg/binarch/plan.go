package binarch

import (
	"errors"
	"fmt"
)

// ErrPlanning is returned when a planned window does not fit the input.
var ErrPlanning = errors.New("scan window out of range")

// Span is a half-open window [Offset, End) over the input.
type Span struct {
	Offset int
	End    int
}

// Len returns the number of bytes covered by the window.
func (s Span) Len() int { return s.End - s.Offset }

func (s Span) String() string {
	return fmt.Sprintf("%#x-%#x", s.Offset, s.End)
}

// Slice returns the bytes of buf the window covers.
func (s Span) Slice(buf []byte) ([]byte, error) {
	if s.Offset < 0 || s.Offset > s.End || s.End > len(buf) {
		return nil, fmt.Errorf("%w: window %s, input is %d bytes", ErrPlanning, s, len(buf))
	}
	return buf[s.Offset:s.End], nil
}

// Plan splits size bytes into about chunks windows. Every window except the
// last extends maxPatternLen bytes into its successor so that a pattern
// straddling a chunk boundary is still seen whole by one window.
//
// Windows start at multiples of the chunk length, which is never shorter than
// maxPatternLen. An empty input yields no windows.
func Plan(size, chunks, maxPatternLen int) []Span {
	if size <= 0 {
		return nil
	}
	chunks = max(chunks, 1)
	maxPatternLen = max(maxPatternLen, 1)

	chunkLen := max(maxPatternLen, size/chunks)

	spans := make([]Span, 0, (size+chunkLen-1)/chunkLen)
	for off := 0; off < size; off += chunkLen {
		spans = append(spans, Span{
			Offset: off,
			End:    min(off+chunkLen+maxPatternLen, size),
		})
	}

	return spans
}
