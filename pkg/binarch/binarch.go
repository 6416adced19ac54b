// Package binarch guesses the CPU architecture and byte order of a raw binary
// by counting where the signatures of a catalog occur in it.
//
// The input is cut into overlapping windows, every window is scanned on its
// own, and the partial results are unioned into one Results map which
// Classify reduces to a single verdict.
package binarch

import (
	"context"
	"runtime"
	"sync"

	"github.com/WorksButNotTested/binarch2/pkg/signature"
	"github.com/apex/log"
	"golang.org/x/sync/errgroup"
)

// DefaultChunks is the number of windows the input is split into unless
// WithChunks says otherwise.
const DefaultChunks = 4096

// Progress observes a scan. Start is called once with the number of windows,
// Increment once per merged window and Finish once at the end.
type Progress interface {
	Start(total int)
	Increment()
	Finish(err error)
}

type nopProgress struct{}

func (nopProgress) Start(int)    {}
func (nopProgress) Increment()   {}
func (nopProgress) Finish(error) {}

type config struct {
	catalog  *signature.Catalog
	chunks   int
	workers  int
	size     int
	progress Progress
}

// Option configures Scan.
type Option func(*config)

// WithCatalog scans with cat instead of the built-in catalog.
func WithCatalog(cat *signature.Catalog) Option {
	return func(c *config) {
		if cat != nil {
			c.catalog = cat
		}
	}
}

// WithChunks sets how many windows the input is split into.
func WithChunks(n int) Option {
	return func(c *config) { c.chunks = n }
}

// WithWorkers bounds the number of windows scanned at once. Zero or less
// means one per CPU.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithSize declares the input size the plan is computed for. It defaults to
// the length of the data; a larger value makes the scan fail with
// ErrPlanning.
func WithSize(n int) Option {
	return func(c *config) { c.size = n }
}

// WithProgress reports scan progress to p.
func WithProgress(p Progress) Option {
	return func(c *config) {
		if p != nil {
			c.progress = p
		}
	}
}

func newConfig(data []byte, opts []Option) *config {
	c := &config{
		catalog:  signature.Default(),
		chunks:   DefaultChunks,
		size:     len(data),
		progress: nopProgress{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.workers <= 0 {
		c.workers = runtime.NumCPU()
	}
	return c
}

func (c *config) plan() []Span {
	spans := Plan(c.size, c.chunks, c.catalog.MaxPatternLen())
	if len(spans) > 0 {
		log.WithFields(log.Fields{
			"size":    c.size,
			"chunks":  c.chunks,
			"windows": len(spans),
			"overlap": c.catalog.MaxPatternLen(),
			"workers": c.workers,
			"rules":   c.catalog.Len(),
		}).Debug("Scan plan")
	}
	return spans
}

// Scan scans data and returns every accepted signature occurrence keyed by
// kind. Windows are scanned concurrently and folded into the result by a
// single goroutine, so the answer is the same as ScanSequential's for the
// same options.
//
// Cancelling ctx aborts the scan with ctx.Err(); no partial result is
// returned.
func Scan(ctx context.Context, data []byte, opts ...Option) (Results, error) {
	c := newConfig(data, opts)
	if c.workers == 1 {
		return scanSequential(ctx, data, c)
	}

	spans := c.plan()
	c.progress.Start(len(spans))

	acc := make(Results)
	partials := make(chan Results, c.workers)

	var reducer sync.WaitGroup
	reducer.Go(func() {
		for partial := range partials {
			Merge(acc, partial)
			c.progress.Increment()
		}
	})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for _, span := range spans {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			window, err := span.Slice(data)
			if err != nil {
				return err
			}
			select {
			case partials <- ScanWindow(c.catalog, span.Offset, window):
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	err := g.Wait()
	close(partials)
	reducer.Wait()

	if err == nil {
		err = ctx.Err()
	}
	c.progress.Finish(err)
	if err != nil {
		return nil, err
	}

	return acc, nil
}

// ScanSequential is Scan without concurrency: the windows are scanned and
// merged one after the other, in plan order. The worker option is ignored.
func ScanSequential(ctx context.Context, data []byte, opts ...Option) (Results, error) {
	c := newConfig(data, opts)
	c.workers = 1
	return scanSequential(ctx, data, c)
}

func scanSequential(ctx context.Context, data []byte, c *config) (_ Results, err error) {
	spans := c.plan()

	c.progress.Start(len(spans))
	defer func() { c.progress.Finish(err) }()

	acc := make(Results)
	for _, span := range spans {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		window, err := span.Slice(data)
		if err != nil {
			return nil, err
		}
		Merge(acc, ScanWindow(c.catalog, span.Offset, window))
		c.progress.Increment()
	}

	return acc, nil
}
