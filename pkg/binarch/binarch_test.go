package binarch

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/WorksButNotTested/binarch2/pkg/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mflr      = []byte{0x7c, 0x08, 0x02, 0xa6}
	mipsJrRa  = []byte{0x03, 0xe0, 0x00, 0x08, 0x27, 0xbd, 0x00, 0x20}
	x86Frame  = []byte{0x55, 0x89, 0xe5, 0x83, 0xec, 0x18}
	ppcBig    = signature.Kind{Arch: signature.PowerPC, Endian: signature.Big}
	ppcLittle = signature.Kind{Arch: signature.PowerPC, Endian: signature.Little}
	mipsBig   = signature.Kind{Arch: signature.MIPS, Endian: signature.Big}
	armLittle = signature.Kind{Arch: signature.ARM, Endian: signature.Little}
	x86Little = signature.Kind{Arch: signature.X86, Endian: signature.Little}
)

// plant returns size zero bytes with every sample copied in at its offset.
func plant(size int, samples map[int][]byte) []byte {
	data := make([]byte, size)
	for off, b := range samples {
		copy(data[off:], b)
	}
	return data
}

// mixed spreads one instance of every sample every stride bytes.
func mixed(size, stride int) []byte {
	samples := [][]byte{
		mflr,
		{0x4e, 0x80, 0x00, 0x20},
		{0x20, 0x00, 0x80, 0x4e},
		mipsJrRa,
		{0x27, 0xbd, 0xff, 0xe0, 0xaf, 0xbf, 0x00, 0x1c},
		{0x00, 0x48, 0x2d, 0xe9, 0x04, 0xb0, 0x8d, 0xe2, 0x08, 0xd0, 0x4d, 0xe2},
		{0xe1, 0xa0, 0x00, 0x05, 0xe8, 0xbd, 0x80, 0x00},
		x86Frame,
		bytes.Repeat([]byte{0x90}, 8),
		{0xfd, 0x7b, 0xbf, 0xa9},
		{0xc0, 0x03, 0x5f, 0xd6},
	}
	data := make([]byte, size)
	for i, off := 0, 3; off+16 <= size; i, off = i+1, off+stride {
		copy(data[off:], samples[i%len(samples)])
	}
	return data
}

func TestScanEndToEnd(t *testing.T) {
	data := append(make([]byte, 200), bytes.Repeat(mflr, 5)...)
	data = append(data, make([]byte, 50)...)

	results, err := Scan(context.Background(), data)
	require.NoError(t, err)

	c := Classify(results)
	assert.True(t, c.Known)
	assert.Equal(t, ppcBig, c.Kind)
	assert.Equal(t, 5, c.Matches)
	assert.Equal(t, []int{200, 204, 208, 212, 216}, results[ppcBig].Sorted())
	assert.Equal(t, "PowerPC Big", c.String())
}

func TestScanCompetingEvidence(t *testing.T) {
	samples := make(map[int][]byte)
	for i := range 3 {
		samples[64+i*32] = mipsJrRa
	}
	for i := range 7 {
		samples[512+i*32] = x86Frame
	}
	data := plant(1024, samples)

	results, err := Scan(context.Background(), data, WithChunks(16))
	require.NoError(t, err)

	assert.Equal(t, 3, results.Count(mipsBig))
	assert.Equal(t, 7, results.Count(x86Little))
	assert.Equal(t, Classification{Kind: x86Little, Known: true, Matches: 7}, Classify(results))
}

func TestScanNoEvidence(t *testing.T) {
	for name, data := range map[string][]byte{
		"nil":   nil,
		"empty": {},
		"zeros": make([]byte, 64<<10),
	} {
		t.Run(name, func(t *testing.T) {
			results, err := Scan(context.Background(), data)
			require.NoError(t, err)
			assert.Zero(t, results.Total())

			c := Classify(results)
			assert.False(t, c.Known)
			assert.Equal(t, "Unknown", c.String())
		})
	}
}

func TestScanBoundaryStraddle(t *testing.T) {
	// 100 bytes in 4 chunks: windows start at 0, 25, 50 and 75
	for _, off := range []int{23, 24, 48, 49, 74} {
		t.Run(fmt.Sprintf("offset %d", off), func(t *testing.T) {
			data := plant(100, map[int][]byte{off: mflr})

			results, err := Scan(context.Background(), data, WithChunks(4), WithWorkers(4))
			require.NoError(t, err)
			assert.Equal(t, []int{off}, results[ppcBig].Sorted())
		})
	}
}

func TestScanOverlapDeduplicates(t *testing.T) {
	data := plant(100, map[int][]byte{26: mflr})
	spans := Plan(len(data), 4, signature.Default().MaxPatternLen())

	// the occurrence lies in both the first and the second window
	var seen int
	for _, span := range spans[:2] {
		window, err := span.Slice(data)
		require.NoError(t, err)
		seen += ScanWindow(signature.Default(), span.Offset, window).Count(ppcBig)
	}
	require.Equal(t, 2, seen)

	results, err := Scan(context.Background(), data, WithChunks(4))
	require.NoError(t, err)
	assert.Equal(t, 1, results.Count(ppcBig))
}

func TestScanParallelismInvariance(t *testing.T) {
	data := mixed(1<<16, 61)

	want, err := ScanSequential(context.Background(), data, WithChunks(1))
	require.NoError(t, err)
	require.NotZero(t, want.Total())

	for _, chunks := range []int{1, 2, 7, 64, 1000, DefaultChunks} {
		for _, workers := range []int{1, 2, 8} {
			t.Run(fmt.Sprintf("chunks=%d/workers=%d", chunks, workers), func(t *testing.T) {
				got, err := Scan(context.Background(), data, WithChunks(chunks), WithWorkers(workers))
				require.NoError(t, err)
				assert.True(t, want.Equal(got), "results differ from a single window scan")
				assert.Equal(t, Classify(want), Classify(got))
			})
		}
	}
}

func TestScanRefinementRejects(t *testing.T) {
	data := plant(256, map[int][]byte{
		// sw is replaced by lw: no longer a prologue
		16: {0x27, 0xbd, 0xff, 0xe0, 0x8f, 0xbf, 0x00, 0x1c},
		// stmfd not followed by unconditional instructions
		64: {0x00, 0x48, 0x2d, 0xe9, 0x04, 0xb0, 0x8d, 0x12, 0x08, 0xd0, 0x4d, 0xe2},
	})

	results, err := Scan(context.Background(), data)
	require.NoError(t, err)
	assert.Zero(t, results.Count(mipsBig))
	assert.Zero(t, results.Count(armLittle))
}

func TestScanWildcardMatchesNewline(t *testing.T) {
	data := plant(64, map[int][]byte{8: {0x27, 0xbd, 0xff, 0x0a, 0xaf, 0xbf, 0x00, 0x0a}})

	results, err := Scan(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, []int{8}, results[mipsBig].Sorted())
}

func TestScanCustomCatalog(t *testing.T) {
	cat, err := signature.NewCatalog(signature.Rule{
		Name:    "marker",
		Kind:    ppcLittle,
		Pattern: "de ad ?? ef",
	})
	require.NoError(t, err)

	data := plant(128, map[int][]byte{10: {0xde, 0xad, 0xbe, 0xef}, 20: mflr})

	results, err := Scan(context.Background(), data, WithCatalog(cat))
	require.NoError(t, err)
	assert.Equal(t, []int{10}, results[ppcLittle].Sorted())
	assert.Zero(t, results.Count(ppcBig))
}

func TestScanPlanningError(t *testing.T) {
	data := make([]byte, 10)

	_, err := Scan(context.Background(), data, WithSize(100), WithWorkers(4))
	assert.ErrorIs(t, err, ErrPlanning)

	_, err = ScanSequential(context.Background(), data, WithSize(100))
	assert.ErrorIs(t, err, ErrPlanning)
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data := mixed(1<<12, 61)

	results, err := Scan(ctx, data, WithWorkers(4))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)

	results, err = ScanSequential(ctx, data)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

type countingProgress struct {
	total, done, finished int
	err                   error
}

func (p *countingProgress) Start(total int) { p.total = total }
func (p *countingProgress) Increment()      { p.done++ }
func (p *countingProgress) Finish(err error) {
	p.finished++
	p.err = err
}

func TestScanProgress(t *testing.T) {
	data := mixed(4096, 61)
	windows := len(Plan(len(data), 32, signature.Default().MaxPatternLen()))

	for _, workers := range []int{1, 4} {
		p := &countingProgress{}
		_, err := Scan(context.Background(), data, WithChunks(32), WithWorkers(workers), WithProgress(p))
		require.NoError(t, err)

		assert.Equal(t, windows, p.total)
		assert.Equal(t, windows, p.done)
		assert.Equal(t, 1, p.finished)
		assert.NoError(t, p.err)
	}

	p := &countingProgress{}
	_, err := Scan(context.Background(), data, WithSize(8192), WithProgress(p))
	require.Error(t, err)
	assert.Equal(t, 1, p.finished)
	assert.ErrorIs(t, p.err, ErrPlanning)
}
