package progress

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func finishes(t *testing.T, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("progress bar did not finish")
	}
}

func TestBarComplete(t *testing.T) {
	var buf bytes.Buffer
	b := NewWriter("scan", &buf)

	finishes(t, func() {
		b.Start(3)
		for range 3 {
			b.Increment()
		}
		b.Finish(nil)
	})
}

func TestBarAborted(t *testing.T) {
	var buf bytes.Buffer
	b := NewWriter("scan", &buf)

	finishes(t, func() {
		b.Start(10)
		b.Increment()
		b.Finish(errors.New("boom"))
	})
}

func TestBarEmpty(t *testing.T) {
	var buf bytes.Buffer
	b := NewWriter("scan", &buf)

	b.Start(0)
	b.Increment()
	b.Finish(nil)

	if buf.Len() != 0 {
		t.Errorf("empty scan drew %q", buf.String())
	}
}

func TestEnabledDisabled(t *testing.T) {
	if Enabled(true) {
		t.Error("Enabled(true) = true, want false")
	}
}
