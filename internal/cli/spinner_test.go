package cli

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func newTestSpinner(ctx context.Context, buf *bytes.Buffer) *Spinner {
	s := newSpinner(ctx, "Testing...")
	s.out = buf
	s.enabled = true
	return s
}

func TestSpinnerBasic(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSpinner(context.Background(), &buf)
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !bytes.Contains(buf.Bytes(), []byte("Testing...")) {
		t.Errorf("spinner output %q should contain message", buf.String())
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var buf bytes.Buffer
	s := newTestSpinner(ctx, &buf)
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSpinner(context.Background(), &buf)
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerDisabled(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), "Quiet...")
	s.out = &buf
	s.enabled = false
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if buf.Len() != 0 {
		t.Errorf("disabled spinner wrote %q", buf.String())
	}
}

func TestSpinnerStopWithError(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSpinner(context.Background(), &buf)
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("Failed!")
}
