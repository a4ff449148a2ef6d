package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinner_StartStop(t *testing.T) {
	s := newSpinner(context.Background(), "working...")
	s.Start()
	time.Sleep(10 * time.Millisecond)
	s.Stop() // must return promptly and clear the line
}

func TestSpinner_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, "working...")
	s.Start()
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after context cancellation")
	}
	if !s.Cancelled() {
		t.Error("Cancelled() = false after context cancellation")
	}
}

func TestSpinner_DoubleStop(t *testing.T) {
	s := newSpinner(context.Background(), "working...")
	s.Start()
	s.Stop()
	s.Stop() // must not panic
}
