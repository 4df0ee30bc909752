package cmd

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestReportLoop_RendersOncePerBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notify := make(chan struct{}, 1)
	var renders int32

	go reportLoop(ctx, notify, 50*time.Millisecond, func() {
		atomic.AddInt32(&renders, 1)
	})

	// A burst of scans should settle into a single report.
	for i := 0; i < 3; i++ {
		notify <- struct{}{}
		time.Sleep(10 * time.Millisecond)
	}

	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&renders) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := atomic.LoadInt32(&renders); got != 1 {
		t.Fatalf("expected 1 report after the burst settled, got %d", got)
	}

	// A later scan triggers a fresh report.
	notify <- struct{}{}
	deadline = time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&renders) < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := atomic.LoadInt32(&renders); got != 2 {
		t.Fatalf("expected a second report, got %d", got)
	}
}

func TestReportLoop_StopsOnContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	notify := make(chan struct{}, 1)
	var renders int32

	done := make(chan struct{})
	go func() {
		reportLoop(ctx, notify, 10*time.Millisecond, func() {
			atomic.AddInt32(&renders, 1)
		})
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("report loop did not exit on context cancel")
	}
}
