package client

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoller_StopsOnCancel(t *testing.T) {
	var calls atomic.Int64
	poller := NewPoller(5*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- poller.Run(ctx) }()

	// wait for the immediate poll plus at least one tick
	deadline := time.After(2 * time.Second)
	for calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("poller never ticked, %d calls", calls.Load())
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("poller did not stop after cancel")
	}
}

func TestPoller_StopsOnExpiredSession(t *testing.T) {
	poller := NewPoller(time.Hour, func(context.Context) error {
		return ErrSessionExpired
	})

	// the immediate poll fails with an expired session, so Run returns
	// without waiting for a tick
	if err := poller.Run(context.Background()); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestPoller_SwallowsTransientErrors(t *testing.T) {
	var calls atomic.Int64
	poller := NewPoller(5*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return errors.New("network blip")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- poller.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("poller stopped on a transient error, %d calls", calls.Load())
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	<-done
}

func TestSortMessages(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	messages := []Message{
		{ID: "msg-3", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "msg-1", CreatedAt: base},
		{ID: "msg-4", CreatedAt: base.Add(time.Minute)},
		{ID: "msg-2", CreatedAt: base.Add(time.Minute)},
	}

	SortMessages(messages)

	got := []string{messages[0].ID, messages[1].ID, messages[2].ID, messages[3].ID}
	want := []string{"msg-1", "msg-2", "msg-4", "msg-3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch: got %v, want %v", got, want)
		}
	}
}
