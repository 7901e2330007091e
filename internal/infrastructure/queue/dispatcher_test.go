package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestDispatcher_RunsEveryJob(t *testing.T) {
	d := NewDispatcher(3, zerolog.Nop())
	d.Start(context.Background())

	var (
		mu   sync.Mutex
		seen = map[string]int{}
	)
	for _, key := range []string{"a", "b", "c", "d", "e"} {
		key := key
		d.Enqueue(Job{Key: key, Run: func(context.Context) error {
			mu.Lock()
			seen[key]++
			mu.Unlock()
			return nil
		}})
	}
	if err := d.Drain(); err != nil {
		t.Fatalf("Drain returned error: %v", err)
	}
	if len(seen) != 5 {
		t.Fatalf("expected 5 jobs to run, got %v", seen)
	}
}

func TestDispatcher_KeepsPerKeyOrder(t *testing.T) {
	d := NewDispatcher(4, zerolog.Nop())
	d.Start(context.Background())

	var (
		mu    sync.Mutex
		order []int
	)
	for i := 0; i < 50; i++ {
		i := i
		d.Enqueue(Job{Key: "ord-001", Run: func(context.Context) error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		}})
	}
	if err := d.Drain(); err != nil {
		t.Fatalf("Drain returned error: %v", err)
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("job %d ran at position %d", v, i)
		}
	}
}

func TestDispatcher_JoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	d := NewDispatcher(2, zerolog.Nop())
	d.Start(context.Background())

	d.Enqueue(Job{Key: "x", Run: func(context.Context) error { return boom }})
	d.Enqueue(Job{Key: "y", Run: func(context.Context) error { return nil }})

	err := d.Drain()
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error to contain boom, got %v", err)
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	if d.shardIndex("ord-007") != d.shardIndex("ord-007") {
		t.Fatalf("shard index is not deterministic")
	}
}

func TestDispatcher_EnqueueStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDispatcher(1, zerolog.Nop())
	d.Start(ctx)

	started, release := make(chan struct{}), make(chan struct{})
	if err := d.Enqueue(Job{Key: "k", Run: func(context.Context) error {
		close(started)
		<-release
		return nil
	}}); err != nil {
		t.Fatalf("Enqueue returned error: %v", err)
	}
	<-started

	noop := Job{Key: "k", Run: func(context.Context) error { return nil }}
	for i := 0; i < channelBuffer; i++ {
		if err := d.Enqueue(noop); err != nil {
			t.Fatalf("Enqueue %d returned error: %v", i, err)
		}
	}

	blocked := make(chan error, 1)
	go func() { blocked <- d.Enqueue(noop) }()
	cancel()

	select {
	case err := <-blocked:
		if !errors.Is(err, ErrStopped) {
			t.Fatalf("expected ErrStopped, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Enqueue stayed blocked after cancel")
	}

	if err := d.Enqueue(noop); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped after cancel, got %v", err)
	}
	close(release)
	_ = d.Drain()
}
