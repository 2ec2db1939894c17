package inventory

import (
	"context"
	"sync"
	"sync/atomic"
)

// Broadcaster is a process-wide, monotonically increasing inventory version
// counter. Any operation that moves stock bumps it exactly once; views that
// display stock-derived data compare versions (or wait on a change) and refetch.
// The signal is edge-triggered and carries no payload.
type Broadcaster struct {
	version atomic.Int64

	mu      sync.Mutex
	nextID  int
	waiters map[int]chan struct{}
}

// NewBroadcaster creates a broadcaster starting at version 0.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		waiters: make(map[int]chan struct{}),
	}
}

// Version returns the current inventory version. Pure read, no side effects.
func (b *Broadcaster) Version() int64 {
	return b.version.Load()
}

// Bump atomically increments the version and wakes all subscribers.
// It must be called exactly once per successful stock-affecting operation,
// after the operation is known to have succeeded, and never on failure.
func (b *Broadcaster) Bump() int64 {
	v := b.version.Add(1)

	b.mu.Lock()
	for id, ch := range b.waiters {
		close(ch)
		delete(b.waiters, id)
	}
	b.mu.Unlock()

	return v
}

// Subscribe registers a one-shot channel that is closed on the next bump.
// The returned cancel func releases the subscription if it is no longer needed.
func (b *Broadcaster) Subscribe() (<-chan struct{}, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan struct{})
	b.waiters[id] = ch

	cancel := func() {
		b.mu.Lock()
		delete(b.waiters, id)
		b.mu.Unlock()
	}
	return ch, cancel
}

// WaitForChange blocks until the version exceeds since, the context is done,
// or a bump occurs. It returns the version observed at wake-up. Used by the
// long-poll endpoint so SPA views can refetch stock figures when they change.
func (b *Broadcaster) WaitForChange(ctx context.Context, since int64) (int64, error) {
	for {
		if v := b.Version(); v > since {
			return v, nil
		}

		ch, cancel := b.Subscribe()

		// Re-check after subscribing: a bump may have landed in between.
		if v := b.Version(); v > since {
			cancel()
			return v, nil
		}

		select {
		case <-ch:
		case <-ctx.Done():
			cancel()
			return b.Version(), ctx.Err()
		}
	}
}
