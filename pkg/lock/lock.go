// Package lock provides per-account mutual exclusion for balance mutations.
//
// A Registry hands out exclusive Handles keyed by account number; distinct keys
// never contend. The Guard wraps an operation so the lock is acquired before it
// runs and released on every exit path, including errors and panics. Two
// registries exist: an in-process one backed by keyed mutexes, and a Redis one
// backed by redsync for multi-instance deployments.
package lock

import (
	"context"
	"log/slog"
	"time"
)

// Handle represents exclusive ownership of one key. It is returned by Acquire
// and must be passed back to Release. Releasing a handle more than once, or a
// handle whose acquisition failed partway, is a no-op.
type Handle struct {
	key      string
	release  func() error
	released bool
}

// Key returns the lock key this handle owns.
func (h *Handle) Key() string { return h.key }

// Registry maps lock keys to exclusive locks.
type Registry interface {
	// Acquire blocks until the key's lock is free or the wait bound expires,
	// then returns a handle representing exclusive ownership. On timeout it
	// returns domain.ErrLockTimeout and no state has been touched.
	Acquire(ctx context.Context, key string) (*Handle, error)
	// Release relinquishes ownership. It never fails observably; internal
	// errors are logged, not surfaced.
	Release(h *Handle)
}

// Lockable is implemented by mutation requests that carry the account number
// used as the lock key. The key is the external account number, not the
// database primary key, so the same logical account always maps to the same
// lock regardless of which request shape carried it.
type Lockable interface {
	LockKey() string
}

// Guard wraps balance-mutating operations with the locking discipline.
type Guard struct {
	registry Registry
	logger   *slog.Logger
}

// NewGuard creates a Guard over the given registry.
func NewGuard(registry Registry, logger *slog.Logger) *Guard {
	return &Guard{registry: registry, logger: logger}
}

// Around acquires the lock for the request's key, invokes fn, and releases the
// lock whether fn returns normally, fails, or panics. It performs no validation
// and writes nothing itself; it is a pure concurrency boundary.
func (g *Guard) Around(ctx context.Context, req Lockable, fn func() error) error {
	key := req.LockKey()
	start := time.Now()
	h, err := g.registry.Acquire(ctx, key)
	if err != nil {
		g.logger.Warn("lock acquisition failed", "key", key, "error", err)
		return err
	}
	g.logger.Debug("lock acquired", "key", key, "wait", time.Since(start))
	defer g.registry.Release(h)
	return fn()
}
