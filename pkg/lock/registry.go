package lock

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/balancebook/pkg/domain"
)

// DefaultWait bounds how long Acquire blocks before giving up with
// domain.ErrLockTimeout.
const DefaultWait = 3 * time.Second

// keyLock is one key's lock state. The sem channel holds a single token: owning
// the token means owning the lock. refs counts goroutines holding or waiting,
// so idle entries can be removed from the map.
type keyLock struct {
	sem  chan struct{}
	refs int
}

// MemoryRegistry is an in-process Registry backed by keyed semaphores.
// It serializes all lock-guarded operations for one key within a single
// process; use RedisRegistry when multiple instances share the lock domain.
type MemoryRegistry struct {
	mu     sync.Mutex
	locks  map[string]*keyLock
	wait   time.Duration
	logger *slog.Logger
}

// NewMemoryRegistry creates a MemoryRegistry with the given wait bound.
// A non-positive wait falls back to DefaultWait.
func NewMemoryRegistry(wait time.Duration, logger *slog.Logger) *MemoryRegistry {
	if wait <= 0 {
		wait = DefaultWait
	}
	return &MemoryRegistry{
		locks:  make(map[string]*keyLock),
		wait:   wait,
		logger: logger,
	}
}

// Acquire implements Registry.
func (r *MemoryRegistry) Acquire(ctx context.Context, key string) (*Handle, error) {
	r.mu.Lock()
	kl, ok := r.locks[key]
	if !ok {
		kl = &keyLock{sem: make(chan struct{}, 1)}
		kl.sem <- struct{}{}
		r.locks[key] = kl
	}
	kl.refs++
	r.mu.Unlock()

	timer := time.NewTimer(r.wait)
	defer timer.Stop()

	select {
	case <-kl.sem:
		return &Handle{key: key, release: func() error {
			kl.sem <- struct{}{}
			r.unref(key, kl)
			return nil
		}}, nil
	case <-timer.C:
		r.unref(key, kl)
		return nil, domain.ErrLockTimeout
	case <-ctx.Done():
		r.unref(key, kl)
		return nil, domain.ErrLockTimeout
	}
}

// Release implements Registry. Releasing a nil or already-released handle is a
// no-op.
func (r *MemoryRegistry) Release(h *Handle) {
	if h == nil || h.released {
		return
	}
	h.released = true
	if err := h.release(); err != nil {
		r.logger.Error("lock release failed", "key", h.key, "error", err)
	}
}

func (r *MemoryRegistry) unref(key string, kl *keyLock) {
	r.mu.Lock()
	kl.refs--
	if kl.refs == 0 {
		delete(r.locks, key)
	}
	r.mu.Unlock()
}

var _ Registry = (*MemoryRegistry)(nil)
