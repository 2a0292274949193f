package lock

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/balancebook/pkg/domain"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "lock:account:"

// RedisOptions configures the redsync mutexes backing RedisRegistry.
type RedisOptions struct {
	// Expiry is how long a lock is held before auto-expiring, which prevents
	// deadlocks when a holder crashes.
	Expiry time.Duration
	// Tries bounds how many acquisition attempts are made before giving up.
	Tries int
	// RetryDelay is the delay between attempts.
	RetryDelay time.Duration
}

// DefaultRedisOptions returns production defaults tuned for operations that
// complete within seconds.
func DefaultRedisOptions() RedisOptions {
	return RedisOptions{
		Expiry:     10 * time.Second,
		Tries:      3,
		RetryDelay: 500 * time.Millisecond,
	}
}

// RedisRegistry is a Registry backed by redsync, giving mutual exclusion
// across service instances sharing one Redis.
type RedisRegistry struct {
	rs     *redsync.Redsync
	opts   RedisOptions
	logger *slog.Logger
}

// NewRedisRegistry creates a RedisRegistry over the given client.
func NewRedisRegistry(client *redis.Client, opts RedisOptions, logger *slog.Logger) *RedisRegistry {
	pool := goredis.NewPool(client)
	return &RedisRegistry{
		rs:     redsync.New(pool),
		opts:   opts,
		logger: logger,
	}
}

// Acquire implements Registry. Lock contention past the configured tries is
// reported as domain.ErrLockTimeout; the caller cannot distinguish a busy lock
// from a slow one and should treat both as "not acquired, nothing touched".
func (r *RedisRegistry) Acquire(ctx context.Context, key string) (*Handle, error) {
	mutex := r.rs.NewMutex(
		lockKeyPrefix+key,
		redsync.WithExpiry(r.opts.Expiry),
		redsync.WithTries(r.opts.Tries),
		redsync.WithRetryDelay(r.opts.RetryDelay),
	)
	if err := mutex.LockContext(ctx); err != nil {
		if errors.Is(err, redsync.ErrFailed) || ctx.Err() != nil {
			return nil, domain.ErrLockTimeout
		}
		return nil, err
	}
	return &Handle{key: key, release: func() error {
		ok, err := mutex.UnlockContext(context.WithoutCancel(ctx))
		if err != nil {
			return err
		}
		if !ok {
			r.logger.Warn("redis lock already expired", "key", key)
		}
		return nil
	}}, nil
}

// Release implements Registry.
func (r *RedisRegistry) Release(h *Handle) {
	if h == nil || h.released {
		return
	}
	h.released = true
	if err := h.release(); err != nil {
		r.logger.Error("lock release failed", "key", h.key, "error", err)
	}
}

var _ Registry = (*RedisRegistry)(nil)
