package lock_test

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/amirasaad/balancebook/pkg/domain"
	"github.com/amirasaad/balancebook/pkg/lock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	exitVal := m.Run()
	os.Exit(exitVal)
}

func newRegistry(wait time.Duration) *lock.MemoryRegistry {
	return lock.NewMemoryRegistry(wait, slog.Default())
}

func TestAcquireRelease(t *testing.T) {
	t.Parallel()
	r := newRegistry(time.Second)

	h, err := r.Acquire(context.Background(), "1000000000")
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, "1000000000", h.Key())
	r.Release(h)

	// The key is free again.
	h2, err := r.Acquire(context.Background(), "1000000000")
	require.NoError(t, err)
	r.Release(h2)
}

func TestAcquireTimesOutWhileHeld(t *testing.T) {
	t.Parallel()
	r := newRegistry(50 * time.Millisecond)

	h, err := r.Acquire(context.Background(), "1000000000")
	require.NoError(t, err)
	defer r.Release(h)

	_, err = r.Acquire(context.Background(), "1000000000")
	assert.ErrorIs(t, err, domain.ErrLockTimeout)
}

func TestAcquireCanceledContext(t *testing.T) {
	t.Parallel()
	r := newRegistry(time.Second)

	h, err := r.Acquire(context.Background(), "1000000000")
	require.NoError(t, err)
	defer r.Release(h)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Acquire(ctx, "1000000000")
	assert.ErrorIs(t, err, domain.ErrLockTimeout)
}

func TestDistinctKeysDoNotContend(t *testing.T) {
	t.Parallel()
	r := newRegistry(50 * time.Millisecond)

	h1, err := r.Acquire(context.Background(), "1000000000")
	require.NoError(t, err)
	defer r.Release(h1)

	h2, err := r.Acquire(context.Background(), "1000000001")
	require.NoError(t, err)
	r.Release(h2)
}

func TestDistinctKeysHeldConcurrently(t *testing.T) {
	t.Parallel()
	r := newRegistry(time.Second)

	aHeld := make(chan struct{})
	bHeld := make(chan struct{})
	done := make(chan error, 2)

	// Each goroutine keeps its lock held until the other key is also held,
	// so both locks are provably held at the same time.
	go func() {
		h, err := r.Acquire(context.Background(), "1000000000")
		if err != nil {
			done <- err
			return
		}
		close(aHeld)
		<-bHeld
		r.Release(h)
		done <- nil
	}()
	go func() {
		h, err := r.Acquire(context.Background(), "1000000001")
		if err != nil {
			done <- err
			return
		}
		close(bHeld)
		<-aHeld
		r.Release(h)
		done <- nil
	}()

	for range 2 {
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("holders of distinct keys blocked each other")
		}
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	t.Parallel()
	r := newRegistry(time.Second)

	h, err := r.Acquire(context.Background(), "1000000000")
	require.NoError(t, err)
	r.Release(h)
	r.Release(h)
	r.Release(nil)

	h2, err := r.Acquire(context.Background(), "1000000000")
	require.NoError(t, err)
	r.Release(h2)
}

func TestAcquireSerializesCriticalSections(t *testing.T) {
	t.Parallel()
	r := newRegistry(5 * time.Second)

	const goroutines = 32
	var inSection int32
	var wg sync.WaitGroup
	var mu sync.Mutex
	maxSeen := int32(0)

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := r.Acquire(context.Background(), "1000000000")
			if err != nil {
				t.Errorf("acquire failed: %v", err)
				return
			}
			mu.Lock()
			inSection++
			if inSection > maxSeen {
				maxSeen = inSection
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inSection--
			mu.Unlock()
			r.Release(h)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen, "at most one holder per key at a time")
}
