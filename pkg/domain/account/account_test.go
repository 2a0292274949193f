package account_test

import (
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/amirasaad/balancebook/pkg/domain"
	domainaccount "github.com/amirasaad/balancebook/pkg/domain/account"
	"github.com/google/uuid"
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

func TestNewAccount(t *testing.T) {
	t.Parallel()
	require := require.New(t)
	acc, err := domainaccount.New().
		WithUserID(uuid.New()).
		WithNumber("1000000000").
		Build()
	require.NoError(err)
	assert.NotEmpty(t, acc.ID, "Account ID should not be empty")
	assert.Equal(t, domainaccount.StatusActive, acc.Status)
	assert.Zero(t, acc.Balance)
}

func TestBuilderValidation(t *testing.T) {
	t.Parallel()

	t.Run("missing user", func(t *testing.T) {
		_, err := domainaccount.New().WithNumber("1000000000").Build()
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("bad number length", func(t *testing.T) {
		_, err := domainaccount.New().WithUserID(uuid.New()).WithNumber("123").Build()
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})

	t.Run("negative balance", func(t *testing.T) {
		_, err := domainaccount.New().
			WithUserID(uuid.New()).
			WithNumber("1000000000").
			WithBalance(-1).
			Build()
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})
}

func TestUse(t *testing.T) {
	t.Parallel()
	acc, err := domainaccount.New().
		WithUserID(uuid.New()).
		WithNumber("1000000000").
		WithBalance(10000).
		Build()
	require.NoError(t, err)

	t.Run("successful use", func(t *testing.T) {
		err := acc.Use(1000)
		assert.NoError(t, err)
		assert.Equal(t, int64(9000), acc.Balance)
	})

	t.Run("amount exceeds balance", func(t *testing.T) {
		err := acc.Use(20000)
		assert.ErrorIs(t, err, domain.ErrAmountExceedsBalance)
		assert.Equal(t, int64(9000), acc.Balance, "balance must be untouched")
	})

	t.Run("use to zero", func(t *testing.T) {
		err := acc.Use(9000)
		assert.NoError(t, err)
		assert.Zero(t, acc.Balance)
	})
}

func TestCancel(t *testing.T) {
	t.Parallel()
	acc, err := domainaccount.New().
		WithUserID(uuid.New()).
		WithNumber("1000000001").
		WithBalance(5000).
		Build()
	require.NoError(t, err)

	t.Run("restores balance", func(t *testing.T) {
		require.NoError(t, acc.Use(2000))
		err := acc.Cancel(2000)
		assert.NoError(t, err)
		assert.Equal(t, int64(5000), acc.Balance)
	})

	t.Run("negative amount", func(t *testing.T) {
		err := acc.Cancel(-1)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})
}

func TestClose(t *testing.T) {
	t.Parallel()

	t.Run("non-empty balance", func(t *testing.T) {
		acc, err := domainaccount.New().
			WithUserID(uuid.New()).
			WithNumber("1000000002").
			WithBalance(100).
			Build()
		require.NoError(t, err)
		err = acc.Close(time.Now())
		assert.ErrorIs(t, err, domain.ErrBalanceNotEmpty)
		assert.Equal(t, domainaccount.StatusActive, acc.Status)
	})

	t.Run("successful close", func(t *testing.T) {
		acc, err := domainaccount.New().
			WithUserID(uuid.New()).
			WithNumber("1000000003").
			Build()
		require.NoError(t, err)
		now := time.Now()
		err = acc.Close(now)
		assert.NoError(t, err)
		assert.Equal(t, domainaccount.StatusClosed, acc.Status)
		require.NotNil(t, acc.ClosedAt)
		assert.Equal(t, now, *acc.ClosedAt)
	})

	t.Run("already closed", func(t *testing.T) {
		acc, err := domainaccount.New().
			WithUserID(uuid.New()).
			WithNumber("1000000004").
			Build()
		require.NoError(t, err)
		require.NoError(t, acc.Close(time.Now()))
		err = acc.Close(time.Now())
		assert.ErrorIs(t, err, domain.ErrAccountAlreadyUnregistered)
	})
}
