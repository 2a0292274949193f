package account_test

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/amirasaad/balancebook/pkg/domain"
	domainaccount "github.com/amirasaad/balancebook/pkg/domain/account"
	domainuser "github.com/amirasaad/balancebook/pkg/domain/user"
	"github.com/amirasaad/balancebook/pkg/dto"
	"github.com/amirasaad/balancebook/pkg/lock"
	accountsvc "github.com/amirasaad/balancebook/pkg/service/account"
	"github.com/amirasaad/balancebook/pkg/testutils"
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

func fixture(t *testing.T) (*accountsvc.Service, *testutils.FakeStore, *domainuser.User) {
	t.Helper()
	store := testutils.NewFakeStore()
	u, err := domainuser.NewUser("jane", "jane@example.com", "s3cret-pass")
	require.NoError(t, err)
	store.AddUser(u)

	guard := lock.NewGuard(lock.NewMemoryRegistry(time.Second, slog.Default()), slog.Default())
	svc := accountsvc.New(guard, testutils.NewFakeUoW(store), slog.Default())
	return svc, store, u
}

func TestCreateAccount(t *testing.T) {
	t.Parallel()

	t.Run("first account gets the base number", func(t *testing.T) {
		t.Parallel()
		svc, _, u := fixture(t)

		a, err := svc.CreateAccount(context.Background(), dto.AccountCreate{
			UserID:         u.ID,
			InitialBalance: 10000,
		})
		require.NoError(t, err)
		assert.Equal(t, "1000000000", a.Number)
		assert.Equal(t, int64(10000), a.Balance)
		assert.Equal(t, domainaccount.StatusActive, a.Status)
	})

	t.Run("numbers are issued sequentially", func(t *testing.T) {
		t.Parallel()
		svc, _, u := fixture(t)

		first, err := svc.CreateAccount(context.Background(), dto.AccountCreate{UserID: u.ID})
		require.NoError(t, err)
		second, err := svc.CreateAccount(context.Background(), dto.AccountCreate{UserID: u.ID})
		require.NoError(t, err)
		assert.Equal(t, "1000000000", first.Number)
		assert.Equal(t, "1000000001", second.Number)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := fixture(t)

		_, err := svc.CreateAccount(context.Background(), dto.AccountCreate{UserID: uuid.New()})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("per-user account cap", func(t *testing.T) {
		t.Parallel()
		svc, _, u := fixture(t)

		for range accountsvc.MaxAccountsPerUser {
			_, err := svc.CreateAccount(context.Background(), dto.AccountCreate{UserID: u.ID})
			require.NoError(t, err)
		}
		_, err := svc.CreateAccount(context.Background(), dto.AccountCreate{UserID: u.ID})
		assert.ErrorIs(t, err, domain.ErrMaxAccountPerUser)
	})
}

func TestCloseAccount(t *testing.T) {
	t.Parallel()

	t.Run("successful close", func(t *testing.T) {
		t.Parallel()
		svc, store, u := fixture(t)
		a, err := svc.CreateAccount(context.Background(), dto.AccountCreate{UserID: u.ID})
		require.NoError(t, err)

		closed, err := svc.CloseAccount(context.Background(), u.ID, a.Number)
		require.NoError(t, err)
		assert.Equal(t, domainaccount.StatusClosed, closed.Status)
		assert.NotNil(t, closed.ClosedAt)
		assert.Equal(t, domainaccount.StatusClosed, store.Account(a.ID).Status)
	})

	t.Run("balance must be empty", func(t *testing.T) {
		t.Parallel()
		svc, _, u := fixture(t)
		a, err := svc.CreateAccount(context.Background(), dto.AccountCreate{
			UserID:         u.ID,
			InitialBalance: 100,
		})
		require.NoError(t, err)

		_, err = svc.CloseAccount(context.Background(), u.ID, a.Number)
		assert.ErrorIs(t, err, domain.ErrBalanceNotEmpty)
	})

	t.Run("already closed", func(t *testing.T) {
		t.Parallel()
		svc, _, u := fixture(t)
		a, err := svc.CreateAccount(context.Background(), dto.AccountCreate{UserID: u.ID})
		require.NoError(t, err)
		_, err = svc.CloseAccount(context.Background(), u.ID, a.Number)
		require.NoError(t, err)

		_, err = svc.CloseAccount(context.Background(), u.ID, a.Number)
		assert.ErrorIs(t, err, domain.ErrAccountAlreadyUnregistered)
	})

	t.Run("ownership enforced", func(t *testing.T) {
		t.Parallel()
		svc, store, u := fixture(t)
		a, err := svc.CreateAccount(context.Background(), dto.AccountCreate{UserID: u.ID})
		require.NoError(t, err)
		other, err := domainuser.NewUser("john", "john@example.com", "s3cret-pass")
		require.NoError(t, err)
		store.AddUser(other)

		_, err = svc.CloseAccount(context.Background(), other.ID, a.Number)
		assert.ErrorIs(t, err, domain.ErrUserAccountMismatch)
	})
}

func TestGetBalance(t *testing.T) {
	t.Parallel()
	svc, store, u := fixture(t)
	a, err := svc.CreateAccount(context.Background(), dto.AccountCreate{
		UserID:         u.ID,
		InitialBalance: 2500,
	})
	require.NoError(t, err)

	balance, err := svc.GetBalance(context.Background(), u.ID, a.Number)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), balance)

	other, err := domainuser.NewUser("john", "john@example.com", "s3cret-pass")
	require.NoError(t, err)
	store.AddUser(other)
	_, err = svc.GetBalance(context.Background(), other.ID, a.Number)
	assert.ErrorIs(t, err, domain.ErrUserAccountMismatch)
}

func TestListAccounts(t *testing.T) {
	t.Parallel()
	svc, _, u := fixture(t)
	for range 3 {
		_, err := svc.CreateAccount(context.Background(), dto.AccountCreate{UserID: u.ID})
		require.NoError(t, err)
	}

	list, err := svc.ListAccounts(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	list, err = svc.ListAccounts(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListTransactions(t *testing.T) {
	t.Parallel()
	svc, _, u := fixture(t)
	a, err := svc.CreateAccount(context.Background(), dto.AccountCreate{UserID: u.ID})
	require.NoError(t, err)

	txs, err := svc.ListTransactions(context.Background(), u.ID, a.Number)
	require.NoError(t, err)
	assert.Empty(t, txs)

	_, err = svc.ListTransactions(context.Background(), uuid.New(), a.Number)
	assert.ErrorIs(t, err, domain.ErrUserAccountMismatch)
}
