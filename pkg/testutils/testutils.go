// Package testutils provides in-memory repository fakes shared by the service
// and webapi test suites.
package testutils

import (
	"context"
	"sync"

	"github.com/amirasaad/balancebook/pkg/domain"
	"github.com/amirasaad/balancebook/pkg/domain/account"
	"github.com/amirasaad/balancebook/pkg/domain/transaction"
	"github.com/amirasaad/balancebook/pkg/domain/user"
	"github.com/amirasaad/balancebook/pkg/repository"
	"github.com/google/uuid"
)

// FakeStore is an in-memory backing store shared by the fake repositories.
// Reads hand out copies so state only changes through Update, like a real
// database session would behave.
type FakeStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*user.User
	accounts map[uuid.UUID]*account.Account
	entries  []*transaction.Entry
}

// NewFakeStore creates an empty store.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		users:    make(map[uuid.UUID]*user.User),
		accounts: make(map[uuid.UUID]*account.Account),
	}
}

// AddUser seeds a user.
func (s *FakeStore) AddUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// AddAccount seeds an account.
func (s *FakeStore) AddAccount(a *account.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.accounts[a.ID] = &cp
}

// Account returns the stored state of the account, or nil.
func (s *FakeStore) Account(id uuid.UUID) *account.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil
	}
	cp := *a
	return &cp
}

// EntriesFor returns the ledger entries recorded against the account.
func (s *FakeStore) EntriesFor(id uuid.UUID) []*transaction.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*transaction.Entry
	for _, e := range s.entries {
		if e.AccountID == id {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out
}

// FakeUoW implements repository.UnitOfWork over a FakeStore. Do invokes the
// function directly; the fakes have no transaction isolation, which the
// lock-guarded services do not rely on in tests.
type FakeUoW struct{ Store *FakeStore }

// NewFakeUoW wraps a store.
func NewFakeUoW(store *FakeStore) *FakeUoW { return &FakeUoW{Store: store} }

// Do implements repository.UnitOfWork.
func (f *FakeUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(f)
}

// AccountRepository implements repository.UnitOfWork.
func (f *FakeUoW) AccountRepository() (repository.AccountRepository, error) {
	return &fakeAccountRepo{store: f.Store}, nil
}

// TransactionRepository implements repository.UnitOfWork.
func (f *FakeUoW) TransactionRepository() (repository.TransactionRepository, error) {
	return &fakeTransactionRepo{store: f.Store}, nil
}

// UserRepository implements repository.UnitOfWork.
func (f *FakeUoW) UserRepository() (repository.UserRepository, error) {
	return &fakeUserRepo{store: f.Store}, nil
}

var _ repository.UnitOfWork = (*FakeUoW)(nil)

type fakeAccountRepo struct{ store *FakeStore }

func (r *fakeAccountRepo) Get(_ context.Context, id uuid.UUID) (*account.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAccountRepo) GetByNumber(_ context.Context, number string) (*account.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, a := range r.store.accounts {
		if a.Number == number {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *fakeAccountRepo) LatestNumber(_ context.Context) (string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	latest := ""
	for _, a := range r.store.accounts {
		if a.Number > latest {
			latest = a.Number
		}
	}
	return latest, nil
}

func (r *fakeAccountRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*account.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*account.Account
	for _, a := range r.store.accounts {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	list, err := r.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(len(list)), nil
}

func (r *fakeAccountRepo) Create(_ context.Context, a *account.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *a
	r.store.accounts[a.ID] = &cp
	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, a *account.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.accounts[a.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	cp := *a
	r.store.accounts[a.ID] = &cp
	return nil
}

type fakeTransactionRepo struct{ store *FakeStore }

func (r *fakeTransactionRepo) Create(_ context.Context, e *transaction.Entry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *e
	r.store.entries = append(r.store.entries, &cp)
	return nil
}

func (r *fakeTransactionRepo) GetByTransactionID(_ context.Context, transactionID string) (*transaction.Entry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, e := range r.store.entries {
		if e.TransactionID == transactionID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (r *fakeTransactionRepo) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*transaction.Entry, error) {
	return r.store.EntriesFor(accountID), nil
}

func (r *fakeTransactionRepo) MarkCanceled(_ context.Context, transactionID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, e := range r.store.entries {
		if e.TransactionID == transactionID {
			e.Canceled = true
			return nil
		}
	}
	return domain.ErrTransactionNotFound
}

type fakeUserRepo struct{ store *FakeStore }

func (r *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.users[u.ID] = u
	return nil
}
