// Package app wires configuration and infrastructure into the application
// services.
package app

import (
	"log/slog"

	"github.com/amirasaad/balancebook/pkg/config"
	"github.com/amirasaad/balancebook/pkg/lock"
	"github.com/amirasaad/balancebook/pkg/repository"
	"github.com/amirasaad/balancebook/pkg/service/account"
	"github.com/amirasaad/balancebook/pkg/service/auth"
	"github.com/amirasaad/balancebook/pkg/service/transaction"
	"github.com/amirasaad/balancebook/pkg/service/user"
)

// Deps contains the infrastructure dependencies the services are built on.
type Deps struct {
	Uow          repository.UnitOfWork
	LockRegistry lock.Registry
	Logger       *slog.Logger
}

// App holds the configured services.
type App struct {
	Deps               *Deps
	Config             *config.App
	AuthService        *auth.Service
	UserService        *user.Service
	AccountService     *account.Service
	TransactionService *transaction.Service
}

// New assembles the application services from their dependencies.
func New(deps *Deps, cfg *config.App) *App {
	guard := lock.NewGuard(deps.LockRegistry, deps.Logger)
	return &App{
		Deps:               deps,
		Config:             cfg,
		AuthService:        auth.New(deps.Uow, cfg.Auth.Jwt, deps.Logger),
		UserService:        user.New(deps.Uow, deps.Logger),
		AccountService:     account.New(guard, deps.Uow, deps.Logger),
		TransactionService: transaction.New(guard, deps.Uow, deps.Logger),
	}
}
