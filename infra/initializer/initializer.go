// Package initializer builds the application dependency graph from
// configuration.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/amirasaad/balancebook/infra"
	infrarepo "github.com/amirasaad/balancebook/infra/repository"
	accountmodel "github.com/amirasaad/balancebook/infra/repository/account"
	transactionmodel "github.com/amirasaad/balancebook/infra/repository/transaction"
	usermodel "github.com/amirasaad/balancebook/infra/repository/user"
	"github.com/amirasaad/balancebook/pkg/app"
	"github.com/amirasaad/balancebook/pkg/config"
	"github.com/amirasaad/balancebook/pkg/lock"
	"github.com/redis/go-redis/v9"
)

// InitializeDependencies sets up the logger, database, unit of work and lock
// registry for the configured environment.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(
		&usermodel.User{},
		&accountmodel.Account{},
		&transactionmodel.Transaction{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	registry, err := newLockRegistry(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &app.Deps{
		Uow:          infrarepo.NewUoW(db),
		LockRegistry: registry,
		Logger:       logger,
	}, nil
}

// newLockRegistry selects the lock backend. A single instance serializes in
// process; multiple instances must share locks through redis.
func newLockRegistry(cfg *config.App, logger *slog.Logger) (lock.Registry, error) {
	switch cfg.Lock.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return lock.NewRedisRegistry(client, lock.DefaultRedisOptions(), logger), nil
	case "memory":
		return lock.NewMemoryRegistry(cfg.Lock.WaitTimeout, logger), nil
	default:
		return nil, fmt.Errorf("unknown lock backend %q", cfg.Lock.Backend)
	}
}
