package main

import (
	"fmt"

	"github.com/amirasaad/balancebook/infra/initializer"
	"github.com/amirasaad/balancebook/pkg/app"
	"github.com/amirasaad/balancebook/pkg/config"
	"github.com/amirasaad/balancebook/webapi"
	log "github.com/charmbracelet/log"
)

// @title Balancebook API
// @version 1.0.0
// @description Account balance management API
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := deps.Logger

	application := app.New(deps, cfg)
	fiberApp := webapi.SetupApp(application)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
		"lock_backend", cfg.Lock.Backend,
	)

	return fiberApp.Listen(addr)
}
