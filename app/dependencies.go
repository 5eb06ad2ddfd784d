// Package app wires the application together. This is the central
// dependency-injection point: everything is constructed once at startup
// and passed down, never reached through globals.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/upb/retrieval-gateway/auth"
	"github.com/upb/retrieval-gateway/config"
	"github.com/upb/retrieval-gateway/middleware"
	"github.com/upb/retrieval-gateway/repositories"
	"github.com/upb/retrieval-gateway/repositories/memory"
	"github.com/upb/retrieval-gateway/repositories/postgres"
	"github.com/upb/retrieval-gateway/services/audit"
	"github.com/upb/retrieval-gateway/services/policy"
)

// Dependencies holds all application dependencies.
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	Store  repositories.DocumentStore
	Audit  *audit.Emitter
	Policy *policy.Service

	AuthMiddleware *middleware.AuthMiddleware

	pgRepo *postgres.DocumentRepository
}

// NewDependencies creates and wires up all application dependencies.
// Configuration errors here are fatal: the server refuses to serve any
// authenticated route with contradictory security settings.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	deps.Audit = audit.NewEmitter(logger)
	deps.Policy = policy.NewService(policy.DefaultTable(), deps.Audit, logger)

	if err := deps.initStore(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize document store: %w", err)
	}

	resolver, err := auth.NewResolver(cfg.Auth)
	if err != nil {
		return nil, err
	}
	deps.AuthMiddleware = middleware.NewAuthMiddleware(resolver, deps.Audit, logger)

	logger.Info("all dependencies initialized",
		zap.String("auth_mode", cfg.Auth.Mode),
		zap.String("store_driver", cfg.Store.Driver))
	return deps, nil
}

// initStore constructs the single document store instance selected by
// configuration.
func (d *Dependencies) initStore(ctx context.Context, cfg *config.Config) error {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		d.Store = memory.NewStore()
	case config.StoreDriverPostgres:
		repo, err := postgres.Open(ctx, cfg.Store.Postgres, d.Logger)
		if err != nil {
			return err
		}
		d.pgRepo = repo
		d.Store = repo
	default:
		return fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	return nil
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	if d.pgRepo != nil {
		if err := d.pgRepo.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		d.Logger.Info("database connection closed")
	}

	_ = d.Logger.Sync()
	return nil
}
