// Package di wires the application together. Providers mirror the
// collaborator boundaries: remote recipe service, draft store, connectivity
// monitor, and the workflow on top of them.
package di

import (
	"context"

	"go.uber.org/zap"

	"cookbook/application/ports"
	"cookbook/application/workflow"
	infraconn "cookbook/infrastructure/connectivity"
	"cookbook/infrastructure/config"
	"cookbook/infrastructure/draftstore"
	"cookbook/infrastructure/recipeapi"

	domainconn "cookbook/domain/connectivity"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Recipes  *recipeapi.Client
	Drafts   *draftstore.Store
	Network  ports.ConnectivityMonitor
	Workflow *workflow.Workflow

	closers []func() error
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideRecipeClient creates the remote recipe service client
func ProvideRecipeClient(cfg *config.Config, logger *zap.Logger) *recipeapi.Client {
	return recipeapi.NewClient(cfg.APIBaseURL, cfg.AuthToken, logger,
		recipeapi.WithTimeout(cfg.RequestTimeout),
	)
}

// ProvideDraftStore opens the local draft database
func ProvideDraftStore(cfg *config.Config) (*draftstore.Store, error) {
	return draftstore.New(cfg.DraftDBPath)
}

// ProvideConnectivityMonitor builds the connectivity monitor: file-backed
// when a state file is configured, otherwise fixed at wifi.
func ProvideConnectivityMonitor(cfg *config.Config, logger *zap.Logger) (ports.ConnectivityMonitor, func(), error) {
	if cfg.ConnectivityFile == "" {
		return infraconn.NewStatic(domainconn.Wifi()), func() {}, nil
	}
	monitor, err := infraconn.NewFileMonitor(cfg.ConnectivityFile, logger)
	if err != nil {
		return nil, nil, err
	}
	return monitor, monitor.Stop, nil
}

// InitializeContainer creates a fully wired container. A non-nil monitor
// overrides the configured connectivity source, which is how the CLI injects
// a flag-selected transport.
func InitializeContainer(ctx context.Context, cfg *config.Config, monitor ports.ConnectivityMonitor) (*Container, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger}

	c.Drafts, err = ProvideDraftStore(cfg)
	if err != nil {
		logger.Sync()
		return nil, err
	}
	c.closers = append(c.closers, c.Drafts.Close)

	if monitor != nil {
		c.Network = monitor
	} else {
		m, stop, err := ProvideConnectivityMonitor(cfg, logger)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.Network = m
		c.closers = append(c.closers, func() error {
			stop()
			return nil
		})
	}

	c.Recipes = ProvideRecipeClient(cfg, logger)
	c.Workflow = workflow.New(c.Recipes, c.Recipes, c.Drafts, c.Network, logger)

	return c, nil
}

// Close releases container resources in reverse acquisition order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			c.Logger.Warn("failed to close resource", zap.Error(err))
		}
	}
	c.closers = nil
	c.Logger.Sync()
}
