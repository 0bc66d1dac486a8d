package main

import (
	"context"
	"fmt"
	"os"

	"worktime/internal/api"
	"worktime/internal/config"
	"worktime/internal/logging"
)

// newBusinessAPI opens the store selected by cfg and loads its state
func newBusinessAPI(ctx context.Context, cfg *config.Config) (api.BusinessAPI, func() error, error) {
	logger := logging.New(os.Stderr, cfg.Application.Verbose)

	factory := config.NewRepositoryFactory(cfg)
	repo, err := factory.CreateRepository()
	if err != nil {
		return nil, nil, fmt.Errorf("error creating repository: %w", err)
	}
	logger.Debug("repository_opened", "path", factory.DatabasePath(), "env", string(cfg.Application.Environment))

	businessAPI, err := api.NewBusinessAPI(ctx, repo, api.Options{
		Config: cfg,
		Logger: logger,
	})
	if err != nil {
		repo.Close()
		return nil, nil, err
	}
	return businessAPI, repo.Close, nil
}
