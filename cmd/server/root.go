package main

import (
	"context"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/99minutos/job-board/internal/infrastructure/config"
	"github.com/99minutos/job-board/pkg/logger"
)

const serviceName = "job-board"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jobboard",
		Short:         "Job board API server and administration tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newCreateAdminCmd())
	return root
}

// bootstrap loads .env (when present) and the environment, and initialises
// the process logger.
func bootstrap(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, zerolog.Nop(), err
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})
	return cfg, log, nil
}
