// Package cmd holds helpers shared by the grantflow commands.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/grantflow/grantflow/pkg/backend"
	"github.com/grantflow/grantflow/pkg/cache"
	"github.com/grantflow/grantflow/pkg/config"
	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/store/database"
	"github.com/spf13/cobra"
)

// InitBackendContext opens the database, builds the cache and the backend
// and attaches them to the command context.
func InitBackendContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	if cfg == nil {
		return config.ErrNilConfig
	}
	if _, err := os.Stat(cfg.DataPath); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(cfg.DataPath, os.ModePerm); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	dbx, err := db.Open(ctx, cfg.DB.Driver, cfg.DB.DataSource)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	ctx = db.WithContext(ctx, dbx)

	c, err := cache.New(ctx, cfg.Cache.Backend,
		cache.WithSize(cfg.Cache.Size),
		cache.WithTTL(cfg.Cache.TTL),
		cache.WithPrefix("grantflow:"),
	)
	if err != nil {
		dbx.Close() //nolint:errcheck
		return fmt.Errorf("create %s cache: %w", cfg.Cache.Backend, err)
	}

	st := database.New(ctx, dbx)
	be := backend.New(ctx, cfg, dbx, st, c)
	ctx = backend.WithContext(ctx, be)

	cmd.SetContext(ctx)

	return nil
}

// CloseDBContext closes the database context.
func CloseDBContext(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	dbx := db.FromContext(ctx)
	if dbx != nil {
		if err := dbx.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}

	return nil
}
