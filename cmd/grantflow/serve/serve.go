// Package serve implements the serve command.
package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/grantflow/grantflow/cmd"
	"github.com/grantflow/grantflow/pkg/backend"
	"github.com/grantflow/grantflow/pkg/config"
	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/migrate"
	"github.com/spf13/cobra"
)

// Command is the serve command.
var Command = &cobra.Command{
	Use:   "serve",
	Short: "Start the server",
	Args:  cobra.NoArgs,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		cfg := config.FromContext(c.Context())
		if cfg != nil && !cfg.Exist() {
			if err := cfg.WriteConfig(); err != nil {
				return fmt.Errorf("write config file: %w", err)
			}
		}
		return cmd.InitBackendContext(c, args)
	},
	PersistentPostRunE: cmd.CloseDBContext,
	RunE: func(c *cobra.Command, _ []string) error {
		ctx := c.Context()
		cfg := config.FromContext(ctx)
		logger := log.FromContext(ctx)

		if err := migrate.Migrate(ctx, db.FromContext(ctx)); err != nil {
			return fmt.Errorf("migration error: %w", err)
		}

		if cfg.Geo.CentroidsPath != "" {
			be := backend.FromContext(ctx)
			if _, _, err := be.ImportCentroidsFile(ctx, cfg.Geo.CentroidsPath); err != nil {
				logger.Warn("could not load postal code centroids", "path", cfg.Geo.CentroidsPath, "err", err)
			}
		}

		s, err := NewServer(ctx)
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}

		lch := make(chan error, 1)
		done := make(chan os.Signal, 1)
		signal.Notify(done, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(done)

		go func() {
			lch <- s.Start()
		}()

		select {
		case err := <-lch:
			if err != nil {
				s.Close() //nolint:errcheck
				return fmt.Errorf("server error: %w", err)
			}
		case <-done:
		}

		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			return err
		}

		return nil
	},
}
