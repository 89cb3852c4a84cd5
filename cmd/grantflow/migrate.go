package main

import (
	"fmt"

	"github.com/grantflow/grantflow/cmd"
	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/migrate"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:                "migrate",
	Short:              "Migrate the database to the latest version",
	Args:               cobra.NoArgs,
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
	RunE: func(c *cobra.Command, _ []string) error {
		ctx := c.Context()
		dbx := db.FromContext(ctx)
		if rollback, _ := c.Flags().GetBool("rollback"); rollback {
			if err := migrate.Rollback(ctx, dbx); err != nil {
				return fmt.Errorf("rollback: %w", err)
			}
			return nil
		}

		if err := migrate.Migrate(ctx, dbx); err != nil {
			return fmt.Errorf("migration: %w", err)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().Bool("rollback", false, "roll back the latest migration instead")
}
