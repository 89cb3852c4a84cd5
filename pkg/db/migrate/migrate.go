// Package migrate applies the versioned grantflow schema.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/grantflow/grantflow/pkg/db"
)

// MigrateFunc is a function that executes a migration.
type MigrateFunc func(ctx context.Context, tx *db.Tx) error //nolint:revive

// Migration is a single schema version with its up and down steps.
type Migration struct {
	Version  int64
	Name     string
	Migrate  MigrateFunc
	Rollback MigrateFunc
}

// Migrations is a row of the migrations bookkeeping table.
type Migrations struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Version int64  `db:"version"`
}

func (Migrations) schema(driverName string) (string, error) {
	switch driverName {
	case driverSQLite3, driverSQLite:
		return `CREATE TABLE IF NOT EXISTS migrations (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				version INTEGER NOT NULL UNIQUE
			);`, nil
	case driverPostgres:
		return `CREATE TABLE IF NOT EXISTS migrations (
				id SERIAL PRIMARY KEY,
				name TEXT NOT NULL,
				version INTEGER NOT NULL UNIQUE
			);`, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driverName)
	}
}

func latest(ctx context.Context, tx *db.Tx) (Migrations, error) {
	var m Migrations
	err := tx.GetContext(ctx, &m, tx.Rebind("SELECT * FROM migrations ORDER BY version DESC LIMIT 1"))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return m, err
	}
	return m, nil
}

// Migrate runs every migration newer than the current schema version.
func Migrate(ctx context.Context, dbx *db.DB) error {
	logger := log.FromContext(ctx).WithPrefix("migrate")
	return dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		if !hasTable(ctx, tx, "migrations") {
			schema, err := Migrations{}.schema(tx.DriverName())
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, schema); err != nil {
				return err
			}
		}

		current, err := latest(ctx, tx)
		if err != nil {
			return err
		}

		for _, m := range migrations {
			if m.Version <= current.Version {
				continue
			}

			logger.Infof("running migration %d. %s", m.Version, m.Name)
			if err := m.Migrate(ctx, tx); err != nil {
				return fmt.Errorf("migration %d: %w", m.Version, err)
			}

			if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO migrations (name, version) VALUES (?, ?)"), m.Name, m.Version); err != nil {
				return err
			}
		}

		return nil
	})
}

// Rollback rolls back the most recent migration.
func Rollback(ctx context.Context, dbx *db.DB) error {
	logger := log.FromContext(ctx).WithPrefix("migrate")
	return dbx.TransactionContext(ctx, func(tx *db.Tx) error {
		if !hasTable(ctx, tx, "migrations") {
			return fmt.Errorf("there are no migrations to rollback")
		}

		current, err := latest(ctx, tx)
		if err != nil {
			return err
		}

		if current.Version == 0 || len(migrations) < int(current.Version) {
			return fmt.Errorf("there are no migrations to rollback")
		}

		m := migrations[current.Version-1]
		logger.Infof("rolling back migration %d. %s", m.Version, m.Name)
		if err := m.Rollback(ctx, tx); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM migrations WHERE version = ?"), current.Version); err != nil {
			return err
		}

		return nil
	})
}

func hasTable(ctx context.Context, tx *db.Tx, tableName string) bool {
	var query string
	switch tx.DriverName() {
	case driverSQLite3, driverSQLite:
		query = "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
	case driverPostgres:
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' AND table_name = ?"
	default:
		return false
	}

	var name string
	err := tx.GetContext(ctx, &name, tx.Rebind(query), tableName)
	return err == nil
}
