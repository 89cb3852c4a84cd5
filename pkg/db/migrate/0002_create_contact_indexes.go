package migrate

import (
	"context"

	"github.com/grantflow/grantflow/pkg/db"
)

const (
	createContactIndexesName    = "create contact indexes"
	createContactIndexesVersion = 2
)

// createContactIndexes adds the lookup indexes used by contact listing and
// the team scoped email uniqueness guard.
var createContactIndexes = Migration{
	Version: createContactIndexesVersion,
	Name:    createContactIndexesName,
	Migrate: func(ctx context.Context, tx *db.Tx) error {
		return migrateUp(ctx, tx, createContactIndexesVersion, createContactIndexesName)
	},
	Rollback: func(ctx context.Context, tx *db.Tx) error {
		return migrateDown(ctx, tx, createContactIndexesVersion, createContactIndexesName)
	},
}
