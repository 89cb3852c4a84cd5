package store

import (
	"context"

	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
)

// ChangeLogStore is an append only store for contact change logs.
type ChangeLogStore interface {
	CreateChangeLogs(ctx context.Context, h db.Handler, entries []models.ContactChangeLog) error
	ListChangeLogs(ctx context.Context, h db.Handler, teamID, contactID string) ([]models.ContactChangeLog, error)
}
