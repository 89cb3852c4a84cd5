package store

import (
	"context"

	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
)

// TeamStore is a store for teams.
type TeamStore interface {
	CreateTeam(ctx context.Context, h db.Handler, name string) (models.Team, error)
	GetTeamByID(ctx context.Context, h db.Handler, id string) (models.Team, error)
	ListTeams(ctx context.Context, h db.Handler) ([]models.Team, error)
}
