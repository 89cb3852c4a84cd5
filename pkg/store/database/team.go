package database

import (
	"context"

	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
	"github.com/grantflow/grantflow/pkg/store"
)

var _ store.TeamStore = (*teamStore)(nil)

type teamStore struct{}

// CreateTeam implements store.TeamStore.
func (*teamStore) CreateTeam(ctx context.Context, h db.Handler, name string) (models.Team, error) {
	t := now()
	team := models.Team{
		ID:        newID(),
		Name:      name,
		CreatedAt: t,
		UpdatedAt: t,
	}
	query := h.Rebind(`
		INSERT INTO
		  teams (id, name, created_at, updated_at)
		VALUES
		  (?, ?, ?, ?)
	`)
	_, err := h.ExecContext(ctx, query, team.ID, team.Name, team.CreatedAt, team.UpdatedAt)
	return team, db.WrapError(err)
}

// GetTeamByID implements store.TeamStore.
func (*teamStore) GetTeamByID(ctx context.Context, h db.Handler, id string) (models.Team, error) {
	var team models.Team
	query := h.Rebind("SELECT * FROM teams WHERE id = ?;")
	err := h.GetContext(ctx, &team, query, id)
	return team, db.WrapError(err)
}

// ListTeams implements store.TeamStore.
func (*teamStore) ListTeams(ctx context.Context, h db.Handler) ([]models.Team, error) {
	var teams []models.Team
	query := h.Rebind("SELECT * FROM teams ORDER BY name;")
	err := h.SelectContext(ctx, &teams, query)
	return teams, db.WrapError(err)
}
