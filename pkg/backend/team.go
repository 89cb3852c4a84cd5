package backend

import (
	"context"
	"errors"
	"strings"

	"github.com/grantflow/grantflow/pkg/access"
	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
	"github.com/grantflow/grantflow/pkg/proto"
)

// CreateTeam creates a team together with its default group.
func (d *Backend) CreateTeam(ctx context.Context, name string) (proto.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return proto.Team{}, proto.ErrTeamRequired
	}

	var team models.Team
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		team, err = d.store.CreateTeam(ctx, tx, name)
		if err != nil {
			return err
		}
		return d.store.EnsureDefaultGroup(ctx, tx, team.ID)
	})
	if err != nil {
		return proto.Team{}, err
	}

	return teamFromModel(team), nil
}

// Team returns a team by id.
func (d *Backend) Team(ctx context.Context, id string) (proto.Team, error) {
	team, err := d.store.GetTeamByID(ctx, d.db, id)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.Team{}, proto.ErrTeamNotFound
		}
		return proto.Team{}, err
	}
	return teamFromModel(team), nil
}

// Teams returns every team.
func (d *Backend) Teams(ctx context.Context) ([]proto.Team, error) {
	teams, err := d.store.ListTeams(ctx, d.db)
	if err != nil {
		return nil, err
	}
	out := make([]proto.Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamFromModel(t))
	}
	return out, nil
}

func teamFromModel(t models.Team) proto.Team {
	return proto.Team{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}
}

// EnsureDefaultGroup creates the default group of a team unless it exists.
func (d *Backend) EnsureDefaultGroup(ctx context.Context, teamID string) error {
	return d.ensureDefaultGroup(ctx, d.db, teamID)
}

func (d *Backend) ensureDefaultGroup(ctx context.Context, h db.Handler, teamID string) error {
	if teamID == "" {
		return proto.ErrTeamRequired
	}
	if err := d.store.EnsureDefaultGroup(ctx, h, teamID); err != nil {
		if errors.Is(err, db.ErrForeignKey) {
			return proto.ErrTeamNotFound
		}
		return err
	}
	return nil
}

// CreateGroup creates a group within a team.
func (d *Backend) CreateGroup(ctx context.Context, teamID string, opts proto.GroupOptions) (proto.Group, error) {
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		return proto.Group{}, proto.ErrGroupNameRequired
	}

	g, err := d.store.CreateGroup(ctx, d.db, teamID, name, opts.CanAccessAllContacts, encodeModules(opts.Modules))
	if err != nil {
		switch {
		case errors.Is(err, db.ErrDuplicateKey):
			return proto.Group{}, proto.ErrGroupExist
		case errors.Is(err, db.ErrForeignKey):
			return proto.Group{}, proto.ErrTeamNotFound
		}
		return proto.Group{}, err
	}

	return groupFromModel(g), nil
}

// Group returns a group of a team with its members.
func (d *Backend) Group(ctx context.Context, teamID, groupID string) (proto.Group, error) {
	g, err := d.store.GetGroupByID(ctx, d.db, teamID, groupID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.Group{}, proto.ErrGroupNotFound
		}
		return proto.Group{}, err
	}

	members, err := d.store.ListGroupMembers(ctx, d.db, g.ID)
	if err != nil {
		return proto.Group{}, err
	}

	pg := groupFromModel(g)
	pg.Members = members
	return pg, nil
}

// Groups returns the groups of a team, the default group first.
func (d *Backend) Groups(ctx context.Context, teamID string) ([]proto.Group, error) {
	groups, err := d.store.ListGroups(ctx, d.db, teamID)
	if err != nil {
		return nil, err
	}
	out := make([]proto.Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, groupFromModel(g))
	}
	return out, nil
}

// AddGroupMember adds a user to a group of a team.
func (d *Backend) AddGroupMember(ctx context.Context, teamID, groupID, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return proto.ErrUserRequired
	}
	if _, err := d.Group(ctx, teamID, groupID); err != nil {
		return err
	}
	return d.store.AddUserToGroup(ctx, d.db, groupID, userID)
}

// RemoveGroupMember removes a user from a group of a team.
func (d *Backend) RemoveGroupMember(ctx context.Context, teamID, groupID, userID string) error {
	if _, err := d.Group(ctx, teamID, groupID); err != nil {
		return err
	}
	return d.store.RemoveUserFromGroup(ctx, d.db, groupID, userID)
}

func groupFromModel(g models.Group) proto.Group {
	return proto.Group{
		ID:                   g.ID,
		TeamID:               g.TeamID,
		Name:                 g.Name,
		CanAccessAllContacts: g.CanAccessAllContacts,
		Modules:              decodeModules(g.Modules),
		IsDefault:            g.IsDefault,
	}
}

func encodeModules(modules []access.Submodule) string {
	names := make([]string, 0, len(modules))
	for _, m := range modules {
		if m.String() != "unknown" {
			names = append(names, m.String())
		}
	}
	return strings.Join(names, ",")
}

func decodeModules(s string) []access.Submodule {
	modules := []access.Submodule{}
	for _, name := range strings.Split(s, ",") {
		if m := access.ParseSubmodule(strings.TrimSpace(name)); m >= 0 {
			modules = append(modules, m)
		}
	}
	return modules
}
