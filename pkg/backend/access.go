package backend

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/grantflow/grantflow/pkg/access"
	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
	"github.com/grantflow/grantflow/pkg/proto"
)

func fieldAccessKey(teamID string) string {
	return "field-access:" + teamID
}

// FieldAccessMap returns the field access rules of a team keyed by field.
func (d *Backend) FieldAccessMap(ctx context.Context, teamID string) (access.Map, error) {
	key := fieldAccessKey(teamID)
	if d.cache != nil {
		if raw, ok := d.cache.Get(ctx, key); ok {
			var groups map[string][]string
			if err := json.Unmarshal([]byte(raw), &groups); err == nil {
				fieldAccessCacheCounter.WithLabelValues("hit").Inc()
				m := make(access.Map, len(groups))
				for field, ids := range groups {
					for _, id := range ids {
						m.Allow(field, id)
					}
				}
				return m, nil
			}
			d.logger.Warn("discarding malformed cached field access map", "team", teamID)
		}
		fieldAccessCacheCounter.WithLabelValues("miss").Inc()
	}

	rules, err := d.store.ListFieldAccessRules(ctx, d.db, teamID)
	if err != nil {
		return nil, err
	}

	m := make(access.Map)
	for _, r := range rules {
		m.Allow(r.FieldKey, r.GroupID)
	}

	if d.cache != nil {
		groups := make(map[string][]string, len(m))
		for field := range m {
			groups[field] = m.Groups(field)
		}
		if bts, err := json.Marshal(groups); err == nil {
			d.cache.Set(ctx, key, string(bts))
		}
	}

	return m, nil
}

// UserGroupIDs returns the ids of the groups a user belongs to within a
// team. A missing user belongs to no group.
func (d *Backend) UserGroupIDs(ctx context.Context, teamID, userID string) ([]string, error) {
	groups, err := d.userGroups(ctx, d.db, teamID, userID)
	if err != nil {
		return nil, err
	}
	return groupIDs(groups), nil
}

func (d *Backend) userGroups(ctx context.Context, h db.Handler, teamID, userID string) ([]models.Group, error) {
	if userID == "" {
		return nil, nil
	}
	return d.store.ListUserGroups(ctx, h, teamID, userID)
}

func groupIDs(groups []models.Group) []string {
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	return ids
}

// AllowedSubmodules returns the submodules with at least one field visible
// to the user. Anonymous callers get none.
func (d *Backend) AllowedSubmodules(ctx context.Context, teamID string, id access.Identity) ([]access.Submodule, error) {
	if teamID == "" || id.IsAnonymous() {
		return []access.Submodule{}, nil
	}

	v, err := d.viewer(ctx, teamID, id)
	if err != nil {
		return nil, err
	}

	return access.AllowedSubmodules(v.access, v.groupIDs), nil
}

// SetFieldAccess replaces the groups allowed to see and write a field. An
// empty list makes the field visible to everyone again.
func (d *Backend) SetFieldAccess(ctx context.Context, teamID, field string, groups []string) error {
	field = strings.TrimSpace(field)
	if field == "" {
		return proto.ErrInvalidField
	}

	ids := dedupe(groups)
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		for _, gid := range ids {
			if _, err := d.store.GetGroupByID(ctx, tx, teamID, gid); err != nil {
				if errors.Is(err, db.ErrRecordNotFound) {
					return proto.ErrGroupNotFound
				}
				return err
			}
		}
		return d.store.SetFieldAccessGroups(ctx, tx, teamID, field, ids)
	})
	if err != nil {
		return err
	}

	if d.cache != nil {
		d.cache.Delete(ctx, fieldAccessKey(teamID))
	}

	return nil
}

// viewer is the resolved access context of a caller within a team.
type viewer struct {
	identity access.Identity
	access   access.Map
	groupIDs []string
	// allContacts lifts the contact level group restriction.
	allContacts bool
}

func (d *Backend) viewer(ctx context.Context, teamID string, id access.Identity) (viewer, error) {
	m, err := d.FieldAccessMap(ctx, teamID)
	if err != nil {
		return viewer{}, err
	}

	groups, err := d.userGroups(ctx, d.db, teamID, id.UserID)
	if err != nil {
		return viewer{}, err
	}

	v := viewer{
		identity:    id,
		access:      m,
		groupIDs:    groupIDs(groups),
		allContacts: id.IsAdmin(),
	}
	for _, g := range groups {
		if g.CanAccessAllContacts {
			v.allContacts = true
		}
	}

	return v, nil
}

// canSee reports whether the viewer may read and write field.
func (v viewer) canSee(field string) bool {
	return access.IsFieldVisible(field, v.access, v.groupIDs)
}

// canSeeContact applies the contact level group restriction.
func (v viewer) canSeeContact(groupID string) bool {
	if v.allContacts || groupID == "" {
		return true
	}
	for _, id := range v.groupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}

func (v viewer) redact(c *proto.Contact) {
	c.Redact(v.access, v.groupIDs)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
