package backend

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/grantflow/grantflow/pkg/access"
	"github.com/grantflow/grantflow/pkg/attribute"
	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
	"github.com/grantflow/grantflow/pkg/filter"
	"github.com/grantflow/grantflow/pkg/proto"
)

// ListOptions narrow a contact listing.
type ListOptions struct {
	// Query is matched case-insensitively against the text fields and the
	// profile attributes of a contact.
	Query string
	// Filters are applied conjunctively.
	Filters []filter.Filter
}

// ListContacts returns the contacts of a team visible to the caller,
// newest first, with restricted fields removed. A caller without a user
// id is treated as a member of no group and only sees contacts that do
// not belong to a group.
func (d *Backend) ListContacts(ctx context.Context, teamID string, id access.Identity, opts ListOptions) ([]proto.Contact, error) {
	defer func(start time.Time) {
		contactListSeconds.Observe(time.Since(start).Seconds())
	}(time.Now())

	if err := d.ensureDefaultGroup(ctx, d.db, teamID); err != nil {
		return nil, err
	}

	v, err := d.viewer(ctx, teamID, id)
	if err != nil {
		return nil, err
	}

	where := filter.NewBuilder(ctx, geoLookup{d, d.db}).Where(ctx, filter.Query{
		TeamID:           teamID,
		Text:             opts.Query,
		Filters:          opts.Filters,
		RestrictToGroups: !v.allContacts,
		GroupIDs:         v.groupIDs,
	})

	rows, err := d.store.ListContacts(ctx, d.db, where)
	if err != nil {
		return nil, err
	}

	contacts, err := d.hydrate(ctx, d.db, teamID, rows)
	if err != nil {
		return nil, err
	}

	for i := range contacts {
		v.redact(&contacts[i])
	}

	return contacts, nil
}

// ContactByID returns a contact visible to the caller with restricted
// fields removed.
func (d *Backend) ContactByID(ctx context.Context, teamID, contactID string, id access.Identity) (proto.Contact, error) {
	v, err := d.viewer(ctx, teamID, id)
	if err != nil {
		return proto.Contact{}, err
	}

	c, err := d.contact(ctx, d.db, teamID, contactID)
	if err != nil {
		return proto.Contact{}, err
	}

	groupID := ""
	if c.GroupID != nil {
		groupID = *c.GroupID
	}
	if !v.canSeeContact(groupID) {
		return proto.Contact{}, proto.ErrContactNotFound
	}

	v.redact(&c)
	return c, nil
}

// RedactContact removes the fields of c the caller may not see.
func (d *Backend) RedactContact(ctx context.Context, teamID string, id access.Identity, c *proto.Contact) error {
	v, err := d.viewer(ctx, teamID, id)
	if err != nil {
		return err
	}
	v.redact(c)
	return nil
}

// TeamContactAttributeKeys returns the sorted profile attribute keys found
// on the contacts visible to the caller.
func (d *Backend) TeamContactAttributeKeys(ctx context.Context, teamID string, id access.Identity) ([]string, error) {
	contacts, err := d.ListContacts(ctx, teamID, id, ListOptions{})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	keys := []string{}
	for _, c := range contacts {
		for _, a := range c.ProfileAttributes {
			if _, ok := seen[a.Key]; ok {
				continue
			}
			seen[a.Key] = struct{}{}
			keys = append(keys, a.Key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// DeleteContacts deletes contacts of a team by id. Ids of other teams are
// ignored. It returns the number of deleted contacts.
func (d *Backend) DeleteContacts(ctx context.Context, teamID string, ids []string) (int64, error) {
	if teamID == "" {
		return 0, proto.ErrTeamRequired
	}

	var n int64
	err := d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		n, err = d.store.DeleteContacts(ctx, tx, teamID, dedupe(ids))
		return err
	})
	if err != nil {
		return 0, err
	}

	contactsDeletedCounter.Add(float64(n))
	return n, nil
}

// contact loads a single contact with its relations.
func (d *Backend) contact(ctx context.Context, h db.Handler, teamID, contactID string) (proto.Contact, error) {
	row, err := d.store.GetContactByID(ctx, h, teamID, contactID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.Contact{}, proto.ErrContactNotFound
		}
		return proto.Contact{}, err
	}

	contacts, err := d.hydrate(ctx, h, teamID, []models.Contact{row})
	if err != nil {
		return proto.Contact{}, err
	}
	return contacts[0], nil
}

// hydrate maps contact rows to contacts with their attributes, social
// links, group and events.
func (d *Backend) hydrate(ctx context.Context, h db.Handler, teamID string, rows []models.Contact) ([]proto.Contact, error) {
	contacts := make([]proto.Contact, 0, len(rows))
	if len(rows) == 0 {
		return contacts, nil
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	attrs, err := d.store.ListAttributes(ctx, h, ids)
	if err != nil {
		return nil, err
	}
	attrsByContact := make(map[string][]attribute.Raw, len(rows))
	for _, row := range attrs {
		if a, ok := attribute.Decode(row); ok {
			attrsByContact[row.ContactID] = append(attrsByContact[row.ContactID], a.Raw())
		}
	}

	links, err := d.store.ListSocialLinks(ctx, h, ids)
	if err != nil {
		return nil, err
	}
	linksByContact := make(map[string][]proto.SocialLink, len(rows))
	for _, l := range links {
		linksByContact[l.ContactID] = append(linksByContact[l.ContactID], proto.SocialLink{Platform: l.Platform, Handle: l.Handle})
	}

	events, err := d.store.ListContactEvents(ctx, h, ids)
	if err != nil {
		return nil, err
	}
	eventsByContact := groupEvents(events)

	groups, err := d.store.ListGroups(ctx, h, teamID)
	if err != nil {
		return nil, err
	}
	groupNames := make(map[string]string, len(groups))
	for _, g := range groups {
		groupNames[g.ID] = g.Name
	}

	for _, r := range rows {
		c := contactFromModel(r)
		if c.GroupID != nil {
			c.Group = &proto.GroupRef{ID: *c.GroupID, Name: groupNames[*c.GroupID]}
		}
		c.ProfileAttributes = nonNil(attrsByContact[r.ID])
		c.SocialLinks = nonNil(linksByContact[r.ID])
		c.Events = nonNil(eventsByContact[r.ID])
		contacts = append(contacts, c)
	}

	return contacts, nil
}

// groupEvents folds role assignments and registrations into one entry per
// contact and event.
func groupEvents(rows []models.ContactEvent) map[string][]proto.ContactEvent {
	out := make(map[string][]proto.ContactEvent)
	index := make(map[[2]string]int)
	for _, r := range rows {
		k := [2]string{r.ContactID, r.EventID}
		i, ok := index[k]
		if !ok {
			i = len(out[r.ContactID])
			index[k] = i
			out[r.ContactID] = append(out[r.ContactID], proto.ContactEvent{
				EventID:  r.EventID,
				Name:     r.EventName,
				StartsAt: timePtr(r.StartsAt),
			})
		}

		ev := &out[r.ContactID][i]
		if r.RoleID.Valid {
			ev.Roles = append(ev.Roles, r.RoleName.String)
		} else {
			ev.Registered = true
		}
	}
	return out
}

func contactFromModel(r models.Contact) proto.Contact {
	return proto.Contact{
		ID:                      r.ID,
		TeamID:                  r.TeamID,
		GroupID:                 strPtr(r.GroupID),
		Name:                    r.Name,
		Pronouns:                strPtr(r.Pronouns),
		Email:                   r.Email,
		Phone:                   strPtr(r.Phone),
		Signal:                  strPtr(r.Signal),
		Website:                 strPtr(r.Website),
		Gender:                  strPtr(r.Gender),
		GenderRequestPreference: strPtr(r.GenderRequestPreference),
		IsBipoc:                 boolPtr(r.IsBipoc),
		RacismRequestPreference: strPtr(r.RacismRequestPreference),
		OtherMargins:            strPtr(r.OtherMargins),
		OnboardingDate:          timePtr(r.OnboardingDate),
		BreakUntil:              timePtr(r.BreakUntil),
		Address:                 strPtr(r.Address),
		PostalCode:              strPtr(r.PostalCode),
		State:                   strPtr(r.State),
		City:                    strPtr(r.City),
		Country:                 strPtr(r.Country),
		CountryCode:             strPtr(r.CountryCode),
		Latitude:                floatPtr(r.Latitude),
		Longitude:               floatPtr(r.Longitude),
		CreatedAt:               r.CreatedAt,
		UpdatedAt:               r.UpdatedAt,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func strPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func boolPtr(b sql.NullBool) *bool {
	if !b.Valid {
		return nil
	}
	return &b.Bool
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	return &f.Float64
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	tt := t.Time.UTC()
	return &tt
}
