package backend

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/grantflow/grantflow/pkg/access"
	"github.com/grantflow/grantflow/pkg/attribute"
	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
	"github.com/grantflow/grantflow/pkg/proto"
)

// UpdateContact applies a partial update on behalf of the caller. Only
// fields present in the update and writable by the caller are touched;
// every change is audited. It returns the stored contact without applying
// field access rules.
func (d *Backend) UpdateContact(ctx context.Context, in proto.ContactUpdate, id access.Identity) (proto.Contact, error) {
	teamID := strings.TrimSpace(in.TeamID)
	contactID := strings.TrimSpace(in.ContactID)
	if teamID == "" {
		return proto.Contact{}, proto.ErrTeamRequired
	}
	if contactID == "" {
		return proto.Contact{}, proto.ErrContactNotFound
	}

	v, err := d.viewer(ctx, teamID, id)
	if err != nil {
		return proto.Contact{}, err
	}

	var (
		c   proto.Contact
		uow *unitOfWork
	)
	err = d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		row, err := d.store.GetContactByID(ctx, tx, teamID, contactID)
		if err != nil {
			if errors.Is(err, db.ErrRecordNotFound) {
				return proto.ErrContactNotFound
			}
			return err
		}
		if !v.canSeeContact(row.GroupID.String) {
			return proto.ErrContactNotFound
		}

		uow = newUnitOfWork(teamID, contactID, id)
		uow.touch = true

		if err := d.stageScalars(ctx, tx, v, uow, row, in); err != nil {
			return err
		}

		if in.SocialLinks.IsSet() {
			links, _ := in.SocialLinks.Get()
			existing, err := d.store.ListSocialLinks(ctx, tx, []string{contactID})
			if err != nil {
				return err
			}
			v.diffSocialLinks(uow, existing, socialLinks(links))
		}

		if in.ProfileAttributes.IsSet() {
			raws, _ := in.ProfileAttributes.Get()
			existing, err := d.store.ListAttributes(ctx, tx, []string{contactID})
			if err != nil {
				return err
			}
			v.diffAttributes(uow, existing, raws)
		}

		if err := uow.commit(ctx, d.store, tx); err != nil {
			return err
		}

		c, err = d.contact(ctx, tx, teamID, contactID)
		return err
	})
	if err != nil {
		return proto.Contact{}, err
	}

	uow.observe()
	contactsUpdatedCounter.Inc()
	return c, nil
}

// scalars stages the changed scalar fields of a contact.
type scalars struct {
	v   viewer
	uow *unitOfWork
}

// writable reports whether a field was sent and may be written.
func (s scalars) writable(field string, sent bool) bool {
	return sent && s.v.canSee(field)
}

func (s scalars) stage(field, column string, value interface{}, before, after *string) {
	if sameValue(before, after) {
		return
	}
	s.uow.logFieldUpdate(changeField, field, before, after)
	s.uow.set(column, value)
}

// text stages a text field and returns its effective value and whether it
// was written.
func (s scalars) text(field, column string, in proto.Optional[string], old sql.NullString, fn normalizer) (sql.NullString, bool) {
	if !s.writable(field, in.IsSet()) {
		return old, false
	}
	raw, _ := in.Get()
	val := text(raw, fn)
	s.stage(field, column, val, showString(old), showString(val))
	return val, true
}

func (s scalars) date(field, column string, in proto.Optional[string], old sql.NullTime, invalid error) error {
	if !s.writable(field, in.IsSet()) {
		return nil
	}
	raw, _ := in.Get()
	val, ok := date(raw)
	if !ok {
		return invalid
	}
	s.stage(field, column, val, showTime(old), showTime(val))
	return nil
}

func (s scalars) boolean(field, column string, in proto.Optional[bool], old sql.NullBool) {
	if !s.writable(field, in.IsSet()) {
		return
	}
	var val sql.NullBool
	if b, ok := in.Get(); ok {
		val = sql.NullBool{Bool: b, Valid: true}
	}
	s.stage(field, column, val, showBool(old), showBool(val))
}

// required stages a field that cannot be cleared.
func (s scalars) required(field, column string, in proto.Optional[string], old string, fn normalizer, missing error) (string, bool, error) {
	if !s.writable(field, in.IsSet()) {
		return old, false, nil
	}
	raw, _ := in.Get()
	val := text(raw, fn)
	if !val.Valid {
		return "", false, missing
	}
	s.stage(field, column, val.String, &old, &val.String)
	return val.String, val.String != old, nil
}

func (d *Backend) stageScalars(ctx context.Context, h db.Handler, v viewer, uow *unitOfWork, row models.Contact, in proto.ContactUpdate) error {
	s := scalars{v: v, uow: uow}

	if _, _, err := s.required(access.FieldName, "name", in.Name, row.Name, asIs, proto.ErrNameRequired); err != nil {
		return err
	}

	email, changed, err := s.required(access.FieldEmail, "email", in.Email, row.Email, normalizeEmail, proto.ErrEmailRequired)
	if err != nil {
		return err
	}
	if changed {
		exists, err := d.store.ContactEmailExists(ctx, h, row.TeamID, email, row.ID)
		if err != nil {
			return err
		}
		if exists {
			return proto.ErrDuplicateEmail
		}
	}

	if group, ok := s.text(access.FieldGroupID, "group_id", in.GroupID, row.GroupID, asIs); ok && group.Valid {
		if err := d.checkGroup(ctx, h, row.TeamID, group.String); err != nil {
			return err
		}
	}

	s.text(access.FieldPronouns, "pronouns", in.Pronouns, row.Pronouns, asIs)
	s.text(access.FieldPhone, "phone", in.Phone, row.Phone, asIs)
	s.text(access.FieldSignal, "signal", in.Signal, row.Signal, asIs)
	s.text(access.FieldWebsite, "website", in.Website, row.Website, asIs)
	s.text(access.FieldGender, "gender", in.Gender, row.Gender, asIs)
	s.text(access.FieldGenderRequestPreference, "gender_request_preference", in.GenderRequestPreference, row.GenderRequestPreference, asIs)
	s.boolean(access.FieldIsBipoc, "is_bipoc", in.IsBipoc, row.IsBipoc)
	s.text(access.FieldRacismRequestPreference, "racism_request_preference", in.RacismRequestPreference, row.RacismRequestPreference, asIs)
	s.text(access.FieldOtherMargins, "other_margins", in.OtherMargins, row.OtherMargins, asIs)

	if err := s.date(access.FieldOnboardingDate, "onboarding_date", in.OnboardingDate, row.OnboardingDate, proto.ErrInvalidOnboardingDate); err != nil {
		return err
	}
	if err := s.date(access.FieldBreakUntil, "break_until", in.BreakUntil, row.BreakUntil, proto.ErrInvalidBreakUntil); err != nil {
		return err
	}

	s.text(access.FieldAddress, "address", in.Address, row.Address, asIs)
	s.text(access.FieldState, "state", in.State, row.State, asIs)
	s.text(access.FieldCity, "city", in.City, row.City, asIs)
	postal, postalSent := s.text(access.FieldPostalCode, "postal_code", in.PostalCode, row.PostalCode, normalizePostalCode)
	country, countrySent := s.text(access.FieldCountry, "country", in.Country, row.Country, asIs)
	code, codeSent := s.text(access.FieldCountryCode, "country_code", in.CountryCode, row.CountryCode, normalizeCountryCode)

	if postalSent || countrySent || codeSent {
		cc := code.String
		if !code.Valid {
			cc = country.String
		}
		lat, lon, err := d.resolveCoordinates(ctx, h, cc, postal.String)
		if err != nil {
			return err
		}
		s.stage(access.FieldLatitude, "latitude", lat, showFloat(row.Latitude), showFloat(lat))
		s.stage(access.FieldLongitude, "longitude", lon, showFloat(row.Longitude), showFloat(lon))
	}

	return nil
}

// diffSocialLinks stages the link changes turning existing into links.
// Links of platforms the viewer may not write are kept as they are.
func (v viewer) diffSocialLinks(uow *unitOfWork, existing []models.SocialLink, links []proto.SocialLink) {
	wanted := make(map[string]string, len(links))
	for _, l := range links {
		if v.canSee(access.SocialLinkField(l.Platform)) {
			wanted[l.Platform] = l.Handle
		}
	}

	current := make(map[string]models.SocialLink, len(existing))
	for _, e := range existing {
		current[e.Platform] = e
		if !v.canSee(access.SocialLinkField(e.Platform)) {
			continue
		}
		if _, ok := wanted[e.Platform]; !ok {
			old := e.Handle
			uow.logFieldUpdate(changeSocialLink, access.SocialLinkField(e.Platform), &old, nil)
			uow.linkDeletes = append(uow.linkDeletes, e.ID)
		}
	}

	for _, l := range links {
		handle, ok := wanted[l.Platform]
		if !ok {
			continue
		}
		field := access.SocialLinkField(l.Platform)
		e, exists := current[l.Platform]
		switch {
		case !exists:
			uow.logFieldUpdate(changeSocialLink, field, nil, &handle)
			uow.linkCreates = append(uow.linkCreates, models.SocialLink{Platform: l.Platform, Handle: handle})
		case e.Handle != handle:
			old := e.Handle
			uow.logFieldUpdate(changeSocialLink, field, &old, &handle)
			uow.linkUpdates = append(uow.linkUpdates, models.SocialLink{ID: e.ID, Handle: handle})
		}
	}
}

// diffAttributes stages the attribute changes turning existing into the
// normalized raws. Attributes the viewer may not write are kept as they
// are.
func (v viewer) diffAttributes(uow *unitOfWork, existing []models.ProfileAttribute, raws []attribute.Raw) {
	var attrs []attribute.Attribute
	for _, a := range attribute.Normalize(raws) {
		if v.canSee(access.AttributeField(a.Key)) {
			attrs = append(attrs, a)
		}
	}
	wanted := make(map[string]attribute.Attribute, len(attrs))
	for _, a := range attrs {
		wanted[a.Key] = a
	}

	current := make(map[string]models.ProfileAttribute, len(existing))
	for _, row := range existing {
		current[row.Key] = row
		field := access.AttributeField(row.Key)
		if !v.canSee(field) {
			continue
		}
		if _, ok := wanted[row.Key]; !ok {
			uow.logFieldUpdate(changeAttribute, field, showAttribute(row), nil)
			uow.attrDeletes = append(uow.attrDeletes, row.ID)
		}
	}

	for _, a := range attrs {
		field := access.AttributeField(a.Key)
		display := a.Display()
		row, exists := current[a.Key]
		if !exists {
			uow.logFieldUpdate(changeAttribute, field, nil, &display)
			uow.attrCreates = append(uow.attrCreates, attribute.Encode(a))
			continue
		}

		if old, ok := attribute.Decode(row); ok && old.Equal(a) {
			continue
		}
		uow.logFieldUpdate(changeAttribute, field, showAttribute(row), &display)
		enc := attribute.Encode(a)
		enc.ID = row.ID
		enc.ContactID = row.ContactID
		uow.attrUpdates = append(uow.attrUpdates, enc)
	}
}

func showAttribute(row models.ProfileAttribute) *string {
	if a, ok := attribute.Decode(row); ok {
		s := a.Display()
		return &s
	}
	return showString(row.StringValue)
}
