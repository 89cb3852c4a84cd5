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

// inputClearers remove a field from a new contact.
var inputClearers = map[string]func(*proto.ContactInput){
	access.FieldName:                    func(in *proto.ContactInput) { in.Name = "" },
	access.FieldPronouns:                func(in *proto.ContactInput) { in.Pronouns = "" },
	access.FieldEmail:                   func(in *proto.ContactInput) { in.Email = "" },
	access.FieldPhone:                   func(in *proto.ContactInput) { in.Phone = "" },
	access.FieldSignal:                  func(in *proto.ContactInput) { in.Signal = "" },
	access.FieldWebsite:                 func(in *proto.ContactInput) { in.Website = "" },
	access.FieldGender:                  func(in *proto.ContactInput) { in.Gender = "" },
	access.FieldGenderRequestPreference: func(in *proto.ContactInput) { in.GenderRequestPreference = "" },
	access.FieldIsBipoc:                 func(in *proto.ContactInput) { in.IsBipoc = nil },
	access.FieldRacismRequestPreference: func(in *proto.ContactInput) { in.RacismRequestPreference = "" },
	access.FieldOtherMargins:            func(in *proto.ContactInput) { in.OtherMargins = "" },
	access.FieldOnboardingDate:          func(in *proto.ContactInput) { in.OnboardingDate = "" },
	access.FieldBreakUntil:              func(in *proto.ContactInput) { in.BreakUntil = "" },
	access.FieldAddress:                 func(in *proto.ContactInput) { in.Address = "" },
	access.FieldPostalCode:              func(in *proto.ContactInput) { in.PostalCode = "" },
	access.FieldState:                   func(in *proto.ContactInput) { in.State = "" },
	access.FieldCity:                    func(in *proto.ContactInput) { in.City = "" },
	access.FieldCountry:                 func(in *proto.ContactInput) { in.Country = "" },
	access.FieldCountryCode:             func(in *proto.ContactInput) { in.CountryCode = "" },
	access.FieldGroupID:                 func(in *proto.ContactInput) { in.GroupID = "" },
}

// sanitizeInput drops every field, attribute and social link of in the
// viewer may not write.
func (v viewer) sanitizeInput(in *proto.ContactInput) {
	for field, drop := range inputClearers {
		if !v.canSee(field) {
			drop(in)
		}
	}

	attrs := make([]attribute.Raw, 0, len(in.ProfileAttributes))
	for _, a := range in.ProfileAttributes {
		if v.canSee(access.AttributeField(strings.TrimSpace(a.Key))) {
			attrs = append(attrs, a)
		}
	}
	in.ProfileAttributes = attrs

	links := make([]proto.SocialLink, 0, len(in.SocialLinks))
	for _, l := range in.SocialLinks {
		if v.canSee(access.SocialLinkField(strings.ToLower(strings.TrimSpace(l.Platform)))) {
			links = append(links, l)
		}
	}
	in.SocialLinks = links
}

// newContactRow normalizes a sanitized input into a contact row.
func newContactRow(in proto.ContactInput) (models.Contact, error) {
	c := models.Contact{
		TeamID:                  in.TeamID,
		GroupID:                 text(in.GroupID, asIs),
		Name:                    strings.TrimSpace(in.Name),
		Pronouns:                text(in.Pronouns, asIs),
		Email:                   normalizeEmail(strings.TrimSpace(in.Email)),
		Phone:                   text(in.Phone, asIs),
		Signal:                  text(in.Signal, asIs),
		Website:                 text(in.Website, asIs),
		Gender:                  text(in.Gender, asIs),
		GenderRequestPreference: text(in.GenderRequestPreference, asIs),
		RacismRequestPreference: text(in.RacismRequestPreference, asIs),
		OtherMargins:            text(in.OtherMargins, asIs),
		Address:                 text(in.Address, asIs),
		PostalCode:              text(in.PostalCode, normalizePostalCode),
		State:                   text(in.State, asIs),
		City:                    text(in.City, asIs),
		Country:                 text(in.Country, asIs),
		CountryCode:             text(in.CountryCode, normalizeCountryCode),
	}
	if in.IsBipoc != nil {
		c.IsBipoc = sql.NullBool{Bool: *in.IsBipoc, Valid: true}
	}

	var ok bool
	if c.OnboardingDate, ok = date(in.OnboardingDate); !ok {
		return c, proto.ErrInvalidOnboardingDate
	}
	if c.BreakUntil, ok = date(in.BreakUntil); !ok {
		return c, proto.ErrInvalidBreakUntil
	}

	if c.Name == "" {
		return c, proto.ErrNameRequired
	}
	if c.Email == "" {
		return c, proto.ErrEmailRequired
	}

	return c, nil
}

// CreateContact creates a contact from in on behalf of the caller. Fields
// the caller may not write are dropped. It returns the stored contact
// without applying field access rules.
func (d *Backend) CreateContact(ctx context.Context, in proto.ContactInput, id access.Identity) (proto.Contact, error) {
	if strings.TrimSpace(in.TeamID) == "" {
		return proto.Contact{}, proto.ErrTeamRequired
	}
	in.TeamID = strings.TrimSpace(in.TeamID)

	v, err := d.viewer(ctx, in.TeamID, id)
	if err != nil {
		return proto.Contact{}, err
	}
	v.sanitizeInput(&in)

	row, err := newContactRow(in)
	if err != nil {
		return proto.Contact{}, err
	}

	exists, err := d.store.ContactEmailExists(ctx, d.db, row.TeamID, row.Email, "")
	if err != nil {
		return proto.Contact{}, err
	}
	if exists {
		return proto.Contact{}, proto.ErrDuplicateEmail
	}

	attrs := attribute.Normalize(in.ProfileAttributes)
	links := socialLinks(in.SocialLinks)

	var (
		c   proto.Contact
		uow *unitOfWork
	)
	err = d.db.TransactionContext(ctx, func(tx *db.Tx) error {
		if row.GroupID.Valid {
			if err := d.checkGroup(ctx, tx, row.TeamID, row.GroupID.String); err != nil {
				return err
			}
		}

		country := row.CountryCode.String
		if !row.CountryCode.Valid {
			country = row.Country.String
		}
		lat, lon, err := d.resolveCoordinates(ctx, tx, country, row.PostalCode.String)
		if err != nil {
			return err
		}
		row.Latitude, row.Longitude = lat, lon

		created, err := d.store.CreateContact(ctx, tx, row)
		if err != nil {
			switch {
			case errors.Is(err, db.ErrDuplicateKey):
				return proto.ErrDuplicateEmail
			case errors.Is(err, db.ErrForeignKey):
				return proto.ErrTeamNotFound
			}
			return err
		}

		uow = newUnitOfWork(created.TeamID, created.ID, id)
		for _, a := range attrs {
			uow.attrCreates = append(uow.attrCreates, attribute.Encode(a))
		}
		for _, l := range links {
			uow.linkCreates = append(uow.linkCreates, models.SocialLink{Platform: l.Platform, Handle: l.Handle})
		}
		uow.logContactCreation(created.Name, map[string]any{
			"email":             created.Email,
			"profileAttributes": len(attrs),
			"socialLinks":       len(links),
		})
		if err := uow.commit(ctx, d.store, tx); err != nil {
			return err
		}

		c, err = d.contact(ctx, tx, created.TeamID, created.ID)
		return err
	})
	if err != nil {
		return proto.Contact{}, err
	}

	uow.observe()
	contactsCreatedCounter.Inc()
	return c, nil
}

func (d *Backend) checkGroup(ctx context.Context, h db.Handler, teamID, groupID string) error {
	if _, err := d.store.GetGroupByID(ctx, h, teamID, groupID); err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return proto.ErrGroupNotFound
		}
		return err
	}
	return nil
}
