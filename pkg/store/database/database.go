package database

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/grantflow/grantflow/pkg/config"
	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/store"
)

type datastore struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	logger *log.Logger

	*teamStore
	*groupStore
	*accessStore
	*contactStore
	*attributeStore
	*socialLinkStore
	*changeLogStore
	*eventStore
	*postalCodeStore
}

// New returns a new store.Store database.
func New(ctx context.Context, db *db.DB) store.Store {
	cfg := config.FromContext(ctx)
	logger := log.FromContext(ctx).WithPrefix("store")

	s := &datastore{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		logger: logger,

		teamStore:       &teamStore{},
		groupStore:      &groupStore{},
		accessStore:     &accessStore{},
		contactStore:    &contactStore{},
		attributeStore:  &attributeStore{},
		socialLinkStore: &socialLinkStore{},
		changeLogStore:  &changeLogStore{},
		eventStore:      &eventStore{},
		postalCodeStore: &postalCodeStore{},
	}

	return s
}

// newID returns a time ordered unique id.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func now() time.Time {
	return time.Now().UTC()
}
