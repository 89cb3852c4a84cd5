// Package backend implements the contact engine: access aware queries,
// transactional mutations with field level auditing, and the team, group
// and reference data operations around them.
package backend

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/grantflow/grantflow/pkg/cache"
	"github.com/grantflow/grantflow/pkg/config"
	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/store"
)

// Backend is the grantflow backend that handles contacts, their access
// rules and the reference data they depend on.
type Backend struct {
	ctx    context.Context
	cfg    *config.Config
	db     *db.DB
	store  store.Store
	cache  cache.Cache
	logger *log.Logger
}

// New returns a new grantflow backend. A nil cache disables caching of
// field access maps.
func New(ctx context.Context, cfg *config.Config, db *db.DB, st store.Store, c cache.Cache) *Backend {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	logger := log.FromContext(ctx).WithPrefix("backend")
	return &Backend{
		ctx:    ctx,
		cfg:    cfg,
		db:     db,
		store:  st,
		cache:  c,
		logger: logger,
	}
}

// DB returns the database handle of the backend.
func (d *Backend) DB() *db.DB {
	return d.db
}

// Store returns the store of the backend.
func (d *Backend) Store() store.Store {
	return d.store
}
