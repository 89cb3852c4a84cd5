package store

import (
	"context"

	"github.com/grantflow/grantflow/pkg/db"
	"github.com/grantflow/grantflow/pkg/db/models"
)

// AttributeStore is a store for profile attributes.
type AttributeStore interface {
	ListAttributes(ctx context.Context, h db.Handler, contactIDs []string) ([]models.ProfileAttribute, error)
	CreateAttribute(ctx context.Context, h db.Handler, attr models.ProfileAttribute) error
	UpdateAttribute(ctx context.Context, h db.Handler, attr models.ProfileAttribute) error
	DeleteAttribute(ctx context.Context, h db.Handler, id string) error
}

// SocialLinkStore is a store for social links.
type SocialLinkStore interface {
	ListSocialLinks(ctx context.Context, h db.Handler, contactIDs []string) ([]models.SocialLink, error)
	CreateSocialLinks(ctx context.Context, h db.Handler, links []models.SocialLink) error
	UpdateSocialLink(ctx context.Context, h db.Handler, id, handle string) error
	DeleteSocialLink(ctx context.Context, h db.Handler, id string) error
}
