// Package posts persists committed posts in sqlite.
package posts

import (
	"context"

	"github.com/powerdown/wikipost/internal/server/models"
)

// Repository stores committed posts keyed by (kind, slug).
type Repository interface {
	CreateOrUpdate(ctx context.Context, p *models.Post) error
	GetBySlug(ctx context.Context, kind models.PostKind, slug string) (*models.Post, error)
	DeleteBySlug(ctx context.Context, kind models.PostKind, slug string) error
}
