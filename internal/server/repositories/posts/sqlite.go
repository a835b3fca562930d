package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/powerdown/wikipost/internal/common"
	"github.com/powerdown/wikipost/internal/dbx"
	"github.com/powerdown/wikipost/internal/server/models"
)

// SQLiteRepository implements Repository over a sqlite database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// InitSchema creates the posts table when it does not exist yet.
func InitSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS posts (
  slug TEXT NOT NULL,
  kind TEXT NOT NULL,
  title TEXT NOT NULL,
  payload BLOB NOT NULL,
  created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (kind, slug)
);`)
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// CreateOrUpdate upserts a post by (kind, slug): an update first, falling
// back to an insert when no row matched, both inside one transaction.
func (r *SQLiteRepository) CreateOrUpdate(ctx context.Context, p *models.Post) error {
	return dbx.WithTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx,
			`update posts set title=?, payload=? where kind=? and slug=?`,
			p.Title, p.Payload, p.Kind, p.Slug)
		if err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}
		ra, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if ra > 0 {
			return nil
		}

		_, err = tx.ExecContext(ctx,
			`insert into posts (slug, kind, title, payload) values (?, ?, ?, ?)`,
			p.Slug, p.Kind, p.Title, p.Payload)
		if err != nil {
			return fmt.Errorf("failed to insert post: %w", err)
		}
		return nil
	})
}

// GetBySlug returns a single post or common.ErrorNotFound.
func (r *SQLiteRepository) GetBySlug(ctx context.Context, kind models.PostKind, slug string) (*models.Post, error) {
	query := `select slug, kind, title, payload, created_at from posts where kind=? and slug=?`
	row := r.db.QueryRowContext(ctx, query, kind, slug)

	p := &models.Post{}
	if err := row.Scan(&p.Slug, &p.Kind, &p.Title, &p.Payload, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return p, nil
}

// DeleteBySlug removes a post. It expects exactly one row to be affected.
func (r *SQLiteRepository) DeleteBySlug(ctx context.Context, kind models.PostKind, slug string) error {
	query := `delete from posts where kind=? and slug=?`
	res, err := r.db.ExecContext(ctx, query, kind, slug)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return common.ErrorNotFound
	}
	return nil
}
