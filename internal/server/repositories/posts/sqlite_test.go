package posts

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/powerdown/wikipost/internal/common"
	"github.com/powerdown/wikipost/internal/server/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:poststest?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, InitSchema(context.Background(), db))

	_, err = db.Exec(`DELETE FROM posts`)
	require.NoError(t, err)
	return db
}

func TestCreateOrUpdate(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	p := &models.Post{
		Slug:    "heat-death",
		Kind:    models.PostKindArt,
		Title:   "Heat Death",
		Payload: []byte(`{"step":"2","title":"Heat Death"}`),
	}
	require.NoError(t, repo.CreateOrUpdate(ctx, p))

	got, err := repo.GetBySlug(ctx, models.PostKindArt, "heat-death")
	require.NoError(t, err)
	require.Equal(t, "Heat Death", got.Title)
	require.JSONEq(t, `{"step":"2","title":"Heat Death"}`, string(got.Payload))

	// same (kind, slug) overwrites
	p.Title = "Heat Death, Revised"
	p.Payload = []byte(`{"step":"2","title":"Heat Death, Revised"}`)
	require.NoError(t, repo.CreateOrUpdate(ctx, p))

	got, err = repo.GetBySlug(ctx, models.PostKindArt, "heat-death")
	require.NoError(t, err)
	require.Equal(t, "Heat Death, Revised", got.Title)
}

func TestSlugScopedByKind(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateOrUpdate(ctx, &models.Post{
		Slug: "vess", Kind: models.PostKindArt, Title: "Vess (art)", Payload: []byte(`{}`),
	}))
	require.NoError(t, repo.CreateOrUpdate(ctx, &models.Post{
		Slug: "vess", Kind: models.PostKindCharacter, Title: "Vess", Payload: []byte(`{}`),
	}))

	art, err := repo.GetBySlug(ctx, models.PostKindArt, "vess")
	require.NoError(t, err)
	require.Equal(t, "Vess (art)", art.Title)

	char, err := repo.GetBySlug(ctx, models.PostKindCharacter, "vess")
	require.NoError(t, err)
	require.Equal(t, "Vess", char.Title)
}

func TestGetBySlugNotFound(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)

	_, err := repo.GetBySlug(context.Background(), models.PostKindArt, "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDeleteBySlug(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateOrUpdate(ctx, &models.Post{
		Slug: "old-piece", Kind: models.PostKindArt, Title: "Old", Payload: []byte(`{}`),
	}))

	require.NoError(t, repo.DeleteBySlug(ctx, models.PostKindArt, "old-piece"))

	_, err := repo.GetBySlug(ctx, models.PostKindArt, "old-piece")
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.ErrorIs(t, repo.DeleteBySlug(ctx, models.PostKindArt, "old-piece"), common.ErrorNotFound)
}
