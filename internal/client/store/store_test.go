package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/powerdown/wikipost/internal/client/models"
)

func TestAddGalleryAppendsInOrder(t *testing.T) {
	s := New()

	a := s.Add(models.RoleGallery, []byte("a"), "image/png")
	b := s.Add(models.RoleGallery, []byte("b"), "image/png")
	c := s.Add(models.RoleGallery, []byte("c"), "image/png")

	g := s.Gallery()
	require.Len(t, g, 3)
	require.Equal(t, []*models.Asset{a, b, c}, g)
	require.Equal(t, 0, a.Position)
	require.Equal(t, 1, b.Position)
	require.Equal(t, 2, c.Position)
}

func TestAddSingletonReplacesInPlace(t *testing.T) {
	s := New()

	first := s.Add(models.RoleThumbnail, []byte("old"), "image/png")
	first.MarkUploaded("https://s3.local/key-1")
	require.False(t, first.IsLocal())

	second := s.Add(models.RoleThumbnail, []byte("new"), "image/jpeg")

	require.Same(t, first, second)
	require.True(t, second.IsLocal())
	require.Empty(t, second.Key)
	require.Equal(t, []byte("new"), second.Bytes)
	require.Equal(t, "image/jpeg", second.ContentType)
	require.Len(t, s.List(models.RoleThumbnail), 1)
}

func TestSeedAttachesUploadedAsset(t *testing.T) {
	s := New()

	thumb := s.Seed(models.RoleThumbnail, "https://s3.local/thumb")
	img := s.Seed(models.RoleGallery, "https://s3.local/img-0")

	require.False(t, thumb.IsLocal())
	require.Equal(t, "https://s3.local/thumb", thumb.Key)
	require.Equal(t, 0, img.Position)
	require.Equal(t, 0, s.CountLocal())
}

func TestReplaceResetsToLocal(t *testing.T) {
	s := New()
	a := s.Seed(models.RoleGallery, "https://s3.local/img-0")

	err := s.Replace(a.ID, []byte("redrawn"), "image/png")
	require.NoError(t, err)
	require.True(t, a.IsLocal())
	require.Empty(t, a.Key)
	require.Equal(t, 1, s.CountLocal())

	err = s.Replace("missing", nil, "")
	require.ErrorIs(t, err, ErrAssetNotFound)
}

func TestPendingLocalOrder(t *testing.T) {
	s := New()

	g0 := s.Add(models.RoleGallery, []byte("g0"), "image/png")
	thumb := s.Add(models.RoleThumbnail, []byte("t"), "image/png")
	g1 := s.Add(models.RoleGallery, []byte("g1"), "image/png")
	logo := s.Add(models.RoleLogo, []byte("l"), "image/png")

	// singletons in fixed role order first, then the gallery sequence
	require.Equal(t, []*models.Asset{thumb, logo, g0, g1}, s.PendingLocal())

	g0.MarkUploaded("https://s3.local/g0")
	require.Equal(t, []*models.Asset{thumb, logo, g1}, s.PendingLocal())
	require.Equal(t, 3, s.CountLocal())
}

func TestOnChangeFires(t *testing.T) {
	s := New()

	var calls int
	s.OnChange(func() { calls++ })

	a := s.Add(models.RoleGallery, []byte("a"), "image/png")
	require.Equal(t, 1, calls)

	require.NoError(t, s.Replace(a.ID, []byte("b"), "image/png"))
	require.Equal(t, 2, calls)
}
