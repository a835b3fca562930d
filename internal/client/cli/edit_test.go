package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/powerdown/wikipost/internal/client/config"
	"github.com/powerdown/wikipost/internal/client/gateway"
	"github.com/powerdown/wikipost/internal/client/models"
	"github.com/powerdown/wikipost/internal/client/services"
	"github.com/powerdown/wikipost/internal/logging"
)

// fetchStubGateway serves a canned resource body; the other protocol calls
// are not exercised by edit sessions.
type fetchStubGateway struct {
	body []byte
	err  error
	urls []string
}

func (f *fetchStubGateway) RequestUploadGrants(ctx context.Context, targetURL string, count int) ([]string, error) {
	return nil, errors.New("not used")
}

func (f *fetchStubGateway) CommitMetadata(ctx context.Context, targetURL string, payload any) (*gateway.CommitResult, error) {
	return nil, errors.New("not used")
}

func (f *fetchStubGateway) DeleteResource(ctx context.Context, targetURL string) error {
	return errors.New("not used")
}

func (f *fetchStubGateway) FetchResource(ctx context.Context, targetURL string) ([]byte, error) {
	f.urls = append(f.urls, targetURL)
	if f.err != nil {
		return nil, f.err
	}
	return f.body, nil
}

func newEditApp(gw gateway.Gateway) *App {
	logger := logging.NewJSONLogger(io.Discard)
	return &App{
		config: &config.Config{ServerBaseURL: "http://wiki.local"},
		gw:     gw,
		coord:  services.NewCoordinator(gw, logger),
		logger: logger,
		reader: bufio.NewReader(strings.NewReader("")),
	}
}

func TestEditArtSeedsSessionFromServer(t *testing.T) {
	gw := &fetchStubGateway{body: []byte(`{
		"step": "2",
		"title": "Heat Death",
		"slug": "heat-death",
		"creation_date": "2024-11-02",
		"is_nsfw": true,
		"creators": ["ada", "grace"],
		"description": "a study in entropy",
		"tags": ["space", "ruins"],
		"thumbnail_key": "media/thumb",
		"art_keys": ["media/a", "media/b"]
	}`)}
	a := newEditApp(gw)

	a.Edit(context.Background(), []string{"art", "heat-death"})

	require.Equal(t, []string{"http://wiki.local/art/heat-death"}, gw.urls)
	require.Equal(t, sessionArt, a.kind)
	require.Equal(t, "http://wiki.local/art/heat-death", a.targetURL())

	require.Equal(t, "Heat Death", a.artForm.Title)
	require.Equal(t, "ada, grace", a.artForm.Creators)
	require.Equal(t, "space, ruins", a.artForm.Tags)
	require.True(t, a.artForm.IsNsfw)

	thumb := a.store.Singleton(models.RoleThumbnail)
	require.NotNil(t, thumb)
	require.Equal(t, models.StateUploaded, thumb.State)
	require.Equal(t, "media/thumb", thumb.Key)

	gallery := a.store.Gallery()
	require.Len(t, gallery, 2)
	require.Equal(t, "media/a", gallery[0].Key)
	require.Equal(t, "media/b", gallery[1].Key)
	require.Zero(t, a.store.CountLocal())
}

func TestEditCharacterSeedsSingletons(t *testing.T) {
	gw := &fetchStubGateway{body: []byte(`{
		"step": "2",
		"name": "Vesna",
		"slug": "vesna",
		"subtitles": ["the gardener", "keeper of spring"],
		"creator": "ada",
		"is_hidden": false,
		"infobox": [
			{"title": "Species", "description": "dryad"},
			{"title": "Height", "description": "168 cm"}
		],
		"thumbnail_key": "media/thumb",
		"page_img_key": "media/page",
		"logo_url": "media/logo"
	}`)}
	a := newEditApp(gw)

	a.Edit(context.Background(), []string{"character", "vesna"})

	require.Equal(t, sessionCharacter, a.kind)
	require.Equal(t, "http://wiki.local/character/vesna", a.targetURL())

	require.Equal(t, "Vesna", a.characterForm.Name)
	require.Equal(t, "the gardener\nkeeper of spring", a.characterForm.Subtitles)
	require.Equal(t, "Species: dryad\nHeight: 168 cm", a.characterForm.Infobox)

	require.Equal(t, "media/page", a.store.Singleton(models.RolePageImage).Key)
	require.Equal(t, "media/logo", a.store.Singleton(models.RoleLogo).Key)
	require.Zero(t, a.store.CountLocal())
}

func TestEditFetchFailureLeavesNoSession(t *testing.T) {
	gw := &fetchStubGateway{err: &gateway.ServerError{Status: 404, Body: "no such post"}}
	a := newEditApp(gw)

	a.Edit(context.Background(), []string{"art", "ghost"})

	require.False(t, a.inSession())
	require.Nil(t, a.store)
}

func TestEditSlugResetOnNewSession(t *testing.T) {
	gw := &fetchStubGateway{body: []byte(`{
		"step": "2",
		"title": "Heat Death",
		"slug": "heat-death",
		"creators": ["ada"],
		"thumbnail_key": "media/thumb",
		"art_keys": []
	}`)}
	a := newEditApp(gw)
	a.Edit(context.Background(), []string{"art", "heat-death"})
	require.Equal(t, "http://wiki.local/art/heat-death", a.targetURL())

	// Starting a fresh session must stop posting to the old URL.
	a.kind = sessionArt
	a.editSlug = ""
	require.Equal(t, "http://wiki.local/art/new", a.targetURL())
}
