package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/powerdown/wikipost/internal/client/config"
	"github.com/powerdown/wikipost/internal/client/gateway"
	"github.com/powerdown/wikipost/internal/client/models"
	"github.com/powerdown/wikipost/internal/client/services"
	"github.com/powerdown/wikipost/internal/client/store"
	"github.com/powerdown/wikipost/internal/logging"
)

// sessionKind tells which post type the current editing session targets.
type sessionKind string

const (
	sessionNone      sessionKind = ""
	sessionArt       sessionKind = "art"
	sessionCharacter sessionKind = "character"
)

// App is the interactive editing session. One post is assembled at a time:
// its assets live in the store, its fields in the forms, and submission
// runs through the coordinator.
type App struct {
	config *config.Config
	gw     gateway.Gateway
	coord  *services.Coordinator
	logger logging.Logger
	reader *bufio.Reader

	kind          sessionKind
	editSlug      string
	store         *store.Store
	artForm       models.ArtForm
	characterForm models.CharacterForm
}

func NewApp(c *config.Config) *App {
	logger := logging.NewJSONLogger(os.Stderr)
	gw := gateway.NewHTTPGateway(c.HTTPTimeout)

	return &App{
		config: c,
		gw:     gw,
		coord:  services.NewCoordinator(gw, logger),
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) Run(ctx context.Context) {
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) inSession() bool {
	return a.kind != sessionNone
}

// targetURL resolves a submission target relative to the configured server.
// New posts go to /<kind>/new; edit sessions post to the post's own URL.
func (a *App) targetURL() string {
	base := a.config.ServerBaseURL
	switch a.kind {
	case sessionArt:
		if a.editSlug != "" {
			return base + "/art/" + a.editSlug
		}
		return base + "/art/new"
	case sessionCharacter:
		if a.editSlug != "" {
			return base + "/character/" + a.editSlug
		}
		return base + "/character/new"
	}
	return base
}
