// Package httpapi implements the wiki's posting endpoints: the two-step
// JSON protocol for creating posts and the DELETE route for removing them.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/powerdown/wikipost/internal/logging"
	"github.com/powerdown/wikipost/internal/server/config"
	"github.com/powerdown/wikipost/internal/server/models"
	"github.com/powerdown/wikipost/internal/server/repositories/posts"
)

// GrantIssuer hands out presigned upload URLs. The grants.Service satisfies
// this; tests provide a stub.
type GrantIssuer interface {
	IssuePutGrants(ctx context.Context, count int) ([]string, error)
}

// Server routes posting-protocol requests.
type Server struct {
	cfg        *config.Config
	logger     logging.Logger
	issuer     GrantIssuer
	repo       posts.Repository
	router     chi.Router
	httpServer *http.Server
}

func New(cfg *config.Config, logger logging.Logger, issuer GrantIssuer, repo posts.Repository) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger,
		issuer: issuer,
		repo:   repo,
	}

	// Edits POST to the post's own URL; both paths share the step dispatch
	// since step-2 commits upsert by (kind, slug).
	r := chi.NewRouter()
	r.Post("/art/new", s.handlePost(models.PostKindArt))
	r.Post("/character/new", s.handlePost(models.PostKindCharacter))
	r.Post("/art/{slug}", s.handlePost(models.PostKindArt))
	r.Post("/character/{slug}", s.handlePost(models.PostKindCharacter))
	r.Get("/art/{slug}", s.handleGet(models.PostKindArt))
	r.Get("/character/{slug}", s.handleGet(models.PostKindCharacter))
	r.Delete("/art/{slug}", s.handleDelete(models.PostKindArt))
	r.Delete("/character/{slug}", s.handleDelete(models.PostKindCharacter))
	s.router = r

	return s
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.cfg.EndpointAddr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.cfg.EndpointAddr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.httpServer.Shutdown(context.Background())
	}
}
