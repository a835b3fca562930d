package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/powerdown/wikipost/internal/common"
	"github.com/powerdown/wikipost/internal/protocol"
	"github.com/powerdown/wikipost/internal/server/models"
)

// stepEnvelope peeks at the step discriminator before the body is decoded
// into the full request type.
type stepEnvelope struct {
	Step string `json:"step"`
}

func (s *Server) handlePost(kind models.PostKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			httpError(w, http.StatusBadRequest, "cannot read request body")
			return
		}

		var env stepEnvelope
		if err := json.Unmarshal(body, &env); err != nil {
			httpError(w, http.StatusBadRequest, "malformed JSON body")
			return
		}

		switch env.Step {
		case protocol.StepRequestGrants:
			s.issueGrants(w, r, body)
		case protocol.StepCommitMetadata:
			s.commitPost(w, r, kind, body)
		default:
			httpError(w, http.StatusBadRequest, fmt.Sprintf("unknown step %q", env.Step))
		}
	}
}

func (s *Server) issueGrants(w http.ResponseWriter, r *http.Request, body []byte) {
	var req protocol.GrantRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpError(w, http.StatusBadRequest, "malformed grant request")
		return
	}
	if req.FileAmount < 0 || req.FileAmount > s.cfg.MaxFilesPerPost {
		httpError(w, http.StatusBadRequest,
			fmt.Sprintf("file_amount must be between 0 and %d", s.cfg.MaxFilesPerPost))
		return
	}

	urls, err := s.issuer.IssuePutGrants(r.Context(), req.FileAmount)
	if err != nil {
		s.logger.Error(r.Context(), "issuing upload grants", "error", err)
		httpError(w, http.StatusInternalServerError, "cannot issue upload grants")
		return
	}

	writeJSON(w, http.StatusOK, &protocol.GrantResponse{PresignedURLs: urls})
}

func (s *Server) commitPost(w http.ResponseWriter, r *http.Request, kind models.PostKind, body []byte) {
	slug, title, err := decodeCommit(kind, body)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	post := &models.Post{
		Slug:      slug,
		Kind:      kind,
		Title:     title,
		Payload:   body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateOrUpdate(r.Context(), post); err != nil {
		s.logger.Error(r.Context(), "saving post", "kind", kind, "slug", slug, "error", err)
		httpError(w, http.StatusInternalServerError, "cannot save post")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/%s/%s", kind, slug))
	w.WriteHeader(http.StatusSeeOther)
}

// decodeCommit validates the step-2 body for the given kind and returns
// the post's slug and display title.
func decodeCommit(kind models.PostKind, body []byte) (slug, title string, err error) {
	switch kind {
	case models.PostKindArt:
		var p protocol.ArtPost
		if err := json.Unmarshal(body, &p); err != nil {
			return "", "", errors.New("malformed art post")
		}
		if p.Title == "" || p.Slug == "" {
			return "", "", errors.New("title and slug are required")
		}
		if p.ThumbnailKey == "" {
			return "", "", errors.New("thumbnail_key is required")
		}
		if len(p.Creators) == 0 {
			return "", "", errors.New("at least one creator is required")
		}
		return p.Slug, p.Title, nil
	case models.PostKindCharacter:
		var p protocol.CharacterPost
		if err := json.Unmarshal(body, &p); err != nil {
			return "", "", errors.New("malformed character post")
		}
		if p.Name == "" || p.Slug == "" {
			return "", "", errors.New("name and slug are required")
		}
		if p.ThumbnailKey == "" || p.PageImgKey == "" {
			return "", "", errors.New("thumbnail_key and page_img_key are required")
		}
		return p.Slug, p.Name, nil
	default:
		return "", "", fmt.Errorf("unsupported post kind %q", kind)
	}
}

// handleGet serves the stored commit payload back to the client, which
// uses it to seed an edit session.
func (s *Server) handleGet(kind models.PostKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		post, err := s.repo.GetBySlug(r.Context(), kind, slug)
		if errors.Is(err, common.ErrorNotFound) {
			httpError(w, http.StatusNotFound, fmt.Sprintf("no %s post %q", kind, slug))
			return
		}
		if err != nil {
			s.logger.Error(r.Context(), "loading post", "kind", kind, "slug", slug, "error", err)
			httpError(w, http.StatusInternalServerError, "cannot load post")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(post.Payload)
	}
}

func (s *Server) handleDelete(kind models.PostKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		err := s.repo.DeleteBySlug(r.Context(), kind, slug)
		if errors.Is(err, common.ErrorNotFound) {
			httpError(w, http.StatusNotFound, fmt.Sprintf("no %s post %q", kind, slug))
			return
		}
		if err != nil {
			s.logger.Error(r.Context(), "deleting post", "kind", kind, "slug", slug, "error", err)
			httpError(w, http.StatusInternalServerError, "cannot delete post")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func httpError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintln(w, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
