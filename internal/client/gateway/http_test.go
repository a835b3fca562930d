package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/powerdown/wikipost/internal/protocol"
)

func TestRequestUploadGrants(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req protocol.GrantRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, protocol.StepRequestGrants, req.Step)
		require.Equal(t, 3, req.FileAmount)

		json.NewEncoder(w).Encode(protocol.GrantResponse{
			PresignedURLs: []string{"u1", "u2", "u3"},
		})
	}))
	defer srv.Close()

	g := NewHTTPGateway(5 * time.Second)
	urls, err := g.RequestUploadGrants(context.Background(), srv.URL, 3)
	require.NoError(t, err)
	require.Equal(t, []string{"u1", "u2", "u3"}, urls)
}

func TestRequestUploadGrantsCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(protocol.GrantResponse{
			PresignedURLs: []string{"only-one"},
		})
	}))
	defer srv.Close()

	g := NewHTTPGateway(5 * time.Second)
	_, err := g.RequestUploadGrants(context.Background(), srv.URL, 2)
	require.ErrorIs(t, err, ErrGrantCountMismatch)
	require.Contains(t, err.Error(), "requested 2, got 1")
}

func TestServerErrorCarriesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, "thumbnail_key is required")
	}))
	defer srv.Close()

	g := NewHTTPGateway(5 * time.Second)
	_, err := g.CommitMetadata(context.Background(), srv.URL, map[string]string{"step": "2"})

	var se *ServerError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusUnprocessableEntity, se.Status)
	require.Equal(t, "thumbnail_key is required", se.Body)
}

func TestCommitMetadataRedirectIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/art/heat-death")
		w.WriteHeader(http.StatusSeeOther)
	}))
	defer srv.Close()

	g := NewHTTPGateway(5 * time.Second)
	res, err := g.CommitMetadata(context.Background(), srv.URL, map[string]string{"step": "2"})
	require.NoError(t, err)
	require.Equal(t, http.StatusSeeOther, res.Status)
	require.Equal(t, srv.URL+"/art/heat-death", res.RedirectURL)
}

func TestDeleteResource(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	g := NewHTTPGateway(5 * time.Second)
	require.NoError(t, g.DeleteResource(context.Background(), srv.URL))
	require.Equal(t, http.MethodDelete, gotMethod)
}

func TestFetchResource(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"step":"2","title":"Heat Death"}`)
	}))
	defer srv.Close()

	g := NewHTTPGateway(5 * time.Second)
	body, err := g.FetchResource(context.Background(), srv.URL+"/art/heat-death")
	require.NoError(t, err)
	require.Equal(t, http.MethodGet, gotMethod)
	require.JSONEq(t, `{"step":"2","title":"Heat Death"}`, string(body))
}

func TestFetchResourceNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such post", http.StatusNotFound)
	}))
	defer srv.Close()

	g := NewHTTPGateway(5 * time.Second)
	_, err := g.FetchResource(context.Background(), srv.URL+"/art/missing")

	var se *ServerError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusNotFound, se.Status)
}

func TestDeleteResourceNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such post", http.StatusNotFound)
	}))
	defer srv.Close()

	g := NewHTTPGateway(5 * time.Second)
	err := g.DeleteResource(context.Background(), srv.URL)

	var se *ServerError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusNotFound, se.Status)
}
