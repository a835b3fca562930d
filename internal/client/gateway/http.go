package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/powerdown/wikipost/internal/protocol"
)

// HTTPGateway talks the two-step JSON protocol over plain HTTP. Redirects
// are not followed: a 3xx on commit is a success signal whose Location
// header points at the new resource.
type HTTPGateway struct {
	client *http.Client
}

func NewHTTPGateway(timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (g *HTTPGateway) postJSON(ctx context.Context, url string, body any) (*http.Response, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return g.client.Do(req)
}

// checkStatus converts a 4xx/5xx response into a *ServerError with the
// body read out.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 400 && resp.StatusCode < 600 {
		b, _ := io.ReadAll(resp.Body)
		return &ServerError{Status: resp.StatusCode, Body: string(b)}
	}
	return nil
}

func (g *HTTPGateway) RequestUploadGrants(ctx context.Context, targetURL string, count int) ([]string, error) {
	resp, err := g.postJSON(ctx, targetURL, protocol.GrantRequest{
		Step:       protocol.StepRequestGrants,
		FileAmount: count,
	})
	if err != nil {
		return nil, fmt.Errorf("grant request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var grants protocol.GrantResponse
	if err := json.NewDecoder(resp.Body).Decode(&grants); err != nil {
		return nil, fmt.Errorf("decode grant response: %w", err)
	}

	if len(grants.PresignedURLs) != count {
		return nil, fmt.Errorf("%w: requested %d, got %d",
			ErrGrantCountMismatch, count, len(grants.PresignedURLs))
	}

	return grants.PresignedURLs, nil
}

func (g *HTTPGateway) CommitMetadata(ctx context.Context, targetURL string, payload any) (*CommitResult, error) {
	resp, err := g.postJSON(ctx, targetURL, payload)
	if err != nil {
		return nil, fmt.Errorf("metadata commit: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	result := &CommitResult{Status: resp.StatusCode}
	if loc, err := resp.Location(); err == nil {
		result.RedirectURL = loc.String()
	}
	return result, nil
}

func (g *HTTPGateway) FetchResource(ctx context.Context, targetURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read resource: %w", err)
	}
	return body, nil
}

func (g *HTTPGateway) DeleteResource(ctx context.Context, targetURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, targetURL, nil)
	if err != nil {
		return err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}
