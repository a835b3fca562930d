// Package gateway abstracts the two-step JSON exchange with the wiki
// backend: phase 1 trades a file count for upload grants, phase 2 commits
// the post metadata referencing the uploaded keys.
package gateway

import "context"

// CommitResult reports a successful phase-2 commit. RedirectURL, when set,
// is the canonical URL of the created or updated resource and signals
// durable persistence.
type CommitResult struct {
	Status      int
	RedirectURL string
}

// Gateway is the client's view of the backend. Implementations return a
// *ServerError for any 4xx/5xx response, carrying the status and body
// verbatim.
type Gateway interface {
	// RequestUploadGrants performs step 1. The returned slice always has
	// exactly count entries; a server answering with any other number is a
	// protocol error.
	RequestUploadGrants(ctx context.Context, targetURL string, count int) ([]string, error)

	// CommitMetadata performs step 2 with the assembled post payload.
	CommitMetadata(ctx context.Context, targetURL string, payload any) (*CommitResult, error)

	// DeleteResource issues a DELETE for the post. Confirmation prompting
	// happens upstream.
	DeleteResource(ctx context.Context, targetURL string) error

	// FetchResource retrieves the current payload of an existing post, as
	// stored by the last commit. Used to seed an edit session.
	FetchResource(ctx context.Context, targetURL string) ([]byte, error)
}
