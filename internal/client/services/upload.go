package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/powerdown/wikipost/internal/client/gateway"
	"github.com/powerdown/wikipost/internal/client/store"
	"github.com/powerdown/wikipost/internal/common"
	"github.com/powerdown/wikipost/internal/logging"
	"github.com/powerdown/wikipost/internal/netx"
)

// State is the coordinator's position in the submission flow.
type State string

const (
	StateIdle               State = "idle"
	StateRequestingGrants   State = "requesting_grants"
	StateUploadingAssets    State = "uploading_assets"
	StateCommittingMetadata State = "committing_metadata"
	StateDone               State = "done"
	StateFailed             State = "failed"
)

// StorageWriter performs one direct object-storage write. Tests substitute
// a fake; the default PUTs to the presigned URL.
type StorageWriter func(ctx context.Context, url string, data []byte, contentType string) error

// Coordinator runs the two-phase submission: counts pending local assets,
// trades the count for upload grants, fans the writes out to object storage
// behind a barrier, then commits the metadata referencing the resulting
// keys. One submission may be in flight at a time.
type Coordinator struct {
	gw      gateway.Gateway
	writer  StorageWriter
	logger  logging.Logger
	state   State
	lastErr error

	inFlight atomic.Bool
}

func NewCoordinator(gw gateway.Gateway, logger logging.Logger) *Coordinator {
	client := &http.Client{}
	return &Coordinator{
		gw:     gw,
		logger: logger,
		state:  StateIdle,
		writer: func(ctx context.Context, url string, data []byte, contentType string) error {
			return netx.UploadToPresignedURL(ctx, client, url, data, contentType)
		},
	}
}

// SetStorageWriter overrides the object-storage write. Intended for tests.
func (c *Coordinator) SetStorageWriter(w StorageWriter) {
	c.writer = w
}

// State returns the coordinator's current state.
func (c *Coordinator) State() State {
	return c.state
}

// Err returns the reason for the failed state, if any.
func (c *Coordinator) Err() error {
	return c.lastErr
}

func (c *Coordinator) transition(ctx context.Context, next State) {
	c.state = next
	c.logger.Debug(ctx, "submission state", "state", string(next))
}

func (c *Coordinator) fail(ctx context.Context, err error) error {
	c.state = StateFailed
	c.lastErr = err
	c.logger.Error(ctx, "submission failed", "error", err.Error())
	return err
}

// Submit runs one full submission of the store's assets plus the draft's
// metadata against targetURL. On success the returned result may carry a
// redirect URL the caller should navigate to.
//
// Failure semantics: validation and grant-phase errors leave every asset
// untouched; a failed storage write fails the submission but assets whose
// writes succeeded stay uploaded, so a retry will not re-send their bytes.
// A failed metadata commit likewise keeps assets uploaded.
func (c *Coordinator) Submit(ctx context.Context, targetURL string, st *store.Store, draft Draft) (*gateway.CommitResult, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, common.ErrorSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	c.lastErr = nil

	// Everything local is checked before the first network call. A
	// validation failure aborts while still idle; it is not a submission
	// failure.
	if err := draft.Validate(); err != nil {
		c.logger.Warn(ctx, "submission rejected", "error", err.Error())
		return nil, err
	}

	c.transition(ctx, StateRequestingGrants)

	// Singleton roles first, then gallery in position order. Grants are
	// consumed in this same order below.
	pending := st.PendingLocal()

	c.logger.Info(ctx, "requesting upload grants", "count", len(pending), "url", targetURL)

	grants, err := c.gw.RequestUploadGrants(ctx, targetURL, len(pending))
	if err != nil {
		// No asset state has been mutated up to this point.
		return nil, c.fail(ctx, err)
	}

	c.transition(ctx, StateUploadingAssets)

	// One concurrent write per local asset, joined at a barrier: every
	// write settles before any state transition happens.
	writeErrs := make([]error, len(pending))
	var g errgroup.Group
	for i, asset := range pending {
		g.Go(func() error {
			writeErrs[i] = c.writer(ctx, grants[i], asset.Bytes, asset.ContentType)
			return nil
		})
	}
	_ = g.Wait()

	var failed []error
	for i, asset := range pending {
		if writeErrs[i] != nil {
			failed = append(failed, fmt.Errorf("upload of %s asset %s: %w", asset.Role, asset.ID, writeErrs[i]))
			continue
		}
		// The grant URL doubles as the asset's storage key.
		asset.MarkUploaded(grants[i])
	}
	if len(failed) > 0 {
		return nil, c.fail(ctx, errors.Join(failed...))
	}

	c.transition(ctx, StateCommittingMetadata)

	payload, err := draft.Payload()
	if err != nil {
		return nil, c.fail(ctx, err)
	}

	result, err := c.gw.CommitMetadata(ctx, targetURL, payload)
	if err != nil {
		// Uploaded assets keep their keys: the storage writes already
		// succeeded and must not be repeated on retry.
		return nil, c.fail(ctx, err)
	}

	c.transition(ctx, StateDone)
	c.logger.Info(ctx, "submission complete", "status", result.Status, "redirect", result.RedirectURL)
	return result, nil
}

// Delete removes the post at targetURL. The confirm function is asked twice
// and both answers must be yes; otherwise nothing is sent.
func (c *Coordinator) Delete(ctx context.Context, targetURL string, confirm store.Confirmer) (bool, error) {
	if !confirm("Are you SURE you want to DELETE THIS POST? This CANNOT be undone!") {
		return false, nil
	}
	if !confirm("Again, CANNOT BE UNDONE. Everything will be gone. You sure?") {
		return false, nil
	}

	if err := c.gw.DeleteResource(ctx, targetURL); err != nil {
		return false, err
	}
	return true, nil
}
