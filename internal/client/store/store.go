// Package store holds the ordered collection of media assets attached to a
// post under edit, and the ordering operations performed on it before
// submission.
//
// The store is owned by a single editing session and is only mutated from
// that session's flow; it is not safe for concurrent structural mutation.
package store

import (
	"sort"

	"github.com/google/uuid"

	"github.com/powerdown/wikipost/internal/client/models"
)

// Store tracks every asset of a post: the ordered gallery sequence plus the
// optional singleton assets (thumbnail, logo, page image).
type Store struct {
	assets   []*models.Asset
	onChange func()
}

func New() *Store {
	return &Store{}
}

// OnChange registers a notification callback fired after every structural
// mutation. Rendering code hooks in here; the store itself does nothing
// with it.
func (s *Store) OnChange(fn func()) {
	s.onChange = fn
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Add attaches a new local asset. Gallery assets are appended at the end of
// the sequence; for singleton roles the existing asset, if any, is replaced
// in place and any previously recorded key is discarded.
func (s *Store) Add(role models.Role, data []byte, contentType string) *models.Asset {
	if role.Singleton() {
		if existing := s.Singleton(role); existing != nil {
			existing.ResetLocal(data, contentType)
			s.notify()
			return existing
		}
	}

	a := &models.Asset{
		ID:          uuid.NewString(),
		Role:        role,
		State:       models.StateLocal,
		Bytes:       data,
		ContentType: contentType,
	}
	if role == models.RoleGallery {
		a.Position = len(s.Gallery())
	}
	s.assets = append(s.assets, a)
	s.notify()
	return a
}

// Seed attaches an already-uploaded asset, as when an edit session loads a
// post whose media is live on the server. Gallery seeds are appended in
// call order.
func (s *Store) Seed(role models.Role, key string) *models.Asset {
	a := &models.Asset{
		ID:    uuid.NewString(),
		Role:  role,
		State: models.StateUploaded,
		Key:   key,
	}
	if role == models.RoleGallery {
		a.Position = len(s.Gallery())
	}
	s.assets = append(s.assets, a)
	s.notify()
	return a
}

// Replace resets an asset back to the local state with new bytes,
// discarding its previous key. The asset will be uploaded again on the next
// submission.
func (s *Store) Replace(id string, data []byte, contentType string) error {
	a, ok := s.Get(id)
	if !ok {
		return ErrAssetNotFound
	}
	a.ResetLocal(data, contentType)
	s.notify()
	return nil
}

// Get looks an asset up by its session id.
func (s *Store) Get(id string) (*models.Asset, bool) {
	for _, a := range s.assets {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// Singleton returns the asset filling the given singleton role, or nil.
func (s *Store) Singleton(role models.Role) *models.Asset {
	for _, a := range s.assets {
		if a.Role == role {
			return a
		}
	}
	return nil
}

// Gallery returns the gallery assets in position order.
func (s *Store) Gallery() []*models.Asset {
	var out []*models.Asset
	for _, a := range s.assets {
		if a.Role == models.RoleGallery {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// List returns the assets of one role in their canonical order.
func (s *Store) List(role models.Role) []*models.Asset {
	if role == models.RoleGallery {
		return s.Gallery()
	}
	if a := s.Singleton(role); a != nil {
		return []*models.Asset{a}
	}
	return nil
}

// PendingLocal returns the local assets in the fixed counting order used by
// the upload protocol: singleton roles first (thumbnail, logo, page image),
// then gallery assets in position order. Grants are assigned in exactly
// this order.
func (s *Store) PendingLocal() []*models.Asset {
	var out []*models.Asset
	for _, role := range models.SingletonOrder {
		if a := s.Singleton(role); a != nil && a.IsLocal() {
			out = append(out, a)
		}
	}
	for _, a := range s.Gallery() {
		if a.IsLocal() {
			out = append(out, a)
		}
	}
	return out
}

// CountLocal counts the assets still awaiting an upload.
func (s *Store) CountLocal() int {
	return len(s.PendingLocal())
}
