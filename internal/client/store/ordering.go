package store

import (
	"errors"

	"github.com/powerdown/wikipost/internal/client/models"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrNotGallery    = errors.New("asset is not a gallery image")
)

// Confirmer answers a destructive-action prompt. Removal asks twice and
// aborts unless both answers are yes.
type Confirmer func(prompt string) bool

// Move shifts a gallery asset by delta positions. The target position is
// clamped to [0, n-1]; when it equals the current position the call is a
// no-op. The move is a pairwise swap with the asset currently at the target
// position, not an insert-and-shift of the range in between.
func (s *Store) Move(id string, delta int) error {
	a, ok := s.Get(id)
	if !ok {
		return ErrAssetNotFound
	}
	if a.Role.Singleton() {
		return ErrNotGallery
	}

	gallery := s.Gallery()
	target := a.Position + delta
	if target < 0 {
		target = 0
	}
	if target > len(gallery)-1 {
		target = len(gallery) - 1
	}
	if target == a.Position {
		return nil
	}

	gallery[target].Position, a.Position = a.Position, target
	s.notify()
	return nil
}

// Remove deletes an asset after two sequential confirmations. It reports
// whether the removal actually happened. Remaining gallery assets are
// renumbered so positions stay dense and order-preserving.
func (s *Store) Remove(id string, confirm Confirmer) (bool, error) {
	a, ok := s.Get(id)
	if !ok {
		return false, ErrAssetNotFound
	}

	if !confirm("Are you SURE you want to remove this image? This cannot be undone!") {
		return false, nil
	}
	if !confirm("Again, it cannot be undone. You sure?") {
		return false, nil
	}

	for i, candidate := range s.assets {
		if candidate.ID == a.ID {
			s.assets = append(s.assets[:i], s.assets[i+1:]...)
			break
		}
	}

	if a.Role == models.RoleGallery {
		for i, g := range s.Gallery() {
			g.Position = i
		}
	}

	s.notify()
	return true, nil
}
