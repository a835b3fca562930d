// Package models defines the editing-session types: media assets with their
// local/remote status and the raw form field sets for each post kind.
package models

// Role classifies what an asset is for within a post. Gallery assets form an
// ordered sequence; every other role holds at most one asset per post.
type Role string

const (
	RoleGallery   Role = "gallery"
	RoleThumbnail Role = "thumbnail"
	RoleLogo      Role = "logo"
	RolePageImage Role = "page_image"
)

// SingletonOrder is the fixed order in which singleton assets are counted
// and assigned upload grants, ahead of gallery assets.
var SingletonOrder = []Role{RoleThumbnail, RoleLogo, RolePageImage}

// Singleton reports whether at most one asset of this role may exist.
func (r Role) Singleton() bool {
	return r != RoleGallery
}

// State tells whether an asset's bytes are still local to the session or
// already durably stored under a remote key.
type State string

const (
	StateLocal    State = "local"
	StateUploaded State = "uploaded"
)

// Asset is one media file attached to a post under edit. A local asset
// carries raw bytes and a content type; an uploaded asset carries the remote
// key instead. It is never both.
type Asset struct {
	ID          string
	Role        Role
	State       State
	Bytes       []byte
	ContentType string
	Key         string

	// Position within the gallery sequence, dense 0..n-1.
	// Meaningful for RoleGallery only.
	Position int
}

// IsLocal reports whether the asset still awaits an upload.
func (a *Asset) IsLocal() bool {
	return a.State == StateLocal
}

// MarkUploaded transitions the asset to the uploaded state, recording the
// remote key and dropping the local payload.
func (a *Asset) MarkUploaded(key string) {
	a.State = StateUploaded
	a.Key = key
	a.Bytes = nil
	a.ContentType = ""
}

// ResetLocal puts the asset back into the local state with a fresh payload,
// discarding any previously recorded key.
func (a *Asset) ResetLocal(data []byte, contentType string) {
	a.State = StateLocal
	a.Bytes = data
	a.ContentType = contentType
	a.Key = ""
}
