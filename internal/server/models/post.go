// Package models defines the records the development server persists.
package models

import "time"

// PostKind tells which editor produced a post.
type PostKind string

const (
	PostKindArt       PostKind = "art"
	PostKindCharacter PostKind = "character"
)

// Post is one committed post. Payload keeps the full step-2 JSON body so
// the record round-trips without a column per field.
type Post struct {
	Slug      string
	Kind      PostKind
	Title     string
	Payload   []byte
	CreatedAt time.Time
}
