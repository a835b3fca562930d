// Package protocol defines the JSON wire contract of the two-step posting
// protocol. Both steps are POSTed to the resource's own URL and are told
// apart by the "step" field.
package protocol

// Step values for the two posting phases.
const (
	StepRequestGrants  = "1"
	StepCommitMetadata = "2"
)

// GrantRequest is the step-1 body: the client announces how many files it
// wants to upload and the server answers with exactly that many presigned
// URLs.
type GrantRequest struct {
	Step       string `json:"step"`
	FileAmount int    `json:"file_amount"`
}

// GrantResponse is the step-1 reply.
type GrantResponse struct {
	PresignedURLs []string `json:"presigned_urls"`
}

// ArtPost is the step-2 body for an art gallery entry. ArtKeys preserves the
// gallery order of the post's images.
type ArtPost struct {
	Step         string   `json:"step"`
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	CreationDate string   `json:"creation_date"`
	IsNsfw       bool     `json:"is_nsfw"`
	Creators     []string `json:"creators"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	ThumbnailKey string   `json:"thumbnail_key"`
	ArtKeys      []string `json:"art_keys"`
}

// InfoboxLine is a single "Title: Description" row of a character's infobox.
type InfoboxLine struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CharacterPost is the step-2 body for a character sheet.
type CharacterPost struct {
	Step             string        `json:"step"`
	Name             string        `json:"name"`
	Slug             string        `json:"slug"`
	Subtitles        []string      `json:"subtitles"`
	Creator          string        `json:"creator"`
	IsHidden         bool          `json:"is_hidden"`
	Infobox          []InfoboxLine `json:"infobox"`
	Birthday         string        `json:"birthday,omitempty"`
	LongName         string        `json:"long_name,omitempty"`
	RetirementReason string        `json:"retirement_reason,omitempty"`
	Tag              string        `json:"tag,omitempty"`
	PageContents     string        `json:"page_contents,omitempty"`
	OverlayCss       string        `json:"overlay_css,omitempty"`
	CustomCss        string        `json:"custom_css,omitempty"`
	ThumbnailKey     string        `json:"thumbnail_key"`
	PageImgKey       string        `json:"page_img_key"`
	LogoURL          string        `json:"logo_url,omitempty"`
}
