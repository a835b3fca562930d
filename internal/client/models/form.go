package models

// ArtForm holds the raw editable fields of an art gallery entry, exactly as
// the user typed them. Multi-value fields stay delimiter-separated here;
// splitting and validation happen during assembly.
type ArtForm struct {
	Title        string
	Slug         string
	CreationDate string
	IsNsfw       bool
	Creators     string // comma-separated
	Description  string
	Tags         string // comma-separated
}

// CharacterForm holds the raw editable fields of a character sheet.
type CharacterForm struct {
	Name             string
	Slug             string
	Subtitles        string // newline-separated
	Creator          string
	IsHidden         bool
	Infobox          string // newline-separated "Title: Description" rows
	Birthday         string
	LongName         string
	RetirementReason string
	Tag              string
	PageContents     string
	OverlayCss       string
	CustomCss        string
}
