// Package services drives a post submission: assembling the validated
// metadata payload and running the two-phase upload protocol against the
// backend.
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/powerdown/wikipost/internal/client/models"
	"github.com/powerdown/wikipost/internal/client/store"
	"github.com/powerdown/wikipost/internal/common"
	"github.com/powerdown/wikipost/internal/protocol"
)

// ValidationError is a local field problem caught before any network call.
// The message is shown to the user as-is and the submission is aborted with
// no state mutated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return common.ErrorValidation
}

// Draft is a validated field set whose asset keys get resolved during
// submission. Validate runs before phase 1; Payload runs after the upload
// barrier, once every asset in the store carries a key.
type Draft interface {
	Validate() error
	Payload() (any, error)
}

// DeriveSlug builds a URL slug from a title: lower-cased, spaces replaced
// by hyphens.
func DeriveSlug(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}

// SplitList splits a delimiter-separated field into trimmed, non-empty
// tokens, preserving order.
func SplitList(raw, sep string) []string {
	var out []string
	for _, tok := range strings.Split(raw, sep) {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// ParseInfobox parses newline-separated "Title: Description" rows. Blank
// lines are skipped.
func ParseInfobox(raw string) ([]protocol.InfoboxLine, error) {
	var out []protocol.InfoboxLine
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		title, desc, ok := strings.Cut(line, ":")
		if !ok {
			return nil, &ValidationError{Field: "infobox", Reason: fmt.Sprintf("line %q is not in Title: Description form", line)}
		}
		out = append(out, protocol.InfoboxLine{
			Title:       strings.TrimSpace(title),
			Description: strings.TrimSpace(desc),
		})
	}
	return out, nil
}

// ArtDraft assembles the step-2 payload for an art gallery entry.
type ArtDraft struct {
	form  models.ArtForm
	store *store.Store
}

func NewArtDraft(form models.ArtForm, st *store.Store) *ArtDraft {
	return &ArtDraft{form: form, store: st}
}

func (d *ArtDraft) Validate() error {
	if strings.TrimSpace(d.form.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if _, err := time.Parse("2006-01-02", d.form.CreationDate); err != nil {
		return &ValidationError{Field: "creation_date", Reason: "must be a date in YYYY-MM-DD form"}
	}
	if len(SplitList(d.form.Creators, ",")) == 0 {
		return &ValidationError{Field: "creators", Reason: "at least one creator is required"}
	}
	if d.store.Singleton(models.RoleThumbnail) == nil {
		return &ValidationError{Field: "thumbnail", Reason: "thumbnail wasn't selected"}
	}
	return nil
}

func (d *ArtDraft) Payload() (any, error) {
	slug := d.form.Slug
	if slug == "" {
		slug = DeriveSlug(d.form.Title)
	}

	thumb := d.store.Singleton(models.RoleThumbnail)
	if thumb == nil || thumb.Key == "" {
		return nil, fmt.Errorf("thumbnail key not resolved")
	}

	var artKeys []string
	for _, a := range d.store.Gallery() {
		if a.Key == "" {
			return nil, fmt.Errorf("gallery image at position %d has no key", a.Position)
		}
		artKeys = append(artKeys, a.Key)
	}

	return &protocol.ArtPost{
		Step:         protocol.StepCommitMetadata,
		Title:        d.form.Title,
		Slug:         slug,
		CreationDate: d.form.CreationDate,
		IsNsfw:       d.form.IsNsfw,
		Creators:     SplitList(d.form.Creators, ","),
		Description:  strings.TrimSpace(d.form.Description),
		Tags:         SplitList(d.form.Tags, ","),
		ThumbnailKey: thumb.Key,
		ArtKeys:      artKeys,
	}, nil
}

// CharacterDraft assembles the step-2 payload for a character sheet.
type CharacterDraft struct {
	form  models.CharacterForm
	store *store.Store
}

func NewCharacterDraft(form models.CharacterForm, st *store.Store) *CharacterDraft {
	return &CharacterDraft{form: form, store: st}
}

func (d *CharacterDraft) Validate() error {
	if strings.TrimSpace(d.form.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(d.form.Creator) == "" {
		return &ValidationError{Field: "creator", Reason: "must not be empty"}
	}
	if _, err := ParseInfobox(d.form.Infobox); err != nil {
		return err
	}
	if d.form.Birthday != "" {
		if _, err := time.Parse("2006-01-02", d.form.Birthday); err != nil {
			return &ValidationError{Field: "birthday", Reason: "must be a date in YYYY-MM-DD form"}
		}
	}
	if d.store.Singleton(models.RoleThumbnail) == nil {
		return &ValidationError{Field: "thumbnail", Reason: "thumbnail wasn't selected"}
	}
	if d.store.Singleton(models.RolePageImage) == nil {
		return &ValidationError{Field: "page_image", Reason: "page image wasn't selected"}
	}
	return nil
}

func (d *CharacterDraft) Payload() (any, error) {
	slug := d.form.Slug
	if slug == "" {
		slug = DeriveSlug(d.form.Name)
	}

	infobox, err := ParseInfobox(d.form.Infobox)
	if err != nil {
		return nil, err
	}

	thumb := d.store.Singleton(models.RoleThumbnail)
	if thumb == nil || thumb.Key == "" {
		return nil, fmt.Errorf("thumbnail key not resolved")
	}
	pageImg := d.store.Singleton(models.RolePageImage)
	if pageImg == nil || pageImg.Key == "" {
		return nil, fmt.Errorf("page image key not resolved")
	}

	post := &protocol.CharacterPost{
		Step:             protocol.StepCommitMetadata,
		Name:             d.form.Name,
		Slug:             slug,
		Subtitles:        SplitList(d.form.Subtitles, "\n"),
		Creator:          d.form.Creator,
		IsHidden:         d.form.IsHidden,
		Infobox:          infobox,
		Birthday:         d.form.Birthday,
		LongName:         d.form.LongName,
		RetirementReason: d.form.RetirementReason,
		Tag:              d.form.Tag,
		PageContents:     strings.TrimSpace(d.form.PageContents),
		OverlayCss:       strings.TrimSpace(d.form.OverlayCss),
		CustomCss:        strings.TrimSpace(d.form.CustomCss),
		ThumbnailKey:     thumb.Key,
		PageImgKey:       pageImg.Key,
	}

	if logo := d.store.Singleton(models.RoleLogo); logo != nil {
		if logo.Key == "" {
			return nil, fmt.Errorf("logo key not resolved")
		}
		post.LogoURL = logo.Key
	}

	return post, nil
}
