package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/powerdown/wikipost/internal/client/models"
	"github.com/powerdown/wikipost/internal/client/store"
)

func (a *App) getStatus() string {
	if !a.inSession() {
		return ""
	}
	return fmt.Sprintf("(%s: %d images, %d pending)", a.kind, len(a.store.Gallery()), a.store.CountLocal())
}

// NewArt starts an art entry session, prompting for the post's fields.
// Images are attached afterwards with the thumb/img commands.
func (a *App) NewArt(ctx context.Context) {
	form := models.ArtForm{}
	var err error

	if form.Title, err = GetSimpleText(a.reader, "Title", os.Stdout); err != nil {
		log.Printf("error: %v", err)
		return
	}
	if form.Slug, err = GetSimpleText(a.reader, "Slug (empty to derive from title)", os.Stdout); err != nil {
		log.Printf("error: %v", err)
		return
	}
	if form.CreationDate, err = GetSimpleText(a.reader, "Creation date (YYYY-MM-DD)", os.Stdout); err != nil {
		log.Printf("error: %v", err)
		return
	}
	if form.Creators, err = GetSimpleText(a.reader, "Creators (comma-separated)", os.Stdout); err != nil {
		log.Printf("error: %v", err)
		return
	}
	if form.Tags, err = GetSimpleText(a.reader, "Tags (comma-separated, optional)", os.Stdout); err != nil {
		log.Printf("error: %v", err)
		return
	}
	form.IsNsfw = GetYesNo(a.reader, "Is this post NSFW?", os.Stdout)
	if form.Description, err = GetMultiline(a.reader, "Description (optional)", os.Stdout); err != nil {
		log.Printf("error: %v", err)
		return
	}

	a.kind = sessionArt
	a.editSlug = ""
	a.artForm = form
	a.store = store.New()
	fmt.Println("Art session started. Attach images with 'thumb <path>' and 'img <path>', then 'submit'.")
}

// NewCharacter starts a character sheet session.
func (a *App) NewCharacter(ctx context.Context) {
	form := models.CharacterForm{}
	var err error

	if form.Name, err = GetSimpleText(a.reader, "Character name", os.Stdout); err != nil {
		log.Printf("error: %v", err)
		return
	}
	if form.Slug, err = GetSimpleText(a.reader, "Slug (empty to derive from name)", os.Stdout); err != nil {
		log.Printf("error: %v", err)
		return
	}
	if form.Creator, err = GetSimpleText(a.reader, "Creator", os.Stdout); err != nil {
		log.Printf("error: %v", err)
		return
	}
	if form.Subtitles, err = GetMultiline(a.reader, "Subtitles (one per line)", os.Stdout); err != nil {
		log.Printf("error: %v", err)
		return
	}
	if form.Infobox, err = GetMultiline(a.reader, "Infobox lines (Title: Description)", os.Stdout); err != nil {
		log.Printf("error: %v", err)
		return
	}
	if form.Birthday, err = GetSimpleText(a.reader, "Birthday (YYYY-MM-DD, optional)", os.Stdout); err != nil {
		log.Printf("error: %v", err)
		return
	}
	if form.LongName, err = GetSimpleText(a.reader, "Long name (optional)", os.Stdout); err != nil {
		log.Printf("error: %v", err)
		return
	}
	if form.Tag, err = GetSimpleText(a.reader, "Tag (optional)", os.Stdout); err != nil {
		log.Printf("error: %v", err)
		return
	}
	if form.PageContents, err = GetMultiline(a.reader, "Page contents (optional)", os.Stdout); err != nil {
		log.Printf("error: %v", err)
		return
	}
	form.IsHidden = GetYesNo(a.reader, "Hide this character from listings?", os.Stdout)

	a.kind = sessionCharacter
	a.editSlug = ""
	a.characterForm = form
	a.store = store.New()
	fmt.Println("Character session started. Attach images with 'thumb', 'pageimg', 'logo', then 'submit'.")
}
