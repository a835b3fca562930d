package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/powerdown/wikipost/internal/client/models"
	"github.com/powerdown/wikipost/internal/client/store"
	"github.com/powerdown/wikipost/internal/protocol"
)

// Edit loads an existing post into a fresh session. The current fields are
// fetched from the server and the already-uploaded media is seeded into the
// store, so an immediate submit would re-commit the post unchanged without
// uploading a single byte.
func (a *App) Edit(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: edit art|character <slug>")
		return
	}
	kind, slug := args[0], args[1]

	body, err := a.gw.FetchResource(ctx, a.config.ServerBaseURL+"/"+kind+"/"+slug)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return
	}

	switch kind {
	case "art":
		if err := a.loadArt(body); err != nil {
			log.Printf("Error: %s", err.Error())
			return
		}
		a.kind = sessionArt
	case "character":
		if err := a.loadCharacter(body); err != nil {
			log.Printf("Error: %s", err.Error())
			return
		}
		a.kind = sessionCharacter
	default:
		fmt.Println("Unknown post kind:", kind)
		return
	}

	a.editSlug = slug
	fmt.Printf("Editing %s %q. Existing images stay on the server unless replaced.\n", kind, slug)
}

func (a *App) loadArt(body []byte) error {
	var p protocol.ArtPost
	if err := json.Unmarshal(body, &p); err != nil {
		return fmt.Errorf("decode art post: %w", err)
	}

	a.artForm = models.ArtForm{
		Title:        p.Title,
		Slug:         p.Slug,
		CreationDate: p.CreationDate,
		IsNsfw:       p.IsNsfw,
		Creators:     strings.Join(p.Creators, ", "),
		Description:  p.Description,
		Tags:         strings.Join(p.Tags, ", "),
	}

	st := store.New()
	if p.ThumbnailKey != "" {
		st.Seed(models.RoleThumbnail, p.ThumbnailKey)
	}
	for _, key := range p.ArtKeys {
		st.Seed(models.RoleGallery, key)
	}
	a.store = st
	return nil
}

func (a *App) loadCharacter(body []byte) error {
	var p protocol.CharacterPost
	if err := json.Unmarshal(body, &p); err != nil {
		return fmt.Errorf("decode character post: %w", err)
	}

	infobox := make([]string, 0, len(p.Infobox))
	for _, line := range p.Infobox {
		infobox = append(infobox, line.Title+": "+line.Description)
	}

	a.characterForm = models.CharacterForm{
		Name:             p.Name,
		Slug:             p.Slug,
		Subtitles:        strings.Join(p.Subtitles, "\n"),
		Creator:          p.Creator,
		IsHidden:         p.IsHidden,
		Infobox:          strings.Join(infobox, "\n"),
		Birthday:         p.Birthday,
		LongName:         p.LongName,
		RetirementReason: p.RetirementReason,
		Tag:              p.Tag,
		PageContents:     p.PageContents,
		OverlayCss:       p.OverlayCss,
		CustomCss:        p.CustomCss,
	}

	st := store.New()
	if p.ThumbnailKey != "" {
		st.Seed(models.RoleThumbnail, p.ThumbnailKey)
	}
	if p.PageImgKey != "" {
		st.Seed(models.RolePageImage, p.PageImgKey)
	}
	if p.LogoURL != "" {
		st.Seed(models.RoleLogo, p.LogoURL)
	}
	a.store = st
	return nil
}
