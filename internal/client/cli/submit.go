package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/powerdown/wikipost/internal/client/services"
	"github.com/powerdown/wikipost/internal/common"
)

// Submit runs the two-phase upload for the current session. On success the
// session ends and the post's URL is printed.
func (a *App) Submit(ctx context.Context) {
	if !a.inSession() {
		fmt.Println("No session in progress.")
		return
	}

	var draft services.Draft
	switch a.kind {
	case sessionArt:
		draft = services.NewArtDraft(a.artForm, a.store)
	case sessionCharacter:
		draft = services.NewCharacterDraft(a.characterForm, a.store)
	}

	result, err := a.coord.Submit(ctx, a.targetURL(), a.store, draft)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			fmt.Println("ERROR:", err)
			return
		}
		log.Printf("Error: %s", err.Error())
		return
	}

	if result.RedirectURL != "" {
		fmt.Println("Upload successful! Post lives at:", result.RedirectURL)
	} else {
		fmt.Println("Upload successful!")
	}

	a.kind = sessionNone
	a.editSlug = ""
	a.store = nil
}

// Delete removes the post at the given URL after two confirmations.
func (a *App) Delete(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: delete <post URL>")
		return
	}

	deleted, err := a.coord.Delete(ctx, args[0], func(prompt string) bool {
		return GetYesNo(a.reader, prompt, os.Stdout)
	})
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return
	}
	if !deleted {
		fmt.Println("Deletion aborted.")
		return
	}
	fmt.Println("Post deleted.")
}

// Import bulk-posts an archive directory of art documents or character
// sheets.
func (a *App) Import(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: import art|characters <archive root>")
		return
	}

	importer := services.NewImporter(a.gw, a.logger)
	if a.config.ImportConcurrency > 0 {
		importer.Concurrency = a.config.ImportConcurrency
	}

	var results []services.ImportResult
	var err error
	switch args[0] {
	case "art":
		results, err = importer.ImportArtArchive(ctx, args[1], a.config.ServerBaseURL+"/art/new")
	case "characters":
		results, err = importer.ImportCharacters(ctx, args[1], a.config.ServerBaseURL+"/character/new")
	default:
		fmt.Println("Unknown archive kind:", args[0])
		return
	}
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return
	}

	failures := 0
	for _, r := range results {
		if r.Err != nil {
			failures++
			fmt.Printf("FAIL %s: %v\n", r.File, r.Err)
			continue
		}
		fmt.Printf("ok   %s -> %s\n", r.File, r.Redirect)
	}
	fmt.Printf("Imported %d documents, %d failed.\n", len(results)-failures, failures)
}
