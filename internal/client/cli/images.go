package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/powerdown/wikipost/internal/client/models"
	"github.com/powerdown/wikipost/internal/filex"
)

var commandRoles = map[string]models.Role{
	"thumb":   models.RoleThumbnail,
	"logo":    models.RoleLogo,
	"pageimg": models.RolePageImage,
	"img":     models.RoleGallery,
}

// AddImage attaches a file from disk under the role named by the command
// itself (thumb/logo/pageimg/img).
func (a *App) AddImage(ctx context.Context, parts []string) {
	if !a.inSession() {
		fmt.Println("Start a session first with 'new art' or 'new character'.")
		return
	}
	if len(parts) != 2 {
		fmt.Printf("Usage: %s <path>\n", parts[0])
		return
	}

	role := commandRoles[parts[0]]
	if a.kind == sessionArt && role != models.RoleThumbnail && role != models.RoleGallery {
		fmt.Println("Art posts only take 'thumb' and 'img' images.")
		return
	}
	if a.kind == sessionCharacter && role == models.RoleGallery {
		fmt.Println("Character sheets take 'thumb', 'pageimg' and 'logo' images.")
		return
	}

	data, contentType, err := filex.ReadMedia(parts[1])
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	asset := a.store.Add(role, data, contentType)
	fmt.Printf("Attached %s (%s, %d bytes)\n", asset.Role, contentType, len(data))
}

// List prints the session's assets: singletons first, then the gallery in
// order.
func (a *App) List(ctx context.Context) {
	if !a.inSession() {
		fmt.Println("No session in progress.")
		return
	}

	for _, role := range models.SingletonOrder {
		if asset := a.store.Singleton(role); asset != nil {
			fmt.Printf("%-10s %s\n", asset.Role, describe(asset))
		}
	}
	for _, asset := range a.store.Gallery() {
		fmt.Printf("img %d      %s\n", asset.Position, describe(asset))
	}
}

func describe(a *models.Asset) string {
	if a.IsLocal() {
		return fmt.Sprintf("local, %s, %d bytes", a.ContentType, len(a.Bytes))
	}
	return "uploaded, key " + a.Key
}

// Move swaps the gallery image at position n towards n+delta.
func (a *App) Move(ctx context.Context, args []string) {
	if !a.inSession() {
		fmt.Println("No session in progress.")
		return
	}
	if len(args) != 2 {
		fmt.Println("Usage: move <position> <delta>")
		return
	}

	asset, ok := a.galleryAt(args[0])
	if !ok {
		return
	}
	delta, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Println("Delta must be an integer.")
		return
	}

	if err := a.store.Move(asset.ID, delta); err != nil {
		log.Printf("error: %v", err)
	}
}

// Remove deletes the gallery image at position n, asking twice first.
func (a *App) Remove(ctx context.Context, args []string) {
	if !a.inSession() {
		fmt.Println("No session in progress.")
		return
	}
	if len(args) != 1 {
		fmt.Println("Usage: remove <position>")
		return
	}

	asset, ok := a.galleryAt(args[0])
	if !ok {
		return
	}

	removed, err := a.store.Remove(asset.ID, func(prompt string) bool {
		return GetYesNo(a.reader, prompt, os.Stdout)
	})
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if !removed {
		fmt.Println("Removal aborted.")
	}
}

// Replace swaps in new bytes for the gallery image at position n. If the
// image was already uploaded it goes back to the local state and will be
// uploaded again on the next submission.
func (a *App) Replace(ctx context.Context, args []string) {
	if !a.inSession() {
		fmt.Println("No session in progress.")
		return
	}
	if len(args) != 2 {
		fmt.Println("Usage: replace <position> <path>")
		return
	}

	asset, ok := a.galleryAt(args[0])
	if !ok {
		return
	}

	data, contentType, err := filex.ReadMedia(args[1])
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if err := a.store.Replace(asset.ID, data, contentType); err != nil {
		log.Printf("error: %v", err)
	}
}

func (a *App) galleryAt(raw string) (*models.Asset, bool) {
	pos, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Println("Position must be an integer.")
		return nil, false
	}
	gallery := a.store.Gallery()
	if pos < 0 || pos >= len(gallery) {
		fmt.Printf("No gallery image at position %d.\n", pos)
		return nil, false
	}
	return gallery[pos], true
}
