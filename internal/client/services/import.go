package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/powerdown/wikipost/internal/client/gateway"
	"github.com/powerdown/wikipost/internal/client/models"
	"github.com/powerdown/wikipost/internal/client/store"
	"github.com/powerdown/wikipost/internal/filex"
	"github.com/powerdown/wikipost/internal/logging"
)

// How many archive documents are imported at the same time.
const defaultImportConcurrency = 8

// ImportResult is the outcome of importing one archive document.
type ImportResult struct {
	File     string
	Redirect string
	Err      error
}

// Importer bulk-posts an art archive directory: each markdown document with
// YAML front matter becomes one submission through the regular two-phase
// flow.
type Importer struct {
	gw          gateway.Gateway
	logger      logging.Logger
	writer      StorageWriter
	Concurrency int
}

func NewImporter(gw gateway.Gateway, logger logging.Logger) *Importer {
	return &Importer{gw: gw, logger: logger, Concurrency: defaultImportConcurrency}
}

// SetStorageWriter overrides the object-storage write for every spawned
// submission. Intended for tests.
func (im *Importer) SetStorageWriter(w StorageWriter) {
	im.writer = w
}

// stringOrList accepts a YAML scalar or sequence; a scalar becomes a
// one-element list.
type stringOrList []string

func (s *stringOrList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		*s = []string{single}
		return nil
	default:
		var many []string
		if err := value.Decode(&many); err != nil {
			return err
		}
		*s = many
		return nil
	}
}

type artFrontmatter struct {
	Title         string       `yaml:"title"`
	ImgFiles      stringOrList `yaml:"img-file"`
	ThumbnailFile string       `yaml:"thumbnail-file"`
	Artists       stringOrList `yaml:"artist"`
	Tags          []string     `yaml:"tags"`
	Date          string       `yaml:"date"`
}

// splitFrontMatter cuts a markdown document into its YAML front matter and
// body.
func splitFrontMatter(doc string) (meta, body string, err error) {
	rest, found := strings.CutPrefix(strings.TrimLeft(doc, "\r\n"), "---")
	if !found {
		return "", "", fmt.Errorf("no front matter")
	}
	meta, body, found = strings.Cut(rest, "\n---")
	if !found {
		return "", "", fmt.Errorf("unterminated front matter")
	}
	return meta, strings.TrimSpace(body), nil
}

// NormalizeArchiveDate converts the loose date spellings found in archive
// documents (DD.MM.YYYY, DD-MM-YYYY, DD-MM-YY) into YYYY-MM-DD. Values
// already in that form pass through unchanged.
func NormalizeArchiveDate(raw string) string {
	converted := strings.ReplaceAll(strings.TrimSpace(raw), ".", "-")
	parts := strings.Split(converted, "-")
	if len(parts) != 3 {
		return converted
	}
	first, second, third := parts[0], parts[1], parts[2]

	if len(first) <= 2 && len(third) == 2 {
		// Two-digit years between 18 and 25 mean the year comes last.
		if yy, err := strconv.Atoi(third); err == nil && yy >= 18 && yy < 26 {
			return fmt.Sprintf("20%s-%s-%s", third, second, first)
		}
		return fmt.Sprintf("20%s-%s-%s", first, second, third)
	}
	if len(first) <= 2 && len(third) == 4 {
		return fmt.Sprintf("%s-%s-%s", third, second, first)
	}
	return converted
}

// ImportArtArchive walks rootPath/src/_art-archive and submits every
// document (files starting with "_" are skipped) to serverURL. Documents
// are imported concurrently with a bounded worker count; the returned
// results are sorted by file name and include per-document failures.
func (im *Importer) ImportArtArchive(ctx context.Context, rootPath, serverURL string) ([]ImportResult, error) {
	archiveDir := filepath.Join(rootPath, "src", "_art-archive")
	entries, err := os.ReadDir(archiveDir)
	if err != nil {
		return nil, fmt.Errorf("art archive folder: %w", err)
	}

	var docs []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "_") {
			continue
		}
		docs = append(docs, entry.Name())
	}

	im.logger.Info(ctx, "importing art archive", "documents", len(docs), "dir", archiveDir)

	results := make([]ImportResult, len(docs))

	var g errgroup.Group
	g.SetLimit(im.Concurrency)
	for i, name := range docs {
		g.Go(func() error {
			redirect, err := im.importDocument(ctx, rootPath, filepath.Join(archiveDir, name), serverURL)
			results[i] = ImportResult{File: name, Redirect: redirect, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].File < results[j].File })
	return results, nil
}

func (im *Importer) importDocument(ctx context.Context, rootPath, docPath, serverURL string) (string, error) {
	raw, err := os.ReadFile(docPath)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	meta, body, err := splitFrontMatter(string(raw))
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}

	var fm artFrontmatter
	if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
		return "", fmt.Errorf("parse front matter: %w", err)
	}

	st := store.New()
	imgDir := filepath.Join(rootPath, "src", "assets", "img", "art-archive")

	thumbPath, err := resolveThumbnail(imgDir, fm)
	if err != nil {
		return "", err
	}
	data, contentType, err := filex.ReadMedia(thumbPath)
	if err != nil {
		return "", fmt.Errorf("thumbnail: %w", err)
	}
	st.Add(models.RoleThumbnail, data, contentType)

	for _, imgFile := range fm.ImgFiles {
		data, contentType, err := filex.ReadMedia(filepath.Join(imgDir, strings.TrimPrefix(imgFile, "/")))
		if err != nil {
			return "", fmt.Errorf("gallery image: %w", err)
		}
		st.Add(models.RoleGallery, data, contentType)
	}

	isNsfw := false
	var tags []string
	for _, tag := range fm.Tags {
		switch tag {
		case "nsfw":
			isNsfw = true
		case "sfw":
		default:
			tags = append(tags, tag)
		}
	}

	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSuffix(filepath.Base(docPath), ".md")), " ", "-")

	form := models.ArtForm{
		Title:        fm.Title,
		Slug:         slug,
		CreationDate: NormalizeArchiveDate(fm.Date),
		IsNsfw:       isNsfw,
		Creators:     strings.Join(fm.Artists, ","),
		Description:  body,
		Tags:         strings.Join(tags, ","),
	}

	// Each document gets its own coordinator so imports can run in
	// parallel without tripping the single-submission guard.
	coord := NewCoordinator(im.gw, im.logger)
	if im.writer != nil {
		coord.SetStorageWriter(im.writer)
	}

	result, err := coord.Submit(ctx, serverURL, st, NewArtDraft(form, st))
	if err != nil {
		return "", err
	}
	return result.RedirectURL, nil
}

// resolveThumbnail finds the thumbnail image for a document: the file named
// in the front matter when it exists, otherwise a sibling of the first
// gallery image under thumbnails/ with the same base name.
func resolveThumbnail(imgDir string, fm artFrontmatter) (string, error) {
	thumbDir := filepath.Join(imgDir, "thumbnails")

	if fm.ThumbnailFile != "" {
		p := filepath.Join(thumbDir, fm.ThumbnailFile)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	if len(fm.ImgFiles) == 0 {
		return "", fmt.Errorf("document lists no images")
	}

	base := strings.TrimPrefix(fm.ImgFiles[0], "/")
	base = strings.TrimSuffix(base, filepath.Ext(base))
	for _, candidate := range []string{base, base + ".png", base + ".jpg"} {
		p := filepath.Join(thumbDir, candidate)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no thumbnail found for %s", fm.ImgFiles[0])
}
