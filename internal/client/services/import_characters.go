package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/powerdown/wikipost/internal/client/models"
	"github.com/powerdown/wikipost/internal/client/store"
	"github.com/powerdown/wikipost/internal/filex"
)

// orderedPairs decodes a YAML mapping while keeping the key order the
// document wrote it in. Plain map decoding would lose it.
type orderedPairs []struct {
	Key   string
	Value string
}

func (p *orderedPairs) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("expected a mapping, got %v", value.Kind)
	}
	pairs := make(orderedPairs, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var k, v string
		if err := value.Content[i].Decode(&k); err != nil {
			return err
		}
		if err := value.Content[i+1].Decode(&v); err != nil {
			return err
		}
		pairs = append(pairs, struct{ Key, Value string }{k, v})
	}
	*p = pairs
	return nil
}

type characterFrontmatter struct {
	Title           string       `yaml:"character-title"`
	InpageTitle     string       `yaml:"inpage-character-title"`
	Subtitles       stringOrList `yaml:"character-subtitle"`
	Author          string       `yaml:"character-author"`
	Hidden          bool         `yaml:"hide-character"`
	ExclusionReason string       `yaml:"exclusion-reason"`
	LogoFile        string       `yaml:"logo-file"`
	ImgFile         string       `yaml:"character-img-file"`
	Birthday        string       `yaml:"birthday"`
	Infobox         orderedPairs `yaml:"infobox-data"`
	CssCode         string       `yaml:"css-code"`
}

// ImportCharacters walks rootPath/src/_characters and submits every sheet
// (files starting with "_" are skipped) to serverURL, the same way
// ImportArtArchive handles archive documents.
func (im *Importer) ImportCharacters(ctx context.Context, rootPath, serverURL string) ([]ImportResult, error) {
	charDir := filepath.Join(rootPath, "src", "_characters")
	entries, err := os.ReadDir(charDir)
	if err != nil {
		return nil, fmt.Errorf("characters folder: %w", err)
	}

	var docs []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "_") {
			continue
		}
		docs = append(docs, entry.Name())
	}

	im.logger.Info(ctx, "importing characters", "documents", len(docs), "dir", charDir)

	results := make([]ImportResult, len(docs))

	var g errgroup.Group
	g.SetLimit(im.Concurrency)
	for i, name := range docs {
		g.Go(func() error {
			redirect, err := im.importCharacter(ctx, rootPath, filepath.Join(charDir, name), serverURL)
			results[i] = ImportResult{File: name, Redirect: redirect, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].File < results[j].File })
	return results, nil
}

func (im *Importer) importCharacter(ctx context.Context, rootPath, docPath, serverURL string) (string, error) {
	raw, err := os.ReadFile(docPath)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	meta, body, err := splitFrontMatter(string(raw))
	if err != nil {
		return "", fmt.Errorf("parse document: %w", err)
	}

	var fm characterFrontmatter
	if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
		return "", fmt.Errorf("parse front matter: %w", err)
	}

	imgDir := filepath.Join(rootPath, "src", "assets", "img")
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSuffix(filepath.Base(docPath), ".md")), " ", "-")

	st := store.New()

	// Thumbnails keep the pre-slug spelling of the character's name.
	thumbName := strings.ReplaceAll(slug, "-", " ") + ".png"
	data, contentType, err := filex.ReadMedia(filepath.Join(imgDir, "characters", "thumbnails", thumbName))
	if err != nil {
		return "", fmt.Errorf("thumbnail: %w", err)
	}
	st.Add(models.RoleThumbnail, data, contentType)

	if fm.ImgFile == "" {
		return "", fmt.Errorf("document names no character image")
	}
	data, contentType, err = filex.ReadMedia(filepath.Join(imgDir, strings.TrimPrefix(fm.ImgFile, "/")))
	if err != nil {
		return "", fmt.Errorf("character image: %w", err)
	}
	st.Add(models.RolePageImage, data, contentType)

	if fm.LogoFile != "" {
		data, contentType, err = filex.ReadMedia(filepath.Join(imgDir, "characters", "logos", fm.LogoFile))
		if err != nil {
			return "", fmt.Errorf("logo: %w", err)
		}
		st.Add(models.RoleLogo, data, contentType)
	}

	infobox := make([]string, 0, len(fm.Infobox))
	for _, pair := range fm.Infobox {
		infobox = append(infobox, pair.Key+": "+pair.Value)
	}

	birthday := strings.TrimSpace(fm.Birthday)
	if birthday != "" {
		// Archive birthdays carry no year; the sheets use a placeholder one.
		birthday = "2000-" + birthday
	}

	form := models.CharacterForm{
		Name:             fm.Title,
		Slug:             slug,
		Subtitles:        strings.Join(fm.Subtitles, "\n"),
		Creator:          fm.Author,
		IsHidden:         fm.Hidden,
		Infobox:          strings.Join(infobox, "\n"),
		Birthday:         birthday,
		LongName:         fm.InpageTitle,
		RetirementReason: fm.ExclusionReason,
		Tag:              slug,
		PageContents:     body,
		CustomCss:        fm.CssCode,
	}

	coord := NewCoordinator(im.gw, im.logger)
	if im.writer != nil {
		coord.SetStorageWriter(im.writer)
	}

	result, err := coord.Submit(ctx, serverURL, st, NewCharacterDraft(form, st))
	if err != nil {
		return "", err
	}
	return result.RedirectURL, nil
}
