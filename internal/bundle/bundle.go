// Package bundle assembles compiled stylesheets into Stylus import files.
package bundle

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/codr1/stylethemes/internal/builderr"
	"github.com/codr1/stylethemes/internal/compile"
	"github.com/codr1/stylethemes/internal/models"
)

const stage = "import"

// Metadata is stamped onto every entry.
type Metadata struct {
	Author    string `yaml:"author"`
	Namespace string `yaml:"namespace"`
	Version   string `yaml:"version"`
}

// UserCSSData mirrors the usercss header Stylus keeps per style.
type UserCSSData struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Version   string `json:"version"`
}

// Entry is one style in a Stylus import file.
type Entry struct {
	ID          int         `json:"id"`
	UUID        string      `json:"_id"`
	Enabled     bool        `json:"enabled"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Author      string      `json:"author"`
	UserCSSData UserCSSData `json:"usercssData"`
	SourceCode  string      `json:"sourceCode"`
}

// Builder reads compiled stylesheets from StylesDir.
type Builder struct {
	StylesDir string
	Meta      Metadata
	Targets   []models.ExportTarget
}

// StyleUUID is stable for a namespace, site and palette so re-importing a
// regenerated bundle updates styles in place.
func StyleUUID(namespace, site, slug string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(namespace+"/"+site+"/"+slug)).String()
}

// ForPalette builds the entries for p across the builder's targets. Ids
// start at 1 and only advance for entries actually produced; targets whose
// compiled stylesheet is missing are skipped and reported in errs.
func (b *Builder) ForPalette(p models.Palette) ([]Entry, []error) {
	return b.build([]models.Palette{p}, b.Targets)
}

// Combined builds a single list for every palette across targets, with ids
// sequential over the whole list.
func (b *Builder) Combined(palettes []models.Palette, targets []models.ExportTarget) ([]Entry, []error) {
	return b.build(palettes, targets)
}

func (b *Builder) build(palettes []models.Palette, targets []models.ExportTarget) ([]Entry, []error) {
	entries := []Entry{}
	var errs []error
	id := 1
	for _, p := range palettes {
		for _, target := range targets {
			entry, err := b.entry(p, target, id)
			if err != nil {
				log.Warn().Err(err).Str("palette", p.Slug).Str("site", target.Site).Msg("Skipping style")
				errs = append(errs, err)
				continue
			}
			entries = append(entries, entry)
			id++
		}
	}
	return entries, errs
}

func (b *Builder) entry(p models.Palette, target models.ExportTarget, id int) (Entry, error) {
	cssPath := compile.OutputPath(b.StylesDir, target.Site, p.Slug)
	data, err := os.ReadFile(cssPath)
	if err != nil {
		item := target.Site + "/" + p.Slug
		if errors.Is(err, fs.ErrNotExist) {
			return Entry{}, builderr.New(stage, item, builderr.ErrMissingDependency, fmt.Errorf("%s not found", cssPath))
		}
		return Entry{}, builderr.New(stage, item, builderr.ErrMissingInput, err)
	}

	name := target.StyleName(p.Name)
	return Entry{
		ID:          id,
		UUID:        StyleUUID(b.Meta.Namespace, target.Site, p.Slug),
		Enabled:     true,
		Name:        name,
		Description: target.StyleDescription(p.Name),
		Author:      b.Meta.Author,
		UserCSSData: UserCSSData{
			Name:      name,
			Namespace: b.Meta.Namespace,
			Version:   b.Meta.Version,
		},
		SourceCode: compile.StripDirective(string(data)),
	}, nil
}

// Marshal encodes entries as two-space indented JSON without HTML escaping.
func Marshal(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return nil, fmt.Errorf("encode import bundle: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Write persists entries to path, replacing any existing file atomically.
func Write(path string, entries []Entry) error {
	data, err := Marshal(entries)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// PalettePath is the per-palette import file in outDir.
func PalettePath(outDir, slug string) string {
	return filepath.Join(outDir, slug+".json")
}
