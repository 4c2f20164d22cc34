package palettes

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"

	"github.com/codr1/stylethemes/internal/builderr"
	"github.com/codr1/stylethemes/internal/models"
)

// Extension marks palette definition files inside the themes directory.
const Extension = ".toml"

const stage = "themes"

type paletteFile struct {
	Meta struct {
		Name string `toml:"name"`
		ID   string `toml:"id"`
		Type string `toml:"type"`
	} `toml:"meta"`
	Base16    map[string]string `toml:"base16"`
	Overrides map[string]string `toml:"overrides"`
}

// Discover returns the palette files in dir sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, builderr.New(stage, dir, builderr.ErrMissingInput, err)
		}
		return nil, fmt.Errorf("read themes directory: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Slug derives the palette slug from its definition file name.
func Slug(path string) string {
	return strings.TrimSuffix(filepath.Base(path), Extension)
}

// Parse decodes one palette definition. A palette missing any meta field or
// base16 slot is rejected as a parse error.
func Parse(slug, source string, data []byte) (models.Palette, error) {
	var raw paletteFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return models.Palette{}, builderr.New(stage, source, builderr.ErrParse, err)
	}

	palette := models.Palette{
		Slug:      slug,
		Name:      raw.Meta.Name,
		ID:        raw.Meta.ID,
		Type:      raw.Meta.Type,
		Source:    source,
		Base16:    raw.Base16,
		Overrides: raw.Overrides,
	}
	if palette.Overrides == nil {
		palette.Overrides = map[string]string{}
	}

	if err := palette.Validate(); err != nil {
		return models.Palette{}, builderr.New(stage, source, builderr.ErrParse, err)
	}
	return palette, nil
}

// LoadFile reads and parses the palette at path.
func LoadFile(path string) (models.Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Palette{}, builderr.New(stage, filepath.Base(path), builderr.ErrMissingInput, err)
		}
		return models.Palette{}, fmt.Errorf("read palette %s: %w", path, err)
	}
	return Parse(Slug(path), filepath.Base(path), data)
}

// LoadAll parses every palette in dir. Files that fail are logged, returned
// in errs and skipped; the rest are returned in name order.
func LoadAll(dir string) ([]models.Palette, []error) {
	files, err := Discover(dir)
	if err != nil {
		return nil, []error{err}
	}

	palettes := make([]models.Palette, 0, len(files))
	var errs []error
	for _, file := range files {
		palette, err := LoadFile(file)
		if err != nil {
			log.Error().Err(err).Str("file", filepath.Base(file)).Msg("Skipping palette")
			errs = append(errs, err)
			continue
		}
		palettes = append(palettes, palette)
	}
	return palettes, errs
}
