// Package lessgen turns a palette into a LESS variable sheet.
//
// The sheet defines the sixteen base colors, three override-driven colors,
// a fixed table of semantic aliases, a fixed table of fade()-derived values
// and a few mixins. Site templates are written against the alias names only,
// so only the base block changes between palettes.
package lessgen

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/codr1/stylethemes/internal/models"
)

// SheetExtension is appended to the palette slug for the generated sheet.
const SheetExtension = ".less"

//go:embed templates/variables.less.tmpl
var templatesFS embed.FS

var sheetTemplate = template.Must(template.ParseFS(templatesFS, "templates/variables.less.tmpl"))

var baseRoles = map[string]string{
	"base00": "Default Background",
	"base01": "Lighter Background (panels, cards)",
	"base02": "Selection Background",
	"base03": "Comments, Muted text",
	"base04": "Dark Foreground (secondary text)",
	"base05": "Default Foreground (primary text)",
	"base06": "Light Foreground (headings, emphasis)",
	"base07": "Lightest Background (elevated surfaces)",
	"base08": "Red - Errors, Deleted, Variables",
	"base09": "Orange - Warnings, Constants, Numbers",
	"base0A": "Yellow - Classes, Search highlight",
	"base0B": "Green - Strings, Success, Inserted",
	"base0C": "Cyan - Regex, Escape chars, Support",
	"base0D": "Blue - Functions, Links",
	"base0E": "Purple - Keywords, Storage",
	"base0F": "Brown - Deprecated, Embedded",
}

// Fallbacks used when a palette does not override primary, accent or border.
const (
	DefaultPrimary = "@base0E"
	DefaultAccent  = "@base0D"
	DefaultBorder  = "@base01"
)

type baseSlot struct {
	Key   string
	Value string
	Role  string
}

type sheetData struct {
	Name     string
	ID       string
	Type     string
	Source   string
	Base     []baseSlot
	Primary  string
	Accent   string
	Border   string
	Sections []Section
}

// Generate renders the variable sheet for p. The result depends only on p.
func Generate(p models.Palette) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	n := p.Normalized()

	data := sheetData{
		Name:     n.Name,
		ID:       n.ID,
		Type:     n.Type,
		Source:   n.Source,
		Base:     make([]baseSlot, 0, len(models.Base16Keys)),
		Primary:  n.Override(models.OverridePrimary, DefaultPrimary),
		Accent:   n.Override(models.OverrideAccent, DefaultAccent),
		Border:   n.Override(models.OverrideBorder, DefaultBorder),
		Sections: Sections,
	}
	if data.Source == "" {
		data.Source = n.Slug + ".toml"
	}
	for _, key := range models.Base16Keys {
		data.Base = append(data.Base, baseSlot{Key: key, Value: n.Base16[key], Role: baseRoles[key]})
	}

	var buf bytes.Buffer
	if err := sheetTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render variable sheet for %s: %w", p.Slug, err)
	}
	return buf.String(), nil
}

// SheetPath is where the variable sheet for slug is persisted.
func SheetPath(themesDir, slug string) string {
	return filepath.Join(themesDir, slug+SheetExtension)
}

// WriteSheet generates the sheet for p and overwrites <themesDir>/<slug>.less.
func WriteSheet(themesDir string, p models.Palette) (string, error) {
	sheet, err := Generate(p)
	if err != nil {
		return "", err
	}
	path := SheetPath(themesDir, p.Slug)
	if err := os.WriteFile(path, []byte(sheet), 0o644); err != nil {
		return "", fmt.Errorf("write variable sheet: %w", err)
	}
	return path, nil
}
