// Package compile builds one site stylesheet for one palette.
//
// The palette's variable sheet is prepended to the site template so every
// alias is defined before use, the combination is written to a scratch file
// next to the template (so relative @imports resolve), handed to the
// preprocessor, and the resulting CSS is post-processed and persisted.
package compile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/stylethemes/internal/builderr"
	"github.com/codr1/stylethemes/internal/lessgen"
	"github.com/codr1/stylethemes/internal/models"
)

// ThemeNamePlaceholder is replaced by the palette display name in compiled CSS.
const ThemeNamePlaceholder = "{{THEME_NAME}}"

// OutputSuffix is appended to the palette slug for compiled stylesheets.
const OutputSuffix = ".user.css"

const stage = "styles"

var directiveRegex = regexp.MustCompile(`@preprocessor\s+less\n?`)

// StripDirective removes every "@preprocessor less" directive. It is
// idempotent.
func StripDirective(css string) string {
	return directiveRegex.ReplaceAllString(css, "")
}

// ReplacePlaceholder substitutes every theme-name placeholder with name.
func ReplacePlaceholder(css, name string) string {
	return strings.ReplaceAll(css, ThemeNamePlaceholder, name)
}

// TemplatePath is the LESS source for site.
func TemplatePath(stylesDir string, site models.SiteTarget) string {
	return filepath.Join(stylesDir, site.Name, site.File)
}

// OutputPath is the compiled stylesheet for a palette slug and site name.
func OutputPath(stylesDir, site, slug string) string {
	return filepath.Join(stylesDir, site, slug+OutputSuffix)
}

// Compiler builds palette x site stylesheets.
type Compiler struct {
	StylesDir string
	ThemesDir string
	Pre       Preprocessor
}

func New(stylesDir, themesDir string, pre Preprocessor) *Compiler {
	return &Compiler{StylesDir: stylesDir, ThemesDir: themesDir, Pre: pre}
}

// Build compiles the stylesheet for p on site and returns the output path.
// The variable sheet must already have been written by lessgen.
func (c *Compiler) Build(ctx context.Context, p models.Palette, site models.SiteTarget) (string, error) {
	item := site.Name + "/" + p.Slug

	templatePath := TemplatePath(c.StylesDir, site)
	styleLess, err := readInput(templatePath)
	if err != nil {
		return "", builderr.New(stage, item, builderr.ErrMissingInput, err)
	}

	sheetPath := lessgen.SheetPath(c.ThemesDir, p.Slug)
	themeLess, err := readInput(sheetPath)
	if err != nil {
		return "", builderr.New(stage, item, builderr.ErrMissingInput, fmt.Errorf("%w (run themes first)", err))
	}

	css, err := c.compile(ctx, p, site, themeLess+"\n\n"+styleLess)
	if err != nil {
		return "", builderr.New(stage, item, builderr.ErrCompile, err)
	}

	css = StripDirective(ReplacePlaceholder(css, p.Name))

	outputPath := OutputPath(c.StylesDir, site.Name, p.Slug)
	if err := os.WriteFile(outputPath, []byte(css), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", outputPath, err)
	}
	return outputPath, nil
}

// compile writes combined to a scratch file unique to this process and
// (palette, site) pair and removes it on every return path.
func (c *Compiler) compile(ctx context.Context, p models.Palette, site models.SiteTarget, combined string) (string, error) {
	siteDir := filepath.Join(c.StylesDir, site.Name)
	scratch, err := os.CreateTemp(siteDir, fmt.Sprintf(".%s.%s.*.less", p.Slug, site.Name))
	if err != nil {
		return "", fmt.Errorf("create scratch file: %w", err)
	}
	scratchPath := scratch.Name()
	defer func() {
		if err := os.Remove(scratchPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("path", scratchPath).Msg("Failed to remove scratch file")
		}
	}()

	if _, err := scratch.WriteString(combined); err != nil {
		scratch.Close()
		return "", fmt.Errorf("write scratch file: %w", err)
	}
	if err := scratch.Close(); err != nil {
		return "", fmt.Errorf("close scratch file: %w", err)
	}

	return c.Pre.Compile(ctx, scratchPath)
}

func readInput(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s not found: %w", path, fs.ErrNotExist)
		}
		return "", err
	}
	return string(data), nil
}
