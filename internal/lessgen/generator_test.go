package lessgen

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codr1/stylethemes/internal/models"
	"github.com/codr1/stylethemes/internal/palettes"
	"github.com/codr1/stylethemes/internal/testutil"
)

func roseOfDune(t *testing.T) models.Palette {
	t.Helper()
	p, err := palettes.Parse("rose-of-dune", "rose-of-dune.toml", []byte(testutil.RoseOfDune))
	require.NoError(t, err)
	return p
}

func TestGenerateIsDeterministic(t *testing.T) {
	p := roseOfDune(t)

	first, err := Generate(p)
	require.NoError(t, err)
	second, err := Generate(p)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateHeader(t *testing.T) {
	sheet, err := Generate(roseOfDune(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(sheet, "// ====="))
	assert.Contains(t, sheet, "// Rose of Dune - Auto-generated from rose-of-dune.toml\n")
	assert.Contains(t, sheet, "// DO NOT EDIT DIRECTLY")
	assert.Contains(t, sheet, "@theme-name: \"Rose of Dune\";\n")
	assert.Contains(t, sheet, "@theme-id: \"rose-of-dune\";\n")
	assert.Contains(t, sheet, "@theme-type: \"dark\";\n")
}

func TestGenerateNormalizesBaseColors(t *testing.T) {
	p := roseOfDune(t)
	p.Base16["base01"] = "#1f1d2e"

	sheet, err := Generate(p)
	require.NoError(t, err)

	assert.Contains(t, sheet, "@base00: #191724;  // Default Background\n")
	assert.Contains(t, sheet, "@base01: #1f1d2e;  // Lighter Background (panels, cards)\n")
	assert.NotContains(t, sheet, "##")
	assert.Equal(t, "191724", p.Base16["base00"], "input must not be mutated")
}

func TestGenerateBaseOrder(t *testing.T) {
	sheet, err := Generate(roseOfDune(t))
	require.NoError(t, err)

	last := -1
	for _, key := range models.Base16Keys {
		idx := strings.Index(sheet, "\n@"+key+": ")
		require.NotEqual(t, -1, idx, "missing %s", key)
		assert.Greater(t, idx, last, "%s out of order", key)
		last = idx
	}
}

func TestGenerateOverrideFallbacks(t *testing.T) {
	sheet, err := Generate(roseOfDune(t))
	require.NoError(t, err)

	assert.Contains(t, sheet, "@primary: @base0E;\n")
	assert.Contains(t, sheet, "@accent: @base0D;\n")
	assert.Contains(t, sheet, "@border-color: @base01;\n")
}

func TestGenerateOverrides(t *testing.T) {
	p := roseOfDune(t)
	p.Overrides = map[string]string{
		models.OverridePrimary: "ebbcba",
		models.OverrideAccent:  "#9ccfd8",
		models.OverrideBorder:  "base02",
	}

	sheet, err := Generate(p)
	require.NoError(t, err)

	assert.Contains(t, sheet, "@primary: #ebbcba;\n")
	assert.Contains(t, sheet, "@accent: #9ccfd8;\n")
	assert.Contains(t, sheet, "@border-color: @base02;\n")
}

func TestGenerateMalformedColorPassesThrough(t *testing.T) {
	p := roseOfDune(t)
	p.Base16["base08"] = "notacolor"

	sheet, err := Generate(p)
	require.NoError(t, err)

	assert.Contains(t, sheet, "@base08: #notacolor;")
}

func TestGenerateFixedTables(t *testing.T) {
	sheet, err := Generate(roseOfDune(t))
	require.NoError(t, err)

	for _, line := range []string{
		"@bg-primary: @base00;\n",
		"@text-primary: @base05;\n",
		"@color-success: @base0C;\n",
		"@syntax-deprecated: @base0F;\n",
		"@focus-ring: fade(@primary, 50%);\n",
		"\n// Scrollbar colors\n@scrollbar-track: @bg-secondary;\n",
		"@card-shadow: fade(@base05, 10%);\n",
		"@code-text: @base08;\n",
		".apply-scrollbar() {\n",
		".apply-focus-ring() {\n",
		".apply-card() {\n",
	} {
		assert.Contains(t, sheet, line)
	}

	for _, name := range VariableNames() {
		assert.Equal(t, 1, strings.Count(sheet, "\n@"+name+": "), "variable %s must be defined exactly once", name)
	}
}

func TestGenerateOnlyBaseBlockDiffers(t *testing.T) {
	a, err := Generate(roseOfDune(t))
	require.NoError(t, err)

	other, err := palettes.Parse("rose-of-dune", "rose-of-dune.toml", []byte(strings.ReplaceAll(testutil.RoseOfDune, "191724", "000000")))
	require.NoError(t, err)
	b, err := Generate(other)
	require.NoError(t, err)

	marker := "// Overrides (from TOML)"
	assert.NotEqual(t, a, b)
	assert.Equal(t, a[strings.Index(a, marker):], b[strings.Index(b, marker):])
}

func TestGenerateRejectsIncompletePalette(t *testing.T) {
	p := roseOfDune(t)
	delete(p.Base16, "base0A")

	_, err := Generate(p)
	assert.True(t, errors.Is(err, models.ErrInvalidPalette))
}

func TestWriteSheetOverwrites(t *testing.T) {
	dir := t.TempDir()
	p := roseOfDune(t)
	stale := SheetPath(dir, p.Slug)
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0o644))

	path, err := WriteSheet(dir, p)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "rose-of-dune.less"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := Generate(p)
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}
