package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// RoseOfDune is a complete palette definition with hex values lacking "#".
const RoseOfDune = `[meta]
name = "Rose of Dune"
id = "rose-of-dune"
type = "dark"

[base16]
base00 = "191724"
base01 = "1f1d2e"
base02 = "26233a"
base03 = "6e6a86"
base04 = "908caa"
base05 = "e0def4"
base06 = "e0def4"
base07 = "524f67"
base08 = "eb6f92"
base09 = "f6c177"
base0A = "ebbcba"
base0B = "31748f"
base0C = "9ccfd8"
base0D = "c4a7e7"
base0E = "f6c177"
base0F = "524f67"
`

// PaletteTOML renders a palette definition named name. Every base slot gets
// the same color; overrides are appended in key order when non-empty.
func PaletteTOML(name, color string, overrides map[string]string) string {
	var b strings.Builder
	slug := strings.ReplaceAll(strings.ToLower(name), " ", "-")
	fmt.Fprintf(&b, "[meta]\nname = %q\nid = %q\ntype = \"dark\"\n\n[base16]\n", name, slug)
	for i := 0; i < 16; i++ {
		fmt.Fprintf(&b, "base0%X = %q\n", i, color)
	}
	if len(overrides) > 0 {
		keys := make([]string, 0, len(overrides))
		for key := range overrides {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		b.WriteString("\n[overrides]\n")
		for _, key := range keys {
			fmt.Fprintf(&b, "%s = %q\n", key, overrides[key])
		}
	}
	return b.String()
}

// Workspace is a temporary project layout with themes/ and styles/.
type Workspace struct {
	Root      string
	ThemesDir string
	StylesDir string
}

// NewWorkspace creates an empty project layout under t.TempDir().
func NewWorkspace(t *testing.T) Workspace {
	t.Helper()

	root := t.TempDir()
	ws := Workspace{
		Root:      root,
		ThemesDir: filepath.Join(root, "themes"),
		StylesDir: filepath.Join(root, "styles"),
	}
	for _, dir := range []string{ws.ThemesDir, ws.StylesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("create %s: %v", dir, err)
		}
	}
	return ws
}

// WritePalette writes <themes>/<slug>.toml and returns its path.
func (ws Workspace) WritePalette(t *testing.T, slug, content string) string {
	t.Helper()
	return writeFile(t, filepath.Join(ws.ThemesDir, slug+".toml"), content)
}

// WriteTemplate writes <styles>/<site>/<file> and returns its path.
func (ws Workspace) WriteTemplate(t *testing.T, site, file, content string) string {
	t.Helper()
	return writeFile(t, filepath.Join(ws.StylesDir, site, file), content)
}

// WriteCompiled writes <styles>/<site>/<slug>.user.css and returns its path.
func (ws Workspace) WriteCompiled(t *testing.T, site, slug, content string) string {
	t.Helper()
	return writeFile(t, filepath.Join(ws.StylesDir, site, slug+".user.css"), content)
}

// SiteDirEntries lists the names in <styles>/<site>, including dotfiles.
func (ws Workspace) SiteDirEntries(t *testing.T, site string) []string {
	t.Helper()

	entries, err := os.ReadDir(filepath.Join(ws.StylesDir, site))
	if err != nil {
		t.Fatalf("read site dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// FakePreprocessor stands in for lessc. It returns the scratch file contents
// unchanged, or Err when set, and records every path it was given.
type FakePreprocessor struct {
	Err   error
	Calls []string
}

func (f *FakePreprocessor) Compile(ctx context.Context, path string) (string, error) {
	f.Calls = append(f.Calls, path)
	if f.Err != nil {
		return "", f.Err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
