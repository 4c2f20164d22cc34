package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codr1/stylethemes/internal/builderr"
	"github.com/codr1/stylethemes/internal/bundle"
	"github.com/codr1/stylethemes/internal/config"
	"github.com/codr1/stylethemes/internal/models"
	"github.com/codr1/stylethemes/internal/pipeline"
	"github.com/codr1/stylethemes/internal/testutil"
)

const siteTemplate = "@preprocessor less\n/* {{THEME_NAME}} */\nbody { color: @text-primary; }\n"

func newConfig(t *testing.T, ws testutil.Workspace) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.ThemesDir = ws.ThemesDir
	cfg.StylesDir = ws.StylesDir
	cfg.OutputDir = filepath.Join(ws.Root, "dist")
	cfg.Sites = []models.SiteTarget{
		{Name: "discord", File: "discord.user.less"},
		{Name: "all", File: "all.user.less"},
	}
	cfg.Import.Targets = []models.ExportTarget{
		{Site: "discord", DisplayName: "Discord", Description: "theme for Discord"},
		{Site: "all", DisplayName: "All Sites", Description: "theme for all supported websites"},
	}
	cfg.Import.Combined = cfg.Import.Targets[:1]
	require.NoError(t, cfg.Validate())
	return &cfg
}

func TestBuildEndToEnd(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.WritePalette(t, "rose-of-dune", testutil.RoseOfDune)
	ws.WritePalette(t, "midnight", testutil.PaletteTOML("Midnight", "000000", map[string]string{"primary": "ff00ff"}))
	for _, site := range []string{"discord", "all"} {
		ws.WriteTemplate(t, site, site+".user.less", siteTemplate)
	}
	cfg := newConfig(t, ws)

	reports := pipeline.Build(context.Background(), cfg, &testutil.FakePreprocessor{})

	require.Len(t, reports, 3)
	assert.Equal(t, 2, reports[0].Succeeded)
	assert.Equal(t, 4, reports[1].Succeeded)
	assert.Equal(t, 4, reports[2].Succeeded)
	for _, r := range reports {
		assert.False(t, r.HasFailures(), "%s: %v", r.Job, r.Errors)
	}

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "rose-of-dune.json"))
	require.NoError(t, err)
	var entries []bundle.Entry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].ID)
	assert.Equal(t, 2, entries[1].ID)
	assert.Equal(t, "Discord - Rose of Dune", entries[0].Name)
	assert.Equal(t, "All Sites - Rose of Dune", entries[1].Name)
	assert.Contains(t, entries[0].SourceCode, "/* Rose of Dune */")
	assert.NotContains(t, entries[0].SourceCode, "@preprocessor")
}

func TestGenerateThemesSkipsBrokenPalette(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.WritePalette(t, "rose-of-dune", testutil.RoseOfDune)
	ws.WritePalette(t, "broken", "[meta]\nname = \"Broken\"\nid = \"broken\"\ntype = \"dark\"\n\n[base16]\nbase00 = \"000000\"\n")
	cfg := newConfig(t, ws)

	report := pipeline.GenerateThemes(cfg)

	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.True(t, errors.Is(report.Errors[0], builderr.ErrParse))
	assert.FileExists(t, filepath.Join(ws.ThemesDir, "rose-of-dune.less"))
	assert.NoFileExists(t, filepath.Join(ws.ThemesDir, "broken.less"))
}

func TestGenerateThemesMissingDir(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	cfg := newConfig(t, ws)
	cfg.ThemesDir = filepath.Join(ws.Root, "nope")

	report := pipeline.GenerateThemes(cfg)

	assert.Equal(t, 1, report.Failed)
	assert.True(t, errors.Is(report.Errors[0], builderr.ErrMissingInput))
}

func TestBuildStylesCountsPerPairFailures(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.WritePalette(t, "rose-of-dune", testutil.RoseOfDune)
	ws.WriteTemplate(t, "discord", "discord.user.less", siteTemplate)
	cfg := newConfig(t, ws)
	require.Equal(t, 1, pipeline.GenerateThemes(cfg).Succeeded)

	report := pipeline.BuildStyles(context.Background(), cfg, &testutil.FakePreprocessor{})

	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.Failed, "the all/ template is missing")
	assert.True(t, errors.Is(report.Errors[0], builderr.ErrMissingInput))
}

func TestBuildStylesCompilerFailureContinues(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.WritePalette(t, "rose-of-dune", testutil.RoseOfDune)
	ws.WritePalette(t, "midnight", testutil.PaletteTOML("Midnight", "000000", nil))
	for _, site := range []string{"discord", "all"} {
		ws.WriteTemplate(t, site, site+".user.less", siteTemplate)
	}
	cfg := newConfig(t, ws)
	pipeline.GenerateThemes(cfg)
	pre := &testutil.FakePreprocessor{Err: errors.New("lessc: exit status 1")}

	report := pipeline.BuildStyles(context.Background(), cfg, pre)

	assert.Equal(t, 0, report.Succeeded)
	assert.Equal(t, 4, report.Failed)
	assert.Len(t, pre.Calls, 4, "every pair is attempted")
	for _, err := range report.Errors {
		assert.True(t, errors.Is(err, builderr.ErrCompile))
	}
	assert.Equal(t, []string{"discord.user.less"}, ws.SiteDirEntries(t, "discord"))
}

func TestBuildStylesStopsWhenCancelled(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.WritePalette(t, "rose-of-dune", testutil.RoseOfDune)
	cfg := newConfig(t, ws)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pre := &testutil.FakePreprocessor{}
	report := pipeline.BuildStyles(ctx, cfg, pre)

	assert.Empty(t, pre.Calls)
	assert.True(t, errors.Is(report.Errors[0], context.Canceled))
}

func TestGenerateImportsSkipsMissingStylesheets(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.WritePalette(t, "rose-of-dune", testutil.RoseOfDune)
	ws.WritePalette(t, "midnight", testutil.PaletteTOML("Midnight", "000000", nil))
	ws.WriteCompiled(t, "all", "rose-of-dune", "body {}\n")
	cfg := newConfig(t, ws)

	report := pipeline.GenerateImports(cfg)

	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 3, report.Skipped)
	assert.False(t, report.HasFailures())
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "rose-of-dune.json"))
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, "midnight.json"))
}

func TestGenerateCombinedImport(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.WritePalette(t, "rose-of-dune", testutil.RoseOfDune)
	ws.WritePalette(t, "midnight", testutil.PaletteTOML("Midnight", "000000", nil))
	ws.WriteCompiled(t, "discord", "rose-of-dune", "a {}\n")
	ws.WriteCompiled(t, "discord", "midnight", "b {}\n")
	cfg := newConfig(t, ws)

	report := pipeline.GenerateCombinedImport(cfg)
	require.Equal(t, 2, report.Succeeded)

	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, cfg.Import.CombinedFile))
	require.NoError(t, err)
	var entries []bundle.Entry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "Discord - Midnight", entries[0].Name, "palettes are processed in file name order")
	assert.Equal(t, 2, entries[1].ID)
}

func TestReportRecord(t *testing.T) {
	var r pipeline.Report
	r.Record(builderr.New("import", "x", builderr.ErrMissingDependency, nil))
	r.Record(builderr.New("styles", "y", builderr.ErrCompile, nil))

	var total pipeline.Report
	total.Merge(r)
	total.Merge(r)

	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, 1, r.Failed)
	assert.Equal(t, 2, total.Failed)
	assert.Len(t, total.Errors, 4)
}
