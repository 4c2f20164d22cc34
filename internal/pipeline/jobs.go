// Package pipeline runs the batch jobs over every discovered palette.
//
// Jobs are sequential and never stop on a per-item failure: each item is
// attempted, failures are logged and tallied in a Report.
package pipeline

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/codr1/stylethemes/internal/bundle"
	"github.com/codr1/stylethemes/internal/compile"
	"github.com/codr1/stylethemes/internal/config"
	"github.com/codr1/stylethemes/internal/lessgen"
	"github.com/codr1/stylethemes/internal/models"
	"github.com/codr1/stylethemes/internal/palettes"
)

// GenerateThemes writes <slug>.less for every palette definition.
func GenerateThemes(cfg *config.Config) Report {
	report := Report{Job: "themes"}

	files, err := palettes.Discover(cfg.ThemesDir)
	if err != nil {
		log.Error().Err(err).Msg("Cannot list palettes")
		report.Fail(err)
		return report
	}
	if len(files) == 0 {
		log.Info().Str("dir", cfg.ThemesDir).Msg("No palette files found")
		return report
	}

	log.Info().Int("count", len(files)).Msg("Generating variable sheets")
	for _, file := range files {
		p, err := palettes.LoadFile(file)
		if err != nil {
			log.Error().Err(err).Str("file", filepath.Base(file)).Msg("Error processing palette")
			report.Fail(err)
			continue
		}

		path, err := lessgen.WriteSheet(cfg.ThemesDir, p)
		if err != nil {
			log.Error().Err(err).Str("file", filepath.Base(file)).Msg("Error writing variable sheet")
			report.Fail(err)
			continue
		}

		log.Info().Str("palette", filepath.Base(file)).Str("sheet", filepath.Base(path)).Msg("Generated")
		report.Succeeded++
	}
	return report
}

// BuildStyles compiles every palette x site pair.
func BuildStyles(ctx context.Context, cfg *config.Config, pre compile.Preprocessor) Report {
	report := Report{Job: "styles"}

	list := loadPalettes(cfg, &report)
	if len(list) == 0 {
		return report
	}

	compiler := compile.New(cfg.StylesDir, cfg.ThemesDir, pre)
	for _, p := range list {
		log.Info().Str("palette", p.Name).Msg("Building styles")
		for _, site := range cfg.Sites {
			if err := ctx.Err(); err != nil {
				log.Warn().Err(err).Msg("Build interrupted")
				report.Fail(err)
				return report
			}

			out, err := compiler.Build(ctx, p, site)
			if err != nil {
				log.Error().Err(err).Str("palette", p.Slug).Str("site", site.Name).Msg("Error building style")
				report.Fail(err)
				continue
			}
			log.Info().Str("site", site.Name).Str("output", filepath.Base(out)).Msg("Built")
			report.Succeeded++
		}
	}
	return report
}

// GenerateImports writes one <slug>.json bundle per palette into the
// output directory.
func GenerateImports(cfg *config.Config) Report {
	report := Report{Job: "import"}

	list := loadPalettes(cfg, &report)
	if len(list) == 0 {
		return report
	}

	builder := &bundle.Builder{
		StylesDir: cfg.StylesDir,
		Meta:      cfg.Import.Metadata,
		Targets:   cfg.Import.Targets,
	}
	for _, p := range list {
		log.Info().Str("palette", p.Name).Msg("Processing import")
		entries, errs := builder.ForPalette(p)
		for _, err := range errs {
			report.Record(err)
		}
		if len(entries) == 0 {
			log.Info().Str("palette", p.Slug).Msg("No styles found, skipping")
			continue
		}
		writeBundle(&report, bundle.PalettePath(cfg.OutputDir, p.Slug), entries)
	}
	return report
}

// GenerateCombinedImport writes a single bundle holding the configured
// combined style list for every palette.
func GenerateCombinedImport(cfg *config.Config) Report {
	report := Report{Job: "import-combined"}

	list := loadPalettes(cfg, &report)
	if len(list) == 0 {
		return report
	}

	builder := &bundle.Builder{StylesDir: cfg.StylesDir, Meta: cfg.Import.Metadata}
	entries, errs := builder.Combined(list, cfg.Import.Combined)
	for _, err := range errs {
		report.Record(err)
	}
	if len(entries) == 0 {
		log.Info().Msg("No styles found, skipping combined import")
		return report
	}
	writeBundle(&report, filepath.Join(cfg.OutputDir, cfg.Import.CombinedFile), entries)
	return report
}

// Build runs themes, styles and import in order.
func Build(ctx context.Context, cfg *config.Config, pre compile.Preprocessor) []Report {
	reports := []Report{GenerateThemes(cfg)}
	reports = append(reports, BuildStyles(ctx, cfg, pre))
	if ctx.Err() != nil {
		return reports
	}
	return append(reports, GenerateImports(cfg))
}

func writeBundle(report *Report, path string, entries []bundle.Entry) {
	if err := bundle.Write(path, entries); err != nil {
		log.Error().Err(err).Str("output", path).Msg("Error writing import bundle")
		report.Fail(err)
		return
	}
	log.Info().Str("output", path).Int("styles", len(entries)).Msg("Generated")
	report.Succeeded += len(entries)
}

func loadPalettes(cfg *config.Config, report *Report) []models.Palette {
	list, errs := palettes.LoadAll(cfg.ThemesDir)
	for _, err := range errs {
		report.Fail(err)
	}
	if len(list) == 0 && len(errs) == 0 {
		log.Info().Str("dir", cfg.ThemesDir).Msg("No palette files found")
		return nil
	}
	names := make([]string, 0, len(list))
	for _, p := range list {
		names = append(names, p.Name)
	}
	log.Info().Strs("palettes", names).Msgf("Found %d palette(s)", len(list))
	return list
}
