package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/codr1/stylethemes/internal/compile"
	"github.com/codr1/stylethemes/internal/config"
	"github.com/codr1/stylethemes/internal/palettes"
	"github.com/codr1/stylethemes/internal/pipeline"
	"github.com/codr1/stylethemes/internal/swatch"
)

var combined bool

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "Generate LESS variable sheets from every palette in themes/",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return finish(pipeline.GenerateThemes(cfg))
	},
}

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "Compile every palette x site stylesheet into styles/<site>/<palette>.user.css",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()
		return finish(pipeline.BuildStyles(ctx, cfg, newPreprocessor(cfg)))
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Generate Stylus import bundles from the compiled stylesheets",
	Long: `Generate one <palette>.json import bundle per palette.

With --combined a single bundle holding the configured combined style
list for every palette is written instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if combined {
			return finish(pipeline.GenerateCombinedImport(cfg))
		}
		return finish(pipeline.GenerateImports(cfg))
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run themes, styles and import in order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()
		return finish(pipeline.Build(ctx, cfg, newPreprocessor(cfg))...)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every palette as a color swatch",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list, errs := palettes.LoadAll(cfg.ThemesDir)
		for _, p := range list {
			fmt.Fprintln(cmd.OutOrStdout(), swatch.Render(p))
			fmt.Fprintln(cmd.OutOrStdout())
		}
		report := pipeline.Report{Job: "list", Succeeded: len(list)}
		for _, err := range errs {
			report.Fail(err)
		}
		return finish(report)
	},
}

func init() {
	importCmd.Flags().BoolVar(&combined, "combined", false, "Write a single combined bundle instead of one per palette")

	rootCmd.AddCommand(themesCmd, stylesCmd, importCmd, buildCmd, listCmd)
}

func newPreprocessor(cfg *config.Config) compile.Preprocessor {
	return compile.Lessc{
		Command: cfg.Compiler.Command,
		Args:    cfg.Compiler.Args,
		Timeout: cfg.Compiler.Timeout,
	}
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
