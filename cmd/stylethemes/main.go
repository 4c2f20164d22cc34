// cmd/stylethemes/main.go
package main

import (
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/codr1/stylethemes/internal/config"
	"github.com/codr1/stylethemes/internal/pipeline"
)

var (
	configPath string
	strict     bool
	verbose    bool

	cfg *config.Config
)

// errPartialFailure is returned in --strict mode when any item failed.
var errPartialFailure = errors.New("one or more items failed")

var rootCmd = &cobra.Command{
	Use:           "stylethemes",
	Short:         "Generate Stylus themes from base16 palettes",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `stylethemes expands TOML palette definitions into LESS variable sheets,
compiles them against per-site templates and packages the results as
Stylus import bundles.

Run from the project root; palettes are read from themes/ and site
templates from styles/ unless stylethemes.yaml says otherwise.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		setupLogger(cfg.Environment, verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the optional YAML config file")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Exit non-zero when any item fails")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func setupLogger(environment string, verbose bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

// finish logs the tally of every report and applies --strict.
func finish(reports ...pipeline.Report) error {
	var total pipeline.Report
	for _, report := range reports {
		log.Info().EmbedObject(report).Msg("Done")
		total.Merge(report)
	}
	if strict && total.HasFailures() {
		return errPartialFailure
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("stylethemes failed")
		os.Exit(1)
	}
}
