// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/codr1/stylethemes/internal/bundle"
	"github.com/codr1/stylethemes/internal/models"
)

// DefaultPath is looked up in the working directory when no path is given.
const DefaultPath = "stylethemes.yaml"

type CompilerConfig struct {
	Command string        `yaml:"command"`
	Args    []string      `yaml:"args,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

type ImportConfig struct {
	Metadata bundle.Metadata      `yaml:"metadata"`
	Targets  []models.ExportTarget `yaml:"targets"`
	// Combined is the fixed style list for the single combined import file.
	Combined     []models.ExportTarget `yaml:"combined"`
	CombinedFile string                `yaml:"combined_file"`
}

type Config struct {
	Environment string `yaml:"environment"`

	ThemesDir string `yaml:"themes_dir"`
	StylesDir string `yaml:"styles_dir"`
	OutputDir string `yaml:"output_dir"`

	Compiler CompilerConfig      `yaml:"compiler"`
	Sites    []models.SiteTarget `yaml:"sites"`
	Import   ImportConfig        `yaml:"import"`
}

// Default reproduces the fixed layout: themes/ and styles/ relative to the
// working directory, bundles written next to them.
func Default() Config {
	return Config{
		Environment: "development",
		ThemesDir:   "themes",
		StylesDir:   "styles",
		OutputDir:   ".",
		Compiler: CompilerConfig{
			Command: "lessc",
		},
		Sites: []models.SiteTarget{
			{Name: "discord", File: "discord.user.less", DisplayName: "Discord"},
			{Name: "claude", File: "claude.user.less", DisplayName: "Claude.ai"},
			{Name: "mtools", File: "mtools.user.less", DisplayName: "MTools"},
			{Name: "all", File: "all.user.less", DisplayName: "All Sites"},
		},
		Import: ImportConfig{
			Metadata: bundle.Metadata{
				Author:    "yherrero",
				Namespace: "github.com/yherrero/stylus",
				Version:   "1.0.0",
			},
			Targets: []models.ExportTarget{
				{
					Site:        "all",
					DisplayName: "All Sites",
					Description: "theme for all supported websites (Discord, Claude.ai, MTools, Outlook, Teams)",
				},
			},
			Combined: []models.ExportTarget{
				{Site: "discord", DisplayName: "Discord", Description: "theme for Discord"},
				{Site: "claude", DisplayName: "Claude.ai", Description: "theme for Claude.ai"},
				{Site: "mtools", DisplayName: "MTools", Description: "theme for MTools"},
			},
			CombinedFile: "stylus-import.json",
		},
	}
}

// Load reads .env next to configPath, then the YAML file on top of Default.
// A missing config file is not an error.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultPath
	}

	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := Default()
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv("STYLETHEMES_ENV"); ok && value != "" {
		c.Environment = value
	}
	if value, ok := os.LookupEnv("STYLETHEMES_LESSC"); ok && value != "" {
		c.Compiler.Command = value
	}
}

func (c *Config) Validate() error {
	if c.ThemesDir == "" {
		return fmt.Errorf("themes_dir is required")
	}
	if c.StylesDir == "" {
		return fmt.Errorf("styles_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.Compiler.Command == "" {
		return fmt.Errorf("compiler command is required")
	}
	if c.Compiler.Timeout < 0 {
		return fmt.Errorf("compiler timeout must not be negative")
	}

	seen := make(map[string]bool, len(c.Sites))
	for _, site := range c.Sites {
		if err := site.Validate(); err != nil {
			return err
		}
		if seen[site.Name] {
			return fmt.Errorf("duplicate site: %s", site.Name)
		}
		seen[site.Name] = true
	}

	for _, target := range append(append([]models.ExportTarget{}, c.Import.Targets...), c.Import.Combined...) {
		if err := target.Validate(); err != nil {
			return err
		}
	}
	if len(c.Import.Combined) > 0 && c.Import.CombinedFile == "" {
		return fmt.Errorf("import combined_file is required when combined styles are listed")
	}
	return nil
}
