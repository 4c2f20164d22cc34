package models

import "fmt"

// SiteTarget is one website a stylesheet is compiled for. Its template lives
// at <styles>/<Name>/<File>.
type SiteTarget struct {
	Name        string `yaml:"name"`
	File        string `yaml:"file"`
	DisplayName string `yaml:"display_name,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// ExportTarget selects a compiled site stylesheet for the import bundle.
type ExportTarget struct {
	Site        string `yaml:"site"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
}

func (s SiteTarget) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("site name is required")
	}
	if s.File == "" {
		return fmt.Errorf("site %q: template file is required", s.Name)
	}
	return nil
}

func (e ExportTarget) Validate() error {
	if e.Site == "" {
		return fmt.Errorf("export target site is required")
	}
	if e.DisplayName == "" {
		return fmt.Errorf("export target %q: display name is required", e.Site)
	}
	return nil
}

// StyleName is the bundle entry name for palette name.
func (e ExportTarget) StyleName(paletteName string) string {
	return e.DisplayName + " - " + paletteName
}

// StyleDescription is the bundle entry description for palette name.
func (e ExportTarget) StyleDescription(paletteName string) string {
	return paletteName + " " + e.Description
}
