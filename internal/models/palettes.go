// internal/models/palettes.go
package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidPalette is wrapped by Validate when required fields are missing.
var ErrInvalidPalette = errors.New("invalid palette")

var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Base16Keys lists the sixteen base slots in emission order.
var Base16Keys = []string{
	"base00", "base01", "base02", "base03",
	"base04", "base05", "base06", "base07",
	"base08", "base09", "base0A", "base0B",
	"base0C", "base0D", "base0E", "base0F",
}

// Override keys recognised in the [overrides] table.
const (
	OverridePrimary = "primary"
	OverrideAccent  = "accent"
	OverrideBorder  = "border"
)

// IsHexColor reports whether value is a #RGB or #RRGGBB color.
// It is used for display only; palettes are never rejected by it.
func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(value))
}

// NormalizeHex prepends "#" when missing. Anything else passes through unchanged.
func NormalizeHex(value string) string {
	if strings.HasPrefix(value, "#") {
		return value
	}
	return "#" + value
}

// Palette is one parsed theme definition.
type Palette struct {
	Slug      string            `json:"slug"`
	Name      string            `json:"name"`
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Source    string            `json:"source"`
	Base16    map[string]string `json:"base16"`
	Overrides map[string]string `json:"overrides,omitempty"`
}

func (p Palette) Validate() error {
	var missing []string
	if strings.TrimSpace(p.Name) == "" {
		missing = append(missing, "meta.name")
	}
	if strings.TrimSpace(p.ID) == "" {
		missing = append(missing, "meta.id")
	}
	if strings.TrimSpace(p.Type) == "" {
		missing = append(missing, "meta.type")
	}
	for _, key := range Base16Keys {
		if strings.TrimSpace(p.Base16[key]) == "" {
			missing = append(missing, "base16."+key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidPalette, strings.Join(missing, ", "))
	}
	return nil
}

// Normalized returns a copy with every base and override color "#"-prefixed.
func (p Palette) Normalized() Palette {
	out := p
	out.Base16 = make(map[string]string, len(p.Base16))
	for key, value := range p.Base16 {
		out.Base16[key] = NormalizeHex(value)
	}
	out.Overrides = make(map[string]string, len(p.Overrides))
	for key := range p.Overrides {
		out.Overrides[key] = p.Override(key, "")
	}
	return out
}

// Override returns the value for an override key as a LESS expression, or
// fallback when the key is absent. A bare slot name ("base0D") or an explicit
// variable ("@base0D") becomes a variable reference; anything else is
// treated as a color and normalized.
func (p Palette) Override(key, fallback string) string {
	value := strings.TrimSpace(p.Overrides[key])
	if value == "" {
		return fallback
	}
	if strings.HasPrefix(value, "@") {
		return value
	}
	if isBase16Key(value) {
		return "@" + value
	}
	return NormalizeHex(value)
}

func isBase16Key(value string) bool {
	for _, key := range Base16Keys {
		if key == value {
			return true
		}
	}
	return false
}
