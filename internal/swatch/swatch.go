// Package swatch renders palettes as colored terminal blocks.
package swatch

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/codr1/stylethemes/internal/models"
)

const (
	darkText  = "#000000"
	lightText = "#FFFFFF"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c757d"))
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
)

// TextColor picks black or white, whichever contrasts more with background.
// ok is false when background is not a parseable hex color.
func TextColor(background string) (string, bool) {
	bg, err := colorful.Hex(expandShortHex(models.NormalizeHex(strings.TrimSpace(background))))
	if err != nil {
		return "", false
	}
	dark, _ := colorful.Hex(darkText)
	light, _ := colorful.Hex(lightText)
	if contrast(bg, dark) >= contrast(bg, light) {
		return darkText, true
	}
	return lightText, true
}

// Render prints the palette header and one block per base slot.
func Render(p models.Palette) string {
	n := p.Normalized()

	var cells []string
	for _, key := range models.Base16Keys {
		value := n.Base16[key]
		label := strings.TrimPrefix(key, "base")
		fg, ok := TextColor(value)
		if !ok {
			cells = append(cells, cellStyle.Render(label+"?"))
			continue
		}
		cells = append(cells, cellStyle.
			Background(lipgloss.Color(expandShortHex(value))).
			Foreground(lipgloss.Color(fg)).
			Render(label))
	}

	header := titleStyle.Render(p.Name) + " " + mutedStyle.Render("("+p.Slug+", "+p.Type+")")
	return header + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func contrast(a, b colorful.Color) float64 {
	la, lb := luminance(a), luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func expandShortHex(value string) string {
	if len(value) != 4 || value[0] != '#' {
		return value
	}
	return string([]byte{'#', value[1], value[1], value[2], value[2], value[3], value[3]})
}
