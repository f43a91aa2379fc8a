package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/coach/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// variantColors follow each language's brand color.
var variantColors = map[domain.Variant]lipgloss.Color{
	domain.VariantPython:     lipgloss.Color("#3776ab"),
	domain.VariantJavaScript: lipgloss.Color("#f7df1e"),
	domain.VariantJava:       lipgloss.Color("#ed8b00"),
	domain.VariantCpp:        lipgloss.Color("#00599c"),
}

// VariantBadge renders a colored "● Python" style indicator.
func VariantBadge(v domain.Variant) string {
	c, ok := variantColors[v]
	if !ok {
		return StyleDim.Render("● " + string(v))
	}
	return lipgloss.NewStyle().Foreground(c).Render("●") + " " + StyleBold.Render(v.DisplayName())
}

// SurfacePill renders the chat surface state.
func SurfacePill(s domain.SurfaceState) string {
	switch s {
	case domain.SurfaceOpen:
		return StyleGreen.Render("● open")
	case domain.SurfaceMinimized:
		return StyleYellow.Render("▁ minimized")
	default:
		return StyleDim.Render("○ closed")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
