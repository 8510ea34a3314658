package formatter

import (
	"fmt"
	"strings"

	"github.com/bakeryops/ovenplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
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

// StateBadge renders a cascade state with its lifecycle color.
func StateBadge(state domain.CascadeState) string {
	switch state {
	case domain.CascadeCommitted:
		return StyleGreen.Render(string(state))
	case domain.CascadePlaced, domain.CascadeRedistributed:
		return StyleBlue.Render(string(state))
	case domain.CascadeDeleted:
		return StyleRed.Render(string(state))
	default:
		return StyleDim.Render(string(state))
	}
}

// ModeBadge renders a processing mode in a muted color.
func ModeBadge(mode domain.ProcessingMode) string {
	switch mode {
	case domain.ModeParallel:
		return StylePurple.Render(string(mode))
	case domain.ModeHybrid:
		return StyleBlue.Render(string(mode))
	default:
		return StyleDim.Render(string(mode))
	}
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}
