// Package styles holds the light and dark palettes and the lipgloss styles
// built from them.
package styles

import (
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	Name string

	// Brand/accent colors
	Primary   lipgloss.Color // focused items, active states
	Secondary lipgloss.Color // secondary accent, end of the title gradient

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	// Backgrounds
	BgCursor lipgloss.Color // Cursor/selection highlight

	// Borders
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Playing lipgloss.Style // Currently playing track
	Cursor  lipgloss.Style // Cursor background highlight
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

// Dark is the default palette.
var Dark = newTheme(Theme{
	Name:        "dark",
	Primary:     lipgloss.Color("#1db954"),
	Secondary:   lipgloss.Color("#a78bfa"),
	FgBase:      lipgloss.Color("#d0d0d0"),
	FgMuted:     lipgloss.Color("#8a8a8a"),
	FgSubtle:    lipgloss.Color("#5c5c5c"),
	BgCursor:    lipgloss.Color("#2e2e2e"),
	Border:      lipgloss.Color("#4e4e4e"),
	BorderFocus: lipgloss.Color("#1db954"),
	Success:     lipgloss.Color("#42b883"),
	Error:       lipgloss.Color("#ff5555"),
	Warning:     lipgloss.Color("#f1a208"),
})

// Light suits terminals with a light background.
var Light = newTheme(Theme{
	Name:        "light",
	Primary:     lipgloss.Color("#138a3e"),
	Secondary:   lipgloss.Color("#6d28d9"),
	FgBase:      lipgloss.Color("#1f1f1f"),
	FgMuted:     lipgloss.Color("#5f5f5f"),
	FgSubtle:    lipgloss.Color("#9e9e9e"),
	BgCursor:    lipgloss.Color("#e4e4e4"),
	Border:      lipgloss.Color("#bcbcbc"),
	BorderFocus: lipgloss.Color("#138a3e"),
	Success:     lipgloss.Color("#15803d"),
	Error:       lipgloss.Color("#c62828"),
	Warning:     lipgloss.Color("#b45309"),
})

var current atomic.Pointer[Theme]

func init() {
	current.Store(Dark)
}

func newTheme(t Theme) *Theme {
	t.styles = t.buildStyles()
	return &t
}

// T returns the active theme.
func T() *Theme {
	return current.Load()
}

// Use activates the light palette when light is true, the dark one otherwise.
func Use(light bool) {
	if light {
		current.Store(Light)
		return
	}
	current.Store(Dark)
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Playing: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
}
