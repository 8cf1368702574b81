package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestUse(t *testing.T) {
	t.Cleanup(func() { Use(false) })

	Use(true)
	if T() != Light {
		t.Errorf("T() = %q after Use(true), want light", T().Name)
	}
	Use(false)
	if T() != Dark {
		t.Errorf("T() = %q after Use(false), want dark", T().Name)
	}
	if T().S() == nil {
		t.Error("S() = nil")
	}
}

func TestGradient_KeepsText(t *testing.T) {
	tests := []struct {
		name string
		text string
		from lipgloss.Color
		to   lipgloss.Color
	}{
		{"hex colors", "saverino", "#ff0000", "#0000ff"},
		{"single cluster", "s", "#ff0000", "#0000ff"},
		{"ansi colors fall back", "saverino", "39", "240"},
		{"wide graphemes", "音楽 ♪", "#ff0000", "#00ff00"},
		{"empty", "", "#ff0000", "#0000ff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Gradient(tt.text, tt.from, tt.to, false)
			if plain := ansi.Strip(got); plain != tt.text {
				t.Errorf("Gradient(%q) stripped = %q", tt.text, plain)
			}
		})
	}
}

func TestGraphemes(t *testing.T) {
	got := graphemes("éa")
	if len(got) != 2 {
		t.Errorf("graphemes() = %q, want 2 clusters", got)
	}
	if strings.Join(got, "") != "éa" {
		t.Errorf("graphemes() lost text: %q", got)
	}
}

func TestPanelStyle(t *testing.T) {
	if PanelStyle(true).GetBorderTopForeground() != T().BorderFocus {
		t.Error("focused panel should use BorderFocus")
	}
	if PanelStyle(false).GetBorderTopForeground() != T().Border {
		t.Error("unfocused panel should use Border")
	}
}
