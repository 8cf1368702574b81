package tracklist

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/saverino/internal/catalog"
)

func makeTracks(n int) []catalog.Track {
	out := make([]catalog.Track, n)
	for i := range out {
		out[i] = catalog.Track{
			ID:             fmt.Sprintf("t%d", i),
			Name:           fmt.Sprintf("Song %d", i),
			PrimaryArtists: "Artist",
			Duration:       3 * time.Minute,
		}
	}
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newList(n, height int) Model {
	m := New("Results", "Nothing here")
	m.SetSize(60, height)
	m.SetFocused(true)
	m.SetTracks(makeTracks(n), true)
	return m
}

func TestUpdate_Navigation(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want int
	}{
		{"down", []string{"j"}, 1},
		{"down arrow", []string{"down", "down"}, 2},
		{"up clamps at top", []string{"k"}, 0},
		{"end", []string{"G"}, 19},
		{"end then down clamps", []string{"G", "j"}, 19},
		{"home", []string{"G", "g"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newList(20, 10)
			for _, k := range tt.keys {
				if !m.Update(key(k)) {
					t.Fatalf("key %q not consumed", k)
				}
			}
			if got := m.SelectedIndex(); got != tt.want {
				t.Errorf("SelectedIndex() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUpdate_IgnoredWhenUnfocused(t *testing.T) {
	m := newList(5, 10)
	m.SetFocused(false)
	if m.Update(key("j")) {
		t.Error("unfocused list consumed key")
	}
	if m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}) {
		t.Error("unknown key consumed")
	}
}

func TestSetTracks_KeepsSelectionOnAppend(t *testing.T) {
	m := newList(5, 10)
	m.Update(key("G"))
	if !m.AtBottom() {
		t.Fatal("AtBottom() = false after G")
	}

	m.SetTracks(makeTracks(10), false)
	if m.SelectedIndex() != 4 {
		t.Errorf("SelectedIndex() = %d after append, want 4", m.SelectedIndex())
	}

	m.SetTracks(makeTracks(2), false)
	if m.SelectedIndex() != 1 {
		t.Errorf("SelectedIndex() = %d after shrink, want 1", m.SelectedIndex())
	}

	m.SetTracks(makeTracks(3), true)
	if m.SelectedIndex() != 0 {
		t.Errorf("SelectedIndex() = %d after reset, want 0", m.SelectedIndex())
	}
}

func TestSelected_Empty(t *testing.T) {
	m := newList(0, 10)
	if _, ok := m.Selected(); ok {
		t.Error("Selected() ok on empty list")
	}
	if m.AtBottom() {
		t.Error("AtBottom() true on empty list")
	}
}

func TestCursor_ScrollsWithMargin(t *testing.T) {
	c := cursor{margin: 2}
	for range 7 {
		c.move(1, 20, 8)
	}
	start, end := c.visible(20, 8)
	if c.pos != 7 {
		t.Fatalf("pos = %d, want 7", c.pos)
	}
	if c.pos >= end-2 || c.pos < start {
		t.Errorf("pos %d not within margin of window [%d,%d)", c.pos, start, end)
	}

	c.jump(19, 20, 8)
	if _, end := c.visible(20, 8); end != 20 {
		t.Errorf("window end = %d at bottom, want 20", end)
	}
}

func TestView(t *testing.T) {
	m := newList(3, 10)
	m.SetPlaying("t1")

	view := m.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 5 {
		t.Fatalf("View() has %d lines, want header+separator+3", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w > 60 {
			t.Errorf("line %d width %d exceeds 60", i, w)
		}
	}
	if !strings.Contains(ansi.Strip(lines[3]), playingMarker) {
		t.Errorf("playing row missing marker: %q", ansi.Strip(lines[3]))
	}
	if !strings.Contains(ansi.Strip(lines[0]), "3 tracks") {
		t.Errorf("header = %q, want track count", ansi.Strip(lines[0]))
	}
}

func TestView_Empty(t *testing.T) {
	m := newList(0, 10)
	if !strings.Contains(ansi.Strip(m.View()), "Nothing here") {
		t.Errorf("View() = %q, want empty text", m.View())
	}

	var zero Model
	if zero.View() != "" {
		t.Error("zero-size View() should be empty")
	}
}
