package render

import (
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "Tum Hi Ho", "Tum Hi Ho"},
		{"control chars", "a\x00b\x1bc", "abc"},
		{"tab kept", "a\tb", "a\tb"},
		{"nbsp", "a\u00a0b", "a b"},
		{"invalid utf8", "a\xffb", "ab"},
		{"unicode", "Kesariya ♪ केसरिया", "Kesariya ♪ केसरिया"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello w…"},
		{"zero width", "hello", 0, ""},
		{"wide chars", "日本語テキスト", 7, "日本語…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxWidth); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateStyled(t *testing.T) {
	styled := "\x1b[1mhello world\x1b[0m"
	got := TruncateStyled(styled, 6)
	if w := ansi.StringWidth(got); w != 6 {
		t.Errorf("width = %d, want 6", w)
	}
	if plain := ansi.Strip(got); plain != "hello…" {
		t.Errorf("stripped = %q, want %q", plain, "hello…")
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 4, "abc…"},
		{"", 3, "   "},
	}

	for _, tt := range tests {
		if got := Fit(tt.input, tt.width); got != tt.want {
			t.Errorf("Fit(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
		}
	}
}

func TestRow(t *testing.T) {
	tests := []struct {
		name        string
		left, right string
		width       int
		wantWidth   int
	}{
		{"fits", "left", "right", 20, 20},
		{"tight", "left", "right", 10, 10},
		{"left truncated", "a very long left side", "1:23", 12, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Row(tt.left, tt.right, tt.width)
			if w := ansi.StringWidth(got); w != tt.wantWidth {
				t.Errorf("Row() width = %d, want %d (%q)", w, tt.wantWidth, got)
			}
		})
	}
}

func TestSeparator(t *testing.T) {
	if got := Separator(3); got != "───" {
		t.Errorf("Separator(3) = %q", got)
	}
	if got := Separator(-1); got != "" {
		t.Errorf("Separator(-1) = %q, want empty", got)
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "--:--"},
		{-time.Second, "--:--"},
		{5 * time.Second, "0:05"},
		{3*time.Minute + 58*time.Second, "3:58"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
		{1500 * time.Millisecond, "0:02"},
	}

	for _, tt := range tests {
		if got := Duration(tt.in); got != tt.want {
			t.Errorf("Duration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	if got := Age(now.Add(-3*24*time.Hour), now); got != "3 days ago" {
		t.Errorf("Age() = %q, want %q", got, "3 days ago")
	}
	if got := Age(time.Time{}, now); got != "" {
		t.Errorf("Age(zero) = %q, want empty", got)
	}
}

func TestCount(t *testing.T) {
	if got := Count(1, "track"); got != "1 track" {
		t.Errorf("Count(1) = %q", got)
	}
	if got := Count(1204, "track"); got != "1,204 tracks" {
		t.Errorf("Count(1204) = %q", got)
	}
	if got := Count(0, "track"); got != "0 tracks" {
		t.Errorf("Count(0) = %q", got)
	}
}
