package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/playback"
)

func TestNewState(t *testing.T) {
	track := &catalog.Track{
		ID:             "a",
		Name:           "Song",
		PrimaryArtists: "Artist",
		Album:          &catalog.AlbumRef{Name: "Album"},
		Duration:       4 * time.Minute,
	}

	tests := []struct {
		name       string
		sess       playback.Session
		track      *catalog.Track
		wantLoaded bool
		wantDur    time.Duration
	}{
		{"no track", playback.Session{}, nil, false, 0},
		{"session duration wins", playback.Session{CurrentTrackID: "a", Duration: 3 * time.Minute}, track, true, 3 * time.Minute},
		{"catalog duration fallback", playback.Session{CurrentTrackID: "a"}, track, true, 4 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(tt.sess, tt.track, catalog.Tier160kbps)
			if s.Loaded != tt.wantLoaded {
				t.Errorf("Loaded = %v, want %v", s.Loaded, tt.wantLoaded)
			}
			if s.Duration != tt.wantDur {
				t.Errorf("Duration = %v, want %v", s.Duration, tt.wantDur)
			}
		})
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name       string
		pos, dur   time.Duration
		wantFilled int
	}{
		{"start", 0, time.Minute, 0},
		{"half", 30 * time.Second, time.Minute, 5},
		{"end", time.Minute, time.Minute, 10},
		{"past end clamps", 2 * time.Minute, time.Minute, 10},
		{"unknown duration", 10 * time.Second, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ansi.Strip(ProgressBar(tt.pos, tt.dur, 10))
			if got := strings.Count(bar, filledBlock); got != tt.wantFilled {
				t.Errorf("filled = %d, want %d (%q)", got, tt.wantFilled, bar)
			}
			if w := ansi.StringWidth(bar); w != 10 {
				t.Errorf("width = %d, want 10", w)
			}
		})
	}
}

func TestRender(t *testing.T) {
	s := State{
		Loaded:   true,
		Playing:  false,
		Title:    "A Very Long Song Title That Keeps Going",
		Artists:  "Artist",
		Position: 75 * time.Second,
		Duration: 3 * time.Minute,
		Quality:  catalog.Tier320kbps,
	}

	out := Render(s, 80)
	lines := strings.Split(out, "\n")
	if len(lines) != Height {
		t.Fatalf("Render() has %d lines, want %d", len(lines), Height)
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 80 {
			t.Errorf("line %d width = %d, want 80", i, w)
		}
	}
	plain := ansi.Strip(out)
	for _, want := range []string{pauseSymbol, "1:15 / 3:00", "320kbps"} {
		if !strings.Contains(plain, want) {
			t.Errorf("Render() missing %q:\n%s", want, plain)
		}
	}
}

func TestRender_Idle(t *testing.T) {
	plain := ansi.Strip(Render(State{Quality: catalog.Tier96kbps}, 60))
	if !strings.Contains(plain, "Nothing playing") {
		t.Errorf("idle bar = %q", plain)
	}
}
