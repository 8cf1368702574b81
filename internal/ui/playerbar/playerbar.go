// Package playerbar renders the now-playing bar.
package playerbar

import (
	"strings"
	"time"

	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/playback"
	"github.com/llehouerou/saverino/internal/ui/render"
	"github.com/llehouerou/saverino/internal/ui/styles"
)

// Height is the bar height: top border, content, bottom border.
const Height = 3

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	minBarWidth = 10
)

// State holds everything needed to render the player bar.
type State struct {
	Loaded   bool
	Playing  bool
	Title    string
	Artists  string
	Album    string
	Position time.Duration
	Duration time.Duration
	Quality  catalog.QualityTier
}

// NewState builds a State from the session snapshot and its current track.
func NewState(sess playback.Session, track *catalog.Track, quality catalog.QualityTier) State {
	s := State{Quality: quality}
	if track == nil || sess.CurrentTrackID == "" {
		return s
	}
	s.Loaded = true
	s.Playing = sess.IsPlaying
	s.Title = track.Name
	s.Artists = track.PrimaryArtists
	s.Album = track.AlbumName()
	s.Position = sess.Position
	s.Duration = sess.Duration
	if s.Duration <= 0 {
		s.Duration = track.Duration
	}
	return s
}

// Render returns the bar for the given outer width.
func Render(s State, width int) string {
	inner := max(width-6, 0)
	t := styles.T().S()

	if !s.Loaded {
		idle := t.Muted.Render("Nothing playing · " + s.Quality.String())
		return styles.PanelStyle(false).Padding(0, 2).Width(width - 2).Render(render.TruncateStyled(idle, inner))
	}

	status := playSymbol
	if !s.Playing {
		status = pauseSymbol
	}

	info := strings.Join(nonEmpty(s.Artists, s.Album), " · ")
	timeStr := render.Duration(s.Position) + " / " + render.Duration(s.Duration)
	right := status + "  " + ProgressBar(s.Position, s.Duration, minBarWidth) + "  " + timeStr + "  " + s.Quality.String()

	left := t.Title.Render(render.Sanitize(s.Title))
	if info != "" {
		left += "   " + t.Muted.Render(render.Sanitize(info))
	}

	return styles.PanelStyle(s.Playing).Padding(0, 2).Width(width - 2).Render(render.Row(left, t.Base.Render(right), inner))
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
