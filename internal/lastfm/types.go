package lastfm

import (
	"strings"
	"time"

	"github.com/llehouerou/saverino/internal/catalog"
)

// ScrobbleTrack contains track metadata for scrobbling.
type ScrobbleTrack struct {
	Artist    string
	Track     string
	Album     string
	Duration  time.Duration
	Timestamp time.Time // When playback started
}

// FromTrack builds the scrobble metadata for t. Last.fm takes a single
// artist, so only the first credited one is sent.
func FromTrack(t *catalog.Track, started time.Time) ScrobbleTrack {
	artist, _, _ := strings.Cut(t.PrimaryArtists, ",")
	return ScrobbleTrack{
		Artist:    strings.TrimSpace(artist),
		Track:     t.Name,
		Album:     t.AlbumName(),
		Duration:  t.Duration,
		Timestamp: started,
	}
}

// ScrobbleState tracks the scrobbling status of the current track.
type ScrobbleState struct {
	TrackID   string
	Track     ScrobbleTrack
	Played    time.Duration // accumulated playing time
	resumedAt time.Time     // zero while paused
	Scrobbled bool
}
