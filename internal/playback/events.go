package playback

import (
	"time"

	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/playlist"
)

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when a track starts playing.
//
// Emitted by Play, PlayTrack, Next and Previous, and when a finished track
// advances automatically. Replaying the same id emits it again.
//
// The app handles track-related side effects (notifications, scrobbling,
// MPRIS metadata) in response to this event.
type TrackChange struct {
	Previous *catalog.Track
	Current  *catalog.Track
}

// QueueChange is emitted when the queue contents change.
type QueueChange struct {
	Tracks []catalog.Track
}

// ActiveListChange is emitted each time the active list is replaced or
// extended. It marks the exact point where navigation scope changes.
type ActiveListChange struct {
	Context  playlist.BrowsingContext
	Tracks   []catalog.Track
	Revision uint64
}

// PositionChange is emitted when a seek occurs.
type PositionChange struct {
	Position time.Duration
}

// ErrorEvent is emitted when the playback primitive rejects an operation.
type ErrorEvent struct {
	Operation string // e.g. "play"
	TrackID   string
	Err       error
}
