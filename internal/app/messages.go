// Package app is the terminal front end: it turns key presses into browsing
// and playback actions and renders the session.
package app

import (
	"time"

	"github.com/llehouerou/saverino/internal/browse"
	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/errmsg"
	"github.com/llehouerou/saverino/internal/playback"
)

// TickMsg asks for a fresh session snapshot while playing.
type TickMsg time.Time

// SessionMsg carries a session snapshot taken off the UI goroutine.
type SessionMsg struct {
	Session playback.Session
	Track   *catalog.Track
	HasNext bool
	HasPrev bool
}

// SearchResultMsg is the outcome of a search or load-more fetch.
type SearchResultMsg struct {
	Result *browse.SearchResult
	More   bool // appended page
	Err    error
}

// ArtistResultMsg is the outcome of opening an artist.
type ArtistResultMsg struct {
	Result *browse.ArtistResult
	Err    error
}

// AlbumResultMsg is the outcome of opening an album.
type AlbumResultMsg struct {
	Result *browse.AlbumResult
	Err    error
}

// ActionDoneMsg reports the end of a playback action run off the UI
// goroutine. Err is nil on success.
type ActionDoneMsg struct {
	Op  errmsg.Op
	Err error
}

// ServiceStateMsg is sent when the playback state changes.
type ServiceStateMsg playback.StateChange

// ServiceTrackMsg is sent when the current track changes.
type ServiceTrackMsg playback.TrackChange

// ServiceQueueMsg is sent when the queue changes.
type ServiceQueueMsg playback.QueueChange

// ServiceActiveListMsg is sent when the active list is replaced or extended.
type ServiceActiveListMsg playback.ActiveListChange

// ServicePositionMsg is sent after a seek.
type ServicePositionMsg playback.PositionChange

// ServiceErrorMsg is sent when a playback primitive call fails.
type ServiceErrorMsg playback.ErrorEvent

// ServiceClosedMsg is sent when the playback service is closed.
type ServiceClosedMsg struct{}

// StatusClearMsg clears the status line if it still shows message ID.
type StatusClearMsg struct {
	ID int
}

// StatusDuration is how long a status message stays visible.
const StatusDuration = 4 * time.Second
