// Package playback owns the playback session: the active list, the queue
// derived from it, the selected quality tier and the playback primitive.
package playback

import (
	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/playlist"
)

// Service defines the playback service contract. All methods are safe for
// concurrent use.
type Service interface {
	// Active list
	SetActiveList(ctx playlist.BrowsingContext, tracks []catalog.Track)
	AppendToActiveList(tracks []catalog.Track)

	// Playback control
	Play(trackID, url string) error // empty url is a silent no-op
	PlayTrack(track catalog.Track) error
	TogglePlayPause()
	Next() error
	Previous() error
	Seek(fraction float64)
	Reset()

	// Queue
	RemoveFromQueue(trackID string) bool

	// Quality
	Quality() catalog.QualityTier
	SetQuality(tier catalog.QualityTier) error

	// State queries
	State() State
	Session() Session
	CurrentTrack() *catalog.Track
	Queue() []catalog.Track
	ActiveList() []catalog.Track
	ActiveContext() playlist.BrowsingContext
	HasNext() bool
	HasPrevious() bool

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}
