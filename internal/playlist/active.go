package playlist

import "github.com/llehouerou/saverino/internal/catalog"

// BrowsingContext identifies the view an active list was produced by.
type BrowsingContext int

const (
	ContextNone BrowsingContext = iota
	ContextSearch
	ContextArtist
	ContextAlbum
	ContextPlaylist
)

func (c BrowsingContext) String() string {
	switch c {
	case ContextNone:
		return "none"
	case ContextSearch:
		return "search"
	case ContextArtist:
		return "artist"
	case ContextAlbum:
		return "album"
	case ContextPlaylist:
		return "playlist"
	default:
		return "unknown"
	}
}

// Direction selects a neighbor in the active list.
type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

// ActiveList is the ordered list of tracks from the most recent browsing
// action. Next and previous navigation is computed against it.
//
// ActiveList is not safe for concurrent use; the playback service owns it.
type ActiveList struct {
	list     trackList
	context  BrowsingContext
	revision uint64
}

// NewActiveList creates an empty active list.
func NewActiveList() *ActiveList {
	return &ActiveList{}
}

// Set replaces the list wholesale with a copy of tracks. Nothing is merged or
// validated; duplicate ids are kept and lookups resolve to the first one.
func (a *ActiveList) Set(ctx BrowsingContext, tracks []catalog.Track) {
	a.list.replace(tracks)
	a.context = ctx
	a.revision++
}

// Append adds tracks to the end of the list without changing its context.
func (a *ActiveList) Append(tracks ...catalog.Track) {
	if len(tracks) == 0 {
		return
	}
	a.list.add(tracks...)
	a.revision++
}

// IndexOf returns the position of the first track with id, or -1.
func (a *ActiveList) IndexOf(id string) int {
	return a.list.indexOf(id)
}

// Find returns the first track with id.
func (a *ActiveList) Find(id string) (catalog.Track, bool) {
	return a.list.at(a.list.indexOf(id))
}

// Neighbor returns the track adjacent to id in direction dir.
// There is no wraparound, and an id not in the list has no neighbors.
func (a *ActiveList) Neighbor(id string, dir Direction) (catalog.Track, bool) {
	idx := a.list.indexOf(id)
	if idx < 0 {
		return catalog.Track{}, false
	}
	return a.list.at(idx + int(dir))
}

// At returns the track at index.
func (a *ActiveList) At(index int) (catalog.Track, bool) {
	return a.list.at(index)
}

// Tracks returns a copy of the list.
func (a *ActiveList) Tracks() []catalog.Track {
	return a.list.snapshot()
}

// Len returns the number of tracks.
func (a *ActiveList) Len() int {
	return a.list.len()
}

// Context returns the browsing context of the last Set.
func (a *ActiveList) Context() BrowsingContext {
	return a.context
}

// Revision is incremented on every change.
func (a *ActiveList) Revision() uint64 {
	return a.revision
}
