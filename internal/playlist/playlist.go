// Package playlist holds the ordered track lists the player navigates: the
// active list the user is browsing and the queue derived from it.
package playlist

import "github.com/llehouerou/saverino/internal/catalog"

// trackList holds an ordered collection of tracks.
type trackList struct {
	tracks []catalog.Track
}

// replace swaps the contents for a copy of tracks.
func (l *trackList) replace(tracks []catalog.Track) {
	l.tracks = make([]catalog.Track, len(tracks))
	copy(l.tracks, tracks)
}

// add appends tracks to the list.
func (l *trackList) add(tracks ...catalog.Track) {
	l.tracks = append(l.tracks, tracks...)
}

// remove removes the track at the given index.
// Returns false if index is out of bounds.
func (l *trackList) remove(index int) bool {
	if index < 0 || index >= len(l.tracks) {
		return false
	}
	l.tracks = append(l.tracks[:index], l.tracks[index+1:]...)
	return true
}

func (l *trackList) clear() {
	l.tracks = l.tracks[:0]
}

// indexOf returns the position of the first track with id, or -1.
func (l *trackList) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range l.tracks {
		if l.tracks[i].ID == id {
			return i
		}
	}
	return -1
}

// at returns the track at index.
func (l *trackList) at(index int) (catalog.Track, bool) {
	if index < 0 || index >= len(l.tracks) {
		return catalog.Track{}, false
	}
	return l.tracks[index], true
}

// snapshot returns a copy of all tracks.
func (l *trackList) snapshot() []catalog.Track {
	result := make([]catalog.Track, len(l.tracks))
	copy(result, l.tracks)
	return result
}

func (l *trackList) len() int {
	return len(l.tracks)
}
