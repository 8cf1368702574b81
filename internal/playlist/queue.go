package playlist

import "github.com/llehouerou/saverino/internal/catalog"

// Queue is the snapshot of upcoming tracks derived from the active list at
// the moment a track starts playing.
//
// The queue is informational: navigation never reads it. When the active
// list is replaced without a new play, the queue keeps describing the old
// list until the next Build.
type Queue struct {
	list trackList
}

// NewQueue creates a new empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Build replaces the queue with every track after currentID in list.
// If currentID is not in the list the whole list is queued. An empty list
// leaves the queue untouched.
func (q *Queue) Build(list *ActiveList, currentID string) {
	if list == nil || list.Len() == 0 {
		return
	}
	idx := list.IndexOf(currentID)
	q.list.replace(list.list.tracks[idx+1:])
}

// Remove deletes the first queued track with id. The active list is not
// affected. Returns false if id is not queued.
func (q *Queue) Remove(id string) bool {
	return q.list.remove(q.list.indexOf(id))
}

// Clear removes all tracks.
func (q *Queue) Clear() {
	q.list.clear()
}

// Tracks returns a copy of the queued tracks.
func (q *Queue) Tracks() []catalog.Track {
	return q.list.snapshot()
}

// Len returns the number of queued tracks.
func (q *Queue) Len() int {
	return q.list.len()
}

// IsEmpty returns true if nothing is queued.
func (q *Queue) IsEmpty() bool {
	return q.list.len() == 0
}
