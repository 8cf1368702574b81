package playback

import "time"

// State represents the playback state.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// Session is a point-in-time view of the playback session for the
// presentation layer.
type Session struct {
	CurrentTrackID string // empty until a track has loaded
	IsPlaying      bool
	Position       time.Duration
	Duration       time.Duration // 0 while unknown
}

// Progress returns the position as a fraction of the duration, or 0.
func (s Session) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return min(float64(s.Position)/float64(s.Duration), 1)
}
