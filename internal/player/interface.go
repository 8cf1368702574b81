package player

import "time"

// Interface defines the playback primitive: it plays one remote media URL at a
// time and reports position and completion.
type Interface interface {
	Play(url string) error
	Pause()
	Resume()
	Toggle()
	Stop()
	State() State
	HasSource() bool
	Position() time.Duration
	Duration() time.Duration
	SeekTo(pos time.Duration)
	FinishedChan() <-chan struct{}
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
