package player

import (
	"time"

	"github.com/gopxl/beep/v2/speaker"
)

// Stop stops playback and releases the source.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.release()
	p.state = Stopped
}

// Pause pauses playback.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.settle()
	if !p.state.CanPause() || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

// Resume resumes paused playback. A source that has ended restarts from
// the beginning.
func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.settle()
	if !p.state.CanResume() || p.ctrl == nil {
		return
	}
	if p.ended.Load() {
		speaker.Lock()
		_ = p.streamer.Seek(0)
		p.ctrl.Paused = false
		speaker.Unlock()
		p.start()
	} else {
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
	}
	p.state = Playing
}

// Toggle toggles between playing and paused states.
func (p *Player) Toggle() {
	p.mu.Lock()
	p.settle()
	state := p.state
	p.mu.Unlock()

	switch state {
	case Playing:
		p.Pause()
	case Paused:
		p.Resume()
	case Stopped:
		// Nothing to toggle when stopped
	}
}

// State returns the current state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.settle()
	return p.state
}

// HasSource reports whether a source is loaded, including one that has ended.
func (p *Player) HasSource() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.streamer != nil
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return 0
	}
	if p.ended.Load() {
		return p.duration
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.streamer.Position())
	speaker.Unlock()
	return pos
}

// Duration returns the length of the current source, or 0 when unknown.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.duration
}

// SeekTo moves playback to pos, clamped to the source length.
// Seeking an ended source re-arms it paused at pos.
func (p *Player) SeekTo(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return
	}
	pos = max(min(pos, p.duration), 0)
	sample := p.format.SampleRate.N(pos)

	p.settle()
	if p.ended.Load() {
		speaker.Lock()
		_ = p.streamer.Seek(sample)
		p.ctrl.Paused = true
		speaker.Unlock()
		p.start()
		return
	}

	speaker.Lock()
	_ = p.streamer.Seek(sample)
	speaker.Unlock()
}
