package player

import (
	"errors"
	"testing"
	"time"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Stopped, "Stopped"},
		{Playing, "Playing"},
		{Paused, "Paused"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("State.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestState_Predicates(t *testing.T) {
	tests := []struct {
		state     State
		active    bool
		canPause  bool
		canResume bool
	}{
		{Stopped, false, false, false},
		{Playing, true, true, false},
		{Paused, true, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.IsActive(); got != tt.active {
				t.Errorf("IsActive() = %v, want %v", got, tt.active)
			}
			if got := tt.state.CanPause(); got != tt.canPause {
				t.Errorf("CanPause() = %v, want %v", got, tt.canPause)
			}
			if got := tt.state.CanResume(); got != tt.canResume {
				t.Errorf("CanResume() = %v, want %v", got, tt.canResume)
			}
		})
	}
}

// TestMock_Transitions validates the documented state machine on the Mock.
func TestMock_Transitions(t *testing.T) {
	const url = "https://media.example/a.mp4"

	tests := []struct {
		name  string
		steps func(m *Mock)
		want  State
	}{
		{"initial", func(*Mock) {}, Stopped},
		{"play", func(m *Mock) { _ = m.Play(url) }, Playing},
		{"pause", func(m *Mock) { _ = m.Play(url); m.Pause() }, Paused},
		{"resume", func(m *Mock) { _ = m.Play(url); m.Pause(); m.Resume() }, Playing},
		{"stop while playing", func(m *Mock) { _ = m.Play(url); m.Stop() }, Stopped},
		{"stop while paused", func(m *Mock) { _ = m.Play(url); m.Pause(); m.Stop() }, Stopped},
		{"toggle playing", func(m *Mock) { _ = m.Play(url); m.Toggle() }, Paused},
		{"toggle paused", func(m *Mock) { _ = m.Play(url); m.Pause(); m.Toggle() }, Playing},
		{"toggle stopped", func(m *Mock) { m.Toggle() }, Stopped},
		{"pause stopped", func(m *Mock) { m.Pause() }, Stopped},
		{"resume stopped", func(m *Mock) { m.Resume() }, Stopped},
		{"resume playing", func(m *Mock) { _ = m.Play(url); m.Resume() }, Playing},
		{"finished", func(m *Mock) { _ = m.Play(url); m.SimulateFinished() }, Paused},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMock()
			tt.steps(m)
			if got := m.State(); got != tt.want {
				t.Errorf("State() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMock_FinishedKeepsSource(t *testing.T) {
	m := NewMock()
	m.SetDuration(3 * time.Minute)
	_ = m.Play("https://media.example/a.mp4")

	m.SimulateFinished()

	select {
	case <-m.FinishedChan():
	default:
		t.Fatal("FinishedChan was not signalled")
	}
	if !m.HasSource() {
		t.Error("HasSource() = false after finishing, want true")
	}
	if m.Position() != 3*time.Minute {
		t.Errorf("Position() = %v, want end of source", m.Position())
	}
}

func TestMock_PlayError(t *testing.T) {
	m := NewMock()
	wantErr := errors.New("boom")
	m.SetPlayError(wantErr)

	if err := m.Play("https://media.example/a.mp4"); !errors.Is(err, wantErr) {
		t.Errorf("Play() error = %v, want %v", err, wantErr)
	}
	if m.HasSource() {
		t.Error("HasSource() = true after failed Play")
	}
	if len(m.PlayCalls()) != 1 {
		t.Errorf("PlayCalls() = %v, want one call", m.PlayCalls())
	}
}
