package playback

import (
	"testing"
	"testing/synctest"
	"time"

	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/playlist"
)

func TestNewSubscription_ChannelsReadable(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sub := newSubscription()

		send(sub.stateCh, StateChange{Previous: StateStopped, Current: StatePlaying})
		send(sub.trackCh, TrackChange{Current: &catalog.Track{ID: "x"}})
		send(sub.positionCh, PositionChange{Position: 30 * time.Second})
		send(sub.queueCh, QueueChange{Tracks: []catalog.Track{{ID: "q"}}})
		send(sub.activeCh, ActiveListChange{Context: playlist.ContextAlbum, Revision: 3})

		if e := <-sub.StateChanged; e.Current != StatePlaying {
			t.Errorf("StateChanged.Current = %v, want Playing", e.Current)
		}
		if tr := <-sub.TrackChanged; tr.Current == nil || tr.Current.ID != "x" {
			t.Errorf("TrackChanged.Current = %+v, want x", tr.Current)
		}
		if pos := <-sub.PositionChanged; pos.Position != 30*time.Second {
			t.Errorf("PositionChanged.Position = %v, want 30s", pos.Position)
		}
		if q := <-sub.QueueChanged; len(q.Tracks) != 1 || q.Tracks[0].ID != "q" {
			t.Errorf("QueueChanged.Tracks = %v", q.Tracks)
		}
		if a := <-sub.ActiveListChanged; a.Context != playlist.ContextAlbum || a.Revision != 3 {
			t.Errorf("ActiveListChanged = %+v", a)
		}
	})
}

func TestSubscription_DropsWhenFull(t *testing.T) {
	sub := newSubscription()

	for range eventBufferSize + 5 {
		send(sub.stateCh, StateChange{Current: StatePlaying})
	}

	if len(sub.StateChanged) != eventBufferSize {
		t.Errorf("buffered = %d, want %d", len(sub.StateChanged), eventBufferSize)
	}
}

func TestSubscription_Close(t *testing.T) {
	sub := newSubscription()

	sub.close()

	select {
	case <-sub.Done:
	default:
		t.Error("Done should be closed")
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateStopped, "Stopped"},
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{State(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestSession_Progress(t *testing.T) {
	tests := []struct {
		sess Session
		want float64
	}{
		{Session{}, 0},
		{Session{Position: 30 * time.Second, Duration: 120 * time.Second}, 0.25},
		{Session{Position: 5 * time.Minute, Duration: time.Minute}, 1},
	}
	for _, tt := range tests {
		if got := tt.sess.Progress(); got != tt.want {
			t.Errorf("Progress(%+v) = %v, want %v", tt.sess, got, tt.want)
		}
	}
}
