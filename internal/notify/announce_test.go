package notify

import (
	"errors"
	"sync"
	"testing"
	"testing/synctest"

	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/playback"
	"github.com/llehouerou/saverino/internal/player"
	"github.com/llehouerou/saverino/internal/playlist"
)

// mockNotifier records notifications for testing.
type mockNotifier struct {
	mu            sync.Mutex
	notifications []Notification
	lastID        uint32
	err           error
}

func (m *mockNotifier) Notify(n Notification) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.lastID++
	m.notifications = append(m.notifications, n)
	return m.lastID, nil
}

func (m *mockNotifier) Close(_ uint32) error {
	return nil
}

func (m *mockNotifier) sent() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Notification(nil), m.notifications...)
}

func TestAnnounce(t *testing.T) {
	mock := &mockNotifier{}
	a := NewAnnouncer(mock, nil, nil)

	a.Announce(&catalog.Track{
		ID:             "1",
		Name:           "Test Song",
		PrimaryArtists: "Test Artist",
		Album:          &catalog.AlbumRef{ID: "al", Name: "Test Album"},
	})
	a.Announce(&catalog.Track{ID: "2", Name: "Other"})

	got := mock.sent()
	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if got[0].Title != "Test Song" {
		t.Errorf("Title = %q, want %q", got[0].Title, "Test Song")
	}
	if got[0].Body != "Test Artist · Test Album" {
		t.Errorf("Body = %q, want %q", got[0].Body, "Test Artist · Test Album")
	}
	if got[0].Urgency != UrgencyLow {
		t.Errorf("Urgency = %d, want UrgencyLow", got[0].Urgency)
	}
	if got[1].ReplacesID != 1 {
		t.Errorf("second ReplacesID = %d, want 1", got[1].ReplacesID)
	}
	if got[1].Body != "" {
		t.Errorf("Body without artist or album = %q, want empty", got[1].Body)
	}
}

func TestAnnounce_NilTrackAndErrors(t *testing.T) {
	mock := &mockNotifier{}
	a := NewAnnouncer(mock, nil, nil)
	a.Announce(nil)
	if len(mock.sent()) != 0 {
		t.Error("nil track should not notify")
	}

	mock.err = errors.New("dbus gone")
	a.Announce(&catalog.Track{ID: "1", Name: "x"})
	if a.lastID != 0 {
		t.Errorf("lastID = %d after failure, want 0", a.lastID)
	}
}

func TestRun_AnnouncesTrackChanges(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		mock := &mockNotifier{}
		svc := playback.New(player.NewMock(), playback.Options{})
		a := NewAnnouncer(mock, nil, nil)

		sub := svc.Subscribe()
		done := make(chan struct{})
		go func() {
			a.Run(sub)
			close(done)
		}()

		tr := catalog.Track{ID: "a", Name: "Song A"}
		svc.SetActiveList(playlist.ContextSearch, []catalog.Track{tr})
		if err := svc.Play("a", "https://media.example/a.mp4"); err != nil {
			t.Fatalf("Play() error = %v", err)
		}
		synctest.Wait()

		got := mock.sent()
		if len(got) != 1 || got[0].Title != "Song A" {
			t.Errorf("notifications = %+v, want one for Song A", got)
		}

		_ = svc.Close()
		<-done
	})
}
