package notify

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/playback"
)

const (
	announceTimeout = 5000 // ms
	coverTimeout    = 5 * time.Second
)

// Announcer shows a notification for every newly loaded track, replacing
// the previous one so only one stays on screen.
type Announcer struct {
	notifier Notifier
	covers   *CoverCache // may be nil
	log      *zap.Logger
	lastID   uint32
}

// NewAnnouncer creates an Announcer. covers may be nil to skip icons.
func NewAnnouncer(n Notifier, covers *CoverCache, log *zap.Logger) *Announcer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Announcer{notifier: n, covers: covers, log: log}
}

// Announce sends the now-playing notification for t.
func (a *Announcer) Announce(t *catalog.Track) {
	if t == nil {
		return
	}

	n := Notification{
		Title:      t.Name,
		Body:       nowPlayingBody(t),
		Timeout:    announceTimeout,
		ReplacesID: a.lastID,
		Urgency:    UrgencyLow,
		Transient:  true,
	}

	if a.covers != nil {
		ctx, cancel := context.WithTimeout(context.Background(), coverTimeout)
		icon, err := a.covers.Path(ctx, t.Cover())
		cancel()
		if err != nil {
			a.log.Debug("notification cover", zap.String("track", t.ID), zap.Error(err))
		}
		n.Icon = icon
	}

	id, err := a.notifier.Notify(n)
	if err != nil {
		a.log.Warn("send notification", zap.String("track", t.ID), zap.Error(err))
		return
	}
	a.lastID = id
}

// Run announces track changes from sub until the subscription ends.
func (a *Announcer) Run(sub *playback.Subscription) {
	for {
		select {
		case <-sub.Done:
			return
		case e := <-sub.TrackChanged:
			if e.Current != nil {
				a.Announce(e.Current)
			}
		}
	}
}

func nowPlayingBody(t *catalog.Track) string {
	parts := make([]string, 0, 2)
	if t.PrimaryArtists != "" {
		parts = append(parts, t.PrimaryArtists)
	}
	if album := t.AlbumName(); album != "" {
		parts = append(parts, album)
	}
	return strings.Join(parts, " · ")
}
