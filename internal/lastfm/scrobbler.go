package lastfm

import (
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/playback"
)

// Last.fm submission rules.
const (
	minTrackLength = 30 * time.Second
	scrobbleAfter  = 4 * time.Minute
)

// API is the subset of Client used by the Scrobbler.
type API interface {
	UpdateNowPlaying(track ScrobbleTrack) error
	Scrobble(track ScrobbleTrack) error
}

// Scrobbler follows the playback session, announces each new track as now
// playing and scrobbles it when it is left after enough playing time.
type Scrobbler struct {
	api API
	log *zap.Logger
	now func() time.Time
	cur *ScrobbleState
}

// NewScrobbler creates a Scrobbler submitting through api.
func NewScrobbler(api API, log *zap.Logger) *Scrobbler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scrobbler{api: api, log: log, now: time.Now}
}

// ShouldScrobble reports whether played time qualifies a track of the given
// length. Unknown lengths (0) only qualify after the four minute mark.
func ShouldScrobble(played, length time.Duration) bool {
	if length > 0 && length < minTrackLength {
		return false
	}
	threshold := scrobbleAfter
	if length > 0 {
		threshold = min(length/2, scrobbleAfter)
	}
	return played >= threshold
}

// TrackChanged finishes the previous track and starts counting t, which is
// assumed to be playing. A nil t only finishes.
func (s *Scrobbler) TrackChanged(t *catalog.Track) {
	s.finish()
	if t == nil {
		return
	}

	now := s.now()
	s.cur = &ScrobbleState{
		TrackID:   t.ID,
		Track:     FromTrack(t, now),
		resumedAt: now,
	}
	if err := s.api.UpdateNowPlaying(s.cur.Track); err != nil {
		s.log.Warn("lastfm now playing", zap.String("track", t.ID), zap.Error(err))
	}
}

// StateChanged pauses or resumes the play clock.
func (s *Scrobbler) StateChanged(playing bool) {
	if s.cur == nil {
		return
	}
	switch {
	case playing && s.cur.resumedAt.IsZero():
		s.cur.resumedAt = s.now()
	case !playing && !s.cur.resumedAt.IsZero():
		s.cur.Played += s.now().Sub(s.cur.resumedAt)
		s.cur.resumedAt = time.Time{}
	}
}

func (s *Scrobbler) finish() {
	cur := s.cur
	s.cur = nil
	if cur == nil || cur.Scrobbled {
		return
	}

	played := cur.Played
	if !cur.resumedAt.IsZero() {
		played += s.now().Sub(cur.resumedAt)
	}
	if !ShouldScrobble(played, cur.Track.Duration) {
		s.log.Debug("lastfm skip", zap.String("track", cur.TrackID), zap.Duration("played", played))
		return
	}

	if err := s.api.Scrobble(cur.Track); err != nil {
		s.log.Warn("lastfm scrobble", zap.String("track", cur.TrackID), zap.Error(err))
		return
	}
	cur.Scrobbled = true
}

// Run follows sub until the subscription ends, then finishes the last track.
func (s *Scrobbler) Run(sub *playback.Subscription) {
	for {
		select {
		case <-sub.Done:
			s.finish()
			return
		case e := <-sub.TrackChanged:
			s.TrackChanged(e.Current)
		case e := <-sub.StateChanged:
			s.StateChanged(e.Current == playback.StatePlaying)
		}
	}
}
