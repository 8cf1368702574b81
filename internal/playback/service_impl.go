package playback

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/player"
	"github.com/llehouerou/saverino/internal/playlist"
)

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

// Options configures a Service.
type Options struct {
	Quality catalog.QualityTier // DefaultTier when empty or invalid
	Logger  *zap.Logger
}

type serviceImpl struct {
	mu sync.Mutex

	// loadMu serialises primitive loads. It is never acquired while mu is
	// held, so a download does not block queries or controls.
	loadMu sync.Mutex
	loads  atomic.Uint64 // bumped by every play request
	played uint64        // token of the load that set current

	player  player.Interface
	active  *playlist.ActiveList
	queue   *playlist.Queue
	quality catalog.QualityTier
	current *catalog.Track
	state   State // last state reported to subscribers

	log *zap.Logger

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
	wg     sync.WaitGroup
}

// New creates a playback service around p and starts watching it for
// finished tracks. Close stops the watcher.
func New(p player.Interface, opts Options) Service {
	s := &serviceImpl{
		player:  p,
		active:  playlist.NewActiveList(),
		queue:   playlist.NewQueue(),
		quality: catalog.DefaultTier,
		log:     opts.Logger,
		done:    make(chan struct{}),
	}
	if opts.Quality.Bitrate() > 0 {
		s.quality = opts.Quality
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	s.wg.Add(1)
	go s.watchFinished()
	return s
}

func (s *serviceImpl) watchFinished() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case <-s.player.FinishedChan():
			s.handleFinished(s.loads.Load())
		}
	}
}

// handleFinished treats the end of a track as Next. seen is the load token
// current when the signal arrived; the signal is ignored when a play was
// requested since, or when it belongs to a load that has not committed yet.
// Without a neighbor the primitive stays paused at the end of the last track.
func (s *serviceImpl) handleFinished(seen uint64) {
	s.mu.Lock()
	if s.closed || s.current == nil {
		s.mu.Unlock()
		return
	}
	if seen != s.loads.Load() || seen != s.played {
		s.log.Debug("finish signal superseded", zap.String("track", s.current.ID))
		s.mu.Unlock()
		return
	}
	s.log.Debug("track finished", zap.String("track", s.current.ID))
	next, url, ok := s.neighborLinkLocked(playlist.Next)
	if !ok {
		s.syncStateLocked()
		s.mu.Unlock()
		return
	}
	token := s.loads.Add(1)
	s.mu.Unlock()

	if err := s.load(token, next, url); err != nil {
		s.log.Warn("advance after finish", zap.Error(err))
	}
}

// SetActiveList replaces the active list. The queue is not rebuilt until the
// next play.
func (s *serviceImpl) SetActiveList(ctx playlist.BrowsingContext, tracks []catalog.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active.Set(ctx, tracks)
	s.log.Debug("active list set",
		zap.Stringer("context", ctx),
		zap.Int("tracks", len(tracks)))
	s.emitActiveListLocked()
}

// AppendToActiveList extends the active list in place.
func (s *serviceImpl) AppendToActiveList(tracks []catalog.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(tracks) == 0 {
		return
	}
	s.active.Append(tracks...)
	s.emitActiveListLocked()
}

// Play plays url as trackID. Track metadata is taken from the active list
// when the id is present there.
func (s *serviceImpl) Play(trackID, url string) error {
	if url == "" {
		return nil
	}

	s.mu.Lock()
	track, ok := s.active.Find(trackID)
	if !ok {
		track = catalog.Track{ID: trackID}
	}
	token := s.loads.Add(1)
	s.mu.Unlock()

	return s.load(token, track, url)
}

// PlayTrack plays track at the selected quality tier. It returns
// catalog.ErrMissingMediaLink without touching playback when the track has
// no link at that tier.
func (s *serviceImpl) PlayTrack(track catalog.Track) error {
	s.mu.Lock()
	url, err := track.LinkFor(s.quality)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	token := s.loads.Add(1)
	s.mu.Unlock()

	return s.load(token, track, url)
}

// load hands url to the primitive without holding mu, then commits track as
// current if no newer play was requested meanwhile. A load superseded before
// it starts is skipped.
func (s *serviceImpl) load(token uint64, track catalog.Track, url string) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if s.loads.Load() != token {
		return nil
	}
	err := s.player.Play(url)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.log.Warn("play failed", zap.String("track", track.ID), zap.Error(err))
		s.emitError(ErrorEvent{Operation: "play", TrackID: track.ID, Err: err})
		return fmt.Errorf("play %s: %w", track.ID, err)
	}
	if s.closed || s.loads.Load() != token {
		s.log.Debug("load superseded", zap.String("track", track.ID))
		// Without a current track the stray source has no owner.
		if s.closed || s.current == nil {
			s.player.Stop()
		}
		return nil
	}

	prev := s.current
	cur := track.Clone()
	s.current = &cur
	s.played = token
	s.queue.Build(s.active, cur.ID)

	s.log.Debug("track started",
		zap.String("track", cur.ID),
		zap.String("name", cur.Name),
		zap.Int("queued", s.queue.Len()))

	s.emitTrack(TrackChange{Previous: cloneTrack(prev), Current: cloneTrack(s.current)})
	s.syncStateLocked()
	s.emitQueue(QueueChange{Tracks: s.queue.Tracks()})
	return nil
}

// TogglePlayPause inverts play/pause. Nothing happens before a track has
// loaded.
func (s *serviceImpl) TogglePlayPause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || !s.player.HasSource() {
		return
	}
	s.player.Toggle()
	s.syncStateLocked()
}

// Next plays the track after the current one in the active list.
func (s *serviceImpl) Next() error {
	return s.step(playlist.Next)
}

// Previous plays the track before the current one in the active list.
func (s *serviceImpl) Previous() error {
	return s.step(playlist.Previous)
}

// step moves to the neighbor in dir. A missing neighbor or a neighbor
// without a link at the selected tier is not an error: nothing happens.
func (s *serviceImpl) step(dir playlist.Direction) error {
	s.mu.Lock()
	next, url, ok := s.neighborLinkLocked(dir)
	if !ok {
		s.mu.Unlock()
		return nil
	}
	token := s.loads.Add(1)
	s.mu.Unlock()

	return s.load(token, next, url)
}

func (s *serviceImpl) neighborLinkLocked(dir playlist.Direction) (catalog.Track, string, bool) {
	if s.current == nil {
		return catalog.Track{}, "", false
	}
	next, ok := s.active.Neighbor(s.current.ID, dir)
	if !ok {
		return catalog.Track{}, "", false
	}
	url, err := next.LinkFor(s.quality)
	if errors.Is(err, catalog.ErrMissingMediaLink) {
		s.log.Debug("neighbor has no link at tier",
			zap.String("track", next.ID),
			zap.Stringer("tier", s.quality))
		return catalog.Track{}, "", false
	}
	return next, url, true
}

// Seek moves to fraction of the current duration, clamped to [0, 1].
// Nothing happens while the duration is unknown.
func (s *serviceImpl) Seek(fraction float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.player.Duration()
	if d <= 0 {
		return
	}
	fraction = max(min(fraction, 1), 0)
	pos := time.Duration(fraction * float64(d))
	s.player.SeekTo(pos)
	s.emitPosition(PositionChange{Position: pos})
	s.syncStateLocked()
}

// RemoveFromQueue removes the first queued track with trackID. The active
// list and navigation are unaffected.
func (s *serviceImpl) RemoveFromQueue(trackID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.queue.Remove(trackID) {
		return false
	}
	s.emitQueue(QueueChange{Tracks: s.queue.Tracks()})
	return true
}

// Reset stops playback and forgets the current track, queue and active list.
func (s *serviceImpl) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loads.Add(1)
	s.player.Stop()
	prev := s.current
	s.current = nil
	s.queue.Clear()
	s.active.Set(playlist.ContextNone, nil)

	if prev != nil {
		s.emitTrack(TrackChange{Previous: prev})
	}
	s.syncStateLocked()
	s.emitQueue(QueueChange{})
	s.emitActiveListLocked()
}

// Quality returns the selected quality tier.
func (s *serviceImpl) Quality() catalog.QualityTier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quality
}

// SetQuality selects the tier used by PlayTrack, Next and Previous. The
// current track keeps playing at its original tier.
func (s *serviceImpl) SetQuality(tier catalog.QualityTier) error {
	if tier.Bitrate() == 0 {
		return fmt.Errorf("%w: %q", catalog.ErrUnknownTier, string(tier))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quality = tier
	return nil
}

// State returns the current playback state.
func (s *serviceImpl) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return playerStateToState(s.player.State())
}

func playerStateToState(ps player.State) State {
	switch ps {
	case player.Playing:
		return StatePlaying
	case player.Paused:
		return StatePaused
	case player.Stopped:
		return StateStopped
	default:
		return StateStopped
	}
}

// Session returns a snapshot of the session.
func (s *serviceImpl) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sess Session
	if s.current != nil {
		sess.CurrentTrackID = s.current.ID
	}
	sess.IsPlaying = s.player.State() == player.Playing
	if s.player.HasSource() {
		sess.Position = s.player.Position()
		sess.Duration = s.player.Duration()
	}
	return sess
}

// CurrentTrack returns a copy of the current track, or nil if none.
func (s *serviceImpl) CurrentTrack() *catalog.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTrack(s.current)
}

// Queue returns a copy of the queued tracks.
func (s *serviceImpl) Queue() []catalog.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Tracks()
}

// ActiveList returns a copy of the active list.
func (s *serviceImpl) ActiveList() []catalog.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.Tracks()
}

// ActiveContext returns the browsing context that produced the active list.
func (s *serviceImpl) ActiveContext() playlist.BrowsingContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.Context()
}

// HasNext reports whether Next has a neighbor to move to.
func (s *serviceImpl) HasNext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasNeighborLocked(playlist.Next)
}

// HasPrevious reports whether Previous has a neighbor to move to.
func (s *serviceImpl) HasPrevious() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasNeighborLocked(playlist.Previous)
}

func (s *serviceImpl) hasNeighborLocked(dir playlist.Direction) bool {
	if s.current == nil {
		return false
	}
	_, ok := s.active.Neighbor(s.current.ID, dir)
	return ok
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close stops the finished watcher and the player, then closes all
// subscriptions.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.player.Stop()
	s.mu.Unlock()

	s.wg.Wait()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

// syncStateLocked emits a StateChange when the primitive's state differs
// from the last one reported.
func (s *serviceImpl) syncStateLocked() {
	cur := playerStateToState(s.player.State())
	if cur == s.state {
		return
	}
	prev := s.state
	s.state = cur
	s.emitState(StateChange{Previous: prev, Current: cur})
}

func (s *serviceImpl) emitActiveListLocked() {
	s.emitActiveList(ActiveListChange{
		Context:  s.active.Context(),
		Tracks:   s.active.Tracks(),
		Revision: s.active.Revision(),
	})
}

func cloneTrack(t *catalog.Track) *catalog.Track {
	if t == nil {
		return nil
	}
	c := t.Clone()
	return &c
}
