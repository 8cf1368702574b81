package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber. Sends never block:
// a subscriber that falls behind loses events rather than stalling playback.
type Subscription struct {
	StateChanged      <-chan StateChange
	TrackChanged      <-chan TrackChange
	QueueChanged      <-chan QueueChange
	ActiveListChanged <-chan ActiveListChange
	PositionChanged   <-chan PositionChange
	Error             <-chan ErrorEvent
	Done              <-chan struct{}

	stateCh    chan StateChange
	trackCh    chan TrackChange
	queueCh    chan QueueChange
	activeCh   chan ActiveListChange
	positionCh chan PositionChange
	errorCh    chan ErrorEvent
	doneCh     chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:    make(chan StateChange, eventBufferSize),
		trackCh:    make(chan TrackChange, eventBufferSize),
		queueCh:    make(chan QueueChange, eventBufferSize),
		activeCh:   make(chan ActiveListChange, eventBufferSize),
		positionCh: make(chan PositionChange, eventBufferSize),
		errorCh:    make(chan ErrorEvent, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.TrackChanged = s.trackCh
	s.QueueChanged = s.queueCh
	s.ActiveListChanged = s.activeCh
	s.PositionChanged = s.positionCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

func send[T any](ch chan T, e T) {
	select {
	case ch <- e:
	default:
		// Drop if buffer full
	}
}
