// Package player streams remote audio through the system speaker.
package player

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"
)

var (
	// ErrNoSource is returned when Play is called with an empty URL.
	ErrNoSource = errors.New("no media source")
	// ErrUnsupportedFormat is returned for media the player cannot decode.
	ErrUnsupportedFormat = errors.New("unsupported media format")
)

// speaker can only be initialised once per process.
var (
	speakerOnce       sync.Once
	speakerErr        error
	speakerSampleRate beep.SampleRate
)

// Options configures a Player.
type Options struct {
	HTTPClient *http.Client
	Logger     *zap.Logger
	// MaxBytes caps the size of a downloaded source. Zero means defaultMaxBytes.
	MaxBytes int64
}

// Player plays a single remote source at a time.
type Player struct {
	mu       sync.Mutex
	client   *http.Client
	log      *zap.Logger
	maxBytes int64

	state    State
	ctrl     *beep.Ctrl
	streamer beep.StreamSeekCloser
	format   beep.Format
	duration time.Duration

	// generation identifies the current source; callbacks from an older
	// source are ignored.
	generation atomic.Uint64
	// ended is set from the speaker goroutine when the source runs out.
	ended      atomic.Bool
	finishedCh chan struct{}
}

// New creates a stopped player.
func New(opts Options) *Player {
	p := &Player{
		client:     opts.HTTPClient,
		log:        opts.Logger,
		maxBytes:   opts.MaxBytes,
		state:      Stopped,
		finishedCh: make(chan struct{}, 1),
	}
	if p.client == nil {
		p.client = &http.Client{Timeout: 60 * time.Second}
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	if p.maxBytes <= 0 {
		p.maxBytes = defaultMaxBytes
	}
	return p
}

// Play downloads url and replaces the current source with it. If the new
// source cannot be fetched or decoded, the current source is left untouched.
func (p *Player) Play(url string) error {
	if url == "" {
		return ErrNoSource
	}

	src, contentType, err := fetch(p.client, url, p.maxBytes)
	if err != nil {
		return err
	}

	streamer, format, err := decode(src, contentType)
	if err != nil {
		_ = src.Close()
		return err
	}

	speakerOnce.Do(func() {
		speakerSampleRate = format.SampleRate
		speakerErr = speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10))
	})
	if speakerErr != nil {
		_ = streamer.Close()
		return fmt.Errorf("init speaker: %w", speakerErr)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.release()

	var playStreamer beep.Streamer = streamer
	if format.SampleRate != speakerSampleRate {
		playStreamer = beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	}

	p.streamer = streamer
	p.format = format
	p.duration = format.SampleRate.D(streamer.Len())
	p.ctrl = &beep.Ctrl{Streamer: playStreamer}
	p.state = Playing

	// Drain any stale finish signal from the previous source
	select {
	case <-p.finishedCh:
	default:
	}

	p.start()

	p.log.Debug("playing",
		zap.String("url", url),
		zap.Int("sample_rate", int(format.SampleRate)),
		zap.Duration("duration", p.duration))
	return nil
}

// start hands the current ctrl to the speaker under a fresh generation.
// Must be called with p.mu held.
func (p *Player) start() {
	gen := p.generation.Add(1)
	p.ended.Store(false)
	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		if p.generation.Load() != gen {
			return
		}
		p.ended.Store(true)
		select {
		case p.finishedCh <- struct{}{}:
		default:
		}
	})))
}

// release stops the speaker and closes the current source.
// Must be called with p.mu held.
func (p *Player) release() {
	p.generation.Add(1)
	if p.streamer == nil {
		return
	}
	speaker.Clear()
	if err := p.streamer.Close(); err != nil {
		p.log.Debug("close source", zap.Error(err))
	}
	p.streamer = nil
	p.ctrl = nil
	p.duration = 0
	p.ended.Store(false)
}

// settle folds an end-of-source signal into the state machine.
// Must be called with p.mu held.
func (p *Player) settle() {
	if p.state == Playing && p.ended.Load() {
		p.state = Paused
	}
}

// FinishedChan is signalled each time a source plays through to its end.
func (p *Player) FinishedChan() <-chan struct{} {
	return p.finishedCh
}
