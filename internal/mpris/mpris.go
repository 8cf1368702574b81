//go:build linux

// Package mpris exposes the playback session over D-Bus so desktop media
// keys and applets can control it.
package mpris

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"go.uber.org/zap"

	"github.com/llehouerou/saverino/internal/playback"
)

// Adapter connects the playback Service to MPRIS over D-Bus.
type Adapter struct {
	service playback.Service
	server  *server.Server
	events  *events.EventHandler
	sub     *playback.Subscription
	log     *zap.Logger
	done    chan struct{}
}

// New creates and starts a new MPRIS adapter.
func New(service playback.Service, log *zap.Logger) (*Adapter, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Adapter{
		service: service,
		log:     log,
		done:    make(chan struct{}),
	}

	a.server = server.NewServer("saverino", &rootAdapter{}, &playerAdapter{service: service})
	a.events = events.NewEventHandler(a.server)
	a.sub = service.Subscribe()

	go func() {
		if err := a.server.Listen(); err != nil {
			a.log.Warn("mpris listen", zap.Error(err))
		}
	}()
	go a.forward()

	return a, nil
}

// forward turns session events into PropertiesChanged signals.
func (a *Adapter) forward() {
	for {
		select {
		case <-a.done:
			return
		case <-a.sub.Done:
			return
		case <-a.sub.StateChanged:
			a.signal(a.events.Player.OnPlayPause())
		case <-a.sub.TrackChanged:
			a.signal(a.events.Player.OnTitle())
		}
	}
}

func (a *Adapter) signal(err error) {
	if err != nil {
		a.log.Debug("mpris signal", zap.Error(err))
	}
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	close(a.done)
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Saverino", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/mp4"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	service playback.Service
}

func (p *playerAdapter) Next() error {
	return p.service.Next()
}

func (p *playerAdapter) Previous() error {
	return p.service.Previous()
}

func (p *playerAdapter) Pause() error {
	if p.service.State() == playback.StatePlaying {
		p.service.TogglePlayPause()
	}
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.service.TogglePlayPause()
	return nil
}

// Stop pauses; the session has no stopped state once a track is loaded.
func (p *playerAdapter) Stop() error {
	return p.Pause()
}

func (p *playerAdapter) Play() error {
	if p.service.State() == playback.StatePaused {
		p.service.TogglePlayPause()
	}
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	sess := p.service.Session()
	p.seekTo(sess, sess.Position+time.Duration(offset)*time.Microsecond)
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	p.seekTo(p.service.Session(), time.Duration(position)*time.Microsecond)
	return nil
}

func (p *playerAdapter) seekTo(sess playback.Session, pos time.Duration) {
	if sess.Duration <= 0 {
		return
	}
	p.service.Seek(float64(pos) / float64(sess.Duration))
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.service.State() {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track := p.service.CurrentTrack()
	if track == nil {
		return types.Metadata{}, nil
	}

	length := track.Duration
	if d := p.service.Session().Duration; d > 0 {
		length = d
	}

	return types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.ID)),
		Length:  types.Microseconds(length.Microseconds()),
		Title:   track.Name,
		Artist:  splitArtists(track.PrimaryArtists),
		Album:   track.AlbumName(),
		ArtUrl:  track.Cover(),
	}, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return p.service.Session().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.service.HasNext(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.service.HasPrevious(), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.service.CurrentTrack() != nil, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.service.CurrentTrack() != nil, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.service.Session().Duration > 0, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func splitArtists(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
