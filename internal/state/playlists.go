package state

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/db"
)

// CreatePlaylist adds an empty playlist to username's account.
func (m *Manager) CreatePlaylist(username, name string) (*Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingField
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate playlist id: %w", err)
	}
	pl := Playlist{
		ID:        id.String(),
		Name:      name,
		Tracks:    []catalog.Track{},
		CreatedAt: m.now(),
	}

	err = m.updateAccount(username, func(acct *Account) error {
		acct.Playlists = append(acct.Playlists, pl)
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.log.Debug("playlist created", zap.String("user", username), zap.String("playlist", pl.ID))
	return &pl, nil
}

// AddTrack appends a snapshot of track to a playlist. Adding a track whose id
// is already present returns ErrDuplicateTrack and leaves the playlist as is.
func (m *Manager) AddTrack(username, playlistID string, track catalog.Track) error {
	return m.updateAccount(username, func(acct *Account) error {
		pl := findPlaylist(acct, playlistID)
		if pl == nil {
			return ErrPlaylistNotFound
		}
		for i := range pl.Tracks {
			if pl.Tracks[i].ID == track.ID {
				return ErrDuplicateTrack
			}
		}
		pl.Tracks = append(pl.Tracks, track.Clone())
		return nil
	})
}

// Playlists returns username's playlists in creation order.
func (m *Manager) Playlists(username string) ([]Playlist, error) {
	acct, err := m.account(username)
	if err != nil {
		return nil, err
	}
	return acct.Playlists, nil
}

// Playlist returns one playlist by id.
func (m *Manager) Playlist(username, playlistID string) (*Playlist, error) {
	acct, err := m.account(username)
	if err != nil {
		return nil, err
	}
	pl := findPlaylist(acct, playlistID)
	if pl == nil {
		return nil, ErrPlaylistNotFound
	}
	return pl, nil
}

// PlaylistByName returns the first playlist whose name matches, ignoring case.
func (m *Manager) PlaylistByName(username, name string) (*Playlist, error) {
	acct, err := m.account(username)
	if err != nil {
		return nil, err
	}
	for i := range acct.Playlists {
		if strings.EqualFold(acct.Playlists[i].Name, strings.TrimSpace(name)) {
			return &acct.Playlists[i], nil
		}
	}
	return nil, ErrPlaylistNotFound
}

// updateAccount loads, modifies and rewrites an account in one transaction.
func (m *Manager) updateAccount(username string, fn func(acct *Account) error) error {
	return db.WithTx(m.db, func(tx *sql.Tx) error {
		acct, err := loadAccount(tx, username)
		if err != nil {
			return err
		}
		if err := fn(acct); err != nil {
			return err
		}
		return m.putRecord(tx, nsAccounts, username, acct)
	})
}

func findPlaylist(acct *Account, id string) *Playlist {
	for i := range acct.Playlists {
		if acct.Playlists[i].ID == id {
			return &acct.Playlists[i]
		}
	}
	return nil
}
