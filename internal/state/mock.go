package state

import (
	"fmt"
	"strings"
	"sync"

	"github.com/llehouerou/saverino/internal/catalog"
)

// Mock is an in-memory test double for Manager.
type Mock struct {
	mu          sync.Mutex
	accounts    map[string]*Account
	currentUser string
	history     []string
	theme       Theme
	skipLanding bool
	quality     catalog.QualityTier
	nextID      int
	closed      bool
	err         error
}

// NewMock creates a new mock store for testing.
func NewMock() *Mock {
	return &Mock{accounts: make(map[string]*Account)}
}

func (m *Mock) Register(username, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if strings.TrimSpace(username) == "" || password == "" {
		return ErrMissingField
	}
	if _, ok := m.accounts[username]; ok {
		return ErrAlreadyExists
	}
	m.accounts[username] = &Account{Username: username, Password: password}
	return nil
}

func (m *Mock) Authenticate(username, password string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	acct, ok := m.accounts[username]
	if !ok || acct.Password != password {
		return nil, ErrInvalidCredentials
	}
	c := *acct
	return &c, nil
}

func (m *Mock) Login(username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentUser = username
	return nil
}

func (m *Mock) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentUser = ""
	return nil
}

func (m *Mock) CurrentUser() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentUser, nil
}

func (m *Mock) CreatePlaylist(username, name string) (*Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrMissingField
	}
	acct, ok := m.accounts[username]
	if !ok {
		return nil, ErrAccountNotFound
	}
	m.nextID++
	pl := Playlist{ID: fmt.Sprintf("pl-%d", m.nextID), Name: strings.TrimSpace(name)}
	acct.Playlists = append(acct.Playlists, pl)
	return &pl, nil
}

func (m *Mock) AddTrack(username, playlistID string, track catalog.Track) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	acct, ok := m.accounts[username]
	if !ok {
		return ErrAccountNotFound
	}
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
}

func (m *Mock) Playlists(username string) ([]Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[username]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return append([]Playlist(nil), acct.Playlists...), nil
}

func (m *Mock) Playlist(username, playlistID string) (*Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[username]
	if !ok {
		return nil, ErrAccountNotFound
	}
	pl := findPlaylist(acct, playlistID)
	if pl == nil {
		return nil, ErrPlaylistNotFound
	}
	c := *pl
	return &c, nil
}

func (m *Mock) PlaylistByName(username, name string) (*Playlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[username]
	if !ok {
		return nil, ErrAccountNotFound
	}
	for i := range acct.Playlists {
		if strings.EqualFold(acct.Playlists[i].Name, strings.TrimSpace(name)) {
			c := acct.Playlists[i]
			return &c, nil
		}
	}
	return nil, ErrPlaylistNotFound
}

func (m *Mock) RecordSearch(term string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history, _ = pushHistory(m.history, term)
	return nil
}

func (m *Mock) SearchHistory() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.history...), nil
}

func (m *Mock) ClearSearchHistory() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = nil
	return nil
}

func (m *Mock) Theme() (Theme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.theme == "" {
		return ThemeLight, nil
	}
	return m.theme, nil
}

func (m *Mock) SetTheme(theme Theme) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if theme != ThemeLight && theme != ThemeDark {
		return ErrInvalidValue
	}
	m.theme = theme
	return nil
}

func (m *Mock) SkipLanding() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.skipLanding, nil
}

func (m *Mock) SetSkipLanding(skip bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skipLanding = skip
	return nil
}

func (m *Mock) Quality(def catalog.QualityTier) (catalog.QualityTier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quality == "" {
		return def, nil
	}
	return m.quality, nil
}

func (m *Mock) SetQuality(tier catalog.QualityTier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quality = tier
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

// SetError makes account and playlist operations fail with err.
func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
