package state

import "github.com/llehouerou/saverino/internal/catalog"

// Interface defines the store contract for dependency injection and testing.
type Interface interface {
	// Accounts and session
	Register(username, password string) error
	Authenticate(username, password string) (*Account, error)
	Login(username string) error
	Logout() error
	CurrentUser() (string, error)

	// Playlists
	CreatePlaylist(username, name string) (*Playlist, error)
	AddTrack(username, playlistID string, track catalog.Track) error
	Playlists(username string) ([]Playlist, error)
	Playlist(username, playlistID string) (*Playlist, error)
	PlaylistByName(username, name string) (*Playlist, error)

	// Search history
	RecordSearch(term string) error
	SearchHistory() ([]string, error)
	ClearSearchHistory() error

	// Preferences
	Theme() (Theme, error)
	SetTheme(theme Theme) error
	SkipLanding() (bool, error)
	SetSkipLanding(skip bool) error
	Quality(def catalog.QualityTier) (catalog.QualityTier, error)
	SetQuality(tier catalog.QualityTier) error

	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
