package state

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/db"
)

const currentUserKey = "current_user"

// Account is a local user and their playlists. The whole account is one
// record: adding a track rewrites it.
type Account struct {
	Username  string     `json:"username"`
	Password  string     `json:"password"` // sealed by Credentials
	Playlists []Playlist `json:"playlists"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Playlist is a named list of frozen track snapshots.
type Playlist struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Tracks    []catalog.Track `json:"tracks"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Register creates an account. Usernames are case-sensitive.
func (m *Manager) Register(username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return ErrMissingField
	}

	sealed, err := m.creds.Seal(password)
	if err != nil {
		return fmt.Errorf("seal password: %w", err)
	}

	err = db.WithTx(m.db, func(tx *sql.Tx) error {
		var existing Account
		found, err := getRecord(tx, nsAccounts, username, &existing)
		if err != nil {
			return err
		}
		if found {
			return ErrAlreadyExists
		}
		return m.putRecord(tx, nsAccounts, username, Account{
			Username:  username,
			Password:  sealed,
			Playlists: []Playlist{},
			CreatedAt: m.now(),
		})
	})
	if err != nil {
		return err
	}

	m.log.Info("account registered", zap.String("user", username))
	return nil
}

// Authenticate checks username and password.
// Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (m *Manager) Authenticate(username, password string) (*Account, error) {
	acct, err := m.account(username)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !m.creds.Verify(acct.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return acct, nil
}

// Login records username as the current user.
func (m *Manager) Login(username string) error {
	if username == "" {
		return ErrMissingField
	}
	return m.putRecord(m.db, nsSession, currentUserKey, username)
}

// Logout forgets the current user.
func (m *Manager) Logout() error {
	return deleteRecord(m.db, nsSession, currentUserKey)
}

// CurrentUser returns the logged-in username, or "" if nobody is.
func (m *Manager) CurrentUser() (string, error) {
	var username string
	if _, err := getRecord(m.db, nsSession, currentUserKey, &username); err != nil {
		return "", err
	}
	return username, nil
}

func (m *Manager) account(username string) (*Account, error) {
	return loadAccount(m.db, username)
}

func loadAccount(q querier, username string) (*Account, error) {
	if username == "" {
		return nil, ErrAccountNotFound
	}
	var acct Account
	found, err := getRecord(q, nsAccounts, username, &acct)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrAccountNotFound
	}
	return &acct, nil
}
