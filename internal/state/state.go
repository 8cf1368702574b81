// Package state persists accounts, the session, search history and
// preferences in a SQLite key-value table.
//
// Every write replaces a whole record. Writes to different namespaces are
// independent: there is no transaction spanning two namespaces.
package state

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "saverino"
	dbFileName = "saverino.db"
)

var (
	ErrAlreadyExists      = errors.New("user exists")
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrPlaylistNotFound   = errors.New("playlist not found")
	ErrDuplicateTrack     = errors.New("already in playlist")
	ErrInvalidValue       = errors.New("invalid value")
)

// Options configures a Manager.
type Options struct {
	// Path of the database file. Empty means the XDG data directory.
	Path        string
	Credentials Credentials
	Logger      *zap.Logger
}

// Manager is the SQLite-backed store.
type Manager struct {
	db    *sql.DB
	creds Credentials
	log   *zap.Logger
	now   func() time.Time
}

// Open opens (creating if needed) the database and applies the schema.
func Open(opts Options) (*Manager, error) {
	dbPath := opts.Path
	if dbPath == "" {
		var err error
		dbPath, err = getDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	m := &Manager{
		db:    db,
		creds: opts.Credentials,
		log:   opts.Logger,
		now:   time.Now,
	}
	if m.creds == nil {
		m.creds = Plaintext{}
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	return m, nil
}

// Close closes the database.
func (m *Manager) Close() error {
	return m.db.Close()
}

// DB exposes the underlying database.
func (m *Manager) DB() *sql.DB {
	return m.db
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
