// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"

	"github.com/llehouerou/saverino/internal/browse"
	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/state"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpSearch     Op = "search songs"
	OpLoadMore   Op = "load more results"
	OpOpenArtist Op = "load artist"
	OpOpenAlbum  Op = "load album"

	// Account operations
	OpLogin  Op = "log in"
	OpSignup Op = "sign up"
	OpLogout Op = "log out"

	// Playlist operations
	OpPlaylistCreate   Op = "create playlist"
	OpPlaylistOpen     Op = "open playlist"
	OpPlaylistAddTrack Op = "add track to playlist"

	// Playback operations
	OpPlaybackStart  Op = "start playback"
	OpPlaybackToggle Op = "toggle playback"
	OpPlaybackSkip   Op = "skip track"
	OpPlaybackSeek   Op = "seek"
	OpQueueRemove    Op = "remove from queue"

	// Preferences
	OpSavePreference Op = "save preference"
	OpLoadHistory    Op = "load search history"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// UserMessage maps err to the message shown in the status line.
// Errors that should pass silently map to "".
func UserMessage(op Op, err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, catalog.ErrMissingMediaLink), errors.Is(err, browse.ErrStale):
		return ""
	case errors.Is(err, browse.ErrNoMore):
		return "No more results"
	case errors.Is(err, catalog.ErrEmptyResult):
		return "No results found. Try another search term."
	case errors.Is(err, catalog.ErrNetwork):
		return fmt.Sprintf("Failed to %s. Please try again.", op)
	case errors.Is(err, state.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, state.ErrAlreadyExists):
		return "User exists"
	case errors.Is(err, state.ErrDuplicateTrack):
		return "Already in playlist"
	case errors.Is(err, state.ErrMissingField):
		return "Fill all fields"
	case errors.Is(err, state.ErrAccountNotFound):
		return "Log in to use playlists"
	case errors.Is(err, state.ErrPlaylistNotFound):
		return "Playlist not found"
	default:
		return Format(op, err)
	}
}
