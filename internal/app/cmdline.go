package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/errmsg"
	"github.com/llehouerou/saverino/internal/state"
	"github.com/llehouerou/saverino/internal/ui/render"
)

// PlaylistOpenedMsg is sent once a saved playlist became the active list.
type PlaylistOpenedMsg struct {
	Name   string
	Tracks []catalog.Track
	Play   bool // start the first track
}

const commandUsage = "login U P · signup U P · logout · playlist new|open|play NAME · playlists · " +
	"add NAME · history [clear] · artist NAME · quality 0-4 · theme"

// runCommand executes a command-line entry.
func (m Model) runCommand(line string) (Model, tea.Cmd) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return m, nil
	}
	name, args := fields[0], fields[1:]

	switch name {
	case "login":
		return m.login(args, false)
	case "signup":
		return m.login(args, true)
	case "logout":
		return m.logout()
	case "playlist":
		return m.playlistCommand(args)
	case "playlists":
		return m.listPlaylists()
	case "add":
		return m.addToPlaylist(strings.Join(args, " "))
	case "history":
		return m.history(args)
	case "artist":
		if len(args) == 0 {
			return m.setStatus("Usage: artist NAME", true)
		}
		return m.startLoading(m.openArtistCmd(strings.Join(args, " ")))
	case "quality":
		if len(args) != 1 {
			return m.setStatus("Usage: quality 0-4", true)
		}
		return m.setQuality(catalog.QualityTier(args[0]))
	case "theme":
		return m.toggleTheme()
	case "help":
		return m.setStatus(commandUsage, false)
	default:
		return m.setStatus(fmt.Sprintf("Unknown command %q. Try :help", name), true)
	}
}

func (m Model) login(args []string, register bool) (Model, tea.Cmd) {
	op := errmsg.OpLogin
	if register {
		op = errmsg.OpSignup
	}
	if len(args) != 2 {
		return m.fail(op, state.ErrMissingField)
	}
	user, pass := args[0], args[1]

	if register {
		if err := m.store.Register(user, pass); err != nil {
			return m.fail(op, err)
		}
	} else if _, err := m.store.Authenticate(user, pass); err != nil {
		return m.fail(op, err)
	}
	if err := m.store.Login(user); err != nil {
		return m.fail(op, err)
	}

	m.user = user
	if register {
		return m.setStatus("Welcome, "+user, false)
	}
	return m.setStatus("Logged in as "+user, false)
}

func (m Model) logout() (Model, tea.Cmd) {
	if err := m.store.Logout(); err != nil {
		return m.fail(errmsg.OpLogout, err)
	}
	m.user = ""
	return m.setStatus("Logged out", false)
}

func (m Model) playlistCommand(args []string) (Model, tea.Cmd) {
	if len(args) < 2 {
		return m.setStatus("Usage: playlist new|open|play NAME", true)
	}
	verb, name := args[0], strings.Join(args[1:], " ")

	switch verb {
	case "new":
		if m.user == "" {
			return m.fail(errmsg.OpPlaylistCreate, state.ErrAccountNotFound)
		}
		pl, err := m.store.CreatePlaylist(m.user, name)
		if err != nil {
			return m.fail(errmsg.OpPlaylistCreate, err)
		}
		return m.setStatus("Created playlist "+pl.Name, false)

	case "open", "play":
		if m.user == "" {
			return m.fail(errmsg.OpPlaylistOpen, state.ErrAccountNotFound)
		}
		pl, err := m.store.PlaylistByName(m.user, name)
		if err != nil {
			return m.fail(errmsg.OpPlaylistOpen, err)
		}
		b, play := m.browser, verb == "play"
		tracks, plName := pl.Tracks, pl.Name
		return m, func() tea.Msg {
			b.OpenPlaylist(plName, tracks)
			return PlaylistOpenedMsg{Name: plName, Tracks: tracks, Play: play}
		}

	default:
		return m.setStatus("Usage: playlist new|open|play NAME", true)
	}
}

func (m Model) listPlaylists() (Model, tea.Cmd) {
	if m.user == "" {
		return m.fail(errmsg.OpPlaylistOpen, state.ErrAccountNotFound)
	}
	pls, err := m.store.Playlists(m.user)
	if err != nil {
		return m.fail(errmsg.OpPlaylistOpen, err)
	}
	if len(pls) == 0 {
		return m.setStatus("No playlists yet. Create one with :playlist new NAME", false)
	}
	return m.setStatus(describePlaylists(pls, time.Now()), false)
}

func describePlaylists(pls []state.Playlist, now time.Time) string {
	parts := make([]string, len(pls))
	for i := range pls {
		desc := render.Count(len(pls[i].Tracks), "track")
		if age := render.Age(pls[i].CreatedAt, now); age != "" {
			desc += ", " + age
		}
		parts[i] = fmt.Sprintf("%s (%s)", pls[i].Name, desc)
	}
	return strings.Join(parts, " · ")
}

func (m Model) addToPlaylist(name string) (Model, tea.Cmd) {
	if name == "" {
		return m.setStatus("Usage: add NAME", true)
	}
	if m.user == "" {
		return m.fail(errmsg.OpPlaylistAddTrack, state.ErrAccountNotFound)
	}
	track, ok := m.list.Selected()
	if !ok {
		return m.setStatus("Select a track first", true)
	}
	pl, err := m.store.PlaylistByName(m.user, name)
	if err != nil {
		return m.fail(errmsg.OpPlaylistAddTrack, err)
	}
	if err := m.store.AddTrack(m.user, pl.ID, track); err != nil {
		return m.fail(errmsg.OpPlaylistAddTrack, err)
	}
	return m.setStatus(fmt.Sprintf("Added %s to %s", track.Name, pl.Name), false)
}

func (m Model) history(args []string) (Model, tea.Cmd) {
	if len(args) == 1 && args[0] == "clear" {
		if err := m.store.ClearSearchHistory(); err != nil {
			return m.fail(errmsg.OpLoadHistory, err)
		}
		return m.setStatus("Search history cleared", false)
	}
	terms, err := m.store.SearchHistory()
	if err != nil {
		return m.fail(errmsg.OpLoadHistory, err)
	}
	if len(terms) == 0 {
		return m.setStatus("No recent searches", false)
	}
	return m.setStatus("Recent: "+strings.Join(terms, " · "), false)
}

func (m Model) setQuality(tier catalog.QualityTier) (Model, tea.Cmd) {
	if err := m.svc.SetQuality(tier); err != nil {
		return m.setStatus(fmt.Sprintf("Unknown quality %q (0-4)", string(tier)), true)
	}
	m.quality = tier
	if err := m.store.SetQuality(tier); err != nil {
		return m.fail(errmsg.OpSavePreference, err)
	}
	return m.setStatus("Quality "+tier.String(), false)
}

func (m Model) toggleTheme() (Model, tea.Cmd) {
	next := m.theme.Toggle()
	if err := m.store.SetTheme(next); err != nil {
		return m.fail(errmsg.OpSavePreference, err)
	}
	m.theme = next
	m.applyTheme()
	return m.setStatus("Theme "+string(next), false)
}
