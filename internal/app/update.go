package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/saverino/internal/browse"
	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/errmsg"
	"github.com/llehouerou/saverino/internal/playlist"
	"github.com/llehouerou/saverino/internal/state"
	"github.com/llehouerou/saverino/internal/ui/playerbar"
	"github.com/llehouerou/saverino/internal/ui/styles"
)

// seekStep is how far the seek keys move.
const seekStep = 10 * time.Second

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.ticking = false
		return m, m.snapshotCmd()

	case SessionMsg:
		return m.handleSession(msg)

	case SearchResultMsg:
		return m.handleSearchResult(msg)

	case ArtistResultMsg:
		m.loading = false
		if msg.Err != nil {
			return m.fail(errmsg.OpOpenArtist, msg.Err)
		}
		m.artist = msg.Result
		m.hasMore = false
		m.setViewTitle(fmt.Sprintf("Artist: %s · %d albums", msg.Result.Name, len(msg.Result.Albums)))
		return m, nil

	case AlbumResultMsg:
		m.loading = false
		if msg.Err != nil {
			return m.fail(errmsg.OpOpenAlbum, msg.Err)
		}
		m.artist = nil
		m.hasMore = false
		m.setViewTitle("Album: " + msg.Result.Name)
		return m, nil

	case PlaylistOpenedMsg:
		m.artist = nil
		m.hasMore = false
		m.setViewTitle("Playlist: " + msg.Name)
		if msg.Play && len(msg.Tracks) > 0 {
			return m, m.playCmd(msg.Tracks[0])
		}
		if msg.Play {
			return m.setStatus("Playlist is empty", false)
		}
		return m, nil

	case ActionDoneMsg:
		if msg.Err != nil {
			return m.fail(msg.Op, msg.Err)
		}
		return m, nil

	case ServiceStateMsg, ServiceTrackMsg, ServicePositionMsg:
		return m, tea.Batch(m.snapshotCmd(), m.watchService())

	case ServiceQueueMsg:
		m.queue.SetTracks(msg.Tracks, false)
		return m, m.watchService()

	case ServiceActiveListMsg:
		m.handleActiveList(msg)
		return m, m.watchService()

	case ServiceErrorMsg:
		m.log.Warn("playback error",
			zap.String("operation", msg.Operation),
			zap.String("track", msg.TrackID),
			zap.Error(msg.Err))
		next, cmd := m.fail(errmsg.OpPlaybackStart, msg.Err)
		return next, tea.Batch(cmd, m.watchService())

	case ServiceClosedMsg:
		m.sub = nil
		return m, nil

	case StatusClearMsg:
		if msg.ID == m.statusID {
			m.status = ""
			m.isError = false
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.landing {
		m.landing = false
		if err := m.store.SetSkipLanding(true); err != nil {
			m.log.Warn("save landing flag", zap.Error(err))
		}
		return m, nil
	}

	switch m.focus {
	case FocusSearch:
		return m.handleSearchKey(msg)
	case FocusCommand:
		return m.handleCommandKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.blurInput()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		query := m.search.Value()
		m.blurInput()
		return m.startLoading(m.searchCmd(query))
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.blurInput()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		line := m.command.Value()
		m.command.Reset()
		m.blurInput()
		return m.runCommand(line)
	}
	var cmd tea.Cmd
	m.command, cmd = m.command.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	svc := m.svc

	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Search):
		m.focus = FocusSearch
		m.search.SetValue("")
		return m, m.search.Focus()

	case key.Matches(msg, k.Command):
		m.focus = FocusCommand
		m.command.Reset()
		return m, m.command.Focus()

	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil

	case key.Matches(msg, k.Toggle):
		return m, actionCmd(errmsg.OpPlaybackToggle, func() error { svc.TogglePlayPause(); return nil })

	case key.Matches(msg, k.Next):
		return m, actionCmd(errmsg.OpPlaybackSkip, svc.Next)

	case key.Matches(msg, k.Previous):
		return m, actionCmd(errmsg.OpPlaybackSkip, svc.Previous)

	case key.Matches(msg, k.SeekBack):
		return m, m.seekCmd(-seekStep)

	case key.Matches(msg, k.SeekFwd):
		return m, m.seekCmd(seekStep)

	case key.Matches(msg, k.Queue):
		m.queueVisible = !m.queueVisible
		if !m.queueVisible {
			m.setFocus(FocusList)
		}
		m.layout()
		return m, nil

	case key.Matches(msg, k.FocusQueue):
		if m.queueVisible {
			if m.focus == FocusQueue {
				m.setFocus(FocusList)
			} else {
				m.setFocus(FocusQueue)
			}
		}
		return m, nil

	case key.Matches(msg, k.Theme):
		return m.toggleTheme()

	case key.Matches(msg, k.Quality):
		return m.setQuality(catalog.QualityTier(msg.String()))
	}

	if m.focus == FocusQueue {
		return m.handleQueueKey(msg)
	}

	switch {
	case key.Matches(msg, k.Play):
		if t, ok := m.list.Selected(); ok {
			return m, m.playCmd(t)
		}
		return m, nil

	case key.Matches(msg, k.LoadMore):
		return m.loadMore()

	case key.Matches(msg, k.Artist):
		t, ok := m.list.Selected()
		if !ok || t.PrimaryArtists == "" {
			return m, nil
		}
		return m.startLoading(m.openArtistCmd(firstArtist(t.PrimaryArtists)))

	case key.Matches(msg, k.Album):
		t, ok := m.list.Selected()
		if !ok || t.Album == nil || t.Album.ID == "" {
			return m, nil
		}
		return m.startLoading(m.openAlbumCmd(t.Album.ID, t.Album.Name))
	}

	if isDown(msg) && m.list.AtBottom() && m.hasMore {
		return m.loadMore()
	}
	m.list.Update(msg)
	return m, nil
}

func (m Model) handleQueueKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	svc := m.svc
	switch {
	case key.Matches(msg, m.keys.Play):
		if t, ok := m.queue.Selected(); ok {
			return m, m.playCmd(t)
		}
	case key.Matches(msg, m.keys.Remove):
		if t, ok := m.queue.Selected(); ok {
			id := t.ID
			return m, actionCmd(errmsg.OpQueueRemove, func() error {
				svc.RemoveFromQueue(id)
				return nil
			})
		}
	default:
		m.queue.Update(msg)
	}
	return m, nil
}

func (m Model) loadMore() (Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	return m.startLoading(m.loadMoreCmd())
}

func isDown(msg tea.KeyMsg) bool {
	s := msg.String()
	return s == "j" || s == "down"
}

// seekCmd seeks by delta relative to the cached position.
func (m Model) seekCmd(delta time.Duration) tea.Cmd {
	dur := m.session.Duration
	if dur <= 0 || m.session.CurrentTrackID == "" {
		return nil
	}
	fraction := float64(m.session.Position+delta) / float64(dur)
	svc := m.svc
	return actionCmd(errmsg.OpPlaybackSeek, func() error {
		svc.Seek(fraction)
		return nil
	})
}

func (m Model) handleSession(msg SessionMsg) (tea.Model, tea.Cmd) {
	m.session = msg.Session
	m.current = msg.Track
	m.hasNext = msg.HasNext
	m.hasPrev = msg.HasPrev

	id := ""
	if m.current != nil {
		id = m.current.ID
	}
	m.list.SetPlaying(id)
	m.queue.SetPlaying(id)

	if m.session.IsPlaying && !m.ticking {
		m.ticking = true
		return m, TickCmd()
	}
	return m, nil
}

func (m Model) handleSearchResult(msg SearchResultMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.Err != nil {
		if errors.Is(msg.Err, browse.ErrNoMore) {
			m.hasMore = false
		}
		op := errmsg.OpSearch
		if msg.More {
			op = errmsg.OpLoadMore
		}
		return m.fail(op, msg.Err)
	}
	m.artist = nil
	m.hasMore = msg.Result.HasMore
	if !msg.More {
		m.setViewTitle(fmt.Sprintf("Search: %q", msg.Result.Query))
	}
	return m, nil
}

// handleActiveList mirrors the active list. The selection is kept when the
// new list extends the shown one, as a loaded page does.
func (m *Model) handleActiveList(msg ServiceActiveListMsg) {
	reset := msg.Context != m.context || !extends(m.list.Tracks(), msg.Tracks)
	m.context = msg.Context
	m.revision = msg.Revision
	m.list.SetTracks(msg.Tracks, reset)
	if msg.Context == playlist.ContextNone {
		m.setViewTitle("Results")
	}
}

func extends(old, next []catalog.Track) bool {
	if len(old) == 0 || len(next) <= len(old) {
		return false
	}
	return old[0].ID == next[0].ID && old[len(old)-1].ID == next[len(old)-1].ID
}

func firstArtist(artists string) string {
	name, _, _ := strings.Cut(artists, ",")
	return strings.TrimSpace(name)
}

// setStatus shows text in the status line until it times out.
func (m Model) setStatus(text string, isError bool) (Model, tea.Cmd) {
	m.statusID++
	m.status = text
	m.isError = isError
	return m, statusClearCmd(m.statusID)
}

// fail reports err for op. Errors that map to no message are only logged.
func (m Model) fail(op errmsg.Op, err error) (Model, tea.Cmd) {
	text := errmsg.UserMessage(op, err)
	if text == "" {
		m.log.Debug("silent failure", zap.String("op", string(op)), zap.Error(err))
		return m, nil
	}
	if !errors.Is(err, browse.ErrNoMore) {
		m.log.Warn("operation failed", zap.String("op", string(op)), zap.Error(err))
	}
	return m.setStatus(text, true)
}

func (m Model) startLoading(cmd tea.Cmd) (Model, tea.Cmd) {
	m.loading = true
	return m, cmd
}

func (m *Model) blurInput() {
	m.search.Blur()
	m.command.Blur()
	m.setFocus(FocusList)
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	m.list.SetFocused(f == FocusList)
	m.queue.SetFocused(f == FocusQueue)
}

func (m *Model) setViewTitle(title string) {
	m.viewTitle = title
	m.list.SetTitle(title)
}

func (m *Model) applyTheme() {
	styles.Use(m.theme == state.ThemeLight)
}

// layout sizes the lists from the window size.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	// header, input line, status line
	chrome := 3 + playerbar.Height + m.helpHeight()
	h := max(m.height-chrome, 3)

	if !m.queueVisible {
		m.list.SetSize(m.width, h)
		return
	}
	queueWidth := m.width / 3
	m.list.SetSize(m.width-queueWidth, h)
	m.queue.SetSize(queueWidth, h)
}

func (m Model) helpHeight() int {
	if m.help.ShowAll {
		return len(m.keys.FullHelp()[0])
	}
	return 1
}
