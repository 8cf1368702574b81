// Package tracklist renders a scrollable list of catalog tracks with a
// selection cursor and a marker on the playing track.
package tracklist

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/ui/render"
	"github.com/llehouerou/saverino/internal/ui/styles"
)

// ScrollMargin is the number of rows kept visible around the selection.
const ScrollMargin = 3

const playingMarker = "▶"

// Model is a scrollable track list. The parent owns the tracks and decides
// what Enter does; Model only moves the selection.
type Model struct {
	title     string
	tracks    []catalog.Track
	playingID string
	cur       cursor
	width     int
	height    int
	focused   bool
	empty     string
}

// New creates a list titled title showing empty when it has no tracks.
func New(title, empty string) Model {
	return Model{title: title, empty: empty, cur: cursor{margin: ScrollMargin}}
}

// SetTracks replaces the tracks. The selection moves to the top when reset
// is set, otherwise it is kept and clamped, so appended pages do not jump.
func (m *Model) SetTracks(tracks []catalog.Track, reset bool) {
	m.tracks = tracks
	if reset {
		m.cur.pos, m.cur.offset = 0, 0
	}
	m.cur.jump(m.cur.pos, len(tracks), m.rows())
}

// SetTitle changes the header text.
func (m *Model) SetTitle(title string) { m.title = title }

// SetPlaying marks the track with id as playing.
func (m *Model) SetPlaying(id string) { m.playingID = id }

// SetSize sets the outer dimensions including the header.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.cur.ensureVisible(len(m.tracks), m.rows())
}

// SetFocused sets whether key input moves the selection.
func (m *Model) SetFocused(focused bool) { m.focused = focused }

// Focused reports whether the list has focus.
func (m Model) Focused() bool { return m.focused }

// Len returns the number of tracks.
func (m Model) Len() int { return len(m.tracks) }

// Tracks returns the displayed tracks.
func (m Model) Tracks() []catalog.Track { return m.tracks }

// Selected returns the track under the cursor.
func (m Model) Selected() (catalog.Track, bool) {
	if m.cur.pos >= len(m.tracks) {
		return catalog.Track{}, false
	}
	return m.tracks[m.cur.pos], true
}

// SelectedIndex returns the cursor position.
func (m Model) SelectedIndex() int { return m.cur.pos }

// AtBottom reports whether the selection is on the last track.
func (m Model) AtBottom() bool {
	return len(m.tracks) > 0 && m.cur.pos == len(m.tracks)-1
}

// rows is the space left for tracks under the header.
func (m Model) rows() int {
	return max(m.height-2, 0)
}

// Update moves the selection on navigation keys and reports whether the
// key was consumed.
func (m *Model) Update(msg tea.KeyMsg) bool {
	if !m.focused {
		return false
	}
	n, h := len(m.tracks), m.rows()
	switch msg.String() {
	case "j", "down":
		m.cur.move(1, n, h)
	case "k", "up":
		m.cur.move(-1, n, h)
	case "g", "home":
		m.cur.jump(0, n, h)
	case "G", "end":
		m.cur.jump(n-1, n, h)
	case "ctrl+d", "pgdown":
		m.cur.move(max(h/2, 1), n, h)
	case "ctrl+u", "pgup":
		m.cur.move(-max(h/2, 1), n, h)
	default:
		return false
	}
	return true
}

// View renders the header, a separator and the visible tracks.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	s := styles.T().S()

	header := s.Title.Render(render.Truncate(m.title, m.width))
	if len(m.tracks) > 0 {
		header = render.Row(header, s.Muted.Render(render.Count(len(m.tracks), "track")), m.width)
	}
	lines := []string{header, s.Subtle.Render(render.Separator(m.width))}

	if len(m.tracks) == 0 {
		lines = append(lines, s.Muted.Render(render.Truncate(m.empty, m.width)))
		return strings.Join(lines, "\n")
	}

	numWidth := len(strconv.Itoa(len(m.tracks)))
	start, end := m.cur.visible(len(m.tracks), m.rows())
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(i, numWidth))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(i, numWidth int) string {
	s := styles.T().S()
	t := &m.tracks[i]

	marker := " "
	if t.ID == m.playingID {
		marker = playingMarker
	}
	num := strings.Repeat(" ", numWidth-len(strconv.Itoa(i+1))) + strconv.Itoa(i+1)
	prefix := marker + " " + num + "  "

	dur := render.Duration(t.Duration)
	if t.Duration <= 0 {
		dur = ""
	}
	body := max(m.width-len([]rune(prefix))-len(dur)-2, 0)

	nameWidth := body / 2
	if t.PrimaryArtists == "" {
		nameWidth = body
	}
	artistWidth := body - nameWidth - 2
	text := render.Fit(t.Name, nameWidth)
	if artistWidth > 0 {
		text += "  " + render.Fit(t.PrimaryArtists, artistWidth)
	}
	line := render.Pad(prefix+text, m.width-len(dur)) + dur

	switch {
	case i == m.cur.pos && m.focused:
		return s.Cursor.Render(line)
	case t.ID == m.playingID:
		return s.Playing.Render(line)
	default:
		return s.Base.Render(line)
	}
}
