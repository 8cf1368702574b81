package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/saverino/internal/playlist"
	"github.com/llehouerou/saverino/internal/ui/playerbar"
	"github.com/llehouerou/saverino/internal/ui/render"
	"github.com/llehouerou/saverino/internal/ui/styles"
)

const landingText = `Stream songs from the catalog right in your terminal.

Search with /, play with enter, and skip with n and p.
Log in with :login to keep playlists.`

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.landing {
		return m.renderLanding()
	}

	sections := []string{
		m.renderHeader(),
		m.renderBody(),
		playerbar.Render(playerbar.NewState(m.session, m.current, m.quality), m.width),
		m.renderInput(),
		m.renderStatus(),
		m.help.View(m.keys),
	}
	return strings.Join(sections, "\n")
}

func (m Model) renderLanding() string {
	s := styles.T().S()
	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.Brand("saverino"),
		"",
		s.Base.Render(landingText),
		"",
		s.Muted.Render("Press any key to start"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderHeader() string {
	s := styles.T().S()

	left := styles.Brand("saverino")
	if m.context != playlist.ContextNone {
		left += "  " + s.Muted.Render(m.context.String())
	}
	if m.loading {
		left += "  " + s.Subtle.Render("loading…")
	}

	user := "not logged in"
	if m.user != "" {
		user = m.user
	}
	right := s.Muted.Render(user + " · " + string(m.theme))
	return render.Row(left, right, m.width)
}

func (m Model) renderBody() string {
	h := max(m.height-3-playerbar.Height-m.helpHeight(), 3)
	if !m.queueVisible {
		return lipgloss.NewStyle().Width(m.width).Height(h).Render(m.list.View())
	}
	queueWidth := m.width / 3
	list := lipgloss.NewStyle().Width(m.width - queueWidth).Height(h).Render(m.list.View())
	queue := lipgloss.NewStyle().Width(queueWidth).Height(h).Render(m.queue.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, list, queue)
}

func (m Model) renderInput() string {
	switch m.focus {
	case FocusSearch:
		return m.search.View()
	case FocusCommand:
		return m.command.View()
	default:
		return ""
	}
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	s := styles.T().S()
	text := render.Truncate(m.status, m.width)
	if m.isError {
		return s.Error.Render(text)
	}
	return s.Success.Render(text)
}
