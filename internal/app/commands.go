package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/errmsg"
)

// fetchTimeout bounds a single catalog request made from the UI.
const fetchTimeout = 15 * time.Second

// TickCmd returns a command that sends TickMsg after 1 second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// statusClearCmd clears status message id after StatusDuration.
func statusClearCmd(id int) tea.Cmd {
	return tea.Tick(StatusDuration, func(time.Time) tea.Msg {
		return StatusClearMsg{ID: id}
	})
}

// snapshotCmd reads the session off the UI goroutine.
func (m Model) snapshotCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return SessionMsg{
			Session: svc.Session(),
			Track:   svc.CurrentTrack(),
			HasNext: svc.HasNext(),
			HasPrev: svc.HasPrevious(),
		}
	}
}

// actionCmd runs a playback action off the UI goroutine.
func actionCmd(op errmsg.Op, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return ActionDoneMsg{Op: op, Err: fn()}
	}
}

func (m Model) playCmd(t catalog.Track) tea.Cmd {
	svc := m.svc
	return actionCmd(errmsg.OpPlaybackStart, func() error { return svc.PlayTrack(t) })
}

func (m Model) searchCmd(query string) tea.Cmd {
	b := m.browser
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		res, err := b.Search(ctx, query)
		return SearchResultMsg{Result: res, Err: err}
	}
}

func (m Model) loadMoreCmd() tea.Cmd {
	b := m.browser
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		res, err := b.LoadMore(ctx)
		return SearchResultMsg{Result: res, More: true, Err: err}
	}
}

func (m Model) openArtistCmd(name string) tea.Cmd {
	b := m.browser
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		res, err := b.OpenArtist(ctx, name)
		return ArtistResultMsg{Result: res, Err: err}
	}
}

func (m Model) openAlbumCmd(id, name string) tea.Cmd {
	b := m.browser
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		res, err := b.OpenAlbum(ctx, id, name)
		return AlbumResultMsg{Result: res, Err: err}
	}
}

// watchService returns a command that waits for the next session event.
func (m Model) watchService() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return ServiceStateMsg(e)
		case e := <-sub.TrackChanged:
			return ServiceTrackMsg(e)
		case e := <-sub.QueueChanged:
			return ServiceQueueMsg(e)
		case e := <-sub.ActiveListChanged:
			return ServiceActiveListMsg(e)
		case e := <-sub.Error:
			return ServiceErrorMsg(e)
		case e := <-sub.PositionChanged:
			return ServicePositionMsg(e)
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}
