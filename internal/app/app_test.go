package app

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/saverino/internal/browse"
	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/errmsg"
	"github.com/llehouerou/saverino/internal/playback"
	"github.com/llehouerou/saverino/internal/player"
	"github.com/llehouerou/saverino/internal/playlist"
	"github.com/llehouerou/saverino/internal/state"
)

type stubCatalog struct {
	pages  map[string][]*catalog.SongPage
	albums map[string][]catalog.Track
}

func (c *stubCatalog) SearchSongs(_ context.Context, query string, page int) (*catalog.SongPage, error) {
	pages := c.pages[query]
	if page < 1 || page > len(pages) {
		return nil, catalog.ErrEmptyResult
	}
	return pages[page-1], nil
}

func (c *stubCatalog) ArtistSongs(context.Context, string) ([]catalog.Track, error) {
	return nil, catalog.ErrEmptyResult
}

func (c *stubCatalog) SearchArtist(context.Context, string) (*catalog.Artist, error) {
	return nil, catalog.ErrEmptyResult
}

func (c *stubCatalog) GetAlbum(_ context.Context, id, _ string) ([]catalog.Track, error) {
	tracks, ok := c.albums[id]
	if !ok {
		return nil, catalog.ErrEmptyResult
	}
	return tracks, nil
}

func track(id, name string) catalog.Track {
	links := catalog.DownloadLinks{}
	for _, tier := range catalog.Tiers {
		links[tier] = "https://media.example/" + id + "/" + string(tier)
	}
	return catalog.Track{
		ID:             id,
		Name:           name,
		PrimaryArtists: "Artist One, Artist Two",
		Album:          &catalog.AlbumRef{ID: "al-" + id, Name: "Album " + id},
		Links:          links,
	}
}

type testEnv struct {
	player  *player.Mock
	svc     playback.Service
	store   *state.Mock
	catalog *stubCatalog
}

func newTestModel(t *testing.T, prepare func(*state.Mock)) (Model, *testEnv) {
	t.Helper()
	env := &testEnv{
		player: player.NewMock(),
		store:  state.NewMock(),
		catalog: &stubCatalog{
			pages: map[string][]*catalog.SongPage{
				"abc": {
					{Query: "abc", Page: 1, Tracks: []catalog.Track{track("1", "One"), track("2", "Two")}, HasMore: true},
					{Query: "abc", Page: 2, Tracks: []catalog.Track{track("3", "Three")}},
				},
				browse.DefaultQuery: {
					{Query: browse.DefaultQuery, Page: 1, Tracks: []catalog.Track{track("9", "Hit")}},
				},
			},
			albums: map[string][]catalog.Track{"al-1": {track("1", "One"), track("4", "Four")}},
		},
	}
	require.NoError(t, env.store.SetSkipLanding(true))
	if prepare != nil {
		prepare(env.store)
	}
	env.svc = playback.New(env.player, playback.Options{})
	t.Cleanup(func() { _ = env.svc.Close() })

	m := New(Deps{
		Service: env.svc,
		Browser: browse.New(env.catalog, env.svc, env.store, nil),
		Store:   env.store,
	})
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, env
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func enter() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

// feed runs cmd and hands its message back to the model.
func feed(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	return update(m, cmd())
}

// syncActiveList delivers the service's active list as the event would.
func syncActiveList(m Model, env *testEnv) Model {
	m, _ = update(m, ServiceActiveListMsg{
		Context:  env.svc.ActiveContext(),
		Tracks:   env.svc.ActiveList(),
		Revision: m.revision + 1,
	})
	return m
}

func TestNew_RestoresPreferences(t *testing.T) {
	m, env := newTestModel(t, func(s *state.Mock) {
		_ = s.SetTheme(state.ThemeDark)
		_ = s.SetQuality(catalog.Tier320kbps)
		_ = s.Register("ana", "pw")
		_ = s.Login("ana")
	})

	assert.False(t, m.landing)
	assert.Equal(t, state.ThemeDark, m.theme)
	assert.Equal(t, catalog.Tier320kbps, m.quality)
	assert.Equal(t, catalog.Tier320kbps, env.svc.Quality())
	assert.Equal(t, "ana", m.user)
}

func TestLanding_DismissPersists(t *testing.T) {
	m, env := newTestModel(t, func(s *state.Mock) { _ = s.SetSkipLanding(false) })
	require.True(t, m.landing)
	assert.Contains(t, m.View(), "Press any key")

	m, _ = update(m, keyRunes("x"))

	assert.False(t, m.landing)
	skip, err := env.store.SkipLanding()
	require.NoError(t, err)
	assert.True(t, skip)
}

func TestSearch_CommitsAndShowsResults(t *testing.T) {
	m, env := newTestModel(t, nil)

	m, _ = update(m, keyRunes("/"))
	require.Equal(t, FocusSearch, m.focus)
	m.search.SetValue("abc")

	m, cmd := update(m, enter())
	assert.Equal(t, FocusList, m.focus)
	assert.True(t, m.loading)

	m, _ = feed(t, m, cmd)
	assert.False(t, m.loading)
	assert.True(t, m.hasMore)
	assert.Equal(t, `Search: "abc"`, m.viewTitle)

	m = syncActiveList(m, env)
	assert.Equal(t, 2, m.list.Len())
	assert.Equal(t, playlist.ContextSearch, m.context)

	history, err := env.store.SearchHistory()
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, history)
}

func TestSearch_EmptyResultShowsMessage(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.search.SetValue("nothing here")
	m.focus = FocusSearch

	m, cmd := update(m, enter())
	m, _ = feed(t, m, cmd)

	assert.True(t, m.isError)
	assert.Equal(t, "No results found. Try another search term.", m.status)
}

func TestSearch_StaleResultIsSilent(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = update(m, SearchResultMsg{Err: browse.ErrStale})

	assert.Empty(t, m.status)
	assert.False(t, m.loading)
}

func TestLoadMore_AtBottomKeepsSelection(t *testing.T) {
	m, env := newTestModel(t, nil)
	m.search.SetValue("abc")
	m.focus = FocusSearch
	m, cmd := update(m, enter())
	m, _ = feed(t, m, cmd)
	m = syncActiveList(m, env)

	m, _ = update(m, keyRunes("j"))
	require.True(t, m.list.AtBottom())

	m, cmd = update(m, keyRunes("j"))
	require.True(t, m.loading)
	m, _ = feed(t, m, cmd)
	m = syncActiveList(m, env)

	assert.Equal(t, 3, m.list.Len())
	assert.Equal(t, 1, m.list.SelectedIndex())
	assert.False(t, m.hasMore)

	m, cmd = update(m, keyRunes("m"))
	m, _ = feed(t, m, cmd)
	assert.Equal(t, "No more results", m.status)
}

func TestPlay_SelectedTrack(t *testing.T) {
	m, env := newTestModel(t, nil)
	env.svc.SetActiveList(playlist.ContextSearch, []catalog.Track{track("1", "One"), track("2", "Two")})
	m = syncActiveList(m, env)

	m, cmd := update(m, keyRunes("j"))
	require.Nil(t, cmd)
	m, cmd = update(m, enter())
	m, _ = feed(t, m, cmd)
	assert.Empty(t, m.status)

	require.Equal(t, []string{"https://media.example/2/" + string(catalog.DefaultTier)}, env.player.PlayCalls())

	m, cmd = update(m, m.snapshotCmd()())
	assert.Equal(t, "2", m.session.CurrentTrackID)
	assert.True(t, m.hasPrev)
	assert.False(t, m.hasNext)
	assert.True(t, m.ticking, "playing session starts the tick")
	assert.NotNil(t, cmd)
}

func TestNextAndPrevious(t *testing.T) {
	m, env := newTestModel(t, nil)
	env.svc.SetActiveList(playlist.ContextSearch, []catalog.Track{track("1", "One"), track("2", "Two")})
	require.NoError(t, env.svc.PlayTrack(track("1", "One")))

	m, cmd := update(m, keyRunes("n"))
	m, _ = feed(t, m, cmd)
	assert.Equal(t, "2", env.svc.CurrentTrack().ID)

	_, cmd = update(m, keyRunes("p"))
	_, _ = feed(t, m, cmd)
	assert.Equal(t, "1", env.svc.CurrentTrack().ID)
}

func TestOpenAlbum_FromSelection(t *testing.T) {
	m, env := newTestModel(t, nil)
	env.svc.SetActiveList(playlist.ContextSearch, []catalog.Track{track("1", "One")})
	m = syncActiveList(m, env)

	m, cmd := update(m, keyRunes("A"))
	m, _ = feed(t, m, cmd)

	assert.Equal(t, "Album: Album 1", m.viewTitle)
	assert.Equal(t, playlist.ContextAlbum, env.svc.ActiveContext())

	m = syncActiveList(m, env)
	assert.Equal(t, 2, m.list.Len())
	assert.Equal(t, 0, m.list.SelectedIndex())
}

func TestQueue_RemoveSelected(t *testing.T) {
	m, env := newTestModel(t, nil)
	tracks := []catalog.Track{track("1", "One"), track("2", "Two"), track("3", "Three")}
	env.svc.SetActiveList(playlist.ContextSearch, tracks)
	require.NoError(t, env.svc.PlayTrack(tracks[0]))
	m, _ = update(m, ServiceQueueMsg{Tracks: env.svc.Queue()})
	require.Equal(t, 2, m.queue.Len())

	m, _ = update(m, keyRunes("Q"))
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, FocusQueue, m.focus)

	_, cmd := update(m, keyRunes("x"))
	_, _ = feed(t, m, cmd)

	queue := env.svc.Queue()
	require.Len(t, queue, 1)
	assert.Equal(t, "3", queue[0].ID)
	assert.Len(t, env.svc.ActiveList(), 3)
}

func TestSeek_UsesCachedSession(t *testing.T) {
	m, env := newTestModel(t, nil)
	m.session = playback.Session{CurrentTrackID: "1", Duration: 100e9, Position: 50e9}
	env.player.SetDuration(100e9)
	require.NoError(t, env.svc.PlayTrack(track("1", "One")))

	_, cmd := update(m, keyRunes("l"))
	require.NotNil(t, cmd)
	done, ok := cmd().(ActionDoneMsg)
	require.True(t, ok)
	assert.Equal(t, errmsg.OpPlaybackSeek, done.Op)
	require.NoError(t, done.Err)

	seeks := env.player.SeekCalls()
	require.Len(t, seeks, 1)
	assert.Equal(t, int64(60e9), int64(seeks[0]))
}

func TestSeek_UnknownDurationDoesNothing(t *testing.T) {
	m, _ := newTestModel(t, nil)
	_, cmd := update(m, keyRunes("h"))
	assert.Nil(t, cmd)
}

func TestQualityKey(t *testing.T) {
	m, env := newTestModel(t, nil)

	m, _ = update(m, keyRunes("4"))

	assert.Equal(t, catalog.Tier320kbps, m.quality)
	assert.Equal(t, catalog.Tier320kbps, env.svc.Quality())
	saved, err := env.store.Quality(catalog.DefaultTier)
	require.NoError(t, err)
	assert.Equal(t, catalog.Tier320kbps, saved)
}

func TestThemeToggle(t *testing.T) {
	m, env := newTestModel(t, nil)
	require.Equal(t, state.ThemeLight, m.theme)

	m, _ = update(m, keyRunes("t"))

	assert.Equal(t, state.ThemeDark, m.theme)
	saved, err := env.store.Theme()
	require.NoError(t, err)
	assert.Equal(t, state.ThemeDark, saved)
}

func TestServiceError_ShowsStatus(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, cmd := update(m, ServiceErrorMsg{Operation: "play", TrackID: "1", Err: errors.New("decoder gone")})

	assert.NotNil(t, cmd)
	assert.True(t, m.isError)
	assert.Equal(t, "Failed to start playback: decoder gone", m.status)
}

func TestStatusClear_OnlyLatest(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = m.setStatus("first", false)
	m, _ = m.setStatus("second", false)

	m, _ = update(m, StatusClearMsg{ID: 1})
	assert.Equal(t, "second", m.status)

	m, _ = update(m, StatusClearMsg{ID: 2})
	assert.Empty(t, m.status)
}

func TestView_RendersPlayerBar(t *testing.T) {
	m, _ := newTestModel(t, nil)

	view := m.View()

	assert.Contains(t, view, "Nothing playing")
	assert.Contains(t, view, "not logged in")
}

func TestExtends(t *testing.T) {
	a := []catalog.Track{track("1", "One"), track("2", "Two")}
	b := append(append([]catalog.Track(nil), a...), track("3", "Three"))

	assert.True(t, extends(a, b))
	assert.False(t, extends(b, a))
	assert.False(t, extends(nil, b))
	assert.False(t, extends(a, []catalog.Track{track("9", "X"), track("2", "Two"), track("3", "Three")}))
}
