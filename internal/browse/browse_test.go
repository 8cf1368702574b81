package browse

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/playlist"
)

type fakeCatalog struct {
	mu      sync.Mutex
	pages   map[string][]*catalog.SongPage // query -> pages (index = page-1)
	artists map[string][]catalog.Track
	covers  map[string]*catalog.Artist
	albums  map[string][]catalog.Track
	gates   map[string]chan struct{} // blocks a query until closed
	err     error
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		pages:   make(map[string][]*catalog.SongPage),
		artists: make(map[string][]catalog.Track),
		covers:  make(map[string]*catalog.Artist),
		albums:  make(map[string][]catalog.Track),
		gates:   make(map[string]chan struct{}),
	}
}

func (f *fakeCatalog) wait(key string) {
	f.mu.Lock()
	gate := f.gates[key]
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
}

func (f *fakeCatalog) SearchSongs(_ context.Context, query string, page int) (*catalog.SongPage, error) {
	f.wait(query)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	pages := f.pages[query]
	if page < 1 || page > len(pages) {
		return nil, catalog.ErrEmptyResult
	}
	return pages[page-1], nil
}

func (f *fakeCatalog) ArtistSongs(_ context.Context, name string) ([]catalog.Track, error) {
	f.wait(name)
	f.mu.Lock()
	defer f.mu.Unlock()
	if tracks, ok := f.artists[name]; ok {
		return tracks, nil
	}
	return nil, catalog.ErrEmptyResult
}

func (f *fakeCatalog) SearchArtist(_ context.Context, name string) (*catalog.Artist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.covers[name]; ok {
		return a, nil
	}
	return nil, catalog.ErrEmptyResult
}

func (f *fakeCatalog) GetAlbum(_ context.Context, id, _ string) ([]catalog.Track, error) {
	f.wait(id)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if tracks, ok := f.albums[id]; ok {
		return tracks, nil
	}
	return nil, catalog.ErrEmptyResult
}

type setCall struct {
	ctx    playlist.BrowsingContext
	ids    []string
	append bool
}

type fakeTarget struct {
	mu    sync.Mutex
	calls []setCall
}

func (t *fakeTarget) SetActiveList(ctx playlist.BrowsingContext, tracks []catalog.Track) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, setCall{ctx: ctx, ids: ids(tracks)})
}

func (t *fakeTarget) AppendToActiveList(tracks []catalog.Track) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, setCall{ids: ids(tracks), append: true})
}

func (t *fakeTarget) last() setCall {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls[len(t.calls)-1]
}

type fakeHistory struct{ terms []string }

func (h *fakeHistory) RecordSearch(term string) error {
	h.terms = append(h.terms, term)
	return nil
}

func ids(tracks []catalog.Track) []string {
	out := make([]string, len(tracks))
	for i := range tracks {
		out[i] = tracks[i].ID
	}
	return out
}

func tracks(ids ...string) []catalog.Track {
	out := make([]catalog.Track, len(ids))
	for i, id := range ids {
		out[i] = catalog.Track{ID: id}
	}
	return out
}

func TestSearch_CommitsAndRecordsHistory(t *testing.T) {
	cat := newFakeCatalog()
	cat.pages["rock"] = []*catalog.SongPage{{Query: "rock", Page: 1, Tracks: tracks("a", "b"), HasMore: true}}
	target := &fakeTarget{}
	history := &fakeHistory{}
	b := New(cat, target, history, nil)

	res, err := b.Search(context.Background(), "  rock ")
	require.NoError(t, err)

	assert.Equal(t, "rock", res.Query)
	assert.True(t, res.HasMore)
	assert.Equal(t, []string{"rock"}, history.terms)
	assert.Equal(t, setCall{ctx: playlist.ContextSearch, ids: []string{"a", "b"}}, target.last())
}

func TestSearch_EmptyQueryUsesDefault(t *testing.T) {
	cat := newFakeCatalog()
	cat.pages[DefaultQuery] = []*catalog.SongPage{{Page: 1, Tracks: tracks("hit")}}
	history := &fakeHistory{}
	b := New(cat, &fakeTarget{}, history, nil)

	res, err := b.Search(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultQuery, res.Query)
	assert.Empty(t, history.terms)
}

func TestSearch_ErrorLeavesActiveList(t *testing.T) {
	cat := newFakeCatalog()
	cat.err = catalog.ErrNetwork
	target := &fakeTarget{}
	b := New(cat, target, nil, nil)

	_, err := b.Search(context.Background(), "rock")
	assert.ErrorIs(t, err, catalog.ErrNetwork)
	assert.Empty(t, target.calls)
}

func TestSearch_StaleResultDropped(t *testing.T) {
	cat := newFakeCatalog()
	cat.pages["slow"] = []*catalog.SongPage{{Page: 1, Tracks: tracks("s1")}}
	cat.pages["fast"] = []*catalog.SongPage{{Page: 1, Tracks: tracks("f1")}}
	gate := make(chan struct{})
	cat.gates["slow"] = gate
	target := &fakeTarget{}
	b := New(cat, target, nil, nil)

	slowErr := make(chan error, 1)
	started := make(chan struct{})
	go func() {
		close(started)
		_, err := b.Search(context.Background(), "slow")
		slowErr <- err
	}()
	<-started

	// Wait until the slow search has taken its token
	require.Eventually(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.generation == 1
	}, time.Second, 5*time.Millisecond)

	_, err := b.Search(context.Background(), "fast")
	require.NoError(t, err)

	close(gate)
	assert.ErrorIs(t, <-slowErr, ErrStale)
	assert.Len(t, target.calls, 1)
	assert.Equal(t, []string{"f1"}, target.last().ids)
}

func TestLoadMore(t *testing.T) {
	cat := newFakeCatalog()
	cat.pages["rock"] = []*catalog.SongPage{
		{Page: 1, Tracks: tracks("a", "b"), HasMore: true},
		{Page: 2, Tracks: tracks("c"), HasMore: false},
	}
	target := &fakeTarget{}
	b := New(cat, target, nil, nil)

	_, err := b.LoadMore(context.Background())
	assert.ErrorIs(t, err, ErrNoMore, "nothing searched yet")

	_, err = b.Search(context.Background(), "rock")
	require.NoError(t, err)

	res, err := b.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Page)
	assert.False(t, res.HasMore)
	assert.Equal(t, setCall{ids: []string{"c"}, append: true}, target.last())

	_, err = b.LoadMore(context.Background())
	assert.ErrorIs(t, err, ErrNoMore)
}

func TestLoadMore_EmptyPageEndsPaging(t *testing.T) {
	cat := newFakeCatalog()
	cat.pages["rock"] = []*catalog.SongPage{{Page: 1, Tracks: tracks("a"), HasMore: true}}
	b := New(cat, &fakeTarget{}, nil, nil)
	_, _ = b.Search(context.Background(), "rock")

	_, err := b.LoadMore(context.Background())
	assert.ErrorIs(t, err, ErrNoMore)
	_, err = b.LoadMore(context.Background())
	assert.ErrorIs(t, err, ErrNoMore)
}

func TestLoadMore_SupersededEmptyPageIsStale(t *testing.T) {
	cat := newFakeCatalog()
	cat.pages["rock"] = []*catalog.SongPage{{Page: 1, Tracks: tracks("a"), HasMore: true}}
	cat.pages["pop"] = []*catalog.SongPage{
		{Page: 1, Tracks: tracks("p1"), HasMore: true},
		{Page: 2, Tracks: tracks("p2")},
	}
	target := &fakeTarget{}
	b := New(cat, target, nil, nil)
	_, err := b.Search(context.Background(), "rock")
	require.NoError(t, err)

	gate := make(chan struct{})
	cat.mu.Lock()
	cat.gates["rock"] = gate
	cat.mu.Unlock()

	moreErr := make(chan error, 1)
	go func() {
		_, err := b.LoadMore(context.Background())
		moreErr <- err
	}()
	require.Eventually(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.generation == 2
	}, time.Second, 5*time.Millisecond)

	_, err = b.Search(context.Background(), "pop")
	require.NoError(t, err)

	close(gate)
	assert.ErrorIs(t, <-moreErr, ErrStale)

	// The newer search keeps its paging.
	res, err := b.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, setCall{ids: []string{"p2"}, append: true}, target.last())
}

func TestLoadMore_OnlyFromSearchView(t *testing.T) {
	cat := newFakeCatalog()
	cat.pages["rock"] = []*catalog.SongPage{{Page: 1, Tracks: tracks("a"), HasMore: true}}
	cat.albums["al"] = tracks("x")
	b := New(cat, &fakeTarget{}, nil, nil)
	_, _ = b.Search(context.Background(), "rock")
	_, _ = b.OpenAlbum(context.Background(), "al", "Album")

	_, err := b.LoadMore(context.Background())
	assert.ErrorIs(t, err, ErrNoMore)
}

func TestOpenArtist(t *testing.T) {
	cat := newFakeCatalog()
	cat.artists["Arijit"] = []catalog.Track{
		{ID: "1", Album: &catalog.AlbumRef{ID: "x", Name: "X"}},
		{ID: "2", Album: &catalog.AlbumRef{ID: "y", Name: "Y"}},
		{ID: "3", Album: &catalog.AlbumRef{ID: "x", Name: "X"}},
	}
	cat.covers["Arijit"] = &catalog.Artist{Name: "Arijit", Images: []catalog.Image{{URL: "s"}, {URL: "m"}, {URL: "l"}}}
	target := &fakeTarget{}
	b := New(cat, target, nil, nil)

	res, err := b.OpenArtist(context.Background(), "Arijit")
	require.NoError(t, err)

	assert.Equal(t, "l", res.Cover)
	require.Len(t, res.Albums, 2)
	assert.Equal(t, "x", res.Albums[0].ID)
	assert.Equal(t, setCall{ctx: playlist.ContextArtist, ids: []string{"1", "2", "3"}}, target.last())
}

func TestOpenArtist_CoverFallsBackToTrack(t *testing.T) {
	cat := newFakeCatalog()
	cat.artists["Someone"] = []catalog.Track{{ID: "1", Images: []catalog.Image{{URL: "t0"}, {URL: "t1"}, {URL: "t2"}}}}
	b := New(cat, &fakeTarget{}, nil, nil)

	res, err := b.OpenArtist(context.Background(), "Someone")
	require.NoError(t, err)
	assert.Equal(t, "t2", res.Cover)
}

func TestOpenAlbum(t *testing.T) {
	cat := newFakeCatalog()
	cat.albums["al1"] = tracks("s1", "s2")
	target := &fakeTarget{}
	b := New(cat, target, nil, nil)

	res, err := b.OpenAlbum(context.Background(), "al1", "Album One")
	require.NoError(t, err)
	assert.Equal(t, "Album One", res.Name)
	assert.Equal(t, setCall{ctx: playlist.ContextAlbum, ids: []string{"s1", "s2"}}, target.last())

	_, err = b.OpenAlbum(context.Background(), "missing", "")
	assert.ErrorIs(t, err, catalog.ErrEmptyResult)
}

func TestOpenPlaylist_SupersedesPendingFetch(t *testing.T) {
	cat := newFakeCatalog()
	cat.albums["al"] = tracks("x")
	gate := make(chan struct{})
	cat.gates["al"] = gate
	target := &fakeTarget{}
	b := New(cat, target, nil, nil)

	done := make(chan error, 1)
	go func() {
		_, err := b.OpenAlbum(context.Background(), "al", "")
		done <- err
	}()
	require.Eventually(t, func() bool {
		b.mu.Lock()
		defer b.mu.Unlock()
		return b.generation == 1
	}, time.Second, 5*time.Millisecond)

	b.OpenPlaylist("Mix", tracks("p1", "p2"))
	close(gate)

	err := <-done
	if !errors.Is(err, ErrStale) {
		t.Fatalf("OpenAlbum() error = %v, want ErrStale", err)
	}
	assert.Equal(t, setCall{ctx: playlist.ContextPlaylist, ids: []string{"p1", "p2"}}, target.last())
}
