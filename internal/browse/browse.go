// Package browse runs catalog fetches for the browsing contexts and commits
// their results as the active list.
//
// Fetches are not cancelled when the user moves on. Instead every fetch takes
// a generation token, and a result whose token is no longer current is
// dropped with ErrStale.
package browse

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/playlist"
)

// DefaultQuery is searched when the user submits an empty query.
const DefaultQuery = "Top Hits"

var (
	// ErrStale is returned when a newer browsing action superseded the fetch.
	ErrStale = errors.New("superseded by a newer request")
	// ErrNoMore is returned by LoadMore when there is no further page.
	ErrNoMore = errors.New("no more results")
)

// Catalog is the subset of the catalog client used for browsing.
type Catalog interface {
	SearchSongs(ctx context.Context, query string, page int) (*catalog.SongPage, error)
	ArtistSongs(ctx context.Context, name string) ([]catalog.Track, error)
	SearchArtist(ctx context.Context, name string) (*catalog.Artist, error)
	GetAlbum(ctx context.Context, id, nameFallback string) ([]catalog.Track, error)
}

// Target receives committed results. playback.Service satisfies it.
type Target interface {
	SetActiveList(ctx playlist.BrowsingContext, tracks []catalog.Track)
	AppendToActiveList(tracks []catalog.Track)
}

// History records submitted search terms.
type History interface {
	RecordSearch(term string) error
}

// SearchResult is one committed page of search results.
type SearchResult struct {
	Query   string
	Page    int
	Tracks  []catalog.Track // only the tracks of this page
	HasMore bool
}

// ArtistResult is a committed artist view.
type ArtistResult struct {
	Name   string
	Cover  string
	Tracks []catalog.Track
	Albums []catalog.AlbumSummary
}

// AlbumResult is a committed album view.
type AlbumResult struct {
	ID     string
	Name   string
	Tracks []catalog.Track
}

// Browser serialises browsing actions through a generation counter.
type Browser struct {
	catalog Catalog
	target  Target
	history History
	log     *zap.Logger

	mu         sync.Mutex
	generation uint64
	context    playlist.BrowsingContext
	search     SearchResult // last committed search page
}

// New creates a Browser. history may be nil.
func New(c Catalog, target Target, history History, log *zap.Logger) *Browser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Browser{catalog: c, target: target, history: history, log: log}
}

// begin starts a browsing action and returns its token.
func (b *Browser) begin() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.generation++
	return b.generation
}

// commit runs apply if token is still current. apply runs under b.mu so a
// concurrent begin cannot interleave with it.
func (b *Browser) commit(token uint64, apply func()) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if token != b.generation {
		b.log.Debug("dropping stale result", zap.Uint64("token", token), zap.Uint64("current", b.generation))
		return ErrStale
	}
	apply()
	return nil
}

// Search fetches the first page for query and makes it the active list.
// An empty query searches DefaultQuery and is not recorded in the history.
func (b *Browser) Search(ctx context.Context, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		query = DefaultQuery
	} else if b.history != nil {
		if err := b.history.RecordSearch(query); err != nil {
			b.log.Warn("record search", zap.String("query", query), zap.Error(err))
		}
	}

	token := b.begin()
	page, err := b.catalog.SearchSongs(ctx, query, 1)
	if err != nil {
		return nil, b.failed(token, err)
	}

	res := SearchResult{Query: query, Page: page.Page, Tracks: page.Tracks, HasMore: page.HasMore}
	err = b.commit(token, func() {
		b.context = playlist.ContextSearch
		b.search = res
		b.target.SetActiveList(playlist.ContextSearch, page.Tracks)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// LoadMore fetches the next page of the last search and appends it to the
// active list. It returns ErrNoMore when the search view is not showing or
// the last page was not full.
func (b *Browser) LoadMore(ctx context.Context) (*SearchResult, error) {
	b.mu.Lock()
	if b.context != playlist.ContextSearch || !b.search.HasMore {
		b.mu.Unlock()
		return nil, ErrNoMore
	}
	query, next := b.search.Query, b.search.Page+1
	b.generation++
	token := b.generation
	b.mu.Unlock()

	page, err := b.catalog.SearchSongs(ctx, query, next)
	if errors.Is(err, catalog.ErrEmptyResult) {
		if err := b.commit(token, func() { b.search.HasMore = false }); err != nil {
			return nil, err
		}
		return nil, ErrNoMore
	}
	if err != nil {
		return nil, b.failed(token, err)
	}

	res := SearchResult{Query: query, Page: page.Page, Tracks: page.Tracks, HasMore: page.HasMore}
	err = b.commit(token, func() {
		b.search = res
		b.target.AppendToActiveList(page.Tracks)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// OpenArtist shows the songs credited to name, grouped into albums, with
// the artist's cover when the artist lookup succeeds.
func (b *Browser) OpenArtist(ctx context.Context, name string) (*ArtistResult, error) {
	token := b.begin()

	tracks, err := b.catalog.ArtistSongs(ctx, name)
	if err != nil {
		return nil, b.failed(token, err)
	}

	res := ArtistResult{
		Name:   name,
		Tracks: tracks,
		Albums: catalog.ArtistAlbums(tracks),
	}
	if artist, err := b.catalog.SearchArtist(ctx, name); err == nil {
		res.Cover = artist.Cover()
	} else {
		b.log.Debug("artist lookup", zap.String("artist", name), zap.Error(err))
	}
	if res.Cover == "" && len(tracks) > 0 {
		res.Cover = tracks[0].Cover()
	}

	err = b.commit(token, func() {
		b.context = playlist.ContextArtist
		b.target.SetActiveList(playlist.ContextArtist, tracks)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// OpenAlbum shows the songs of album id.
func (b *Browser) OpenAlbum(ctx context.Context, id, name string) (*AlbumResult, error) {
	token := b.begin()

	tracks, err := b.catalog.GetAlbum(ctx, id, name)
	if err != nil {
		return nil, b.failed(token, err)
	}

	res := AlbumResult{ID: id, Name: name, Tracks: tracks}
	err = b.commit(token, func() {
		b.context = playlist.ContextAlbum
		b.target.SetActiveList(playlist.ContextAlbum, tracks)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// OpenPlaylist shows a saved playlist. It needs no fetch, but still
// supersedes any fetch in flight.
func (b *Browser) OpenPlaylist(name string, tracks []catalog.Track) {
	token := b.begin()
	_ = b.commit(token, func() {
		b.context = playlist.ContextPlaylist
		b.target.SetActiveList(playlist.ContextPlaylist, tracks)
	})
	b.log.Debug("playlist opened", zap.String("playlist", name), zap.Int("tracks", len(tracks)))
}

// failed reports err, or ErrStale when the action was superseded meanwhile.
func (b *Browser) failed(token uint64, err error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if token != b.generation {
		return ErrStale
	}
	return err
}
