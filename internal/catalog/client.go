package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNetwork is returned when the catalog is unreachable or answers with a
	// non-success status.
	ErrNetwork = errors.New("catalog unavailable")
	// ErrEmptyResult is returned for a valid response with zero matches.
	ErrEmptyResult = errors.New("no results")
)

const (
	DefaultBaseURL  = "https://jiosaavn-api-privatecvc2.vercel.app"
	DefaultPageSize = 40
	DefaultTimeout  = 12 * time.Second

	userAgent = "saverino/0.1"
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL    string
	PageSize   int
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client provides access to the song catalog API.
type Client struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a catalog client.
func NewClient(opts Options) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		pageSize:   opts.PageSize,
		httpClient: opts.HTTPClient,
		log:        opts.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.pageSize <= 0 {
		c.pageSize = DefaultPageSize
	}
	if c.httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

// PageSize returns the number of songs requested per search page.
func (c *Client) PageSize() int {
	return c.pageSize
}

// SongPage is one page of song search results.
type SongPage struct {
	Query   string
	Page    int
	Tracks  []Track
	HasMore bool
}

// SearchSongs searches the catalog for songs. Pages start at 1.
func (c *Client) SearchSongs(ctx context.Context, query string, page int) (*SongPage, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(c.pageSize))
	params.Set("page", strconv.Itoa(page))

	var resp searchResponse[songResult]
	if err := c.getJSON(ctx, "/search/songs", params, &resp); err != nil {
		return nil, err
	}
	tracks := convertSongs(resp.Data.Results)
	if len(tracks) == 0 {
		return nil, ErrEmptyResult
	}

	c.log.Debug("catalog search",
		zap.String("query", query),
		zap.Int("page", page),
		zap.Int("results", len(tracks)))

	return &SongPage{
		Query:   query,
		Page:    page,
		Tracks:  tracks,
		HasMore: len(tracks) >= c.pageSize,
	}, nil
}

// ArtistSongs returns the first page of songs whose artist credit contains name.
func (c *Client) ArtistSongs(ctx context.Context, name string) ([]Track, error) {
	page, err := c.SearchSongs(ctx, name, 1)
	if err != nil {
		return nil, err
	}
	var tracks []Track
	for i := range page.Tracks {
		if page.Tracks[i].HasArtist(name) {
			tracks = append(tracks, page.Tracks[i])
		}
	}
	if len(tracks) == 0 {
		return nil, ErrEmptyResult
	}
	return tracks, nil
}

// SearchArtist returns the best matching artist for name.
func (c *Client) SearchArtist(ctx context.Context, name string) (*Artist, error) {
	params := url.Values{}
	params.Set("query", name)
	params.Set("limit", "1")
	params.Set("page", "1")

	var resp searchResponse[artistResult]
	if err := c.getJSON(ctx, "/search/artists", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Data.Results) == 0 {
		return nil, ErrEmptyResult
	}
	return resp.Data.Results[0].toArtist(), nil
}

// GetAlbum returns the songs of an album. When the album endpoint yields
// nothing, it falls back to searching nameFallback and keeping the songs whose
// album id matches.
func (c *Client) GetAlbum(ctx context.Context, id, nameFallback string) ([]Track, error) {
	var tracks []Track
	if id != "" {
		params := url.Values{}
		params.Set("id", id)
		var resp albumResponse
		err := c.getJSON(ctx, "/albums", params, &resp)
		switch {
		case err == nil:
			tracks = convertSongs(resp.Data.Songs)
		case errors.Is(err, ErrNetwork):
			// fall through to the search fallback
			c.log.Debug("album endpoint failed", zap.String("album", id), zap.Error(err))
		default:
			return nil, err
		}
	}

	if len(tracks) == 0 && nameFallback != "" {
		page, err := c.SearchSongs(ctx, nameFallback, 1)
		if err != nil {
			return nil, err
		}
		for i := range page.Tracks {
			t := &page.Tracks[i]
			if t.Album != nil && t.Album.ID == id {
				tracks = append(tracks, *t)
			}
		}
	}

	if len(tracks) == 0 {
		return nil, ErrEmptyResult
	}
	return tracks, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, v any) error {
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrNetwork, err)
	}
	return nil
}
