// Package catalog models tracks returned by the remote song catalog and
// provides a client for it.
package catalog

import (
	"errors"
	"strings"
	"time"
)

// ErrMissingMediaLink is returned when a track has no URL at the requested tier.
// Callers treat it as "cannot be played at this quality", never as a failure.
var ErrMissingMediaLink = errors.New("no media link for quality tier")

// AlbumRef is the album a track belongs to.
type AlbumRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Image is one resolution of a cover image.
type Image struct {
	Quality string `json:"quality"` // e.g. "150x150"
	URL     string `json:"url"`
}

// DownloadLinks maps a quality tier to a media URL.
type DownloadLinks map[QualityTier]string

// Track is a song as returned by the catalog.
// IDs are unique within one response, not across responses.
type Track struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	PrimaryArtists string        `json:"primaryArtists"`
	Album          *AlbumRef     `json:"album,omitempty"`
	Images         []Image       `json:"images,omitempty"` // low to high resolution
	Links          DownloadLinks `json:"links,omitempty"`
	Duration       time.Duration `json:"duration,omitempty"`
	Year           string        `json:"year,omitempty"`
	Language       string        `json:"language,omitempty"`
}

// LinkFor returns the media URL at tier.
func (t *Track) LinkFor(tier QualityTier) (string, error) {
	url := t.Links[tier]
	if url == "" {
		return "", ErrMissingMediaLink
	}
	return url, nil
}

// Clone returns a deep copy of the track.
func (t Track) Clone() Track {
	c := t
	if t.Album != nil {
		a := *t.Album
		c.Album = &a
	}
	if t.Images != nil {
		c.Images = append([]Image(nil), t.Images...)
	}
	if t.Links != nil {
		c.Links = make(DownloadLinks, len(t.Links))
		for k, v := range t.Links {
			c.Links[k] = v
		}
	}
	return c
}

// AlbumName returns the album name or an empty string.
func (t *Track) AlbumName() string {
	if t.Album == nil {
		return ""
	}
	return t.Album.Name
}

// Thumbnail returns the small cover URL (second image, falling back to the first).
func (t *Track) Thumbnail() string {
	return imageAt(t.Images, 1)
}

// Cover returns the large cover URL (third image, falling back to smaller ones).
func (t *Track) Cover() string {
	return imageAt(t.Images, 2)
}

// HasArtist reports whether name appears in the track's artist credit,
// ignoring case.
func (t *Track) HasArtist(name string) bool {
	if t.PrimaryArtists == "" {
		return false
	}
	return strings.Contains(strings.ToLower(t.PrimaryArtists), strings.ToLower(name))
}

func imageAt(images []Image, idx int) string {
	for i := min(idx, len(images)-1); i >= 0; i-- {
		if images[i].URL != "" {
			return images[i].URL
		}
	}
	return ""
}

// Artist is the metadata returned by an artist search.
type Artist struct {
	ID     string
	Name   string
	Images []Image
}

// Cover returns the artist's large image URL.
func (a *Artist) Cover() string {
	return imageAt(a.Images, 2)
}

// AlbumSummary describes an album seen in a list of tracks.
type AlbumSummary struct {
	ID    string
	Name  string
	Cover string
	Year  string
}

// ArtistAlbums groups tracks by album, keeping first-seen order.
// Tracks without an album are skipped.
func ArtistAlbums(tracks []Track) []AlbumSummary {
	seen := make(map[string]bool)
	var albums []AlbumSummary
	for i := range tracks {
		t := &tracks[i]
		if t.Album == nil || seen[t.Album.ID] {
			continue
		}
		seen[t.Album.ID] = true
		albums = append(albums, AlbumSummary{
			ID:    t.Album.ID,
			Name:  t.Album.Name,
			Cover: t.Cover(),
			Year:  t.Year,
		})
	}
	return albums
}
