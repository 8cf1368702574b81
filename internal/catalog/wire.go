package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// flexString accepts a JSON string, number, or null.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(b)
	return nil
}

type linkResult struct {
	Quality string `json:"quality"`
	Link    string `json:"link"`
	URL     string `json:"url"`
}

func (l linkResult) href() string {
	if l.Link != "" {
		return l.Link
	}
	return l.URL
}

type albumResult struct {
	ID   flexString `json:"id"`
	Name string     `json:"name"`
}

type songResult struct {
	ID             flexString   `json:"id"`
	Name           string       `json:"name"`
	Title          string       `json:"title"`
	PrimaryArtists flexString   `json:"primaryArtists"`
	Album          *albumResult `json:"album"`
	Image          []linkResult `json:"image"`
	DownloadURL    []linkResult `json:"downloadUrl"`
	Duration       flexString   `json:"duration"`
	Year           flexString   `json:"year"`
	Language       string       `json:"language"`
}

type artistResult struct {
	ID    flexString   `json:"id"`
	Name  string       `json:"name"`
	Title string       `json:"title"`
	Image []linkResult `json:"image"`
}

type searchResponse[T any] struct {
	Data struct {
		Total   int `json:"total"`
		Start   int `json:"start"`
		Results []T `json:"results"`
	} `json:"data"`
}

type albumResponse struct {
	Data struct {
		ID    flexString   `json:"id"`
		Name  string       `json:"name"`
		Songs []songResult `json:"songs"`
	} `json:"data"`
}

func (s *songResult) toTrack() Track {
	t := Track{
		ID:             string(s.ID),
		Name:           cleanText(firstNonEmpty(s.Name, s.Title)),
		PrimaryArtists: cleanText(string(s.PrimaryArtists)),
		Year:           string(s.Year),
		Language:       s.Language,
	}
	if s.Album != nil && s.Album.ID != "" {
		t.Album = &AlbumRef{ID: string(s.Album.ID), Name: cleanText(s.Album.Name)}
	}
	for _, img := range s.Image {
		t.Images = append(t.Images, Image{Quality: img.Quality, URL: img.href()})
	}
	if len(s.DownloadURL) > 0 {
		t.Links = make(DownloadLinks, len(s.DownloadURL))
		for i, l := range s.DownloadURL {
			if href := l.href(); href != "" {
				t.Links[tierAt(i)] = href
			}
		}
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(string(s.Duration))); err == nil && secs > 0 {
		t.Duration = time.Duration(secs) * time.Second
	}
	return t
}

func (a *artistResult) toArtist() *Artist {
	artist := &Artist{
		ID:   string(a.ID),
		Name: cleanText(firstNonEmpty(a.Name, a.Title)),
	}
	for _, img := range a.Image {
		artist.Images = append(artist.Images, Image{Quality: img.Quality, URL: img.href()})
	}
	return artist
}

func convertSongs(results []songResult) []Track {
	tracks := make([]Track, 0, len(results))
	for i := range results {
		t := results[i].toTrack()
		if t.ID == "" {
			continue
		}
		tracks = append(tracks, t)
	}
	return tracks
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// entityReplacer decodes the HTML entities the API leaves in names.
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&quot;", `"`,
	"&#039;", "'",
	"&#39;", "'",
	"&lt;", "<",
	"&gt;", ">",
)

func cleanText(s string) string {
	return strings.TrimSpace(entityReplacer.Replace(s))
}
