package notify

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	_ "image/jpeg" // JPEG decoder for cover art
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/nfnt/resize"
)

// CoverSize is the edge, in pixels, of cached notification icons.
const CoverSize = 128

const maxCoverBytes = 4 << 20

// CoverCache downloads remote cover images and stores icon-sized PNG copies
// on disk, since notification servers only accept local paths.
type CoverCache struct {
	dir    string
	client *http.Client
}

// NewCoverCache creates a cache under dir, or under the XDG cache dir when
// dir is empty.
func NewCoverCache(dir string, client *http.Client) (*CoverCache, error) {
	if dir == "" {
		probe, err := xdg.CacheFile("saverino/covers/.keep")
		if err != nil {
			return nil, fmt.Errorf("resolve cover cache: %w", err)
		}
		dir = filepath.Dir(probe)
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cover cache: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &CoverCache{dir: dir, client: client}, nil
}

// Path returns the local icon for url, downloading it on first use.
func (c *CoverCache) Path(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", errors.New("no cover url")
	}

	path := filepath.Join(c.dir, coverName(url))
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	img, err := c.fetch(ctx, url)
	if err != nil {
		return "", err
	}
	thumb := resize.Thumbnail(CoverSize, CoverSize, img, resize.Lanczos3)

	tmp, err := os.CreateTemp(c.dir, "cover-*.png")
	if err != nil {
		return "", fmt.Errorf("create cover file: %w", err)
	}
	if err := png.Encode(tmp, thumb); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("encode cover: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return path, nil
}

func (c *CoverCache) fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch cover: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch cover: status %d", resp.StatusCode)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxCoverBytes))
	if err != nil {
		return nil, fmt.Errorf("decode cover: %w", err)
	}
	return img, nil
}

func coverName(url string) string {
	h := fnv.New64a()
	h.Write([]byte(url))
	return fmt.Sprintf("%x.png", h.Sum64())
}
