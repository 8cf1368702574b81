package player

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

const defaultMaxBytes = 64 << 20

// memSource is a downloaded source held in memory. The decoders need to seek,
// which a plain HTTP body cannot do.
type memSource struct {
	*bytes.Reader
	data []byte
}

func (memSource) Close() error { return nil }

func fetch(client *http.Client, url string, maxBytes int64) (*memSource, string, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "saverino/0.1")

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch media: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read media: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, "", fmt.Errorf("read media: larger than %d bytes", maxBytes)
	}
	return &memSource{Reader: bytes.NewReader(data), data: data}, resp.Header.Get("Content-Type"), nil
}
