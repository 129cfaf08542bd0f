package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/sync/singleflight"
)

const userAgent = "rskel/0.1.0"

// StatusError is a non-200 response from docs.rs.
type StatusError struct {
	Name       string
	Version    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("docs.rs returned %d for %s/%s: %s", e.StatusCode, e.Name, e.Version, e.Body)
}

// Client downloads rustdoc JSON from docs.rs, with an on-disk cache.
// Concurrent requests for the same crate@version are coalesced.
type Client struct {
	HTTP     *http.Client
	BaseURL  string
	CacheDir string
	NoCache  bool

	group singleflight.Group
}

// NewClient returns a client caching under cacheDir. An empty cacheDir
// disables the cache.
func NewClient(cacheDir string) *Client {
	return &Client{
		HTTP:     &http.Client{Timeout: 60 * time.Second},
		BaseURL:  "https://docs.rs",
		CacheDir: cacheDir,
		NoCache:  cacheDir == "",
	}
}

// CrateJSON returns the rustdoc JSON document for name@version. The version
// "latest" is resolved by docs.rs via redirect.
func (c *Client) CrateJSON(ctx context.Context, name, version string) ([]byte, error) {
	if version == "" {
		version = "latest"
	}

	key := name + "@" + version
	v, err, _ := c.group.Do(key, func() (any, error) {
		if !c.NoCache && HasCached(c.CacheDir, name, version) {
			data, err := LoadCached(c.CacheDir, name, version)
			if err == nil {
				slog.Debug("rustdoc json cache hit", "crate", key)
				return data, nil
			}
			slog.Warn("discarding unreadable cache entry", "crate", key, "error", err)
		}

		data, err := c.download(ctx, name, version)
		if err != nil {
			return nil, err
		}

		if !c.NoCache {
			if err := SaveCached(c.CacheDir, data, name, version); err != nil {
				slog.Warn("caching rustdoc json failed", "crate", key, "error", err)
			}
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Client) download(ctx context.Context, name, version string) ([]byte, error) {
	url := fmt.Sprintf("%s/crate/%s/%s/json", c.BaseURL, name, version)
	slog.Info("fetching rustdoc json", "crate", name, "version", version)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &StatusError{Name: name, Version: version, StatusCode: resp.StatusCode, Body: string(body)}
	}

	// docs.rs serves the JSON zstd-compressed.
	decoder, err := zstd.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer decoder.Close()

	data, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("decompressing rustdoc JSON: %w", err)
	}
	return data, nil
}
