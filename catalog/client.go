package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go-game-hub/constants"
	"go-game-hub/types"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

var (
	ErrFetchFailed      = errors.New("catalog fetch failed")
	ErrBadStatus        = errors.New("catalog request returned non-success status")
	ErrMalformedCatalog = errors.New("catalog is not a JSON array of games")
)

// Client fetches the base catalog from a URL or a local file.
type Client struct {
	Source  string
	Timeout time.Duration
	Client  *http.Client
}

// NewClient creates a catalog client. A non-positive timeout falls back to
// the default.
func NewClient(source string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = constants.DefaultFetchTimeout
	}
	return &Client{
		Source:  strings.TrimSpace(source),
		Timeout: timeout,
		Client:  &http.Client{},
	}
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// FetchCatalog retrieves and decodes the base catalog. The whole call is
// bounded by the client timeout; when it expires the request is cancelled
// and an ErrFetchFailed error is returned.
func (c *Client) FetchCatalog(ctx context.Context) ([]types.Game, error) {
	if c.Source == "" {
		return nil, fmt.Errorf("%w: no catalog source configured", ErrFetchFailed)
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	var body []byte
	var err error
	if isRemote(c.Source) {
		body, err = c.fetchRemote(ctx, c.Source)
	} else {
		body, err = readLocal(ctx, c.Source)
	}
	if err != nil {
		return nil, err
	}

	var games []types.Game
	if err := json.Unmarshal(body, &games); err != nil || games == nil {
		if err == nil {
			err = errors.New("null document")
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}
	return games, nil
}

func (c *Client) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create catalog request: %v", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrBadStatus, resp.StatusCode)
	}

	body, err := readLimited(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read catalog body: %v", ErrFetchFailed, err)
	}
	return body, nil
}

func readLocal(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer f.Close()

	body, err := readLimited(f)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read catalog file: %v", ErrFetchFailed, err)
	}
	return body, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, constants.MaxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(body) > constants.MaxDocumentSize {
		return nil, fmt.Errorf("document exceeds %d bytes", constants.MaxDocumentSize)
	}
	return body, nil
}

// DownloadThumbnail fetches a thumbnail image from the provided URL
func (c *Client) DownloadThumbnail(ctx context.Context, thumbnailURL string) ([]byte, error) {
	if !isRemote(thumbnailURL) {
		return nil, fmt.Errorf("unsupported thumbnail URL: %s", thumbnailURL)
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, thumbnailURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create thumbnail request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform thumbnail request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("thumbnail fetch failed with status %d", resp.StatusCode)
	}
	return readLimited(resp.Body)
}
