// Package playersrv prepares games for the viewing surface: the address the
// frame embeds, thumbnails as data URIs and links for the system browser.
package playersrv

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"go-game-hub/constants"
	"go-game-hub/types"
	"go-game-hub/utils"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrNoContent = errors.New("game has neither a URL nor inline HTML")

// ThumbnailProvider downloads thumbnail images.
type ThumbnailProvider interface {
	DownloadThumbnail(ctx context.Context, thumbnailURL string) ([]byte, error)
}

// Service resolves playable content and caches thumbnails.
type Service struct {
	thumbs   ThumbnailProvider
	cacheDir string
}

// New creates a player service caching thumbnails under cacheDir. An empty
// cacheDir selects the default cache in the user's home directory.
func New(thumbs ThumbnailProvider, cacheDir string) *Service {
	return &Service{thumbs: thumbs, cacheDir: cacheDir}
}

// ResolveContent returns the address the viewing surface embeds. Inline
// markup is served as a self-contained data: document.
func ResolveContent(game types.Game) (string, error) {
	if u := strings.TrimSpace(game.IframeURL); u != "" {
		return u, nil
	}
	if game.HTMLCode != "" {
		return "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(game.HTMLCode)), nil
	}
	return "", fmt.Errorf("%w: %s", ErrNoContent, game.ID)
}

// ExternalURL returns the URL to open in the system browser. Only URL-backed
// games have one.
func ExternalURL(game types.Game) (string, error) {
	raw := strings.TrimSpace(game.IframeURL)
	if raw == "" {
		return "", fmt.Errorf("%w: %s has no external URL", ErrNoContent, game.ID)
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("unsupported external URL for %s: %q", game.ID, raw)
	}
	return u.String(), nil
}

func (s *Service) thumbnailDir() (string, error) {
	if s.cacheDir != "" {
		return s.cacheDir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home dir: %w", err)
	}
	return filepath.Join(homeDir, constants.AppDir, constants.CacheDir, constants.ThumbnailsDir), nil
}

// GetThumbnail returns the thumbnail of a game as a data URI, using a local
// cache. Games without a thumbnail yield an empty string.
func (s *Service) GetThumbnail(ctx context.Context, game types.Game) (string, error) {
	thumb := strings.TrimSpace(game.Thumbnail)
	if thumb == "" {
		return "", nil
	}
	if strings.HasPrefix(thumb, "data:") {
		return thumb, nil
	}

	cacheDir, err := s.thumbnailDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache dir: %w", err)
	}

	ext := thumbnailExt(thumb)
	cachePath := filepath.Join(cacheDir, cacheName(game.ID, thumb)+ext)

	data, err := os.ReadFile(cachePath)
	if err != nil {
		data, err = s.thumbs.DownloadThumbnail(ctx, thumb)
		if err != nil {
			return "", fmt.Errorf("failed to download thumbnail: %w", err)
		}
		_ = os.WriteFile(cachePath, data, 0o644)
	}

	return toDataURI(data, ext), nil
}

// cacheName keys the cache on both id and URL so an edited thumbnail is
// fetched again.
func cacheName(id, thumbURL string) string {
	sum := sha256.Sum256([]byte(thumbURL))
	return utils.SanitizeFileName(id) + "-" + hex.EncodeToString(sum[:6])
}

func thumbnailExt(thumbURL string) string {
	p := thumbURL
	if u, err := url.Parse(thumbURL); err == nil {
		p = u.Path
	}
	ext := strings.ToLower(path.Ext(p))
	switch ext {
	case ".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return ext
	default:
		return ".jpg"
	}
}

func getMimeType(ext string) string {
	switch ext {
	case ".svg":
		return "image/svg+xml"
	case ".ico":
		return "image/x-icon"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

func toDataURI(data []byte, ext string) string {
	mimeType := getMimeType(ext)
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}
