// Package covers resolves book cover images to local files. A cover is
// either a file name inside the covers directory or an http(s) URL that is
// downloaded into the same directory on first use.
package covers

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ztacole/BacaDong/internal/logging"
)

// DefaultCover is served for books without a cover of their own.
const DefaultCover = "default.jpg"

// ErrNoCover means neither the book's cover nor the default cover exists.
var ErrNoCover = errors.New("cover not available")

// Cache resolves and caches book covers.
type Cache struct {
	dir        string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewCache creates a cover cache rooted at dir, creating it if needed.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create covers dir: %w", err)
	}

	return &Cache{
		dir: dir,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: logging.Component("covers"),
	}, nil
}

// Resolve returns the local path of a book's cover. Remote covers are
// fetched once and then served from disk. Books without a usable cover get
// DefaultCover when the directory holds one.
func (c *Cache) Resolve(ctx context.Context, bookID uint, cover *string) (string, error) {
	name := ""
	if cover != nil {
		name = strings.TrimSpace(*cover)
	}

	if isRemote(name) {
		return c.remote(ctx, bookID, name)
	}

	if name != "" && filepath.Base(name) == name {
		path := filepath.Join(c.dir, name)
		if fileExists(path) {
			return path, nil
		}
		c.log.Debug().Uint("book_id", bookID).Str("cover", name).Msg("cover file missing, using default")
	}

	path := filepath.Join(c.dir, DefaultCover)
	if fileExists(path) {
		return path, nil
	}
	return "", ErrNoCover
}

// Invalidate removes the downloaded covers of a book.
func (c *Cache) Invalidate(bookID uint) error {
	pattern := filepath.Join(c.dir, fmt.Sprintf("cover_%d_*", bookID))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}

	for _, match := range matches {
		if err := os.Remove(match); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Dir returns the covers directory.
func (c *Cache) Dir() string {
	return c.dir
}

func (c *Cache) remote(ctx context.Context, bookID uint, url string) (string, error) {
	path := filepath.Join(c.dir, c.coverFilename(bookID, url))
	if fileExists(path) {
		return path, nil
	}

	if err := c.fetch(ctx, url, path); err != nil {
		c.log.Warn().Err(err).Uint("book_id", bookID).Str("url", url).Msg("cover download failed")
		return "", fmt.Errorf("fetch cover of book %d: %w", bookID, err)
	}
	c.log.Debug().Uint("book_id", bookID).Str("path", path).Msg("cover cached")
	return path, nil
}

// coverFilename keys a download by book and URL so a changed URL is refetched.
func (c *Cache) coverFilename(bookID uint, url string) string {
	hash := sha256.Sum256([]byte(url))
	ext := strings.ToLower(filepath.Ext(strings.SplitN(url, "?", 2)[0]))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		ext = ".jpg"
	}
	return fmt.Sprintf("cover_%d_%x%s", bookID, hash[:8], ext)
}

func (c *Cache) fetch(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "BacaDong/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	// Write to a temp file in the same directory so the rename is atomic.
	tmpFile, err := os.CreateTemp(c.dir, "cover_tmp_")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath)
	}()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

func isRemote(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
