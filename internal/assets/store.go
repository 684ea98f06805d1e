package assets

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Store persists raw image bytes and returns where they landed.
type Store interface {
	// Save writes the image fetched from ref and returns the stored
	// location.
	Save(ctx context.Context, ref string, data []byte) (string, error)
}

// DirStore stores images as files under a single directory. File names
// come from the URL path basename; an unusable basename falls back to a
// digest of the reference so distinct URLs never collide on a generic
// name.
type DirStore struct {
	dir string
}

// NewDirStore creates a DirStore rooted at dir. The directory is
// created on first save, not here.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Save implements Store.
func (s *DirStore) Save(_ context.Context, ref string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create image directory %q: %w", s.dir, err)
	}

	dest := filepath.Join(s.dir, fileName(ref))
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("write image %q: %w", dest, err)
	}
	return dest, nil
}

// fileName derives a stable file name from an image reference.
func fileName(ref string) string {
	if u, err := url.Parse(ref); err == nil {
		base := path.Base(u.Path)
		if base != "" && base != "." && base != "/" && !strings.ContainsAny(base, "\\:*?\"<>|") {
			return base
		}
	}

	sum := sha1.Sum([]byte(ref))
	return hex.EncodeToString(sum[:]) + ".img"
}
