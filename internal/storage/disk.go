package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// PublicPathPrefix is the URL prefix under which stored assets are served.
const PublicPathPrefix = "/uploads/"

// DiskStore is an ObjectStore backed by a local directory. The server mounts
// the directory read-only at /uploads/.
type DiskStore struct {
	root   string
	logger *slog.Logger
}

// NewDiskStore creates a disk-backed object store rooted at dir.
func NewDiskStore(dir string, logger *slog.Logger) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &DiskStore{root: dir, logger: logger}, nil
}

// Save writes data under key and returns the asset's public path.
func (s *DiskStore) Save(ctx context.Context, key string, data []byte) (string, error) {
	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create asset directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write asset %s: %w", key, err)
	}

	s.logger.Debug("asset stored", "key", key, "bytes", len(data))
	return PublicPathPrefix + key, nil
}

// Delete removes the object stored under key.
func (s *DiskStore) Delete(ctx context.Context, key string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete asset %s: %w", key, err)
	}
	return nil
}

// KeyFromPublicPath maps a /uploads/ reference back to a store key. External
// URLs (anything outside the prefix) return false.
func (s *DiskStore) KeyFromPublicPath(path string) (string, bool) {
	if !strings.HasPrefix(path, PublicPathPrefix) {
		return "", false
	}
	key := strings.TrimPrefix(path, PublicPathPrefix)
	if key == "" {
		return "", false
	}
	return key, true
}

// Root returns the directory assets are written to.
func (s *DiskStore) Root() string {
	return s.root
}

// resolve joins key onto the store root, rejecting traversal outside it.
func (s *DiskStore) resolve(key string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid asset key %q", key)
	}
	return filepath.Join(s.root, cleaned), nil
}
