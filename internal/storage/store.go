package storage

import "context"

// ObjectStore stores uploaded binary assets and returns stable public
// references. Assets are immutable once written; replacement always creates
// a new key.
type ObjectStore interface {
	// Save writes the object under key and returns its public path.
	Save(ctx context.Context, key string, data []byte) (string, error)

	// Delete removes the object stored under key. Deleting a missing key is
	// an error; callers treating cleanup as best-effort log and move on.
	Delete(ctx context.Context, key string) error

	// KeyFromPublicPath maps a public reference back to a store key.
	// Returns false for references this store did not produce (external
	// URLs stay untouched on cleanup).
	KeyFromPublicPath(path string) (string, bool)
}
