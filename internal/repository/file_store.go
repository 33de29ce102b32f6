package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
)

// FileStore keeps each collection in <dir>/<name>.json. Writes truncate and
// rewrite the file in place.
type FileStore struct {
	dir string
}

// NewFileStore ensures dir exists and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file backing the named collection.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Read implements CollectionStore.
func (s *FileStore) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, appErrors.Wrap(err, appErrors.ErrCollectionMissing, "")
		}
		return nil, fmt.Errorf("read %s: %w", s.Path(name), err)
	}
	return data, nil
}

// Write implements CollectionStore.
func (s *FileStore) Write(_ context.Context, name string, data []byte) error {
	if err := os.WriteFile(s.Path(name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.Path(name), err)
	}
	return nil
}

// Ping checks that the data directory is still reachable.
func (s *FileStore) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("stat data directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data path %s is not a directory", s.dir)
	}
	return nil
}
