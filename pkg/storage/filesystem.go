package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidName is returned when a requested name could escape the base directory.
var ErrInvalidName = errors.New("invalid file name")

// LocalStorage persists uploaded files flat under a base directory.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// SaveStream copies r into <base>/<name>, truncating any existing file of the
// same name. name must already be sanitised.
func (s *LocalStorage) SaveStream(name string, r io.Reader) (string, error) {
	path, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if err := copyAndClose(file, r); err != nil {
		return "", err
	}
	return name, nil
}

// copyAndClose drains r into dst and always closes dst. A failed close is
// reported because buffered writes may only surface there.
func copyAndClose(dst io.WriteCloser, r io.Reader) error {
	if _, err := io.Copy(dst, r); err != nil {
		_ = dst.Close()
		return fmt.Errorf("write upload stream: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close upload file: %w", err)
	}
	return nil
}

// Open returns a read-only handle and its size for the stored file.
// A missing file yields an error satisfying errors.Is(err, fs.ErrNotExist).
func (s *LocalStorage) Open(name string) (*os.File, int64, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, 0, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open upload file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, 0, fmt.Errorf("stat upload file: %w", err)
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, 0, fmt.Errorf("open upload file: %w", fs.ErrNotExist)
	}
	return file, info.Size(), nil
}

// Dir returns the base directory.
func (s *LocalStorage) Dir() string {
	return s.baseDir
}

func (s *LocalStorage) resolve(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return "", ErrInvalidName
	}
	return filepath.Join(s.baseDir, name), nil
}
