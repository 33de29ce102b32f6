package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/noah-isme/classroom-portal/internal/models"
	"github.com/noah-isme/classroom-portal/internal/repository"
)

var fixedNow = time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local)

func clock() time.Time { return fixedNow }

type memRepo[T models.Record] struct {
	records []T
	loadErr error
	saveErr error
	saves   int
}

func (r *memRepo[T]) Load(context.Context) ([]T, error) {
	if r.loadErr != nil {
		return []T{}, r.loadErr
	}
	out := make([]T, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *memRepo[T]) Save(_ context.Context, records []T) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.records = append([]T(nil), records...)
	return nil
}

func (r *memRepo[T]) NextID(records []T) int {
	return repository.NextID(records)
}

type memFiles struct {
	saved map[string]string
	err   error
}

func newMemFiles() *memFiles {
	return &memFiles{saved: map[string]string{}}
}

func (f *memFiles) SaveStream(name string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.saved[name] = string(data)
	return name, nil
}

func fileUpload(name, body string) Upload {
	return Upload{Filename: name, Reader: strings.NewReader(body)}
}

var (
	errDiskFull = errors.New("disk full")
	admin       = models.Identity{UserID: 1, Name: "Root", Email: "root@school.test", Role: models.RoleAdmin}
	student     = models.Identity{UserID: 5, Name: "Ann", Email: "a@x", Role: models.RoleStudent}
)
