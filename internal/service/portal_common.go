package service

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/internal/models"
	"github.com/noah-isme/classroom-portal/internal/repository"
	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
)

// Upload is a file received from a multipart form.
type Upload struct {
	Filename string
	Reader   io.Reader
}

type uploadStorage interface {
	SaveStream(name string, r io.Reader) (string, error)
}

func (u Upload) present() bool {
	return u.Reader != nil && u.Filename != ""
}

// loadAll returns the collection contents, treating every failure as empty.
// The collection itself logs and counts fail-open reads.
func loadAll[T models.Record](ctx context.Context, repo repository.Repository[T], logger *zap.Logger) []T {
	records, err := repo.Load(ctx)
	if err != nil && appErrors.KindOf(err) != appErrors.KindEmptyFallback {
		logger.Warn("unexpected collection load error", zap.Error(err))
	}
	if records == nil {
		records = []T{}
	}
	return records
}

// persist saves records and carries on when the write fails.
func persist[T models.Record](ctx context.Context, repo repository.Repository[T], records []T, logger *zap.Logger, op string) {
	if err := repo.Save(ctx, records); err != nil {
		logger.Warn("save failed, continuing", zap.String("operation", op), zap.Error(err))
	}
}

func requireRole(actor models.Identity, role models.UserRole) error {
	if actor.Role != role {
		return appErrors.ErrRoleMismatch
	}
	return nil
}

func timestamp(now func() time.Time) string {
	return models.FormatTimestamp(now())
}
