package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/models"
	"github.com/noah-isme/classroom-portal/internal/repository"
	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
	"github.com/noah-isme/classroom-portal/pkg/storage"
)

// LectureService manages admin-authored lecture files.
type LectureService struct {
	lectures  repository.Repository[models.Lecture]
	files     uploadStorage
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewLectureService constructs a LectureService.
func NewLectureService(lectures repository.Repository[models.Lecture], files uploadStorage, validate *validator.Validate, logger *zap.Logger) *LectureService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &LectureService{lectures: lectures, files: files, validator: validate, logger: logger, now: time.Now}
}

// List returns every lecture.
func (s *LectureService) List(ctx context.Context) []models.Lecture {
	return loadAll(ctx, s.lectures, s.logger)
}

// Upload stores the file under its sanitised name and appends a lecture record.
func (s *LectureService) Upload(ctx context.Context, actor models.Identity, req dto.MaterialUploadRequest, upload Upload) (*models.Lecture, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation, "invalid lecture payload")
	}
	name, err := storeUpload(s.files, upload.Filename, upload)
	if err != nil {
		return nil, err
	}

	lectures := loadAll(ctx, s.lectures, s.logger)
	lecture := models.Lecture{
		LectureID:   s.lectures.NextID(lectures),
		Title:       req.Title,
		Description: req.Description,
		FilePath:    name,
		UploadedBy:  actor.UserID,
		UploadDate:  timestamp(s.now),
		AccessedBy:  []int{},
	}
	lectures = append(lectures, lecture)
	persist(ctx, s.lectures, lectures, s.logger, "upload_lecture")

	s.logger.Info("lecture uploaded", zap.Int("lecture_id", lecture.LectureID), zap.String("file", name))
	return &lecture, nil
}

// storeUpload sanitises rawName and writes the upload under it.
func storeUpload(files uploadStorage, rawName string, upload Upload) (string, error) {
	if !upload.present() {
		return "", appErrors.Clone(appErrors.ErrValidation, "file is required")
	}
	name := storage.SanitizeFilename(rawName)
	if name == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "file name is not usable")
	}
	if _, err := files.SaveStream(name, upload.Reader); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal, "failed to store uploaded file")
	}
	return name, nil
}
