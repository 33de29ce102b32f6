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
)

// AssignmentService manages assignment briefs and the admin overview of submissions.
type AssignmentService struct {
	assignments repository.Repository[models.Assignment]
	submissions repository.Repository[models.Submission]
	users       repository.Repository[models.User]
	files       uploadStorage
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// NewAssignmentService constructs an AssignmentService.
func NewAssignmentService(
	assignments repository.Repository[models.Assignment],
	submissions repository.Repository[models.Submission],
	users repository.Repository[models.User],
	files uploadStorage,
	validate *validator.Validate,
	logger *zap.Logger,
) *AssignmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AssignmentService{
		assignments: assignments,
		submissions: submissions,
		users:       users,
		files:       files,
		validator:   validate,
		logger:      logger,
		now:         time.Now,
	}
}

// List returns every assignment.
func (s *AssignmentService) List(ctx context.Context) []models.Assignment {
	return loadAll(ctx, s.assignments, s.logger)
}

// Upload stores the brief under its sanitised name and appends an assignment record.
func (s *AssignmentService) Upload(ctx context.Context, actor models.Identity, req dto.MaterialUploadRequest, upload Upload) (*models.Assignment, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation, "invalid assignment payload")
	}
	name, err := storeUpload(s.files, upload.Filename, upload)
	if err != nil {
		return nil, err
	}

	assignments := loadAll(ctx, s.assignments, s.logger)
	assignment := models.Assignment{
		AssignmentID: s.assignments.NextID(assignments),
		Title:        req.Title,
		Description:  req.Description,
		FilePath:     name,
		UploadedBy:   actor.UserID,
		UploadDate:   timestamp(s.now),
	}
	assignments = append(assignments, assignment)
	persist(ctx, s.assignments, assignments, s.logger, "upload_assignment")

	s.logger.Info("assignment uploaded", zap.Int("assignment_id", assignment.AssignmentID), zap.String("file", name))
	return &assignment, nil
}

// Overview returns all assignments and all submissions with submitter names.
func (s *AssignmentService) Overview(ctx context.Context) models.AssignmentOverview {
	names := studentNames(loadAll(ctx, s.users, s.logger))
	submissions := loadAll(ctx, s.submissions, s.logger)

	details := make([]models.SubmissionDetail, 0, len(submissions))
	for _, sub := range submissions {
		details = append(details, models.SubmissionDetail{Submission: sub, StudentName: names.lookup(sub.SubmittedBy)})
	}
	return models.AssignmentOverview{
		Assignments: loadAll(ctx, s.assignments, s.logger),
		Submissions: details,
	}
}

type nameIndex map[int]string

// studentNames indexes users by id. The first user with a given id wins.
func studentNames(users []models.User) nameIndex {
	idx := make(nameIndex, len(users))
	for _, u := range users {
		if _, ok := idx[u.UserID]; !ok {
			idx[u.UserID] = u.Name
		}
	}
	return idx
}

func (n nameIndex) lookup(id int) string {
	if name, ok := n[id]; ok {
		return name
	}
	return models.UnknownStudentName
}
