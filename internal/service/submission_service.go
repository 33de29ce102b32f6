package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/internal/models"
	"github.com/noah-isme/classroom-portal/internal/repository"
	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
)

// SubmissionService handles student submissions and admin grading.
type SubmissionService struct {
	submissions repository.Repository[models.Submission]
	files       uploadStorage
	logger      *zap.Logger
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService.
func NewSubmissionService(submissions repository.Repository[models.Submission], files uploadStorage, logger *zap.Logger) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{submissions: submissions, files: files, logger: logger, now: time.Now}
}

// Submit records the actor's file for assignmentID. A second submission for
// the same assignment is rejected before anything is written. assignmentID is
// not checked against the assignments collection.
func (s *SubmissionService) Submit(ctx context.Context, actor models.Identity, assignmentID int, upload Upload) (*models.Submission, error) {
	if err := requireRole(actor, models.RoleStudent); err != nil {
		return nil, err
	}
	if !upload.present() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "You must select a file to submit.")
	}

	submissions := loadAll(ctx, s.submissions, s.logger)
	for _, sub := range submissions {
		if sub.AssignmentID == assignmentID && sub.SubmittedBy == actor.UserID {
			return nil, appErrors.ErrAlreadySubmitted
		}
	}

	name, err := storeUpload(s.files, fmt.Sprintf("sub_%d_%s", actor.UserID, upload.Filename), upload)
	if err != nil {
		return nil, err
	}

	submission := models.Submission{
		SubmissionID: s.submissions.NextID(submissions),
		AssignmentID: assignmentID,
		SubmittedBy:  actor.UserID,
		FilePath:     name,
		SubmitDate:   timestamp(s.now),
		Grade:        models.GradeNotGraded,
	}
	submissions = append(submissions, submission)
	persist(ctx, s.submissions, submissions, s.logger, "submit_assignment")

	s.logger.Info("assignment submitted",
		zap.Int("submission_id", submission.SubmissionID),
		zap.Int("assignment_id", assignmentID),
		zap.Int("user_id", actor.UserID),
	)
	return &submission, nil
}

// Grade sets the grade of one submission, leaving every other record untouched.
func (s *SubmissionService) Grade(ctx context.Context, actor models.Identity, submissionID int, grade string) (*models.Submission, error) {
	if err := requireRole(actor, models.RoleAdmin); err != nil {
		return nil, err
	}

	submissions := loadAll(ctx, s.submissions, s.logger)
	for i := range submissions {
		if submissions[i].SubmissionID != submissionID {
			continue
		}
		submissions[i].Grade = grade
		persist(ctx, s.submissions, submissions, s.logger, "grade_submission")
		s.logger.Info("submission graded", zap.Int("submission_id", submissionID), zap.Int("graded_by", actor.UserID))
		graded := submissions[i]
		return &graded, nil
	}
	return nil, appErrors.ErrSubmissionNotFound
}
