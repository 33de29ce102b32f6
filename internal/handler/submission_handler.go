package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/middleware"
	"github.com/noah-isme/classroom-portal/internal/models"
	"github.com/noah-isme/classroom-portal/internal/service"
	"github.com/noah-isme/classroom-portal/pkg/response"
)

type submissionService interface {
	Submit(ctx context.Context, actor models.Identity, assignmentID int, upload service.Upload) (*models.Submission, error)
	Grade(ctx context.Context, actor models.Identity, submissionID int, grade string) (*models.Submission, error)
}

// SubmissionHandler handles student submissions and admin grading.
type SubmissionHandler struct {
	service   submissionService
	maxUpload int64
}

// NewSubmissionHandler constructs a SubmissionHandler.
func NewSubmissionHandler(service submissionService, maxUpload int64) *SubmissionHandler {
	return &SubmissionHandler{service: service, maxUpload: maxUpload}
}

// Submit godoc
// @Summary Submit an assignment
// @Tags Submissions
// @Accept multipart/form-data
// @Param assignment_id path int true "Assignment ID"
// @Param file formData file true "Submission file"
// @Success 303 {string} string "redirect to /dashboard"
// @Router /student/submit/{assignment_id} [post]
func (h *SubmissionHandler) Submit(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}
	var path dto.SubmissionPath
	if err := c.ShouldBindUri(&path); err != nil {
		bindError(c, "invalid assignment id")
		return
	}
	upload, closeFn, err := formUpload(c, h.maxUpload)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeFn()
	if upload.Reader == nil {
		redirectWithFlash(c, middleware.DashboardPath, middleware.FlashDanger, "You must select a file to submit.")
		return
	}

	if _, err := h.service.Submit(c.Request.Context(), actor, path.AssignmentID, upload); err != nil {
		reject(c, err, middleware.DashboardPath, middleware.FlashWarning)
		return
	}
	redirectWithFlash(c, middleware.DashboardPath, middleware.FlashSuccess, "Assignment submitted successfully!")
}

// Grade godoc
// @Summary Grade a submission
// @Tags Submissions
// @Accept x-www-form-urlencoded
// @Param submission_id path int true "Submission ID"
// @Param grade formData string true "Grade"
// @Success 303 {string} string "redirect to /admin/assignments"
// @Router /admin/grade/{submission_id} [post]
func (h *SubmissionHandler) Grade(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}
	var path dto.GradePath
	if err := c.ShouldBindUri(&path); err != nil {
		bindError(c, "invalid submission id")
		return
	}
	var req dto.GradeRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, "grade is required")
		return
	}

	if _, err := h.service.Grade(c.Request.Context(), actor, path.SubmissionID, *req.Grade); err != nil {
		reject(c, err, assignmentsPath, middleware.FlashDanger)
		return
	}
	redirectWithFlash(c, assignmentsPath, middleware.FlashSuccess, "Submission graded.")
}
