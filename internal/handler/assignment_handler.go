package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/middleware"
	"github.com/noah-isme/classroom-portal/internal/models"
	"github.com/noah-isme/classroom-portal/internal/service"
	"github.com/noah-isme/classroom-portal/pkg/response"
)

const assignmentsPath = "/admin/assignments"

type assignmentService interface {
	Overview(ctx context.Context) models.AssignmentOverview
	Upload(ctx context.Context, actor models.Identity, req dto.MaterialUploadRequest, upload service.Upload) (*models.Assignment, error)
}

// AssignmentHandler manages admin assignment endpoints.
type AssignmentHandler struct {
	service   assignmentService
	maxUpload int64
}

// NewAssignmentHandler constructs an AssignmentHandler.
func NewAssignmentHandler(service assignmentService, maxUpload int64) *AssignmentHandler {
	return &AssignmentHandler{service: service, maxUpload: maxUpload}
}

// Overview godoc
// @Summary Assignments and submissions
// @Description Submissions carry student_name, "Unknown" when the submitter no longer exists.
// @Tags Assignments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/assignments [get]
func (h *AssignmentHandler) Overview(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Overview(c.Request.Context()), viewMeta(c))
}

// Upload godoc
// @Summary Upload an assignment
// @Tags Assignments
// @Accept multipart/form-data
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param file formData file true "Assignment brief"
// @Success 303 {string} string "redirect to /admin/assignments"
// @Failure 400 {object} response.Envelope
// @Router /admin/assignments [post]
func (h *AssignmentHandler) Upload(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}
	var req dto.MaterialUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, "title is required")
		return
	}
	upload, closeFn, err := formUpload(c, h.maxUpload)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeFn()

	if _, err := h.service.Upload(c.Request.Context(), actor, req, upload); err != nil {
		reject(c, err, assignmentsPath, middleware.FlashDanger)
		return
	}
	redirectWithFlash(c, assignmentsPath, middleware.FlashSuccess, "Assignment uploaded successfully.")
}
