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

type lectureService interface {
	List(ctx context.Context) []models.Lecture
	Upload(ctx context.Context, actor models.Identity, req dto.MaterialUploadRequest, upload service.Upload) (*models.Lecture, error)
}

// LectureHandler manages admin lecture endpoints.
type LectureHandler struct {
	service   lectureService
	maxUpload int64
}

// NewLectureHandler constructs a LectureHandler. maxUpload <= 0 disables the size check.
func NewLectureHandler(service lectureService, maxUpload int64) *LectureHandler {
	return &LectureHandler{service: service, maxUpload: maxUpload}
}

// List godoc
// @Summary List lectures
// @Tags Lectures
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/lectures [get]
func (h *LectureHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List(c.Request.Context()), viewMeta(c))
}

// Upload godoc
// @Summary Upload a lecture
// @Tags Lectures
// @Accept multipart/form-data
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param file formData file true "Lecture file"
// @Success 303 {string} string "redirect to /admin/lectures"
// @Failure 400 {object} response.Envelope
// @Router /admin/lectures [post]
func (h *LectureHandler) Upload(c *gin.Context) {
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
		reject(c, err, "/admin/lectures", middleware.FlashDanger)
		return
	}
	redirectWithFlash(c, "/admin/lectures", middleware.FlashSuccess, "Lecture uploaded successfully.")
}
