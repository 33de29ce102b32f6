package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/models"
	"github.com/noah-isme/classroom-portal/internal/service"
	"github.com/noah-isme/classroom-portal/pkg/response"
)

type exportService interface {
	Gradebook(ctx context.Context, actor models.Identity, format string) (*service.ExportFile, error)
}

// ExportHandler serves gradebook downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Gradebook godoc
// @Summary Download the gradebook
// @Tags Export
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /admin/gradebook [get]
func (h *ExportHandler) Gradebook(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}
	var query dto.GradebookQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		bindError(c, "format must be csv or pdf")
		return
	}
	file, err := h.service.Gradebook(c.Request.Context(), actor, query.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}
