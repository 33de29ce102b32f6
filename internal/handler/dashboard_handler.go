package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-portal/internal/models"
	"github.com/noah-isme/classroom-portal/pkg/response"
)

type dashboardService interface {
	ForIdentity(ctx context.Context, actor models.Identity) models.Dashboard
}

// DashboardHandler serves the role-specific landing view.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Show godoc
// @Summary Dashboard
// @Description Admins get the student list; students get lectures and assignments.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Show(c *gin.Context) {
	actor, ok := identityFromContext(c)
	if !ok {
		return
	}
	dash := h.service.ForIdentity(c.Request.Context(), actor)
	meta := viewMeta(c)
	meta["user"] = actor
	response.JSON(c, http.StatusOK, dash, meta)
}
