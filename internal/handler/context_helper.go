package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/classroom-portal/internal/middleware"
	"github.com/noah-isme/classroom-portal/internal/models"
	"github.com/noah-isme/classroom-portal/internal/service"
	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
	"github.com/noah-isme/classroom-portal/pkg/response"
)

func identityFromContext(c *gin.Context) (models.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrAuthRequired)
		return models.Identity{}, false
	}
	return identity, true
}

// viewMeta carries the pending flash messages of a view response.
func viewMeta(c *gin.Context) map[string]interface{} {
	return map[string]interface{}{"flashes": middleware.PopFlashes(c)}
}

func redirectWithFlash(c *gin.Context, location, category, message string) {
	middleware.AddFlash(c, category, message)
	response.SeeOther(c, location)
}

// reject answers a failed form post. User-facing rejections become a flash on
// the next view, validation and internal failures an error envelope, and role
// mismatches the usual silent bounce to the dashboard.
func reject(c *gin.Context, err error, location, category string) {
	switch {
	case errors.Is(err, appErrors.ErrRoleMismatch):
		c.Redirect(http.StatusFound, middleware.DashboardPath)
	case errors.Is(err, appErrors.ErrAuthRequired):
		redirectWithFlash(c, middleware.LoginPath, middleware.FlashWarning, appErrors.ErrAuthRequired.Message)
	case appErrors.KindOf(err) == appErrors.KindValidation && !errors.Is(err, appErrors.ErrValidation):
		redirectWithFlash(c, location, category, appErrors.FromError(err).Message)
	default:
		response.Error(c, err)
	}
}

func bindError(c *gin.Context, message string) {
	response.Error(c, appErrors.Clone(appErrors.ErrValidation, message))
}

// formUpload opens the multipart field "file". A missing or empty file yields
// a zero Upload, which services reject.
func formUpload(c *gin.Context, maxBytes int64) (service.Upload, func(), error) {
	noop := func() {}
	header, err := c.FormFile("file")
	if err != nil || header.Filename == "" {
		return service.Upload{}, noop, nil
	}
	if maxBytes > 0 && header.Size > maxBytes {
		return service.Upload{}, noop, appErrors.Clone(appErrors.ErrValidation, "file is too large")
	}
	src, err := header.Open()
	if err != nil {
		return service.Upload{}, noop, appErrors.Wrap(err, appErrors.ErrInternal, "failed to open uploaded file")
	}
	return service.Upload{Filename: header.Filename, Reader: src}, func() { _ = src.Close() }, nil
}
