package handler

import (
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
	"github.com/noah-isme/classroom-portal/pkg/response"
	"github.com/noah-isme/classroom-portal/pkg/storage"
)

type uploadOpener interface {
	Open(name string) (*os.File, int64, error)
}

// UploadHandler streams stored files to any signed-in user.
type UploadHandler struct {
	files uploadOpener
}

// NewUploadHandler constructs an UploadHandler.
func NewUploadHandler(files uploadOpener) *UploadHandler {
	return &UploadHandler{files: files}
}

// Download godoc
// @Summary Download an uploaded file
// @Tags Uploads
// @Produce octet-stream
// @Param filename path string true "Stored file name"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /uploads/{filename} [get]
func (h *UploadHandler) Download(c *gin.Context) {
	name := c.Param("filename")
	file, size, err := h.files.Open(name)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidName) || errors.Is(err, fs.ErrNotExist) {
			response.Error(c, appErrors.ErrFileNotFound)
			return
		}
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal, "failed to open file"))
		return
	}
	defer file.Close() //nolint:errcheck

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, size, contentType, file, nil)
}
