package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"marketplace-backend/internal/application"
	"marketplace-backend/internal/interface/middleware"
	"marketplace-backend/pkg/response"
)

// maxImageSize caps individual image uploads at 8 MiB.
const maxImageSize = 8 << 20

type UploadHandler struct {
	Uploads *application.UploadService
	Logger  *logrus.Logger
}

func NewUploadHandler(uploads *application.UploadService, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{Uploads: uploads, Logger: logger}
}

// Upload POST /api/uploads (multipart field "images", up to 6 files)
func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		response.Error(c, http.StatusBadRequest, "no images attached", nil)
		return
	}
	if len(files) > 6 {
		response.Error(c, http.StatusBadRequest, "too many images, maximum is 6", nil)
		return
	}

	userID := c.GetString(middleware.CtxUserID)
	out := make([]application.Stored, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxImageSize {
			response.Error(c, http.StatusRequestEntityTooLarge, "image too large: "+fh.Filename, nil)
			return
		}
		f, err := fh.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "unreadable image: "+fh.Filename, nil)
			return
		}
		stored, err := h.Uploads.Upload(c.Request.Context(), userID, fh.Filename, fh.Header.Get("Content-Type"), f)
		f.Close()
		if err != nil {
			writeServiceError(c, err)
			return
		}
		out = append(out, *stored)
	}
	response.Success(c, http.StatusCreated, out, "images uploaded", nil)
}

// Delete DELETE /api/uploads/*id — the wildcard carries the storage id,
// which contains slashes.
func (h *UploadHandler) Delete(c *gin.Context) {
	storageID := strings.TrimPrefix(c.Param("id"), "/")
	if storageID == "" {
		response.Error(c, http.StatusBadRequest, "missing storage id", nil)
		return
	}
	if err := h.Uploads.Delete(c.Request.Context(), c.GetString(middleware.CtxUserID), storageID); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"storage_id": storageID}, "image deleted", nil)
}
