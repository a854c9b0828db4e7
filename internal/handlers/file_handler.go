package handlers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"dienstmarkt_backend/internal/storage"
	"dienstmarkt_backend/pkg/apperrors"
)

// FileHandler serves stored uploads straight from the storage backend.
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewFileHandler(base *BaseHandler, store storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		storage:     store,
	}
}

func (h *FileHandler) RegisterRoutes(r *gin.RouterGroup) {
	files := r.Group("/files")
	{
		files.GET("/*path", h.ServeFile)
		files.HEAD("/*path", h.CheckFileExists)
	}
}

func (h *FileHandler) ServeFile(c *gin.Context) {
	path := normalizeFilePath(c.Param("path"))
	ctx := c.Request.Context()

	exists, err := h.storage.Exists(ctx, path)
	if err != nil || !exists {
		apperrors.HandleError(c, apperrors.NewNotFoundError("file", "file not found"))
		return
	}

	reader, err := h.storage.Get(ctx, path)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	if size, err := h.storage.GetSize(ctx, path); err == nil {
		c.Header("Content-Length", strconv.FormatInt(size, 10))
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

func (h *FileHandler) CheckFileExists(c *gin.Context) {
	path := normalizeFilePath(c.Param("path"))

	exists, err := h.storage.Exists(c.Request.Context(), path)
	if err != nil || !exists {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusOK)
}

// normalizeFilePath strips the leading slash Gin keeps on wildcard params.
func normalizeFilePath(p string) string {
	if len(p) > 0 && p[0] == '/' {
		return p[1:]
	}
	return p
}
