package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/storefront/internal/storage"
	"go.uber.org/zap"
)

// UploadObject stores a standalone object and returns its opaque key
// together with a temporary URL.
func (s *Server) UploadObject(c *gin.Context) {
	data, contentType, err := readFormUpload(c, "file")
	if err != nil || data == nil {
		AbortWithError(c, newValidationError("file", "invalid_file", "missing or unreadable file"))
		return
	}

	if err := storage.ValidateUpload(s.policy.Get(), data, contentType); err != nil {
		AbortWithError(c, err)
		return
	}

	key, err := s.gateway.Store(c.Request.Context(), data, contentType)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	url, err := s.gateway.URLFor(c.Request.Context(), key, storage.URLOptions{ContentType: contentType})
	if err != nil {
		s.log.Warn("derive url after upload", zap.String("key", key), zap.Error(err))
		url = ""
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"key": key,
		"url": url,
	}})
}
