package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	gallerydomain "github.com/smallbiznis/storefront/internal/gallery/domain"
)

func (s *Server) CreateGallery(c *gin.Context) {
	var req gallerydomain.CreateRequest

	if isMultipart(c) {
		req.Description = formString(c, "description")

		data, contentType, err := readFormUpload(c, "image")
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		if data != nil {
			req.Image = &gallerydomain.Upload{Data: data, ContentType: contentType}
		}
	} else {
		var body struct {
			Description *string `json:"description"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		req.Description = body.Description
	}

	resp, err := s.gallerySvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateGallery(c *gin.Context) {
	req := gallerydomain.UpdateRequest{
		ID: strings.TrimSpace(c.Param("id")),
	}

	if isMultipart(c) {
		req.Description = formString(c, "description")

		data, contentType, err := readFormUpload(c, "image")
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		if data != nil {
			req.Image = &gallerydomain.Upload{Data: data, ContentType: contentType}
		}
	} else {
		var body struct {
			Description *string `json:"description"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		req.Description = body.Description
	}

	resp, err := s.gallerySvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteGallery(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.gallerySvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) GetGalleryByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.gallerySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListGalleries(c *gin.Context) {
	var query struct {
		Limit string `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	limit := 0
	if v := strings.TrimSpace(query.Limit); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid value"))
			return
		}
		limit = parsed
	}

	resp, err := s.gallerySvc.List(c.Request.Context(), gallerydomain.ListRequest{Limit: limit})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isGalleryValidationError(err error) bool {
	switch {
	case errors.Is(err, gallerydomain.ErrInvalidDescription),
		errors.Is(err, gallerydomain.ErrInvalidImage),
		errors.Is(err, gallerydomain.ErrInvalidID):
		return true
	default:
		return false
	}
}
