package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	merchantdomain "github.com/smallbiznis/storefront/internal/merchant/domain"
)

type createMerchantRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (s *Server) CreateMerchant(c *gin.Context) {
	var req merchantdomain.CreateRequest

	if isMultipart(c) {
		name := formString(c, "name")
		if name != nil {
			req.Name = *name
		}
		req.Description = formString(c, "description")

		data, contentType, err := readFormUpload(c, "logo")
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		if data != nil {
			req.Logo = &merchantdomain.Upload{Data: data, ContentType: contentType}
		}
	} else {
		var body createMerchantRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		req.Name = strings.TrimSpace(body.Name)
		req.Description = body.Description
	}

	resp, err := s.merchantSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateMerchant(c *gin.Context) {
	req := merchantdomain.UpdateRequest{
		ID: strings.TrimSpace(c.Param("id")),
	}

	if isMultipart(c) {
		req.Name = formString(c, "name")
		req.Description = formString(c, "description")

		data, contentType, err := readFormUpload(c, "logo")
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		if data != nil {
			req.Logo = &merchantdomain.Upload{Data: data, ContentType: contentType}
		}
	} else {
		var body struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		req.Name = body.Name
		req.Description = body.Description
	}

	resp, err := s.merchantSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteMerchant(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.merchantSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) GetMerchantByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.merchantSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetMerchantBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	resp, err := s.merchantSvc.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListMerchants(c *gin.Context) {
	resp, err := s.merchantSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isMerchantValidationError(err error) bool {
	switch {
	case errors.Is(err, merchantdomain.ErrInvalidName),
		errors.Is(err, merchantdomain.ErrInvalidDescription),
		errors.Is(err, merchantdomain.ErrInvalidID),
		errors.Is(err, merchantdomain.ErrInvalidSlug):
		return true
	default:
		return false
	}
}
