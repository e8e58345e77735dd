package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	productdomain "github.com/smallbiznis/storefront/internal/product/domain"
)

type createProductRequest struct {
	MerchantID  string `json:"merchant_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PriceCents  int64  `json:"price_cents"`
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req productdomain.CreateRequest

	if isMultipart(c) {
		assign := func(dst *string, field string) {
			if v := formString(c, field); v != nil {
				*dst = *v
			}
		}
		assign(&req.MerchantID, "merchant_id")
		assign(&req.Name, "name")
		assign(&req.Description, "description")
		assign(&req.URL, "url")

		if v := formString(c, "price_cents"); v != nil {
			price, err := strconv.ParseInt(*v, 10, 64)
			if err != nil {
				AbortWithError(c, newValidationError("price_cents", "invalid_price", "invalid value"))
				return
			}
			req.PriceCents = price
		}

		data, contentType, err := readFormUpload(c, "image")
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		if data != nil {
			req.Image = &productdomain.Upload{Data: data, ContentType: contentType}
		}
	} else {
		var body createProductRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		req.MerchantID = strings.TrimSpace(body.MerchantID)
		req.Name = strings.TrimSpace(body.Name)
		req.Description = strings.TrimSpace(body.Description)
		req.URL = strings.TrimSpace(body.URL)
		req.PriceCents = body.PriceCents
	}

	resp, err := s.productSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateProduct(c *gin.Context) {
	req := productdomain.UpdateRequest{
		ID: strings.TrimSpace(c.Param("id")),
	}

	if isMultipart(c) {
		req.Name = formString(c, "name")
		req.Description = formString(c, "description")
		req.URL = formString(c, "url")

		if v := formString(c, "price_cents"); v != nil {
			price, err := strconv.ParseInt(*v, 10, 64)
			if err != nil {
				AbortWithError(c, newValidationError("price_cents", "invalid_price", "invalid value"))
				return
			}
			req.PriceCents = &price
		}

		data, contentType, err := readFormUpload(c, "image")
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		if data != nil {
			req.Image = &productdomain.Upload{Data: data, ContentType: contentType}
		}
	} else {
		var body struct {
			Name        *string `json:"name"`
			Description *string `json:"description"`
			URL         *string `json:"url"`
			PriceCents  *int64  `json:"price_cents"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
		req.Name = body.Name
		req.Description = body.Description
		req.URL = body.URL
		req.PriceCents = body.PriceCents
	}

	resp, err := s.productSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.productSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) GetProductByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.productSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListProducts(c *gin.Context) {
	var query struct {
		MerchantID string `form:"merchant_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.List(c.Request.Context(), productdomain.ListRequest{
		MerchantID: strings.TrimSpace(query.MerchantID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isProductValidationError(err error) bool {
	switch {
	case errors.Is(err, productdomain.ErrInvalidMerchant),
		errors.Is(err, productdomain.ErrInvalidName),
		errors.Is(err, productdomain.ErrInvalidDescription),
		errors.Is(err, productdomain.ErrInvalidURL),
		errors.Is(err, productdomain.ErrInvalidPrice),
		errors.Is(err, productdomain.ErrInvalidID):
		return true
	default:
		return false
	}
}
