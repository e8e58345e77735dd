package server

import (
	"errors"
	"net/http"
	"testing"

	gallerydomain "github.com/smallbiznis/storefront/internal/gallery/domain"
	merchantdomain "github.com/smallbiznis/storefront/internal/merchant/domain"
	productdomain "github.com/smallbiznis/storefront/internal/product/domain"
	"github.com/smallbiznis/storefront/internal/slugs"
	"github.com/smallbiznis/storefront/internal/storage"
)

func TestMapErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid name", merchantdomain.ErrInvalidName, http.StatusBadRequest},
		{"invalid price", productdomain.ErrInvalidPrice, http.StatusBadRequest},
		{"invalid image", gallerydomain.ErrInvalidImage, http.StatusBadRequest},
		{"content type", storage.ErrInvalidContentType, http.StatusBadRequest},
		{"too large", storage.ErrObjectTooLarge, http.StatusBadRequest},
		{"empty slug", slugs.ErrEmptySlug, http.StatusBadRequest},
		{"missing user", merchantdomain.ErrInvalidUser, http.StatusUnauthorized},
		{"merchant not found", merchantdomain.ErrNotFound, http.StatusNotFound},
		{"product not found", productdomain.ErrNotFound, http.StatusNotFound},
		{"slug exhausted", slugs.ErrExhausted, http.StatusConflict},
		{"storage down", storage.ErrUnavailable, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := mapError(tc.err)
			if status != tc.want {
				t.Fatalf("status = %d, want %d", status, tc.want)
			}
		})
	}
}

func TestMapErrorPayloadTypes(t *testing.T) {
	_, payload := mapError(slugs.ErrExhausted)
	if payload.Type != "slug_generation_exhausted" {
		t.Fatalf("type = %q", payload.Type)
	}
	if payload.Message != "could not create unique slug" {
		t.Fatalf("message = %q", payload.Message)
	}

	_, payload = mapError(merchantdomain.ErrInvalidName)
	if payload.Type != "validation_error" {
		t.Fatalf("type = %q", payload.Type)
	}
	if len(payload.Errors) != 1 || payload.Errors[0].Code != "invalid_name" {
		t.Fatalf("errors = %+v", payload.Errors)
	}
}

func TestMapErrorWrappedSentinel(t *testing.T) {
	wrapped := errors.New("outer")
	status, _ := mapError(errors.Join(wrapped, productdomain.ErrNotFound))
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
}
