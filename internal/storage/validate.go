package storage

import (
	"fmt"

	"github.com/smallbiznis/storefront/internal/config"
)

// ValidateUpload applies the upload policy before any byte reaches the
// gateway. Rejections here are fail-fast: no storage call, no persistence.
func ValidateUpload(policy config.UploadPolicy, data []byte, contentType string) error {
	if !policy.Allows(contentType) {
		return fmt.Errorf("%w: %s", ErrInvalidContentType, contentType)
	}
	if int64(len(data)) > policy.MaxSizeBytes {
		return fmt.Errorf("%w: %d bytes over %d limit", ErrObjectTooLarge, len(data), policy.MaxSizeBytes)
	}
	return nil
}
