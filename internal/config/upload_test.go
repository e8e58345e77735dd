package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultUploadPolicy(t *testing.T) {
	policy := DefaultUploadPolicy()

	assert.Equal(t, int64(2<<20), policy.MaxSizeBytes)
	assert.Contains(t, policy.AllowedTypes, "image/png")
	assert.Contains(t, policy.AllowedTypes, "image/jpeg")
	assert.Contains(t, policy.AllowedTypes, "image/webp")
	assert.Contains(t, policy.AllowedTypes, "image/gif")
}

func TestUploadPolicyAllows(t *testing.T) {
	policy := DefaultUploadPolicy()

	assert.True(t, policy.Allows("image/png"))
	assert.True(t, policy.Allows("IMAGE/PNG"))
	assert.True(t, policy.Allows("  image/webp  "))
	assert.False(t, policy.Allows("application/octet-stream"))
	assert.False(t, policy.Allows(""))
}

func TestValidateUploadPolicy(t *testing.T) {
	require.NoError(t, validateUploadPolicy(DefaultUploadPolicy()))

	assert.Error(t, validateUploadPolicy(UploadPolicy{MaxSizeBytes: 0, AllowedTypes: []string{"image/png"}}))
	assert.Error(t, validateUploadPolicy(UploadPolicy{MaxSizeBytes: 1024}))
}

func TestStaticUploadPolicyHolder(t *testing.T) {
	policy := UploadPolicy{MaxSizeBytes: 1024, AllowedTypes: []string{"image/png"}}
	holder := StaticUploadPolicyHolder(policy)

	require.NotNil(t, holder)
	assert.Equal(t, policy, holder.Get())
}
