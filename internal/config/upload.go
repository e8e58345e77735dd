package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// UploadPolicy constrains what the storage gateway will accept.
type UploadPolicy struct {
	MaxSizeBytes int64    `mapstructure:"maxSizeBytes"`
	AllowedTypes []string `mapstructure:"allowedTypes"`
}

func DefaultUploadPolicy() UploadPolicy {
	return UploadPolicy{
		MaxSizeBytes: 2 << 20,
		AllowedTypes: []string{"image/png", "image/jpeg", "image/webp", "image/gif"},
	}
}

func (p UploadPolicy) Allows(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	for _, allowed := range p.AllowedTypes {
		if ct == allowed {
			return true
		}
	}
	return false
}

// UploadPolicyHolder serves the current policy and hot-reloads it when the
// config file changes.
type UploadPolicyHolder struct {
	current atomic.Value // holds UploadPolicy
}

func NewUploadPolicyHolder() (*UploadPolicyHolder, error) {
	v := viper.New()

	v.SetConfigName("uploads")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/storefront/config")
	v.AddConfigPath("/etc/storefront")
	v.AddConfigPath(".")

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultUploadPolicy()
	v.SetDefault("uploads.maxSizeBytes", defaults.MaxSizeBytes)
	v.SetDefault("uploads.allowedTypes", defaults.AllowedTypes)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var policy UploadPolicy
	if err := v.UnmarshalKey("uploads", &policy); err != nil {
		return nil, err
	}
	if err := validateUploadPolicy(policy); err != nil {
		return nil, err
	}

	holder := &UploadPolicyHolder{}
	holder.current.Store(policy)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated UploadPolicy
		if err := v.UnmarshalKey("uploads", &updated); err != nil {
			log.Printf("[upload-policy] reload failed: %v", err)
			return
		}
		if err := validateUploadPolicy(updated); err != nil {
			log.Printf("[upload-policy] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[upload-policy] reloaded from %s", e.Name)
	})

	return holder, nil
}

// StaticUploadPolicyHolder pins the holder to the given policy with no file
// watching.
func StaticUploadPolicyHolder(policy UploadPolicy) *UploadPolicyHolder {
	holder := &UploadPolicyHolder{}
	holder.current.Store(policy)
	return holder
}

func (h *UploadPolicyHolder) Get() UploadPolicy {
	return h.current.Load().(UploadPolicy)
}

func validateUploadPolicy(policy UploadPolicy) error {
	if policy.MaxSizeBytes <= 0 {
		return errors.New("uploads.maxSizeBytes must be positive")
	}
	if len(policy.AllowedTypes) == 0 {
		return errors.New("uploads.allowedTypes cannot be empty")
	}
	return nil
}
