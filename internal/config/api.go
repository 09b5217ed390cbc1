package config

import (
	"fmt"
	"os"

	"github.com/KHUSHI-P15/Hackout/pkg/formatting"
	"github.com/KHUSHI-P15/Hackout/pkg/middleware"
	"github.com/KHUSHI-P15/Hackout/pkg/openapi"
	"github.com/KHUSHI-P15/Hackout/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "HACKOUT_CORS_ENABLED",
	Origins:          "HACKOUT_CORS_ORIGINS",
	AllowedMethods:   "HACKOUT_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "HACKOUT_CORS_ALLOWED_HEADERS",
	AllowCredentials: "HACKOUT_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "HACKOUT_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "HACKOUT_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "HACKOUT_PAGINATION_MAX_PAGE_SIZE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "HACKOUT_API_OPENAPI_TITLE",
	Description: "HACKOUT_API_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, CORS, and pagination settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
	OpenAPI       openapi.Config        `toml:"openapi"`
}

func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 50 * 1024 * 1024 // 50MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("HACKOUT_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("HACKOUT_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
}
