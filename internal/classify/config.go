package classify

import (
	"fmt"
	"os"
	"time"

	"github.com/KHUSHI-P15/Hackout/pkg/formatting"
)

// Config holds classification backend and validation parameters.
type Config struct {
	ModelServerURL  string `toml:"model_server_url"`
	ModelTimeout    string `toml:"model_timeout"`
	ProbeTimeout    string `toml:"probe_timeout"`
	ValidateTimeout string `toml:"validate_timeout"`
	MaxImageSize    string `toml:"max_image_size"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	ModelServerURL  string
	ModelTimeout    string
	ProbeTimeout    string
	ValidateTimeout string
	MaxImageSize    string
}

// ModelTimeoutDuration returns ModelTimeout as a time.Duration.
func (c *Config) ModelTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ModelTimeout)
	return d
}

// ProbeTimeoutDuration returns ProbeTimeout as a time.Duration.
func (c *Config) ProbeTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ProbeTimeout)
	return d
}

// ValidateTimeoutDuration returns ValidateTimeout as a time.Duration.
func (c *Config) ValidateTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ValidateTimeout)
	return d
}

// MaxImageSizeBytes returns MaxImageSize as a byte count.
func (c *Config) MaxImageSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxImageSize)
	if err != nil {
		return 20 * 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.ModelServerURL != "" {
		c.ModelServerURL = overlay.ModelServerURL
	}
	if overlay.ModelTimeout != "" {
		c.ModelTimeout = overlay.ModelTimeout
	}
	if overlay.ProbeTimeout != "" {
		c.ProbeTimeout = overlay.ProbeTimeout
	}
	if overlay.ValidateTimeout != "" {
		c.ValidateTimeout = overlay.ValidateTimeout
	}
	if overlay.MaxImageSize != "" {
		c.MaxImageSize = overlay.MaxImageSize
	}
}

func (c *Config) loadDefaults() {
	if c.ModelServerURL == "" {
		c.ModelServerURL = "http://localhost:5001"
	}
	if c.ModelTimeout == "" {
		c.ModelTimeout = "30s"
	}
	if c.ProbeTimeout == "" {
		c.ProbeTimeout = "3s"
	}
	if c.ValidateTimeout == "" {
		c.ValidateTimeout = "5s"
	}
	if c.MaxImageSize == "" {
		c.MaxImageSize = "20MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.ModelServerURL != "" {
		if v := os.Getenv(env.ModelServerURL); v != "" {
			c.ModelServerURL = v
		}
	}
	if env.ModelTimeout != "" {
		if v := os.Getenv(env.ModelTimeout); v != "" {
			c.ModelTimeout = v
		}
	}
	if env.ProbeTimeout != "" {
		if v := os.Getenv(env.ProbeTimeout); v != "" {
			c.ProbeTimeout = v
		}
	}
	if env.ValidateTimeout != "" {
		if v := os.Getenv(env.ValidateTimeout); v != "" {
			c.ValidateTimeout = v
		}
	}
	if env.MaxImageSize != "" {
		if v := os.Getenv(env.MaxImageSize); v != "" {
			c.MaxImageSize = v
		}
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ModelTimeout); err != nil {
		return fmt.Errorf("invalid model_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.ProbeTimeout); err != nil {
		return fmt.Errorf("invalid probe_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.ValidateTimeout); err != nil {
		return fmt.Errorf("invalid validate_timeout: %w", err)
	}
	if _, err := formatting.ParseBytes(c.MaxImageSize); err != nil {
		return fmt.Errorf("invalid max_image_size: %w", err)
	}
	return nil
}
