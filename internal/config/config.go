package config

import (
	"fmt"
	"os"
	"time"

	"github.com/KHUSHI-P15/Hackout/internal/classify"
	"github.com/KHUSHI-P15/Hackout/pkg/database"
	"github.com/KHUSHI-P15/Hackout/pkg/storage"
	"github.com/pelletier/go-toml/v2"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvHackoutEnv             = "HACKOUT_ENV"
	EnvHackoutShutdownTimeout = "HACKOUT_SHUTDOWN_TIMEOUT"
	EnvHackoutVersion         = "HACKOUT_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "HACKOUT_DB_HOST",
	Port:            "HACKOUT_DB_PORT",
	Name:            "HACKOUT_DB_NAME",
	User:            "HACKOUT_DB_USER",
	Password:        "HACKOUT_DB_PASSWORD",
	SSLMode:         "HACKOUT_DB_SSL_MODE",
	MaxOpenConns:    "HACKOUT_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "HACKOUT_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "HACKOUT_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "HACKOUT_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "HACKOUT_STORAGE_CONTAINER_NAME",
	ConnectionString: "HACKOUT_STORAGE_CONNECTION_STRING",
}

var classifyEnv = &classify.Env{
	ModelServerURL:  "HACKOUT_CLASSIFY_MODEL_SERVER_URL",
	ModelTimeout:    "HACKOUT_CLASSIFY_MODEL_TIMEOUT",
	ProbeTimeout:    "HACKOUT_CLASSIFY_PROBE_TIMEOUT",
	ValidateTimeout: "HACKOUT_CLASSIFY_VALIDATE_TIMEOUT",
	MaxImageSize:    "HACKOUT_CLASSIFY_MAX_IMAGE_SIZE",
}

// Config is the root configuration for the Hackout service.
type Config struct {
	Server          ServerConfig         `toml:"server"`
	Database        database.Config      `toml:"database"`
	Storage         storage.Config       `toml:"storage"`
	API             APIConfig            `toml:"api"`
	Classify        classify.Config      `toml:"classify"`
	Agent           gaconfig.AgentConfig `toml:"agent"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// AgentConfig returns the hosted vision agent configuration, or nil when no
// provider has been configured via TOML or environment.
func (c *Config) AgentConfig() *gaconfig.AgentConfig {
	if !AgentConfigured(&c.Agent) {
		return nil
	}
	return &c.Agent
}

// Env returns the HACKOUT_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvHackoutEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Classify.Merge(&overlay.Classify)
	c.Agent.Merge(&overlay.Agent)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Classify.Finalize(classifyEnv); err != nil {
		return fmt.Errorf("classify: %w", err)
	}
	if AgentConfigured(&c.Agent) {
		if err := FinalizeAgent(&c.Agent); err != nil {
			return fmt.Errorf("agent: %w", err)
		}
	}
	return nil
}
func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvHackoutShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvHackoutVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvHackoutEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
