package config

import (
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentProviderName = "HACKOUT_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL      = "HACKOUT_AGENT_BASE_URL"
	EnvAgentToken        = "HACKOUT_AGENT_TOKEN"
	EnvAgentDeployment   = "HACKOUT_AGENT_DEPLOYMENT"
	EnvAgentAPIVersion   = "HACKOUT_AGENT_API_VERSION"
	EnvAgentAuthType     = "HACKOUT_AGENT_AUTH_TYPE"
	EnvAgentModelName    = "HACKOUT_AGENT_MODEL_NAME"
)

// AgentConfigured reports whether a hosted vision provider has been named
// via TOML or environment. An unconfigured agent disables the hosted
// vision backend rather than failing startup.
func AgentConfigured(c *gaconfig.AgentConfig) bool {
	if os.Getenv(EnvAgentProviderName) != "" {
		return true
	}
	return c.Provider != nil && c.Provider.Name != ""
}

// FinalizeAgent applies Hackout's three-phase finalize pattern to a go-agents AgentConfig:
// defaults from go-agents DefaultAgentConfig, environment variable overrides, and validation.
func FinalizeAgent(c *gaconfig.AgentConfig) error {
	loadAgentDefaults(c)
	loadAgentEnv(c)
	return validateAgent(c)
}

func loadAgentDefaults(c *gaconfig.AgentConfig) {
	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(c)
	*c = defaults
}

func loadAgentEnv(c *gaconfig.AgentConfig) {
	if c.Provider == nil {
		c.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}
	if c.Model == nil {
		c.Model = &gaconfig.ModelConfig{}
	}
	if v := os.Getenv(EnvAgentProviderName); v != "" {
		c.Provider.Name = v
	}
	if v := os.Getenv(EnvAgentBaseURL); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv(EnvAgentModelName); v != "" {
		c.Model.Name = v
	}

	setOption := func(envVar, key string) {
		if v := os.Getenv(envVar); v != "" {
			c.Provider.Options[key] = v
		}
	}

	setOption(EnvAgentToken, "token")
	setOption(EnvAgentDeployment, "deployment")
	setOption(EnvAgentAPIVersion, "api_version")
	setOption(EnvAgentAuthType, "auth_type")
}

func validateAgent(c *gaconfig.AgentConfig) error {
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	if c.Provider == nil {
		return fmt.Errorf("provider required")
	}
	if c.Provider.Name == "" {
		return fmt.Errorf("provider name required")
	}
	if c.Model == nil {
		return fmt.Errorf("model required")
	}
	return nil
}
