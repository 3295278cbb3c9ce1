package app

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/spf13/viper"

	"github.com/swfz/gh-issues/internal/api"
	"github.com/swfz/gh-issues/internal/formatter"
	"github.com/swfz/gh-issues/internal/parser"
)

// DefaultPath is the repository shown when none is given
const DefaultPath = "the-road-to-learn-react/the-road-to-learn-react"

// Config holds the application configuration
type Config struct {
	Token    string        `mapstructure:"token"`    // Personal access token ("" = resolve or prompt)
	Endpoint string        `mapstructure:"endpoint"` // GraphQL endpoint
	Timeout  time.Duration `mapstructure:"timeout"`  // HTTP timeout (0 = none)
	Verbose  bool          `mapstructure:"verbose"`  // Enable debug logging
	LogFile  string        `mapstructure:"log_file"` // Debug log destination in TUI mode
	Path     string        `mapstructure:"path"`     // Default repository path
	Output   string        `mapstructure:"output"`   // table, json or yaml
}

// LoadConfig reads configuration from v (flags, env and config file already
// bound) and validates it
func LoadConfig(v *viper.Viper) (*Config, error) {
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyDefaults sets default values for unset fields
func applyDefaults(config *Config) {
	if config.Endpoint == "" {
		config.Endpoint = api.DefaultEndpoint
	}
	if config.Path == "" {
		config.Path = DefaultPath
	}
	if config.Output == "" {
		config.Output = formatter.FormatTable
	}
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return errors.New("--timeout must be >= 0")
	}

	endpoint, err := url.Parse(c.Endpoint)
	if err != nil || endpoint.Scheme == "" || endpoint.Host == "" {
		return fmt.Errorf("invalid --endpoint: %q", c.Endpoint)
	}

	if _, err := parser.ParsePath(c.Path); err != nil {
		return fmt.Errorf("invalid default path: %w", err)
	}

	switch c.Output {
	case formatter.FormatTable, formatter.FormatJSON, formatter.FormatYAML:
	default:
		return fmt.Errorf("--output must be one of table, json, yaml (got %q)", c.Output)
	}

	return nil
}

// ResolveToken fills Token from gh's credential store when it is unset.
// Returns the source of the token, or "" when none was found.
func (c *Config) ResolveToken() string {
	if c.Token != "" {
		return "config"
	}

	token, source := auth.TokenForHost(c.host())
	c.Token = token
	if token == "" {
		return ""
	}
	return source
}

// host returns the GitHub host the endpoint belongs to
func (c *Config) host() string {
	endpoint, err := url.Parse(c.Endpoint)
	if err != nil || endpoint.Host == "api.github.com" {
		return "github.com"
	}
	return endpoint.Host
}
