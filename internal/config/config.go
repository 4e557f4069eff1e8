// Package config loads the action configuration from the environment.
// GitHub Actions exposes workflow inputs as INPUT_* variables; the rest
// (repository, token) comes from the standard Actions environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds everything one invocation needs. Fields map 1:1 to workflow
// inputs; empty optional fields fall back to built-in defaults downstream.
type Config struct {
	// Repository and target PR
	Repository string `env:"GITHUB_REPOSITORY"`
	Number     int    `env:"INPUT_NUMBER"`

	// Credentials: a plain token, or GitHub App credentials
	GitHubToken      string `env:"INPUT_GITHUB_TOKEN"`
	GitHubAppID      string `env:"GITHUB_APP_ID"`
	GitHubPrivateKey string `env:"GITHUB_PRIVATE_KEY"`

	// Sticky-comment identity
	Header string `env:"INPUT_HEADER"`
	Prefix string `env:"INPUT_HEADER_PREFIX"`
	Author string `env:"INPUT_AUTHOR"`

	// Render inputs
	PreviewURL        string `env:"INPUT_PREVIEW_URL"`
	Status            string `env:"INPUT_STATUS"`
	Seed              string `env:"INPUT_SEED"`
	Debug             bool   `env:"INPUT_DEBUG"`
	FirstContribution bool   `env:"INPUT_FIRST_CONTRIBUTION"`

	// Reconciliation behavior
	Append      bool `env:"INPUT_APPEND"`
	HideDetails bool `env:"INPUT_HIDE_DETAILS"`
	Recreate    bool `env:"INPUT_RECREATE"`

	// Branding
	BrandingTitle        string `env:"INPUT_BRANDING_TITLE"`
	BrandingMessage      string `env:"INPUT_BRANDING_MESSAGE"`
	BrandingAuthor       string `env:"INPUT_BRANDING_AUTHOR"`
	BrandingShareText    string `env:"INPUT_BRANDING_SHARE_TEXT"`
	BrandingShareURL     string `env:"INPUT_BRANDING_SHARE_URL"`
	BrandingDocsURL      string `env:"INPUT_BRANDING_DOCS_URL"`
	BrandingCommunityURL string `env:"INPUT_BRANDING_COMMUNITY_URL"`
	BrandingSocialHandle string `env:"INPUT_BRANDING_SOCIAL_HANDLE"`
	BrandingFooter       string `env:"INPUT_BRANDING_FOOTER"`

	// Debug preview server
	Port int `env:"PORT" envDefault:"8000"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.GitHubPrivateKey = normalizePrivateKey(cfg.GitHubPrivateKey)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks the fields every command relies on. Credentials are
// validated where they are needed, since render/serve run without any.
func (c *Config) validate() error {
	if c.Repository != "" && len(strings.Split(c.Repository, "/")) != 2 {
		return fmt.Errorf("invalid GITHUB_REPOSITORY: %s (expected owner/repo)", c.Repository)
	}
	if c.Number < 0 {
		return fmt.Errorf("invalid INPUT_NUMBER: %d", c.Number)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", c.Port)
	}
	return nil
}

// RequireCredentials errors unless a token or complete App credentials are
// configured.
func (c *Config) RequireCredentials() error {
	if c.GitHubToken != "" {
		return nil
	}
	if c.GitHubAppID != "" && c.GitHubPrivateKey != "" {
		return nil
	}
	return fmt.Errorf("missing credentials: set INPUT_GITHUB_TOKEN, or GITHUB_APP_ID and GITHUB_PRIVATE_KEY")
}

// Owner and Name split the owner/repo pair; validate() already checked the
// shape.
func (c *Config) Owner() string {
	owner, _, _ := strings.Cut(c.Repository, "/")
	return owner
}

func (c *Config) Name() string {
	_, name, _ := strings.Cut(c.Repository, "/")
	return name
}

// normalizePrivateKey undoes the usual mangling a PEM key suffers on its way
// through environment variables: surrounding quotes, CRLF line endings, and
// literal \n escapes.
func normalizePrivateKey(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "\"") && strings.HasSuffix(trimmed, "\"") {
		trimmed = strings.TrimPrefix(trimmed, "\"")
		trimmed = strings.TrimSuffix(trimmed, "\"")
	}
	if strings.HasPrefix(trimmed, "'") && strings.HasSuffix(trimmed, "'") {
		trimmed = strings.TrimPrefix(trimmed, "'")
		trimmed = strings.TrimSuffix(trimmed, "'")
	}

	trimmed = strings.ReplaceAll(trimmed, "\r\n", "\n")
	trimmed = strings.ReplaceAll(trimmed, "\r", "\n")
	if strings.Contains(trimmed, "\\n") {
		trimmed = strings.ReplaceAll(trimmed, "\\r", "")
		trimmed = strings.ReplaceAll(trimmed, "\\n", "\n")
	}

	return trimmed
}
