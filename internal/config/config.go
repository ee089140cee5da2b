// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is the GitHub REST endpoint used when GITHUB_API_URL is unset.
const DefaultAPIURL = "https://api.github.com/"

// Config holds the application configuration loaded from environment variables.
// It is built once at startup and passed explicitly to the components that need it.
type Config struct {
	GitHubToken string
	Owner       string
	Repo        string
	PRNumber    int
	APIURL      string
	Deduplicate bool
	LogLevel    slog.Level
}

// Repository returns the "owner/repo" form of the configured repository.
func (c *Config) Repository() string {
	if c.Owner == "" && c.Repo == "" {
		return ""
	}
	return c.Owner + "/" + c.Repo
}

// RequireGitHub verifies that everything needed to talk to a pull request is
// present. Commands that never call the API skip this check.
func (c *Config) RequireGitHub() error {
	var missing []string
	if c.GitHubToken == "" {
		missing = append(missing, "GITHUB_TOKEN")
	}
	if c.Owner == "" || c.Repo == "" {
		missing = append(missing, "GITHUB_REPOSITORY")
	}
	if c.PRNumber == 0 {
		missing = append(missing, "GITHUB_EVENT_NUMBER")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Load reads configuration from environment variables and returns a validated Config.
// A .env file in the working directory is loaded first if present; it never
// overrides variables that are already set.
//
// GitHub variables (GITHUB_TOKEN, GITHUB_REPOSITORY, GITHUB_EVENT_NUMBER) are
// validated for shape here and for presence by RequireGitHub.
// Optional variables with defaults: GITHUB_API_URL (https://api.github.com/),
// PRCOMMENT_DEDUPLICATE (false), PRCOMMENT_LOG_LEVEL (info).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		GitHubToken: os.Getenv("GITHUB_TOKEN"),
		APIURL:      DefaultAPIURL,
		LogLevel:    slog.LevelInfo,
	}

	if v := os.Getenv("GITHUB_REPOSITORY"); v != "" {
		owner, repo, err := splitRepo(v)
		if err != nil {
			return nil, fmt.Errorf("GITHUB_REPOSITORY: %w", err)
		}
		cfg.Owner, cfg.Repo = owner, repo
	}

	if v := os.Getenv("GITHUB_EVENT_NUMBER"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("GITHUB_EVENT_NUMBER has invalid pull request number %q", v)
		}
		cfg.PRNumber = n
	}

	if v, ok := os.LookupEnv("GITHUB_API_URL"); ok && v != "" {
		cfg.APIURL = v
	}

	if v, ok := os.LookupEnv("PRCOMMENT_DEDUPLICATE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("PRCOMMENT_DEDUPLICATE has invalid boolean %q: %w", v, err)
		}
		cfg.Deduplicate = b
	}

	if v, ok := os.LookupEnv("PRCOMMENT_LOG_LEVEL"); ok && v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("PRCOMMENT_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	return cfg, nil
}

// splitRepo splits a "owner/repo" string into its two components.
func splitRepo(fullName string) (string, string, error) {
	parts := strings.SplitN(fullName, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo name %q: expected owner/repo", fullName)
	}
	return parts[0], parts[1], nil
}
