// Package config loads process configuration from the environment. Missing
// session or identity-provider settings are a startup failure, never a
// per-request condition.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the console needs to run.
type Config struct {
	Port string

	SessionSecret string

	Auth0Domain       string
	Auth0ClientID     string
	Auth0ClientSecret string
	Auth0CallbackURL  string
	Auth0LogoutURL    string
	Auth0Audience     string

	HubAPIBase string

	Store  string // "memory" or "sqlite"
	DBPath string
}

// Load reads configuration from the environment, after a best-effort .env
// load for development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getenv("LOGIPACK_PORT", "8080"),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		Auth0Domain:       os.Getenv("AUTH0_DOMAIN"),
		Auth0ClientID:     os.Getenv("AUTH0_CLIENT_ID"),
		Auth0ClientSecret: os.Getenv("AUTH0_CLIENT_SECRET"),
		Auth0CallbackURL:  os.Getenv("AUTH0_CALLBACK_URL"),
		Auth0LogoutURL:    os.Getenv("AUTH0_LOGOUT_URL"),
		Auth0Audience:     os.Getenv("AUTH0_AUDIENCE"),
		HubAPIBase:        os.Getenv("HUB_API_BASE"),
		Store:             getenv("CONSOLE_STORE", "memory"),
		DBPath:            getenv("CONSOLE_DB_PATH", "./console.db"),
	}

	var missing []string
	for name, value := range map[string]string{
		"SESSION_SECRET":      cfg.SessionSecret,
		"AUTH0_DOMAIN":        cfg.Auth0Domain,
		"AUTH0_CLIENT_ID":     cfg.Auth0ClientID,
		"AUTH0_CLIENT_SECRET": cfg.Auth0ClientSecret,
		"AUTH0_CALLBACK_URL":  cfg.Auth0CallbackURL,
		"AUTH0_LOGOUT_URL":    cfg.Auth0LogoutURL,
		"AUTH0_AUDIENCE":      cfg.Auth0Audience,
		"HUB_API_BASE":        cfg.HubAPIBase,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if cfg.Store != "memory" && cfg.Store != "sqlite" {
		return nil, fmt.Errorf("CONSOLE_STORE must be memory or sqlite, got %q", cfg.Store)
	}

	return cfg, nil
}

// IssuerURL is the OIDC issuer used for provider discovery.
func (c *Config) IssuerURL() string {
	return "https://" + c.Auth0Domain + "/"
}

// TokenEndpoint is where refresh_token grants are sent.
func (c *Config) TokenEndpoint() string {
	return "https://" + c.Auth0Domain + "/oauth/token"
}

func getenv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
