// Package config loads application configuration from environment variables.
//
// WHY A LIBRARY INSTEAD OF os.Getenv?
// Hand-rolled env reading scatters defaults and string→int parsing across
// main.go. caarlos0/env declares the whole surface in one struct: the tag
// names the variable, envDefault supplies the fallback, and types are
// converted for us.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full configuration surface of the server.
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	DBPath      string `env:"DB_PATH" envDefault:"data/devfinder.db"`
	TemplateDir string `env:"TEMPLATE_DIR" envDefault:"web/templates"`
	StaticDir   string `env:"STATIC_DIR" envDefault:"web/static"`

	// GitHubToken is optional. Unauthenticated requests are capped at
	// 60/hour per IP; a personal access token raises that to 5000.
	GitHubToken string `env:"GITHUB_TOKEN"`

	// GitHubAPIURL is overridable so tests and mirrors can point the
	// client elsewhere.
	GitHubAPIURL string `env:"GITHUB_API_URL" envDefault:"https://api.github.com"`

	// DefaultTheme is the deployment's ambient color-scheme hint — the
	// server-side analogue of the browser's prefers-color-scheme signal.
	// Consulted only when no valid persisted preference exists. Empty
	// means no hint.
	DefaultTheme string `env:"DEFAULT_THEME"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing environment: %w", err)
	}
	return cfg, nil
}
