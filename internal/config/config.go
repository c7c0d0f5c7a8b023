// Package config loads client configuration from the user config dir with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of the carctl client.
type Config struct {
	// ServerURL is the fixed base URL of the car-control backend.
	ServerURL string `yaml:"serverURL"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`
	// SignInURL is the identity provider's interactive sign-in page.
	SignInURL string `yaml:"signInURL"`
	// CallbackAddr is the loopback address the sign-in flow listens on.
	CallbackAddr string `yaml:"callbackAddr"`
	// IDTokenFile optionally points at a file holding a provider ID token,
	// bypassing the interactive flow (scripting, tests).
	IDTokenFile string `yaml:"idTokenFile"`
}

// Dir returns the carctl config directory, honoring XDG_CONFIG_HOME.
func Dir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "carctl")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "carctl")
}

// Path returns the default config file location.
func Path() string { return filepath.Join(Dir(), "config.yaml") }

func defaults() Config {
	return Config{
		ServerURL:    "http://localhost:8080",
		LogLevel:     "info",
		CallbackAddr: "127.0.0.1:8910",
	}
}

// Load reads config from path (defaults to Path()). A missing file is not an
// error: defaults apply, then environment overrides on top.
func Load(path string) (Config, error) {
	cfg := defaults()
	if path == "" {
		path = Path()
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
		// fall through to env overrides
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if v := os.Getenv("CARCTL_SERVER_URL"); v != "" {
		cfg.ServerURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("CARCTL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v := os.Getenv("CARCTL_SIGNIN_URL"); v != "" {
		cfg.SignInURL = strings.TrimSpace(v)
	}
	if v := os.Getenv("CARCTL_CALLBACK_ADDR"); v != "" {
		cfg.CallbackAddr = strings.TrimSpace(v)
	}
	if v := os.Getenv("CARCTL_ID_TOKEN_FILE"); v != "" {
		cfg.IDTokenFile = strings.TrimSpace(v)
	}

	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")
	if cfg.ServerURL == "" {
		return cfg, fmt.Errorf("config: empty serverURL")
	}
	return cfg, nil
}
