// Package session resolves explicit API sessions for openboard resource calls.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// TokenSource identifies where a session token was resolved from.
type TokenSource string

const (
	// TokenSourceEnv is BOARDSYNC_TOKEN.
	TokenSourceEnv TokenSource = "boardsync_token"
	// TokenSourceSharedEnv is OPENBOARD_TOKEN.
	TokenSourceSharedEnv TokenSource = "openboard_token"
	// TokenSourceConfigFile is ~/.openboard/config.yaml auth.token.
	TokenSourceConfigFile TokenSource = "config_file"
)

// Session carries the credentials threaded through resource calls. The zero
// value is an unauthenticated session; requests made with it carry no
// Authorization header.
type Session struct {
	Token  string
	Source TokenSource
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.Token) != ""
}

// Options controls session resolution.
type Options struct {
	// AllowConfigToken enables falling back to the config-file token.
	AllowConfigToken bool
	// ConfigPath overrides the default ~/.openboard/config.yaml location.
	ConfigPath string
}

type configFile struct {
	Auth struct {
		Token string `yaml:"token"`
	} `yaml:"auth"`
}

// Resolve resolves a session using deterministic precedence:
// 1) BOARDSYNC_TOKEN
// 2) OPENBOARD_TOKEN
// 3) config file auth.token (only when AllowConfigToken=true)
// A token found nowhere yields an unauthenticated session, not an error.
func Resolve(opts Options) (Session, error) {
	if token := strings.TrimSpace(os.Getenv("BOARDSYNC_TOKEN")); token != "" {
		return Session{Token: token, Source: TokenSourceEnv}, nil
	}

	if token := strings.TrimSpace(os.Getenv("OPENBOARD_TOKEN")); token != "" {
		return Session{Token: token, Source: TokenSourceSharedEnv}, nil
	}

	if !opts.AllowConfigToken {
		return Session{}, nil
	}

	configPath := expandPath(defaultIfEmpty(strings.TrimSpace(opts.ConfigPath), "~/.openboard/config.yaml"))
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist):
		return Session{}, nil
	default:
		return Session{}, fmt.Errorf("reading session config: %w", err)
	}

	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Session{}, fmt.Errorf("decoding session config: %w", err)
	}

	token := strings.TrimSpace(cfg.Auth.Token)
	if token == "" {
		return Session{}, nil
	}

	return Session{Token: token, Source: TokenSourceConfigFile}, nil
}

func defaultIfEmpty(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/"))
	}
	return filepath.Clean(path)
}
