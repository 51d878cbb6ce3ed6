package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

var ErrMissingRequiredValue = errors.New("missing required value")
var ErrInvalidValue = errors.New("invalid value")

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

type envValues struct {
	Environment           string `env:"NAMETAG_ENVIRONMENT"`
	DirectoryBaseURL      string `env:"DIRECTORY_BASE_URL"`
	DirectoryAuthUsername string `env:"DIRECTORY_AUTH_USERNAME"`
	DirectoryAuthPassword string `env:"DIRECTORY_AUTH_PASSWORD"`
	SentryDSN             string `env:"SENTRY_DSN"`
}

type Config struct {
	directoryBaseURL      string
	directoryAuthUsername string
	directoryAuthPassword string
	sentryDSN             string
	env                   environment
}

func (c *Config) DirectoryBaseURL() string {
	return c.directoryBaseURL
}

func (c *Config) DirectoryAuthUsername() string {
	return c.directoryAuthUsername
}

func (c *Config) DirectoryAuthPassword() string {
	return c.directoryAuthPassword
}

func (c *Config) SentryDSN() string {
	return c.sentryDSN
}

func (c *Config) IsProduction() bool {
	return c.env == production
}

func (c *Config) IsStaging() bool {
	return c.env == staging
}

func (c *Config) IsDevelopment() bool {
	return c.env == development
}

// Return a string representation suitable for logging etc
func (c *Config) NonSensitiveString() string {
	return fmt.Sprintf("Config{env: %s, directoryBaseURL: %s, ...}", string(c.env), c.directoryBaseURL)
}

func ConfigFromEnv() (Config, error) {
	missingKey := func(key string) (Config, error) {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingRequiredValue, key)
	}

	var values envValues
	if err := env.Parse(&values); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	var env environment
	switch values.Environment {
	case "production":
		env = production
	case "staging":
		env = staging
	case "development":
		env = development
	case "":
		return missingKey("NAMETAG_ENVIRONMENT")
	default:
		return Config{}, fmt.Errorf("%w: NAMETAG_ENVIRONMENT (%s)", ErrInvalidValue, values.Environment)
	}

	if values.DirectoryBaseURL == "" {
		return missingKey("DIRECTORY_BASE_URL")
	}

	if env == production || env == staging {
		if values.DirectoryAuthUsername == "" {
			return missingKey("DIRECTORY_AUTH_USERNAME")
		}
		if values.DirectoryAuthPassword == "" {
			return missingKey("DIRECTORY_AUTH_PASSWORD")
		}
		if values.SentryDSN == "" {
			return missingKey("SENTRY_DSN")
		}
	}

	return Config{
		directoryBaseURL:      values.DirectoryBaseURL,
		directoryAuthUsername: values.DirectoryAuthUsername,
		directoryAuthPassword: values.DirectoryAuthPassword,
		sentryDSN:             values.SentryDSN,
		env:                   env,
	}, nil
}
