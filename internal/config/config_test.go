package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tkleiven/nametag/internal/config"
)

type environment string

const (
	production  environment = "production"
	staging     environment = "staging"
	development environment = "development"
)

var allVariablesExceptEnv = []string{"DIRECTORY_BASE_URL", "DIRECTORY_AUTH_USERNAME", "DIRECTORY_AUTH_PASSWORD", "SENTRY_DSN"}

func TestConfigFromEnv(t *testing.T) {
	compareConfig := func(baseURL, authUsername, authPassword, sentryDSN string, env environment, conf config.Config) {
		t.Helper()
		require.Equal(t, baseURL, conf.DirectoryBaseURL())
		require.Equal(t, authUsername, conf.DirectoryAuthUsername())
		require.Equal(t, authPassword, conf.DirectoryAuthPassword())
		require.Equal(t, sentryDSN, conf.SentryDSN())
		require.Equal(t, env == production, conf.IsProduction())
		require.Equal(t, env == staging, conf.IsStaging())
		require.Equal(t, env == development, conf.IsDevelopment())
	}

	t.Run("ensure base environment is clean", func(t *testing.T) {
		t.Run("environment is missing", func(t *testing.T) {
			// NAMETAG_ENVIRONMENT is required, so this should fail
			_, err := config.ConfigFromEnv()
			require.ErrorIs(t, err, config.ErrMissingRequiredValue)
		})

		t.Run("development needs only the base URL", func(t *testing.T) {
			t.Setenv("NAMETAG_ENVIRONMENT", "development")
			t.Setenv("DIRECTORY_BASE_URL", "http://localhost:8080")

			conf, err := config.ConfigFromEnv()
			require.NoError(t, err)
			compareConfig("http://localhost:8080", "", "", "", development, conf)
		})
	})

	t.Run("invalid environment", func(t *testing.T) {
		t.Setenv("NAMETAG_ENVIRONMENT", "prod")
		t.Setenv("DIRECTORY_BASE_URL", "http://localhost:8080")

		_, err := config.ConfigFromEnv()
		require.ErrorIs(t, err, config.ErrInvalidValue)
	})

	t.Run("values are read correctly", func(t *testing.T) {
		for _, variable := range allVariablesExceptEnv {
			t.Setenv(variable, variable)
		}

		for _, env := range []environment{production, staging, development} {
			t.Run(string(env), func(t *testing.T) {
				t.Setenv("NAMETAG_ENVIRONMENT", string(env))

				conf, err := config.ConfigFromEnv()
				require.NoError(t, err)
				compareConfig("DIRECTORY_BASE_URL", "DIRECTORY_AUTH_USERNAME", "DIRECTORY_AUTH_PASSWORD", "SENTRY_DSN", env, conf)
			})
		}
	})

	t.Run("production and staging fail when missing variables", func(t *testing.T) {
		for _, variable := range allVariablesExceptEnv {
			t.Setenv(variable, "placeholder_value")
		}

		for _, env := range []environment{production, staging} {
			t.Run(string(env), func(t *testing.T) {
				t.Setenv("NAMETAG_ENVIRONMENT", string(env))

				for _, variable := range allVariablesExceptEnv {
					t.Run(variable, func(t *testing.T) {
						t.Setenv(variable, "")

						_, err := config.ConfigFromEnv()
						require.ErrorIs(t, err, config.ErrMissingRequiredValue)
					})
				}
			})
		}
	})
}
