package config

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a config that passes ValidateServe.
func validConfig() *Config {
	return &Config{
		Addr:             "127.0.0.1:8080",
		PostgresHost:     "localhost",
		PostgresPort:     5432,
		PostgresUser:     "babysteps",
		PostgresPassword: "secret",
		PostgresDBName:   "babysteps",
		PostgresSSLMode:  "disable",
		JWTSecret:        strings.Repeat("s", MinJWTSecretBytes),
		FoodKBPath:       "data/knowledge-base/food_research.json",
		ParentingKBPath:  "data/knowledge-base/parenting.json",
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"nil addr allowed", func(c *Config) { c.Addr = "" }, nil},
		{"bad addr", func(c *Config) { c.Addr = "no-port" }, ErrInvalidAddr},
		{"empty host", func(c *Config) { c.PostgresHost = "" }, ErrInvalidPostgresHost},
		{"port too low", func(c *Config) { c.PostgresPort = 0 }, ErrInvalidPostgresPort},
		{"port too high", func(c *Config) { c.PostgresPort = 70000 }, ErrInvalidPostgresPort},
		{"empty db name", func(c *Config) { c.PostgresDBName = "" }, ErrInvalidPostgresDBName},
		{"bad sslmode", func(c *Config) { c.PostgresSSLMode = "yes" }, ErrInvalidPostgresSSLMode},
		{"missing food kb", func(c *Config) { c.FoodKBPath = "" }, ErrMissingKnowledgePath},
		{"missing parenting kb", func(c *Config) { c.ParentingKBPath = "" }, ErrMissingKnowledgePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateServe(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validConfig().ValidateServe())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTSecret = ""
		assert.ErrorIs(t, cfg.ValidateServe(), ErrMissingJWTSecret)
	})

	t.Run("short jwt secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTSecret = "short"
		assert.ErrorIs(t, cfg.ValidateServe(), ErrInvalidJWTSecret)
	})

	t.Run("nil config", func(t *testing.T) {
		var cfg *Config
		assert.ErrorIs(t, cfg.Validate(), ErrConfigNil)
	})
}

func TestMarshalJSON_MasksSecrets(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.GeminiAPIKey = "api-key-value"
	cfg.PostgresPassword = "db-pass-value"

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	out := string(data)
	assert.NotContains(t, out, "api-key-value")
	assert.NotContains(t, out, "db-pass-value")
	assert.NotContains(t, out, cfg.JWTSecret)
	assert.Contains(t, out, `"postgres_password":"****"`)
	assert.Contains(t, out, `"jwt_secret":"****"`)
	assert.Contains(t, out, `"gemini_api_key":"****"`)
}

func TestPostgresConnectionString(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.PostgresPassword = "p@ss word's"

	dsn := cfg.PostgresConnectionString()

	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "port=5432")
	assert.Contains(t, dsn, `password='p@ss word\'s'`)
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestPostgresURL(t *testing.T) {
	t.Parallel()
	cfg := validConfig()

	u := cfg.PostgresURL()

	assert.True(t, strings.HasPrefix(u, "postgres://"))
	assert.Contains(t, u, "babysteps:secret@localhost:5432/babysteps")
	assert.Contains(t, u, "sslmode=disable")
}

func TestParseDatabaseURL(t *testing.T) {
	t.Run("overrides individual settings", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://other:pw@db.example.com:5433/prod?sslmode=require")
		cfg := validConfig()

		require.NoError(t, cfg.parseDatabaseURL())

		assert.Equal(t, "db.example.com", cfg.PostgresHost)
		assert.Equal(t, 5433, cfg.PostgresPort)
		assert.Equal(t, "other", cfg.PostgresUser)
		assert.Equal(t, "pw", cfg.PostgresPassword)
		assert.Equal(t, "prod", cfg.PostgresDBName)
		assert.Equal(t, "require", cfg.PostgresSSLMode)
	})

	t.Run("rejects non-postgres scheme", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "mysql://u:p@host/db")
		cfg := validConfig()

		assert.Error(t, cfg.parseDatabaseURL())
	})

	t.Run("unset leaves settings alone", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		cfg := validConfig()

		require.NoError(t, cfg.parseDatabaseURL())
		assert.Equal(t, "localhost", cfg.PostgresHost)
	})
}
