package config

import (
	"fmt"
	"net"
	"slices"
)

// validSSLModes are the sslmode values accepted by libpq-compatible drivers.
var validSSLModes = []string{
	"disable", "allow", "prefer", "require", "verify-ca", "verify-full",
}

// Validate checks structural configuration: values that are wrong for any
// mode of operation. Serve-only requirements (JWT secret) are checked
// separately by ValidateServe so offline commands like migrate work
// without one.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	if c.Addr != "" {
		if _, _, err := net.SplitHostPort(c.Addr); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidAddr, c.Addr)
		}
	}

	if c.PostgresHost == "" {
		return fmt.Errorf("%w: host is empty", ErrInvalidPostgresHost)
	}
	if c.PostgresPort < 1 || c.PostgresPort > 65535 {
		return fmt.Errorf("%w: %d (must be 1-65535)", ErrInvalidPostgresPort, c.PostgresPort)
	}
	if c.PostgresDBName == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidPostgresDBName)
	}
	if !slices.Contains(validSSLModes, c.PostgresSSLMode) {
		return fmt.Errorf("%w: %q", ErrInvalidPostgresSSLMode, c.PostgresSSLMode)
	}

	if c.FoodKBPath == "" {
		return fmt.Errorf("%w: food_kb_path", ErrMissingKnowledgePath)
	}
	if c.ParentingKBPath == "" {
		return fmt.Errorf("%w: parenting_kb_path", ErrMissingKnowledgePath)
	}

	return nil
}

// ValidateServe checks requirements specific to running the HTTP server.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("%w: set jwt_secret or BABYSTEPS_JWT_SECRET", ErrMissingJWTSecret)
	}
	if len(c.JWTSecret) < MinJWTSecretBytes {
		return fmt.Errorf("%w: need at least %d bytes, got %d",
			ErrInvalidJWTSecret, MinJWTSecretBytes, len(c.JWTSecret))
	}

	return nil
}
