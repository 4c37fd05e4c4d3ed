package config

import "fmt"

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that everything the pipeline depends on is present.
// The AI credential is checked here once, at startup, so individual requests
// never have to.
func ValidateConfig(cfg *Config) error {
	if cfg.AIAPIKey == "" {
		return ValidationError{Field: "AI_API_KEY", Message: "AI_API_KEY or AI_API_KEY_FILE must be set"}
	}
	if cfg.JWTSecret == "" {
		return ValidationError{Field: "JWT_SECRET", Message: "JWT_SECRET or JWT_SECRET_FILE must be set"}
	}
	if cfg.ServerPort == "" {
		return ValidationError{Field: "SERVER_PORT", Message: "server port is required"}
	}

	if IsProduction() {
		if cfg.DBPassword == "" {
			return ValidationError{Field: "DB_PASSWORD", Message: "database password is required in production"}
		}
		if cfg.DBSSLMode == "disable" {
			return ValidationError{Field: "DB_SSL_MODE", Message: "SSL must be enabled in production"}
		}
	}

	return nil
}
