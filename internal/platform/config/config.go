// Package config loads the service configuration from USERS_* environment
// variables, reading a local .env file first when one exists.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "USERS_"

// Store backends.
const (
	StoreMemory    = "memory"
	StoreFirestore = "firestore"
	StorePostgres  = "postgres"
)

// Config is the runtime configuration of the server.
type Config struct {
	Port               string `koanf:"port"                           validate:"required,numeric"`
	LogLevel           string `koanf:"log_level"                      validate:"oneof=debug info warn error"`
	MajorityAge        int    `koanf:"majority_age"                   validate:"min=0,max=150"`
	Store              string `koanf:"store"                          validate:"oneof=memory firestore postgres"`
	DatabaseURL        string `koanf:"database_url"                   validate:"required_if=Store postgres"`
	FirebaseProjectID  string `koanf:"firebase_project_id"            validate:"required_if=Store firestore"`
	GoogleCredentials  string `koanf:"google_application_credentials"`
	CORSAllowedOrigins string `koanf:"cors_allowed_origins"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Port:        "8080",
		LogLevel:    "info",
		MajorityAge: 18,
		Store:       StoreMemory,
	}
}

// Load reads USERS_* variables over the defaults and validates the result.
// PORT, as set by Cloud Run, takes precedence over USERS_PORT.
func Load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// AllowedOrigins splits the comma separated CORS origin list. Empty means any
// origin.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for o := range strings.SplitSeq(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
