package config

import (
	"errors"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all process-wide settings. It is built once in main and
// passed by reference; nothing in this package is mutated afterwards.
type Config struct {
	Port string `envconfig:"PORT" default:"8080"`
	Env  string `envconfig:"ENV" default:"development"`

	DatabaseURL string `envconfig:"DATABASE_URL"`

	JWTSecret   string `envconfig:"JWT_SECRET"`
	TokenTTLHrs int    `envconfig:"TOKEN_TTL_HOURS" default:"24"`

	// SMTP relay for the contact form and the /email/send endpoint.
	SMTPHost         string `envconfig:"SMTP_HOST"`
	SMTPPort         string `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser         string `envconfig:"SMTP_USER"`
	SMTPPass         string `envconfig:"SMTP_PASS"`
	SMTPFrom         string `envconfig:"SMTP_FROM"`
	DestinationEmail string `envconfig:"DESTINATION_EMAIL"`

	UploadDir string `envconfig:"UPLOAD_DIR" default:"uploads"`

	// Credentials for the idempotent super admin bootstrap run at startup.
	SuperAdminUsername string `envconfig:"SUPER_ADMIN_USERNAME" default:"superadmin"`
	SuperAdminEmail    string `envconfig:"SUPER_ADMIN_EMAIL"`
	SuperAdminPassword string `envconfig:"SUPER_ADMIN_PASSWORD"`
}

// Load reads .env if present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		if cfg.Env == "production" {
			return nil, errors.New("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev-secret-please-change"
	}
	return cfg, nil
}
