package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string `env:"APP_ADDR" envDefault:":8080" validate:"required"`
	GinMode string `env:"GIN_MODE"`

	// Booking API (owns bookings, pricing and auth). Required, no default.
	BackendBaseURL string        `env:"BACKEND_BASE_URL" validate:"required,url"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"0s" validate:"gte=0"`

	APKUpstreamURL   string        `env:"APK_UPSTREAM_URL" envDefault:"https://altura.up.railway.app/api/apk/download" validate:"required,url"`
	APKProbeInterval time.Duration `env:"APK_PROBE_INTERVAL" envDefault:"10m" validate:"gte=0"`

	// Optional stores. Empty disables them.
	DBDSN         string `env:"DB_DSN"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0" validate:"gte=0"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	Timezone           string   `env:"TIMEZONE" envDefault:"Asia/Jakarta" validate:"required"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	LogOutput string `env:"LOG_OUTPUT" envDefault:"stdout" validate:"oneof=stdout file both"`
	LogFile   string `env:"LOG_FILE" envDefault:"logs/app.log"`

	// Receipt header.
	CompanyName    string `env:"COMPANY_NAME" envDefault:"ALTURA TRAVEL"`
	CompanyAddress string `env:"COMPANY_ADDRESS" envDefault:"Jl. Contoh No. 123, Jakarta Selatan"`
	CompanyContact string `env:"COMPANY_CONTACT" envDefault:"Telp: (021) 1234-5678 | Email: info@altura.com"`
}

// LoadEnv reads .env (when present) and the process environment.
func LoadEnv() (Env, error) {
	// .env is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.BackendBaseURL = strings.TrimRight(strings.TrimSpace(cfg.BackendBaseURL), "/")

	if err := validator.New().Struct(cfg); err != nil {
		return Env{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Location resolves Timezone, falling back to UTC+7.
func (e Env) Location() *time.Location {
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return time.FixedZone("WIB", 7*3600)
	}
	return loc
}

// Company groups the receipt header lines.
type Company struct {
	Name    string
	Address string
	Contact string
}

func (e Env) Company() Company {
	return Company{Name: e.CompanyName, Address: e.CompanyAddress, Contact: e.CompanyContact}
}
