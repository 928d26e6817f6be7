package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/terraincognita07/stackcheck/internal/effects"
	"gopkg.in/yaml.v3"
)

const insecureSecretPlaceholder = "change_me_in_production"

var (
	ErrInvalidConfig     = errors.New("invalid config")
	ErrInvalidThresholds = errors.New("invalid thresholds")
	ErrInsecureSecretKey = errors.New("insecure SECRET_KEY")
)

var validate = validator.New()

type Config struct {
	DBDriver    string `validate:"oneof=sqlite postgres"`
	DBPath      string `validate:"required_if=DBDriver sqlite"`
	DatabaseURL string `validate:"required_if=DBDriver postgres"`
	Port        string `validate:"required,numeric"`
	SecretKey   string
	Timezone    string `validate:"required"`
	LogMode     string `validate:"oneof=dev development prod production"`
	Concurrency int    `validate:"gte=1,lte=64"`

	Location   *time.Location     `validate:"-"`
	Thresholds effects.Thresholds `validate:"-"`
}

// Load reads the process environment, after merging an optional .env file
// from the working directory.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	env := func(key string, fallback string) string {
		if value := strings.TrimSpace(getenv(key)); value != "" {
			return value
		}
		return fallback
	}

	concurrency, err := strconv.Atoi(env("EFFECT_CONCURRENCY", "4"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: EFFECT_CONCURRENCY: %w", ErrInvalidConfig, err)
	}

	cfg := Config{
		DBDriver:    strings.ToLower(env("DB_DRIVER", "sqlite")),
		DBPath:      env("DB_PATH", filepath.Join("data", "stackcheck.db")),
		DatabaseURL: env("DATABASE_URL", ""),
		Port:        env("PORT", "8080"),
		SecretKey:   getenv("SECRET_KEY"),
		Timezone:    env("TZ", "UTC"),
		LogMode:     strings.ToLower(env("LOG_MODE", "dev")),
		Concurrency: concurrency,
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("%w: TZ %q: %w", ErrInvalidConfig, cfg.Timezone, err)
	}
	cfg.Location = location

	cfg.Thresholds, err = LoadThresholds(env("EFFECT_THRESHOLDS_FILE", ""))
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadThresholds overlays a YAML file on the defaults. Keys missing from the
// file keep their default value. An empty path returns the defaults.
func LoadThresholds(path string) (effects.Thresholds, error) {
	thresholds := effects.DefaultThresholds()
	if path == "" {
		return thresholds, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return effects.Thresholds{}, fmt.Errorf("read thresholds file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &thresholds); err != nil {
		return effects.Thresholds{}, fmt.Errorf("%w: parse %s: %w", ErrInvalidThresholds, path, err)
	}
	if err := ValidateThresholds(thresholds); err != nil {
		return effects.Thresholds{}, err
	}
	return thresholds, nil
}

func ValidateThresholds(thresholds effects.Thresholds) error {
	if err := validate.Struct(thresholds); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidThresholds, err)
	}
	if thresholds.MinOnDays+thresholds.MinOffDays > thresholds.MinCleanDays {
		return fmt.Errorf("%w: min_on_days + min_off_days exceeds min_clean_days", ErrInvalidThresholds)
	}
	return nil
}

// ResolveSecretKey rejects empty, placeholder and short signing secrets.
func ResolveSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	switch {
	case secret == "":
		return "", fmt.Errorf("%w: SECRET_KEY is required", ErrInsecureSecretKey)
	case secret == insecureSecretPlaceholder, strings.HasPrefix(secret, "replace_with_"):
		return "", fmt.Errorf("%w: SECRET_KEY uses a placeholder value", ErrInsecureSecretKey)
	case len(secret) < 32:
		return "", fmt.Errorf("%w: SECRET_KEY must be at least 32 characters", ErrInsecureSecretKey)
	}
	return secret, nil
}
