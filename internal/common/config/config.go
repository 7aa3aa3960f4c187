package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/techchallenge/vehicle-api/internal/common/constants"
	commonerrors "github.com/techchallenge/vehicle-api/internal/common/errors"
)

const EnvDevelopment = "development"

// Config is read once at startup and not modified afterwards.
type Config struct {
	AppEnv   string
	HTTPPort string

	// AuthDatabaseURL backs the users store. VehicleDatabaseURL belongs to the
	// vehicle store and is only carried so the two stay configured apart.
	AuthDatabaseURL    string
	VehicleDatabaseURL string

	JWTSecret string
	// UsingDevelopmentSecret is set when JWTSecret fell back to the
	// documented development value.
	UsingDevelopmentSecret bool
	AccessTokenTTL         time.Duration
	BcryptCost             int
	RequestTimeout         time.Duration

	LogDir   string
	LogLevel string
}

func (c Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

func Load() (Config, error) {
	cfg := Config{
		AppEnv:             strings.ToLower(getEnv("APP_ENV", "production")),
		HTTPPort:           getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		VehicleDatabaseURL: os.Getenv("DATABASE_URL"),
		LogDir:             os.Getenv("LOG_DIR"),
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),
	}

	var err error
	if cfg.AuthDatabaseURL, err = mustEnv("AUTH_DATABASE_URL"); err != nil {
		return Config{}, err
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" && cfg.IsDevelopment() {
		cfg.JWTSecret = constants.DevelopmentJWTSecret
		cfg.UsingDevelopmentSecret = true
	}
	if cfg.JWTSecret == "" {
		return Config{}, commonerrors.ErrMissingRequiredEnv.WithDetails(map[string]any{"key": "JWT_SECRET"})
	}
	if err := validateJWTSecret(cfg.JWTSecret); err != nil {
		return Config{}, err
	}

	minutes, err := getIntEnv("ACCESS_TOKEN_EXPIRE_MINUTES", int(constants.DefaultAccessTokenTTL/time.Minute))
	if err != nil {
		return Config{}, err
	}
	if minutes <= 0 {
		return Config{}, invalid("ACCESS_TOKEN_EXPIRE_MINUTES", strconv.Itoa(minutes))
	}
	cfg.AccessTokenTTL = time.Duration(minutes) * time.Minute

	if cfg.BcryptCost, err = getIntEnv("BCRYPT_COST", constants.DefaultBcryptCost); err != nil {
		return Config{}, err
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return Config{}, invalid("BCRYPT_COST", strconv.Itoa(cfg.BcryptCost))
	}

	if cfg.RequestTimeout, err = getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return commonerrors.ErrInvalidJWTSecret.WithCause(fmt.Errorf("got %d bytes", len(secret)))
	}
	return nil
}

func invalid(key, value string) error {
	return commonerrors.ErrInvalidConfig.WithDetails(map[string]any{"key": key, "value": value})
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", commonerrors.ErrMissingRequiredEnv.WithDetails(map[string]any{"key": key})
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, invalid(key, v)
	}
	return d, nil
}

func getIntEnv(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, invalid(key, v)
	}
	return i, nil
}
