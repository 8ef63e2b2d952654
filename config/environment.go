package config

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

type Environment struct {
	IsDevelopment bool
	Port          string
	DatabaseURL   string

	AllowedOrigins []string

	// Auth0 validation is used when Auth0Domain is set, otherwise tokens are
	// HS256 signed with JWTSecret.
	Auth0Domain   string
	Auth0Audience string
	JWTSecret     string
	JWTIssuer     string
	JWTAudience   string

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	GenerateLimit time.Duration

	MaxIntervalDays float64
	LogLevel        slog.Level
}

// Load reads the service configuration from the process environment.
func Load() (Environment, error) {
	env := Environment{
		IsDevelopment: os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "",
		Port:          getenv("PORT", "8080"),
		DatabaseURL:   getenv("DB_URL", "revisa.db"),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS",
			"http://localhost:3000,http://localhost:5173")),
		Auth0Domain:   os.Getenv("AUTH0_DOMAIN"),
		Auth0Audience: os.Getenv("AUTH0_AUDIENCE"),
		JWTSecret:     os.Getenv("JWT_SECRET_KEY"),
		JWTIssuer:     getenv("JWT_ISSUER", "revisa-api"),
		JWTAudience:   getenv("JWT_AUDIENCE", "revisa"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getenv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
	}

	var err error
	if env.GenerateLimit, err = time.ParseDuration(getenv("GENERATE_TIMEOUT", "60s")); err != nil {
		return env, fmt.Errorf("config: GENERATE_TIMEOUT: %w", err)
	}
	if raw := os.Getenv("SRS_MAX_INTERVAL_DAYS"); raw != "" {
		if env.MaxIntervalDays, err = strconv.ParseFloat(raw, 64); err != nil {
			return env, fmt.Errorf("config: SRS_MAX_INTERVAL_DAYS: %w", err)
		}
		if math.IsNaN(env.MaxIntervalDays) || math.IsInf(env.MaxIntervalDays, 0) || env.MaxIntervalDays < 1 {
			return env, fmt.Errorf("config: SRS_MAX_INTERVAL_DAYS must be a finite number of days >= 1, got %q", raw)
		}
	}
	if err := env.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return env, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}

	if env.Auth0Domain == "" && env.JWTSecret == "" {
		return env, fmt.Errorf("config: either AUTH0_DOMAIN or JWT_SECRET_KEY must be set")
	}
	if env.Auth0Domain != "" && env.Auth0Audience == "" {
		return env, fmt.Errorf("config: AUTH0_AUDIENCE is required with AUTH0_DOMAIN")
	}

	return env, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
