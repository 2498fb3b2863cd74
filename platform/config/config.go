// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTSecret() string
}

// AuthServiceConfig provides settings needed by the auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetJWTExpire() time.Duration
	GetResetTokenTTL() time.Duration
	GetAppBaseURL() string
}

// CookieConfig provides settings for the token cookie.
type CookieConfig interface {
	GetCookieName() string
	GetCookieSecure() bool
	GetJWTExpire() time.Duration
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// RateLimitConfig provides settings for the per-IP rate limiter.
type RateLimitConfig interface {
	GetRateLimitWindow() time.Duration
	GetRateLimitMax() int
}

// UploadConfig provides settings for bootcamp photo uploads.
type UploadConfig interface {
	GetMaxFileUpload() int64
	GetFileUploadPath() string
}

// GeocoderConfig provides settings for the geocoding client.
type GeocoderConfig interface {
	GetGeocoderURL() string
	GetGeocoderAPIKey() string
	GetGeocoderCountry() string
}

// SchedulerConfig provides settings for the asynq reconciliation worker.
type SchedulerConfig interface {
	GetRedisURL() string
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// SMTPConfig provides settings for the password-reset email sender.
type SMTPConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	IsEmailEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env              string
	HTTPAddr         string
	AppBaseURL       string
	DatabaseURL      string
	JWTSecret        string
	JWTExpire        time.Duration
	ResetTokenTTL    time.Duration
	CookieName       string
	CookieSecure     bool
	CORSOrigins      []string
	CORSAllowCreds   bool
	RateLimitWindow  time.Duration
	RateLimitMax     int
	MaxFileUpload    int64
	FileUploadPath   string
	GeocoderURL      string
	GeocoderAPIKey   string
	GeocoderCountry  string
	RedisURL         string
	AsynqQueueName   string
	AsynqConcurrency int
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFromName    string
	EmailFromAddress string
}

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTSecret() string { return c.JWTSecret }

// AuthServiceConfig implementation
func (c *Config) GetJWTExpire() time.Duration     { return c.JWTExpire }
func (c *Config) GetResetTokenTTL() time.Duration { return c.ResetTokenTTL }
func (c *Config) GetAppBaseURL() string           { return c.AppBaseURL }

// CookieConfig implementation
func (c *Config) GetCookieName() string { return c.CookieName }
func (c *Config) GetCookieSecure() bool { return c.CookieSecure }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// RateLimitConfig implementation
func (c *Config) GetRateLimitWindow() time.Duration { return c.RateLimitWindow }
func (c *Config) GetRateLimitMax() int              { return c.RateLimitMax }

// UploadConfig implementation
func (c *Config) GetMaxFileUpload() int64   { return c.MaxFileUpload }
func (c *Config) GetFileUploadPath() string { return c.FileUploadPath }

// GeocoderConfig implementation
func (c *Config) GetGeocoderURL() string     { return c.GeocoderURL }
func (c *Config) GetGeocoderAPIKey() string  { return c.GeocoderAPIKey }
func (c *Config) GetGeocoderCountry() string { return c.GeocoderCountry }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// SMTPConfig implementation
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }
func (c *Config) IsEmailEnabled() bool        { return c.SMTPHost != "" }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "development")

	cookieSecure := strings.EqualFold(getEnv("COOKIE_SECURE", ""), "true")
	if getEnv("COOKIE_SECURE", "") == "" {
		cookieSecure = strings.EqualFold(env, "production")
	}

	cfg := &Config{
		Env:              env,
		HTTPAddr:         getEnv("HTTP_ADDR", ":5000"),
		AppBaseURL:       getEnv("APP_BASE_URL", "http://localhost:5000"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTExpire:        mustDuration(getEnv("JWT_EXPIRE", "720h")),
		ResetTokenTTL:    mustDuration(getEnv("RESET_TOKEN_TTL", "10m")),
		CookieName:       getEnv("COOKIE_NAME", "token"),
		CookieSecure:     cookieSecure,
		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		CORSAllowCreds:   strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RateLimitWindow:  mustDuration(getEnv("RATE_LIMIT_WINDOW", "10m")),
		RateLimitMax:     mustInt(getEnv("RATE_LIMIT_MAX", "100")),
		MaxFileUpload:    mustInt64(getEnv("MAX_FILE_UPLOAD", "1000000")),
		FileUploadPath:   getEnv("FILE_UPLOAD_PATH", "./public/uploads"),
		GeocoderURL:      getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org/search"),
		GeocoderAPIKey:   getEnv("GEOCODER_API_KEY", ""),
		GeocoderCountry:  getEnv("GEOCODER_COUNTRY", "us"),
		RedisURL:         getEnv("REDIS_URL", ""),
		AsynqQueueName:   getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency: mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Bootcamp Directory"),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", "noreply@bootcampdirectory.dev"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.JWTExpire <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRE must be a positive duration")
	}
	if cfg.RateLimitWindow <= 0 || cfg.RateLimitMax <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW and RATE_LIMIT_MAX must be positive")
	}
	if cfg.MaxFileUpload <= 0 {
		return nil, fmt.Errorf("MAX_FILE_UPLOAD must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}
