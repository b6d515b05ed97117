package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	AuthModeToken   = "token"
	AuthModeSession = "session"
)

// Config is built once at startup and passed by reference; nothing below
// main reads the environment directly.
type Config struct {
	HTTPAddress string

	DatabaseURL string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	AuthMode string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	AccessTokenTTL time.Duration
	RememberMeTTL  time.Duration
	SessionTTL     time.Duration

	RegistrationOpen bool
	PasswordPepper   string
	MaxPostChars     int

	AllowedOrigins   []string
	AllowCredentials bool
	CookieDomain     string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	for _, key := range []string{
		"HTTP_ADDRESS", "DATABASE_URL",
		"REDIS_ADDRESS", "REDIS_PASSWORD", "REDIS_DB",
		"AUTH_MODE", "JWT_SECRET", "JWT_ISSUER", "JWT_AUDIENCE",
		"ACCESS_TOKEN_TTL", "REMEMBER_ME_TTL", "SESSION_TTL",
		"REGISTRATION_OPEN", "PASSWORD_PEPPER", "MAX_POST_CHARS",
		"ALLOWED_ORIGINS", "ALLOW_CREDENTIALS", "COOKIE_DOMAIN",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetDefault("HTTP_ADDRESS", ":8080")
	v.SetDefault("AUTH_MODE", AuthModeToken)
	v.SetDefault("ACCESS_TOKEN_TTL", "24h")
	v.SetDefault("REMEMBER_ME_TTL", "720h")
	v.SetDefault("SESSION_TTL", "720h")
	v.SetDefault("MAX_POST_CHARS", 280)

	cfg := &Config{
		HTTPAddress:      v.GetString("HTTP_ADDRESS"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		RedisAddress:     v.GetString("REDIS_ADDRESS"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		RedisDB:          v.GetInt("REDIS_DB"),
		AuthMode:         v.GetString("AUTH_MODE"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTIssuer:        v.GetString("JWT_ISSUER"),
		JWTAudience:      v.GetString("JWT_AUDIENCE"),
		AccessTokenTTL:   v.GetDuration("ACCESS_TOKEN_TTL"),
		RememberMeTTL:    v.GetDuration("REMEMBER_ME_TTL"),
		SessionTTL:       v.GetDuration("SESSION_TTL"),
		RegistrationOpen: v.GetBool("REGISTRATION_OPEN"),
		PasswordPepper:   v.GetString("PASSWORD_PEPPER"),
		MaxPostChars:     v.GetInt("MAX_POST_CHARS"),
		AllowedOrigins:   v.GetStringSlice("ALLOWED_ORIGINS"),
		AllowCredentials: v.GetBool("ALLOW_CREDENTIALS"),
		CookieDomain:     v.GetString("COOKIE_DOMAIN"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	switch cfg.AuthMode {
	case AuthModeToken:
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required in token mode")
		}
		if cfg.RedisAddress == "" {
			return nil, fmt.Errorf("REDIS_ADDRESS is required in token mode")
		}
	case AuthModeSession:
	default:
		return nil, fmt.Errorf("AUTH_MODE must be %q or %q, got %q",
			AuthModeToken, AuthModeSession, cfg.AuthMode)
	}

	if cfg.AccessTokenTTL <= 0 || cfg.RememberMeTTL <= 0 || cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("token and session TTLs must be positive")
	}
	if cfg.MaxPostChars <= 0 {
		return nil, fmt.Errorf("MAX_POST_CHARS must be positive")
	}

	return cfg, nil
}
