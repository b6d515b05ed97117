package config

import (
	"strings"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/feedline")
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("JWT_ISSUER", "feedline")
	t.Setenv("JWT_AUDIENCE", "feedline-web")
	t.Setenv("PASSWORD_PEPPER", "pepper")
}

func TestLoad_Success(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ACCESS_TOKEN_TTL", "2h")
	t.Setenv("REMEMBER_ME_TTL", "48h")
	t.Setenv("MAX_POST_CHARS", "140")
	t.Setenv("REGISTRATION_OPEN", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AccessTokenTTL != 2*time.Hour {
		t.Fatalf("AccessTokenTTL want 2h, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RememberMeTTL != 48*time.Hour {
		t.Fatalf("RememberMeTTL want 48h, got %v", cfg.RememberMeTTL)
	}
	if cfg.MaxPostChars != 140 {
		t.Fatalf("MaxPostChars want 140, got %d", cfg.MaxPostChars)
	}
	if !cfg.RegistrationOpen {
		t.Fatal("RegistrationOpen want true")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AuthMode != AuthModeToken {
		t.Fatalf("default AUTH_MODE want token, got %q", cfg.AuthMode)
	}
	if cfg.AccessTokenTTL != 24*time.Hour {
		t.Fatalf("default ACCESS_TOKEN_TTL want 24h, got %v", cfg.AccessTokenTTL)
	}
	if cfg.SessionTTL != 720*time.Hour {
		t.Fatalf("default SESSION_TTL want 720h, got %v", cfg.SessionTTL)
	}
	if cfg.MaxPostChars != 280 {
		t.Fatalf("default MAX_POST_CHARS want 280, got %d", cfg.MaxPostChars)
	}
	if cfg.RegistrationOpen {
		t.Fatal("registration must default to closed")
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "x")
	t.Setenv("REDIS_ADDRESS", "r")

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to missing DATABASE_URL, got nil")
	}
}

func TestLoad_TokenModeRequiresSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("AUTH_MODE", "token")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REDIS_ADDRESS", "r")

	if _, err := Load(); err == nil {
		t.Fatal("expected error due to missing JWT_SECRET, got nil")
	}
}

func TestLoad_SessionModeNeedsNoRedis(t *testing.T) {
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("AUTH_MODE", "session")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REDIS_ADDRESS", "")

	if _, err := Load(); err != nil {
		t.Fatalf("session mode must not require redis/jwt config: %v", err)
	}
}

func TestLoad_BadAuthMode(t *testing.T) {
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("AUTH_MODE", "cookie")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown AUTH_MODE, got nil")
	}
}
