package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Post struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time

	Author User
}

// Session is the stateful credential variant: an opaque id persisted
// server-side with its expiry. Rows are removed on logout or lazily on
// the first resolve after expiry.
type Session struct {
	ID        string
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Credential is what an issuer hands back after register/login: the raw
// value the client must present, and how long it stays valid.
type Credential struct {
	Token     string
	TTL       time.Duration
	UserID    uuid.UUID
	ExpiresAt time.Time
}
