package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	jwt.RegisteredClaims
}

// Util signs and verifies the stateless bearer credential. Verification is
// purely computational: signature, expiry and issuer/audience checks only.
type Util interface {
	Generate(userID uuid.UUID, ttl time.Duration) (token string, exp time.Time, jti string, err error)

	Validate(raw string) (Claims, error)
}
