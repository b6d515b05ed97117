package jwt

import (
	"errors"
	"time"

	customErrors "github.com/ademarov/feedline/internal/domain/feed/errors"
	"github.com/ademarov/feedline/internal/domain/feed/token"
	"github.com/ademarov/feedline/internal/infra/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// MinSecretLen is the minimum length of the HMAC signing secret. Shorter
// secrets make the token forgeable offline, so construction fails instead
// of checking per request.
const MinSecretLen = 32

type JwtUtilImpl struct {
	secret   []byte
	issuer   string
	audience string
}

func NewJWTUtil(cfg *config.Config) (*JwtUtilImpl, error) {
	if len(cfg.JWTSecret) < MinSecretLen {
		return nil, customErrors.WrapInternal(
			errors.New("JWT_SECRET must be at least 32 bytes"), "NewJWTUtil")
	}

	return &JwtUtilImpl{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
	}, nil
}

func (j *JwtUtilImpl) Generate(userID uuid.UUID, ttl time.Duration) (string, time.Time, string, error) {
	jti := uuid.NewString()
	now := time.Now()

	claims := token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    j.issuer,
			Audience:  jwt.ClaimStrings{j.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        jti,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, "", customErrors.WrapInternal(err, "sign token")
	}

	return signed, claims.ExpiresAt.Time, jti, nil
}

func (j *JwtUtilImpl) Validate(raw string) (token.Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &token.Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return j.secret, nil
	}, jwt.WithIssuedAt(), jwt.WithLeeway(2*time.Minute))

	if err != nil || !parsed.Valid {
		return token.Claims{}, customErrors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*token.Claims)
	if !ok {
		return token.Claims{}, customErrors.WrapInternal(
			errors.New("claims not token.Claims"), "Validate")
	}

	if j.issuer != "" && claims.Issuer != j.issuer {
		return token.Claims{}, customErrors.ErrInvalidToken
	}

	if j.audience != "" {
		okAudi := false
		for _, a := range claims.Audience {
			if a == j.audience {
				okAudi = true
				break
			}
		}
		if !okAudi {
			return token.Claims{}, customErrors.ErrInvalidToken
		}
	}

	return *claims, nil
}
