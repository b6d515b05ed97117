package middleware

import (
	"net/http"
	"strings"

	"github.com/ademarov/feedline/internal/app/feed/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userIDKey     = "userID"
	credentialKey = "credential"

	// SessionCookie is the cookie carrying the opaque session id in
	// session mode.
	SessionCookie = "session"
)

// Auth rejects requests without a resolvable credential before any handler
// runs. Missing, malformed, expired and revoked credentials all get the
// same 401 so the failure mode is not leaked.
func Auth(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := CredentialFrom(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		uid, err := svc.Resolve(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Set(userIDKey, uid)
		c.Set(credentialKey, raw)
		c.Next()
	}
}

// CredentialFrom pulls the presented credential off the request: the
// Authorization bearer header wins, the session cookie is the fallback.
func CredentialFrom(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// UserID returns the identity resolved by Auth for this request.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	uid, ok := v.(uuid.UUID)
	return uid, ok
}
