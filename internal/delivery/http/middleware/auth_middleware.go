package middleware

import (
	"strings"

	"chefdhundo-backend/internal/delivery/http/response"
	"chefdhundo-backend/internal/domain"
	"chefdhundo-backend/pkg/apperror"
	"chefdhundo-backend/pkg/auth"
	"chefdhundo-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the cookie Clerk sets for same-site sessions.
const SessionCookie = "__session"

// TokenVerifier checks a Clerk session token.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthMiddleware accepts a bearer token or the session cookie and stores
// the identity in the context.
func AuthMiddleware(verifier TokenVerifier, secLog *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, fromCookie := sessionToken(c)
		if token == "" {
			abortUnauthorized(c, secLog, "missing token", "Authorization header or session cookie required")
			return
		}
		if verifier == nil {
			abortUnauthorized(c, secLog, "verifier not configured", "Authentication is not configured")
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			abortUnauthorized(c, secLog, err.Error(), "Invalid token")
			return
		}

		c.Set(string(domain.KeyUserID), claims.Subject)
		c.Set(string(domain.KeyUserEmail), claims.Email)
		c.Set(string(domain.KeyUserName), claims.Name)
		c.Set(string(domain.KeyAuthFromCookie), fromCookie)
		c.Next()
	}
}

func sessionToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")), false
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

func abortUnauthorized(c *gin.Context, secLog *security.SecurityLogger, reason, message string) {
	secLog.LogUnauthorized(c.Request.Context(), c.ClientIP(), c.GetHeader("User-Agent"), response.RequestID(c), reason)
	_ = c.Error(apperror.Unauthorized(message))
	c.Abort()
}

// Identity reads the identity stored by AuthMiddleware.
func Identity(c *gin.Context) domain.Identity {
	return domain.Identity{
		UserID: c.GetString(string(domain.KeyUserID)),
		Email:  c.GetString(string(domain.KeyUserEmail)),
		Name:   c.GetString(string(domain.KeyUserName)),
	}
}
