package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var devOrigins = map[string]bool{
	"http://localhost:3000": true,
	"http://127.0.0.1:3000": true,
	"http://localhost:3001": true,
}

// AllowOrigin reports whether origin may call the API. Vercel previews are
// accepted only for chefdhundo-prefixed deployments.
func AllowOrigin(allowed []string, production bool) func(origin string) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(origin string) bool {
		if set[origin] {
			return true
		}
		if !production && devOrigins[origin] {
			return true
		}
		if strings.HasPrefix(origin, "https://") && strings.HasSuffix(origin, ".vercel.app") {
			sub := strings.TrimSuffix(strings.TrimPrefix(origin, "https://"), ".vercel.app")
			return strings.HasPrefix(sub, "chefdhundo") || strings.Contains(sub, "-chefdhundo-")
		}
		return false
	}
}

// CORSMiddleware adds CORS headers for the storefront.
func CORSMiddleware(allowed []string, production bool) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc:  AllowOrigin(allowed, production),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "X-Request-ID", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	})
}
