package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"pressfeed/internal/pkg/jwtutil"
	"pressfeed/internal/transport/http/response"
)

const ContextLoginKey = "login"

// AuthJWT verifies the bearer token before any handler body runs.
// A failed verification aborts the request, so no store call can happen
// on an unauthenticated request.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, 401, response.CodeUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, 401, response.CodeUnauthorized, "invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Error(c, 401, response.CodeUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextLoginKey, claims.Login)
		c.Next()
	}
}

// Login extracts the verified login stored by AuthJWT.
func Login(c *gin.Context) (string, bool) {
	loginAny, exists := c.Get(ContextLoginKey)
	if !exists {
		return "", false
	}
	login, ok := loginAny.(string)
	return login, ok && login != ""
}
