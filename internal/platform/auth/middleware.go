package auth

import (
	"strings"

	httpPlatform "github.com/coursematch/recoengine/internal/platform/http"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates JWT access tokens
func AuthMiddleware(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httpPlatform.RespondWithError(c, 401, "UNAUTHORIZED", "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httpPlatform.RespondWithError(c, 401, "UNAUTHORIZED", "Invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := parts[1]
		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			httpPlatform.RespondWithError(c, 401, "UNAUTHORIZED", "Invalid or expired token")
			c.Abort()
			return
		}

		// Set user ID in context
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	return userID.(string), true
}

// MustGetUserID extracts user_id from context, writing a 401 response and
// returning ok=false if it is absent. Handlers that require
// authentication call this first and return immediately when ok is
// false.
func MustGetUserID(c *gin.Context) (string, bool) {
	userID, exists := GetUserID(c)
	if !exists {
		httpPlatform.RespondWithError(c, 401, "UNAUTHORIZED", "Authentication required")
		c.Abort()
		return "", false
	}
	return userID, true
}

// OptionalAuthMiddleware resolves user_id from a bearer token when one is
// present and valid, but never aborts the request — used by endpoints
// where authentication only drives personalization, not access control.
func OptionalAuthMiddleware(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := jwtManager.ValidateAccessToken(parts[1]); err == nil {
				c.Set("user_id", claims.UserID)
			}
		}
		c.Next()
	}
}
