package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/posledger/internal/presentation/http/dto/response"
	"github.com/sangkips/posledger/pkg/utils"
)

// AuthMiddleware verifies the bearer token and records its subject
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("subject", claims.Subject)
		c.Set("roles", claims.Roles)

		c.Next()
	}
}

// clientID identifies the caller for rate limiting and idempotency
func clientID(c *gin.Context) string {
	if subject := c.GetString("subject"); subject != "" {
		return "sub:" + subject
	}
	return "ip:" + c.ClientIP()
}
