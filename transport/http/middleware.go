package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/layer-3/drip/core"
	"github.com/layer-3/drip/service"
)

// AuthMiddleware creates middleware that validates session tokens
func AuthMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := auth.ValidateToken(bearerToken(c))
		if err != nil {
			switch {
			case errors.Is(err, core.ErrTokenMissing):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":   "Token not provided",
					"message": "Authentication is required",
				})
			case errors.Is(err, core.ErrTokenExpired):
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":   "Token expired",
					"message": "Please sign in again",
				})
			default:
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":   "Invalid token",
					"message": "The provided token is not valid",
				})
			}
			return
		}

		c.Set("userAddress", session.Address)

		c.Next()
	}
}
