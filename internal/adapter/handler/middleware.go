package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rl1809/grocery-shop/internal/core/domain"
	"github.com/rl1809/grocery-shop/internal/core/service"
)

const (
	ctxUserIDKey = "user_id"
	ctxRoleKey   = "role"
)

// AuthRequired verifies the bearer token and stores the authenticated
// principal's id and role on the request context.
func AuthRequired(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token required"})
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxRoleKey, claims.Role)
		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(ctxRoleKey)
		if !ok || role.(domain.Role) != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

func userIDFrom(c *gin.Context) int64 {
	id, _ := c.Get(ctxUserIDKey)
	userID, _ := id.(int64)
	return userID
}

func roleFrom(c *gin.Context) domain.Role {
	r, _ := c.Get(ctxRoleKey)
	role, _ := r.(domain.Role)
	return role
}
