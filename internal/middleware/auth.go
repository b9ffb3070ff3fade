package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"milmed-app-server/internal/config"
	"milmed-app-server/internal/models"
	"milmed-app-server/internal/utils"
)

// AuthMiddleware creates a middleware for JWT authentication.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := parts[1]
		claims, err := utils.ValidateToken(tokenString, cfg.JWTSecret)
		if err != nil {
			utils.Unauthorized(c, "Invalid token: "+err.Error())
			c.Abort()
			return
		}

		// Set account information in context for downstream handlers
		c.Set("accountID", claims.AccountID)
		c.Set("accountIdentity", claims.Identity)
		c.Set("accountRole", claims.Role)

		c.Next()
	}
}

// RoleAuthMiddleware creates a middleware for role-based authorization.
// It should be used *after* AuthMiddleware.
func RoleAuthMiddleware(allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetAccountRoleFromContext(c)
		if !ok {
			utils.InternalServerError(c, "Account role not found in context. AuthMiddleware might be missing.")
			c.Abort()
			return
		}

		isAllowed := false
		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			utils.Forbidden(c, "You do not have permission to access this resource.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetAccountIDFromContext returns the authenticated account id.
func GetAccountIDFromContext(c *gin.Context) (uint, bool) {
	accountID, exists := c.Get("accountID")
	if !exists {
		return 0, false
	}
	id, ok := accountID.(uint)
	return id, ok
}

// GetAccountIdentityFromContext returns the authenticated login identity.
func GetAccountIdentityFromContext(c *gin.Context) (string, bool) {
	identity, exists := c.Get("accountIdentity")
	if !exists {
		return "", false
	}
	s, ok := identity.(string)
	return s, ok
}

// GetAccountRoleFromContext returns the authenticated account role.
func GetAccountRoleFromContext(c *gin.Context) (models.Role, bool) {
	accountRole, exists := c.Get("accountRole")
	if !exists {
		return "", false
	}
	role, ok := accountRole.(models.Role)
	return role, ok
}
