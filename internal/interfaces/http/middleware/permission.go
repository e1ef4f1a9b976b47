package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// PermissionConfig holds configuration for capability middleware
type PermissionConfig struct {
	Logger *zap.Logger
}

// RequireCapability lets the request through only when the caller's role
// holds the capability. It must run after JWTAuthMiddleware.
func RequireCapability(capability identity.Capability) gin.HandlerFunc {
	return RequireCapabilityWithConfig(PermissionConfig{}, capability)
}

// RequireCapabilityWithConfig creates capability middleware with custom config
func RequireCapabilityWithConfig(cfg PermissionConfig, capability identity.Capability) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ERR_UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		role := identity.Role(claims.Role)
		if !role.Can(capability) {
			cfg.Logger.Warn("Capability denied",
				zap.String("user_id", claims.UserID),
				zap.String("role", claims.Role),
				zap.String("capability", string(capability)),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":       "ERR_FORBIDDEN",
					"message":    "You do not have permission to perform this action",
					"request_id": GetRequestID(c),
				},
			})
			return
		}

		c.Next()
	}
}
