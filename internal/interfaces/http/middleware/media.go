package middleware

import (
	"github.com/gin-gonic/gin"
	appcatalog "github.com/marketplace/backend/internal/application/catalog"
)

// MediaBase makes image URLs in responses absolute for the host the client
// called. Absolute media URLs in config are left untouched.
func MediaBase(mediaURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		base := appcatalog.AbsoluteMediaBase(mediaURL, requestScheme(c), c.Request.Host)
		c.Request = c.Request.WithContext(appcatalog.WithMediaBase(c.Request.Context(), base))
		c.Next()
	}
}

func requestScheme(c *gin.Context) string {
	if proto := c.GetHeader("X-Forwarded-Proto"); proto == "https" || proto == "http" {
		return proto
	}
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}
