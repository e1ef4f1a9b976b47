package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
)

func TestSwaggerProtection(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.SwaggerConfig
		remoteAddr string
		wantStatus int
		wantCode   string
	}{
		{"disabled", config.SwaggerConfig{Enabled: false}, "10.0.0.1:1234", http.StatusNotFound, "ERR_NOT_FOUND"},
		{"open", config.SwaggerConfig{Enabled: true}, "10.0.0.1:1234", http.StatusOK, ""},
		{"exact ip", config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.1"}}, "10.0.0.1:1234", http.StatusOK, ""},
		{"cidr", config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.168.0.0/16"}}, "192.168.4.2:1234", http.StatusOK, ""},
		{"outside list", config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.168.0.0/16", "bogus"}}, "10.0.0.1:1234", http.StatusForbidden, "ERR_FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/swagger/*any", SwaggerProtection(tt.cfg), func(c *gin.Context) {
				c.String(http.StatusOK, "swagger")
			})

			req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
			req.RemoteAddr = tt.remoteAddr
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, errorCode(t, rec))
			}
		})
	}
}

func TestIsIPAllowed(t *testing.T) {
	_, network, _ := net.ParseCIDR("10.1.0.0/24")
	allowed := []net.IP{net.ParseIP("127.0.0.1")}

	assert.True(t, isIPAllowed(net.ParseIP("127.0.0.1"), allowed, nil))
	assert.True(t, isIPAllowed(net.ParseIP("10.1.0.9"), nil, []*net.IPNet{network}))
	assert.False(t, isIPAllowed(net.ParseIP("10.2.0.9"), allowed, []*net.IPNet{network}))
	assert.False(t, isIPAllowed(nil, allowed, nil))
}
