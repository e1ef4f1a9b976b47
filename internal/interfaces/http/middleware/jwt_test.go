package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	})
}

func newTestToken(t *testing.T, jwtService *auth.JWTService, role identity.Role) (string, auth.GenerateTokenInput) {
	t.Helper()
	input := auth.GenerateTokenInput{UserID: uuid.New(), Username: "anna", Role: role}
	pair, err := jwtService.GenerateTokenPair(input)
	require.NoError(t, err)
	return pair.AccessToken, input
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func serve(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	token, input := newTestToken(t, jwtService, identity.RoleSeller)

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService, nil, zap.NewNop()))
	router.GET("/test", func(c *gin.Context) {
		id, ok := GetUserUUID(c)
		assert.True(t, ok)
		assert.Equal(t, input.UserID, id)
		assert.Equal(t, identity.RoleSeller, GetJWTRole(c))
		assert.Equal(t, "anna", GetJWTClaims(c).Username)
		c.Status(http.StatusOK)
	})

	rec := serve(router, http.MethodGet, "/test", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthMiddleware_Rejections(t *testing.T) {
	jwtService := newTestJWTService()
	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService, nil, zap.NewNop()))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := serve(router, http.MethodGet, "/test", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "ERR_TOKEN_INVALID", errorCode(t, rec))

	rec = serve(router, http.MethodGet, "/test", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Token abc")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	jwtService := newTestJWTService()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{UserID: uuid.New(), Role: identity.RoleCustomer})
	require.NoError(t, err)

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService, nil, zap.NewNop()))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := serve(router, http.MethodGet, "/test", pair.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddleware_Blacklist(t *testing.T) {
	jwtService := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	token, _ := newTestToken(t, jwtService, identity.RoleCustomer)
	claims, err := jwtService.ValidateAccessToken(token)
	require.NoError(t, err)

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService, blacklist, zap.NewNop()))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/test", token).Code)

	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Minute))
	rec := serve(router, http.MethodGet, "/test", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "ERR_TOKEN_REVOKED", errorCode(t, rec))
}

func TestOptionalJWTAuthMiddleware(t *testing.T) {
	jwtService := newTestJWTService()
	token, input := newTestToken(t, jwtService, identity.RoleCustomer)

	router := gin.New()
	router.Use(OptionalJWTAuthMiddleware(jwtService, nil, zap.NewNop()))
	router.GET("/test", func(c *gin.Context) {
		id, ok := GetUserUUID(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok, "id": id})
	})

	rec := serve(router, http.MethodGet, "/test", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)

	rec = serve(router, http.MethodGet, "/test", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), input.UserID.String())

	rec = serve(router, http.MethodGet, "/test", "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "a bad token is not silently anonymous")
}
