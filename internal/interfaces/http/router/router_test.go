package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respond(body string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, body) }
}

func serve(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	carts := NewDomainGroup("cart", "/cart").GET("", respond("cart"))
	reviews := NewDomainGroup("reviews", "/reviews").GET("/:id", respond("review"))

	NewRouter(engine, WithAPIVersion("v2")).Register(carts, reviews).Setup()

	w := serve(engine, http.MethodGet, "/api/v2/cart")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cart", w.Body.String())
	assert.Equal(t, "review", serve(engine, http.MethodGet, "/api/v2/reviews/7").Body.String())
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/cart").Code)
}

func TestDomainGroupMethods(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("products", "/products").
		GET("", respond("list")).
		POST("", respond("create")).
		Update("/:id", respond("update")).
		DELETE("/:id", respond("delete"))
	g.RegisterRoutes(engine.Group("/api/v1"))

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/v1/products", "list"},
		{http.MethodPost, "/api/v1/products", "create"},
		{http.MethodPut, "/api/v1/products/1", "update"},
		{http.MethodPatch, "/api/v1/products/1", "update"},
		{http.MethodDelete, "/api/v1/products/1", "delete"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := serve(engine, tt.method, tt.path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestDomainGroupMiddlewareReachesSubgroups(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("sellers", "/sellers").Use(func(c *gin.Context) {
		c.Header("X-Guard", "sellers")
		c.Next()
	})
	orders := g.Group("seller-orders", "/orders").Use(func(c *gin.Context) {
		c.Header("X-Scope", "orders")
		c.Next()
	})
	orders.GET("", respond("orders"))
	orders.GET("/export", respond("export"))
	orders.GET("/:id", respond("order"))
	g.RegisterRoutes(engine.Group("/api/v1"))

	w := serve(engine, http.MethodGet, "/api/v1/sellers/orders")
	assert.Equal(t, "sellers", w.Header().Get("X-Guard"))
	assert.Equal(t, "orders", w.Header().Get("X-Scope"))

	assert.Equal(t, "export", serve(engine, http.MethodGet, "/api/v1/sellers/orders/export").Body.String())
	assert.Equal(t, "order", serve(engine, http.MethodGet, "/api/v1/sellers/orders/42").Body.String())
}

func TestDomainGroupRoutes(t *testing.T) {
	g := NewDomainGroup("sellers", "/sellers")
	g.GET("/analytics", respond(""))
	products := g.Group("seller-products", "/products")
	products.GET("", respond(""))
	products.Update("/:id", respond(""))

	assert.Equal(t, []RouteInfo{
		{Group: "sellers", Method: http.MethodGet, Path: "/sellers/analytics"},
		{Group: "seller-products", Method: http.MethodGet, Path: "/sellers/products"},
		{Group: "seller-products", Method: http.MethodPut, Path: "/sellers/products/:id"},
		{Group: "seller-products", Method: http.MethodPatch, Path: "/sellers/products/:id"},
	}, g.Routes())
	assert.Equal(t, "sellers", g.Name())
	assert.Equal(t, "/sellers", g.Prefix())
}
