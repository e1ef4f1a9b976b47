package router

import (
	"github.com/gin-gonic/gin"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/interfaces/http/handler"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// Handlers bundles the HTTP handlers of the marketplace API
type Handlers struct {
	System      *handler.SystemHandler
	Auth        *handler.AuthHandler
	Profile     *handler.ProfileHandler
	User        *handler.UserHandler
	Category    *handler.CategoryHandler
	Product     *handler.ProductHandler
	Image       *handler.ImageHandler
	Favorite    *handler.FavoriteHandler
	Cart        *handler.CartHandler
	Order       *handler.OrderHandler
	SellerOrder *handler.OrderHandler
	AdminOrder  *handler.OrderHandler
	Analytics   *handler.AnalyticsHandler
	Review      *handler.ReviewHandler
}

// Guards are the request guards shared by the route groups
type Guards struct {
	// Auth requires a valid bearer token
	Auth gin.HandlerFunc
	// OptionalAuth reads a bearer token when one is sent
	OptionalAuth gin.HandlerFunc
	// CartSession resolves the cart owner; runs after OptionalAuth
	CartSession gin.HandlerFunc
	// AuthRateLimit throttles credential endpoints; may be nil
	AuthRateLimit gin.HandlerFunc
	Permission    middleware.PermissionConfig
}

func (g Guards) can(capability identity.Capability) gin.HandlerFunc {
	return middleware.RequireCapabilityWithConfig(g.Permission, capability)
}

// Marketplace declares every API route group. Capabilities are checked by
// middleware before any handler runs.
func Marketplace(h Handlers, g Guards) []*DomainGroup {
	throttled := func(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
		if g.AuthRateLimit == nil {
			return handlers
		}
		return append([]gin.HandlerFunc{g.AuthRateLimit}, handlers...)
	}

	system := NewDomainGroup("system", "")
	system.GET("/health", h.System.Health)
	system.GET("/system/info", h.System.GetSystemInfo)
	system.GET("/system/ping", h.System.Ping)

	auth := NewDomainGroup("auth", "/auth")
	auth.POST("/register", throttled(h.Auth.Register)...)
	auth.POST("/login", throttled(h.Auth.Login)...)
	auth.POST("/refresh", throttled(h.Auth.RefreshToken)...)
	auth.POST("/logout", g.Auth, h.Auth.Logout)
	auth.POST("/become-seller", g.Auth, g.can(identity.CapBecomeSeller), h.Auth.BecomeSeller)
	auth.GET("/user", g.Auth, h.Auth.GetCurrentUser)

	users := NewDomainGroup("users", "/users").Use(g.Auth)
	users.GET("/profile", g.can(identity.CapProfileManage), h.Profile.Get)
	users.Update("/profile", g.can(identity.CapProfileManage), h.Profile.Update)
	users.GET("", g.can(identity.CapUserAdmin), h.User.List)
	users.GET("/:id", g.can(identity.CapUserAdmin), h.User.Get)
	users.Update("/:id", g.can(identity.CapUserAdmin), h.User.Update)
	users.DELETE("/:id", g.can(identity.CapUserAdmin), h.User.Delete)

	categories := NewDomainGroup("categories", "/categories")
	categories.GET("", h.Category.List)
	categories.GET("/:id", h.Category.Get)
	categories.POST("", g.Auth, g.can(identity.CapCategoryManage), h.Category.Create)
	categories.PUT("/:id", g.Auth, g.can(identity.CapCategoryManage), h.Category.Update)
	categories.DELETE("/:id", g.Auth, g.can(identity.CapCategoryManage), h.Category.Delete)

	products := NewDomainGroup("products", "/products")
	products.GET("", h.Product.List)
	products.GET("/:id", g.OptionalAuth, h.Product.Get)
	products.POST("", g.Auth, g.can(identity.CapProductManage), h.Product.Create)
	products.Update("/:id", g.Auth, g.can(identity.CapProductManage), h.Product.Update)
	products.DELETE("/:id", g.Auth, g.can(identity.CapProductManage), h.Product.Delete)

	images := NewDomainGroup("images", "/images")
	images.GET("", h.Image.List)
	images.GET("/:id", h.Image.Get)
	images.POST("", g.Auth, g.can(identity.CapImageManage), h.Image.Create)
	images.DELETE("/:id", g.Auth, g.can(identity.CapImageManage), h.Image.Delete)

	sellers := NewDomainGroup("sellers", "/sellers").Use(g.Auth)
	sellerProducts := sellers.Group("seller-products", "/products").Use(g.can(identity.CapProductManage))
	sellerProducts.GET("", h.Product.ListOwn)
	sellerProducts.POST("", h.Product.Create)
	sellerProducts.GET("/:id", h.Product.GetOwn)
	sellerProducts.Update("/:id", h.Product.Update)
	sellerProducts.DELETE("/:id", h.Product.Delete)
	sellerOrders := sellers.Group("seller-orders", "/orders").Use(g.can(identity.CapSellerOrders))
	sellerOrders.GET("", h.SellerOrder.List)
	sellerOrders.GET("/export", h.SellerOrder.Export)
	sellerOrders.GET("/:id", h.SellerOrder.Get)
	sellerOrders.PATCH("/:id/status", h.SellerOrder.UpdateStatus)
	sellers.GET("/analytics", g.can(identity.CapSellerAnalytics), h.Analytics.SellerReport)

	cart := NewDomainGroup("cart", "/cart").Use(g.OptionalAuth, g.CartSession)
	cart.GET("", h.Cart.Get)
	cart.POST("", h.Cart.Add)
	cart.PATCH("/:item_id", h.Cart.UpdateQuantity)
	cart.DELETE("/:item_id", h.Cart.Remove)

	orders := NewDomainGroup("orders", "/orders").Use(g.Auth, g.can(identity.CapOrderPlace))
	orders.GET("", h.Order.List)
	orders.POST("", h.Order.Checkout)
	orders.GET("/:id", h.Order.Get)
	orders.PATCH("/:id/status", h.Order.UpdateStatus)

	reviews := NewDomainGroup("reviews", "/reviews")
	reviews.GET("", h.Review.List)
	reviews.GET("/:id", h.Review.Get)
	reviews.POST("", g.Auth, g.can(identity.CapReviewWrite), h.Review.Create)
	reviews.Update("/:id", g.Auth, g.can(identity.CapReviewWrite), h.Review.Update)
	reviews.DELETE("/:id", g.Auth, g.can(identity.CapReviewWrite), h.Review.Delete)

	favorites := NewDomainGroup("favorites", "/favorites").Use(g.Auth, g.can(identity.CapFavoriteManage))
	favorites.GET("", h.Favorite.List)
	favorites.POST("", h.Favorite.Add)
	favorites.POST("/toggle", h.Favorite.Toggle)
	favorites.DELETE("/:id", h.Favorite.Delete)

	admin := NewDomainGroup("admin", "/admin").Use(g.Auth)
	adminOrders := admin.Group("admin-orders", "/orders").Use(g.can(identity.CapOrderAdmin))
	adminOrders.GET("", h.AdminOrder.List)
	adminOrders.GET("/:id", h.AdminOrder.Get)
	adminOrders.PATCH("/:id/status", h.AdminOrder.UpdateStatus)

	return []*DomainGroup{
		system, auth, users, categories, products, images,
		sellers, cart, orders, reviews, favorites, admin,
	}
}

// RegisterMarketplace mounts the marketplace groups on the router
func RegisterMarketplace(r *Router, h Handlers, g Guards) {
	for _, group := range Marketplace(h, g) {
		r.Register(group)
	}
}
