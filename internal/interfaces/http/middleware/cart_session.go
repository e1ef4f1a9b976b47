package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	appcart "github.com/marketplace/backend/internal/application/cart"
	"github.com/marketplace/backend/internal/domain/cart"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	// CartSessionHeader carries the anonymous cart key for clients without cookies
	CartSessionHeader = "X-Cart-Session"
	// CartIdentityKey is the gin context key of the resolved cart owner
	CartIdentityKey = "cart_identity"

	cartSessionValue = "cart_key"
)

// NewCartSessionStore builds the cookie store that remembers anonymous carts
func NewCartSessionStore(cfg config.SessionConfig) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = cfg.Secure
	store.Options.SameSite = http.SameSiteLaxMode
	store.Options.MaxAge = cfg.MaxAge
	return store
}

// CartSession resolves the cart owner of the request. Authenticated callers
// own their user cart. Anonymous callers are identified by the session
// cookie, or by the X-Cart-Session header, and get a fresh key when they
// have neither. Must run after OptionalJWTAuthMiddleware.
func CartSession(store sessions.Store, cookieName string, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		if userID, ok := GetUserUUID(c); ok {
			c.Set(CartIdentityKey, cart.ForUser(userID))
			c.Next()
			return
		}

		if key := c.GetHeader(CartSessionHeader); validSessionKey(key) {
			c.Set(CartIdentityKey, cart.ForSession(key))
			c.Header(CartSessionHeader, key)
			c.Next()
			return
		}

		// a cookie that fails to decode yields a new empty session
		session, err := store.Get(c.Request, cookieName)
		if err != nil {
			log.Debug("Discarding unreadable cart session", zap.Error(err))
		}

		key, _ := session.Values[cartSessionValue].(string)
		if !validSessionKey(key) {
			key = appcart.NewSessionKey()
			session.Values[cartSessionValue] = key
			if err := session.Save(c.Request, c.Writer); err != nil {
				log.Error("Failed to save cart session", zap.Error(err))
			}
		}

		c.Set(CartIdentityKey, cart.ForSession(key))
		c.Header(CartSessionHeader, key)
		c.Next()
	}
}

// GetCartIdentity returns the cart owner resolved by CartSession
func GetCartIdentity(c *gin.Context) (cart.Identity, bool) {
	v, exists := c.Get(CartIdentityKey)
	if !exists {
		return cart.Identity{}, false
	}
	owner, ok := v.(cart.Identity)
	return owner, ok
}

func validSessionKey(key string) bool {
	return key != "" && len(key) <= cart.MaxSessionKeyLength
}
