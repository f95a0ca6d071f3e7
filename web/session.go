package storefront

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	userdomain "github.com/Apurer/go-gin-storefront/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-storefront/internal/domains/users/ports"
)

const (
	sessionIDKey   = "storefront.session_id"
	currentUserKey = "storefront.current_user"
	authTokenKey   = "storefront.auth_token"
)

// SessionMiddleware gives every browser an opaque cart session id. A missing
// or malformed cookie is replaced by a fresh uuid.
func SessionMiddleware(cookieName string, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil || !validSessionID(id) {
			id = issueSession(c, cookieName, secure)
		}
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

func issueSession(c *gin.Context, cookieName string, secure bool) string {
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, id, 0, "/", "", secure, true)
	return id
}

func validSessionID(raw string) bool {
	_, err := uuid.Parse(strings.TrimSpace(raw))
	return err == nil
}

// SessionID returns the cart session id set by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

// CurrentUserMiddleware resolves the login cookie to a user. Anonymous
// visitors pass through untouched.
func CurrentUserMiddleware(users userports.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if users == nil {
			c.Next()
			return
		}
		token, err := c.Cookie(cookieName)
		if err == nil && token != "" {
			if user, err := users.CurrentUser(c.Request.Context(), token); err == nil {
				c.Set(currentUserKey, user)
				c.Set(authTokenKey, token)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the logged-in user, or nil for anonymous visitors.
func CurrentUser(c *gin.Context) *userdomain.User {
	if v, ok := c.Get(currentUserKey); ok {
		if user, ok := v.(*userdomain.User); ok {
			return user
		}
	}
	return nil
}
