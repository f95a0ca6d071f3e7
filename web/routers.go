// Package storefront serves the server-rendered shop pages and the JSON cart API.
package storefront

import (
	"context"
	"embed"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	userports "github.com/Apurer/go-gin-storefront/internal/domains/users/ports"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// CartForgetter drops a browser session's cart. The memory registry implements it.
type CartForgetter interface {
	Forget(ctx context.Context, sessionID string)
}

// Dependencies are the application services the storefront delegates to.
type Dependencies struct {
	Cart    cartports.Service
	Catalog catalogports.Service
	Users   userports.Service
	// Carts is optional; when set, logout drops the anonymous cart.
	Carts CartForgetter
}

// Settings tune cookies and logging.
type Settings struct {
	SessionCookieName string
	AuthCookieName    string
	CookieSecure      bool
	LoginTTL          time.Duration
	Logger            *slog.Logger
}

func (s Settings) withDefaults() Settings {
	if s.SessionCookieName == "" {
		s.SessionCookieName = "storefront_session"
	}
	if s.AuthCookieName == "" {
		s.AuthCookieName = "storefront_auth"
	}
	if s.LoginTTL <= 0 {
		s.LoginTTL = 24 * time.Hour
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Route is the information for every URI.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router with templates, session handling and every storefront route.
func NewRouter(deps Dependencies, settings Settings, middleware ...gin.HandlerFunc) *gin.Engine {
	settings = settings.withDefaults()
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)
	router.SetHTMLTemplate(parseTemplates())
	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	shop := router.Group("/")
	shop.Use(SessionMiddleware(settings.SessionCookieName, settings.CookieSecure))
	shop.Use(CurrentUserMiddleware(deps.Users, settings.AuthCookieName))
	for _, route := range getRoutes(deps, settings) {
		shop.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

func getRoutes(deps Dependencies, settings Settings) []Route {
	catalog := NewCatalogPages(deps.Catalog, deps.Cart)
	cart := NewCartPages(deps.Cart, settings.Logger)
	cartAPI := NewCartAPI(deps.Cart)
	users := NewUserPages(deps.Users, deps.Carts, settings)

	return []Route{
		{"RenderProducts", http.MethodGet, "/", catalog.RenderProducts},
		{"RenderProductsByCategory", http.MethodGet, "/category/:id", catalog.RenderProductsByCategory},
		{"RenderProductsBySupplier", http.MethodGet, "/supplier/:id", catalog.RenderProductsBySupplier},

		{"AddItem", http.MethodPost, "/cart/add/:productId", cart.AddItem},
		{"RenderCart", http.MethodGet, "/cart", cart.RenderCart},
		{"DeleteItem", http.MethodPost, "/cart/delete/:id", cart.DeleteItem},
		{"EditItem", http.MethodPost, "/cart/edit/:id", cart.EditItem},

		{"Login", http.MethodGet, "/login", users.Login},
		{"LoginUser", http.MethodPost, "/login", users.LoginUser},
		{"Register", http.MethodGet, "/register", users.Register},
		{"RegisterUser", http.MethodPost, "/register", users.RegisterUser},
		{"Logout", http.MethodPost, "/logout", users.Logout},

		{"GetCart", http.MethodGet, "/api/v1/cart", cartAPI.GetCart},
		{"AddCartItem", http.MethodPost, "/api/v1/cart/items", cartAPI.AddCartItem},
		{"DeleteCartItem", http.MethodDelete, "/api/v1/cart/items/:id", cartAPI.DeleteCartItem},
		{"EditCartItem", http.MethodPatch, "/api/v1/cart/items/:id", cartAPI.EditCartItem},
	}
}

func parseTemplates() *template.Template {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	}
	return template.Must(template.New("storefront").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))
}
