package storefront

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

// CatalogPages renders the product listings.
type CatalogPages struct {
	catalog catalogports.Service
	cart    cartports.Service
}

func NewCatalogPages(catalog catalogports.Service, cart cartports.Service) *CatalogPages {
	return &CatalogPages{catalog: catalog, cart: cart}
}

// Get /
// All products
func (p *CatalogPages) RenderProducts(c *gin.Context) {
	products, err := p.catalog.ListProducts(c.Request.Context())
	if err != nil {
		renderError(c, problemStatus(err), "Could not load products.")
		return
	}
	p.renderIndex(c, "All products", products)
}

// Get /category/:id
// Products of one category
func (p *CatalogPages) RenderProductsByCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	category, products, err := p.catalog.ProductsByCategory(c.Request.Context(), id)
	if err != nil {
		renderError(c, problemStatus(err), fmt.Sprintf("Category %d not found.", id))
		return
	}
	p.renderIndex(c, category.Name, products)
}

// Get /supplier/:id
// Products of one supplier
func (p *CatalogPages) RenderProductsBySupplier(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	supplier, products, err := p.catalog.ProductsBySupplier(c.Request.Context(), id)
	if err != nil {
		renderError(c, problemStatus(err), fmt.Sprintf("Supplier %d not found.", id))
		return
	}
	p.renderIndex(c, supplier.Name, products)
}

func (p *CatalogPages) renderIndex(c *gin.Context, title string, products []*catalogdomain.Product) {
	ctx := c.Request.Context()
	categories, err := p.catalog.Categories(ctx)
	if err != nil {
		renderError(c, problemStatus(err), "Could not load categories.")
		return
	}
	suppliers, err := p.catalog.Suppliers(ctx)
	if err != nil {
		renderError(c, problemStatus(err), "Could not load suppliers.")
		return
	}
	data := pageData(c, p.cart)
	data["title"] = title
	data["products"] = products
	data["categories"] = categories
	data["suppliers"] = suppliers
	c.HTML(http.StatusOK, "index", data)
}

// pageData builds the per-request template data shared by every page.
func pageData(c *gin.Context, cart cartports.Service) gin.H {
	data := gin.H{"user": CurrentUser(c), "quantity": 0}
	if cart != nil {
		if qty, err := cart.Summary(c.Request.Context(), SessionID(c)); err == nil {
			data["quantity"] = qty
		}
	}
	return data
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		renderError(c, http.StatusBadRequest, fmt.Sprintf("%q is not a valid id.", raw))
		return 0, false
	}
	return id, true
}

func renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error", gin.H{
		"status":  status,
		"title":   http.StatusText(status),
		"message": message,
		"user":    CurrentUser(c),
	})
}
