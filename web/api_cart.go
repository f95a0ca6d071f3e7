package storefront

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

// CartPages renders the HTML cart and handles its form posts.
type CartPages struct {
	cart   cartports.Service
	logger *slog.Logger
}

func NewCartPages(cart cartports.Service, logger *slog.Logger) *CartPages {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CartPages{cart: cart, logger: logger}
}

// Post /cart/add/:productId
// Add a product to the cart, form field quantity defaults to 1
func (p *CartPages) AddItem(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	quantity := 1
	if raw := strings.TrimSpace(c.PostForm("quantity")); raw != "" {
		q, err := strconv.Atoi(raw)
		if err != nil {
			renderError(c, http.StatusBadRequest, "Quantity must be a whole number.")
			return
		}
		quantity = q
	}
	if _, err := p.cart.AddItem(c.Request.Context(), SessionID(c), productID, quantity); err != nil {
		renderError(c, problemStatus(err), "That product is not available.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Get /cart
// Show the cart, or go back to the shop when it is empty
func (p *CartPages) RenderCart(c *gin.Context) {
	p.renderCart(c, http.StatusOK, "")
}

// Post /cart/delete/:id
// Remove a line item
func (p *CartPages) DeleteItem(c *gin.Context) {
	_, err := p.cart.DeleteItem(c.Request.Context(), SessionID(c), c.Param("id"))
	if errors.Is(err, cartapp.ErrInvalidArgument) {
		p.renderCart(c, http.StatusBadRequest, "That line item id is not valid.")
		return
	}
	if err != nil {
		renderError(c, problemStatus(err), "Could not update the cart.")
		return
	}
	p.renderCart(c, http.StatusOK, "")
}

// Post /cart/edit/:id
// Change the quantity of a line item, zero or less removes it
func (p *CartPages) EditItem(c *gin.Context) {
	_, err := p.cart.EditItem(c.Request.Context(), SessionID(c), c.Param("id"), c.PostForm("quantity"))
	switch {
	case errors.Is(err, cartapp.ErrInvalidLineItemID):
		p.renderCart(c, http.StatusBadRequest, "That line item id is not valid.")
		return
	case errors.Is(err, cartapp.ErrInvalidQuantity):
		p.renderCart(c, http.StatusBadRequest, fmt.Sprintf("Quantity must be a whole number up to %d.", cartdomain.MaxQuantity))
		return
	case errors.Is(err, cartapp.ErrInvalidArgument):
		p.renderCart(c, http.StatusBadRequest, "Could not update the cart.")
		return
	}
	if err != nil {
		renderError(c, problemStatus(err), "Could not update the cart.")
		return
	}
	p.renderCart(c, http.StatusOK, "")
}

func (p *CartPages) renderCart(c *gin.Context, status int, flash string) {
	snap, err := p.cart.RenderCart(c.Request.Context(), SessionID(c))
	if errors.Is(err, cartapp.ErrEmptyCart) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	if err != nil {
		p.logger.ErrorContext(c.Request.Context(), "failed to render cart", slog.String("error", err.Error()))
		renderError(c, problemStatus(err), "Could not load the cart.")
		return
	}
	c.HTML(status, "cart", gin.H{
		"user":      CurrentUser(c),
		"quantity":  snap.TotalQuantity,
		"lineItems": snap.LineItems,
		"sum":       snap.TotalPrice,
		"currency":  snap.Currency,
		"flash":     flash,
	})
}
