package storefront

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

// CartAPI exposes the session cart as JSON under /api/v1.
type CartAPI struct {
	cart cartports.Service
}

func NewCartAPI(cart cartports.Service) *CartAPI {
	return &CartAPI{cart: cart}
}

type LineItem struct {
	ID        string `json:"id"`
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Subtotal  string `json:"subtotal"`
}

type Cart struct {
	LineItems     []LineItem `json:"lineItems"`
	TotalQuantity int        `json:"totalQuantity"`
	TotalPrice    string     `json:"totalPrice"`
	Currency      string     `json:"currency,omitempty"`
	// Redirect is set when a browser showing this cart should go elsewhere.
	Redirect string `json:"redirect,omitempty"`
}

type AddCartItemRequest struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
	Quantity  *int  `json:"quantity"`
}

type EditCartItemRequest struct {
	Quantity json.RawMessage `json:"quantity" binding:"required"`
}

// Get /api/v1/cart
// Current session cart
func (api *CartAPI) GetCart(c *gin.Context) {
	snap, err := api.cart.RenderCart(c.Request.Context(), SessionID(c))
	if errors.Is(err, cartapp.ErrEmptyCart) {
		body := toCart(snap)
		body.Redirect = "/"
		c.JSON(http.StatusOK, body)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCart(snap))
}

// Post /api/v1/cart/items
// Add a product, quantity defaults to 1
func (api *CartAPI) AddCartItem(c *gin.Context) {
	var payload AddCartItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		problems.Respond(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	quantity := 1
	if payload.Quantity != nil {
		quantity = *payload.Quantity
	}
	snap, err := api.cart.AddItem(c.Request.Context(), SessionID(c), payload.ProductID, quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCart(snap))
}

// Delete /api/v1/cart/items/:id
// Remove a line item
func (api *CartAPI) DeleteCartItem(c *gin.Context) {
	snap, err := api.cart.DeleteItem(c.Request.Context(), SessionID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCart(snap))
}

// Patch /api/v1/cart/items/:id
// Set the quantity of a line item; 0 or less removes it
func (api *CartAPI) EditCartItem(c *gin.Context) {
	var payload EditCartItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		problems.Respond(c, apierrors.ErrValidation.WithDetail(err.Error()))
		return
	}
	snap, err := api.cart.EditItem(c.Request.Context(), SessionID(c), c.Param("id"), rawQuantity(payload.Quantity))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCart(snap))
}

// rawQuantity accepts "3" and 3 alike and leaves parsing to the cart service.
func rawQuantity(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func toCart(snap *cartdomain.Snapshot) Cart {
	if snap == nil {
		return Cart{LineItems: []LineItem{}, TotalPrice: "0.00"}
	}
	items := make([]LineItem, 0, len(snap.LineItems))
	for _, item := range snap.LineItems {
		items = append(items, LineItem{
			ID:        item.ID.String(),
			ProductID: item.ProductID,
			Name:      item.ProductName,
			UnitPrice: item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal().StringFixed(2),
		})
	}
	return Cart{
		LineItems:     items,
		TotalQuantity: snap.TotalQuantity,
		TotalPrice:    snap.TotalPrice.StringFixed(2),
		Currency:      snap.Currency,
	}
}
