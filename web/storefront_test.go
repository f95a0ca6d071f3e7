package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	cartcatalog "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/catalog"
	cartmemory "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/memory"
	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	usermemory "github.com/Apurer/go-gin-storefront/internal/domains/users/adapters/memory"
	userapp "github.com/Apurer/go-gin-storefront/internal/domains/users/application"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

type testShop struct {
	router   *gin.Engine
	registry *cartmemory.Registry
}

func newTestShop(t *testing.T) *testShop {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := catalogapp.NewService(
		catalogmemory.NewProductRepository(),
		catalogmemory.NewCategoryRepository(),
		catalogmemory.NewSupplierRepository(),
	)
	require.NoError(t, catalog.Seed(context.Background()))
	registry := cartmemory.NewRegistry()
	cart := cartapp.NewService(registry, cartcatalog.NewLookup(catalog))
	users := userapp.NewService(usermemory.NewRepository(), usermemory.NewSessionStore(), userapp.WithHashCost(bcrypt.MinCost))

	router := NewRouter(Dependencies{Cart: cart, Catalog: catalog, Users: users, Carts: registry}, Settings{})
	return &testShop{router: router, registry: registry}
}

// browser keeps cookies between requests like a real client would.
type browser struct {
	shop    *testShop
	cookies map[string]*http.Cookie
}

func (s *testShop) newBrowser() *browser {
	return &browser{shop: s, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(t *testing.T, method, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.shop.router.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return rec
}

func (b *browser) get(t *testing.T, path string) *httptest.ResponseRecorder {
	return b.do(t, http.MethodGet, path, "", "")
}

func (b *browser) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	return b.do(t, http.MethodPost, path, "application/x-www-form-urlencoded", form.Encode())
}

func (b *browser) sendJSON(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	return b.do(t, method, path, "application/json", body)
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) Cart {
	t.Helper()
	var body Cart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestEmptyCartRedirectsHome(t *testing.T) {
	shop := newTestShop(t)
	b := shop.newBrowser()

	rec := b.get(t, "/cart")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Contains(t, b.cookies, "storefront_session")
}

func TestAddThenRenderCart(t *testing.T) {
	shop := newTestShop(t)
	b := shop.newBrowser()

	rec := b.postForm(t, "/cart/add/1", url.Values{"quantity": {"2"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	rec = b.postForm(t, "/cart/add/3", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = b.get(t, "/cart")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Amazon Fire")
	assert.Contains(t, rec.Body.String(), "Amazon Fire HD 8")
	assert.Contains(t, rec.Body.String(), "Total: 188.80 USD")
	assert.Contains(t, rec.Body.String(), "Cart (3)")
}

func TestEditItem_InvalidQuantityRerendersCartWithBadRequest(t *testing.T) {
	shop := newTestShop(t)
	b := shop.newBrowser()
	rec := b.sendJSON(t, http.MethodPost, "/api/v1/cart/items", `{"productId":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	lineID := decodeCart(t, rec).LineItems[0].ID

	rec = b.postForm(t, "/cart/edit/"+lineID, url.Values{"quantity": {"lots"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Amazon Fire")
	assert.Contains(t, rec.Body.String(), "Quantity must be a whole number up to 999.")
}

func TestEditItem_MessageNamesTheInvalidField(t *testing.T) {
	shop := newTestShop(t)
	b := shop.newBrowser()
	rec := b.sendJSON(t, http.MethodPost, "/api/v1/cart/items", `{"productId":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	lineID := decodeCart(t, rec).LineItems[0].ID

	rec = b.postForm(t, "/cart/edit/not-a-uuid", url.Values{"quantity": {"2"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "That line item id is not valid.")
	assert.NotContains(t, rec.Body.String(), "Quantity must be")

	rec = b.postForm(t, "/cart/edit/"+lineID, url.Values{"quantity": {"1000"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Quantity must be a whole number up to 999.")
}

func TestQuantityAboveMaxLeavesBadgeIntact(t *testing.T) {
	shop := newTestShop(t)
	b := shop.newBrowser()

	rec := b.postForm(t, "/cart/add/1", url.Values{"quantity": {"9223372036854775807"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	rec = b.sendJSON(t, http.MethodPost, "/api/v1/cart/items", `{"productId":1,"quantity":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	lineID := decodeCart(t, rec).LineItems[0].ID

	rec = b.sendJSON(t, http.MethodPatch, "/api/v1/cart/items/"+lineID, `{"quantity":9223372036854775807}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = b.get(t, "/api/v1/cart")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeCart(t, rec).TotalQuantity)
}

func TestEditItem_ZeroQuantityEmptiesCartAndRedirects(t *testing.T) {
	shop := newTestShop(t)
	b := shop.newBrowser()
	rec := b.sendJSON(t, http.MethodPost, "/api/v1/cart/items", `{"productId":2,"quantity":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	lineID := decodeCart(t, rec).LineItems[0].ID

	rec = b.postForm(t, "/cart/edit/"+lineID, url.Values{"quantity": {"0"}})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestDeleteItem_HTML(t *testing.T) {
	shop := newTestShop(t)
	b := shop.newBrowser()
	b.sendJSON(t, http.MethodPost, "/api/v1/cart/items", `{"productId":1}`)
	rec := b.sendJSON(t, http.MethodPost, "/api/v1/cart/items", `{"productId":2}`)
	lineID := decodeCart(t, rec).LineItems[0].ID

	rec = b.postForm(t, "/cart/delete/"+lineID, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "line-"+lineID)
	assert.Contains(t, rec.Body.String(), "Lenovo IdeaPad Miix 700")

	rec = b.postForm(t, "/cart/delete/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartAPI_Flow(t *testing.T) {
	shop := newTestShop(t)
	b := shop.newBrowser()

	rec := b.get(t, "/api/v1/cart")
	require.Equal(t, http.StatusOK, rec.Code)
	empty := decodeCart(t, rec)
	assert.Equal(t, "/", empty.Redirect)
	assert.Empty(t, empty.LineItems)
	assert.Equal(t, "0.00", empty.TotalPrice)

	rec = b.sendJSON(t, http.MethodPost, "/api/v1/cart/items", `{"productId":2,"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decodeCart(t, rec)
	require.Len(t, cart.LineItems, 1)
	assert.Equal(t, "958.00", cart.TotalPrice)
	assert.Equal(t, "USD", cart.Currency)

	rec = b.sendJSON(t, http.MethodPatch, "/api/v1/cart/items/"+cart.LineItems[0].ID, `{"quantity":"3"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decodeCart(t, rec).TotalQuantity)

	rec = b.sendJSON(t, http.MethodPatch, "/api/v1/cart/items/"+cart.LineItems[0].ID, `{"quantity":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "479.00", decodeCart(t, rec).TotalPrice)

	rec = b.do(t, http.MethodDelete, "/api/v1/cart/items/"+cart.LineItems[0].ID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).LineItems)
}

func TestCartAPI_Errors(t *testing.T) {
	shop := newTestShop(t)
	b := shop.newBrowser()

	rec := b.sendJSON(t, http.MethodPost, "/api/v1/cart/items", `{"productId":999}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))

	rec = b.sendJSON(t, http.MethodPost, "/api/v1/cart/items", `{"quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = b.do(t, http.MethodDelete, "/api/v1/cart/items/42", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var problem apierrors.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, apierrors.TypeBadRequest, problem.Type)
	assert.Equal(t, "/api/v1/cart/items/42", problem.Instance)

	rec = b.sendJSON(t, http.MethodPost, "/api/v1/cart/items", `{"productId":1}`)
	lineID := decodeCart(t, rec).LineItems[0].ID
	rec = b.sendJSON(t, http.MethodPatch, "/api/v1/cart/items/"+lineID, `{"quantity":"1.5"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionsAreIsolated(t *testing.T) {
	shop := newTestShop(t)
	alice := shop.newBrowser()
	bob := shop.newBrowser()

	alice.sendJSON(t, http.MethodPost, "/api/v1/cart/items", `{"productId":1,"quantity":4}`)
	rec := bob.get(t, "/api/v1/cart")

	assert.Empty(t, decodeCart(t, rec).LineItems)
	assert.NotEqual(t, alice.cookies["storefront_session"].Value, bob.cookies["storefront_session"].Value)
}

func TestMalformedSessionCookieIsReplaced(t *testing.T) {
	shop := newTestShop(t)
	b := shop.newBrowser()
	b.cookies["storefront_session"] = &http.Cookie{Name: "storefront_session", Value: "../etc/passwd"}

	b.get(t, "/")

	assert.NotEqual(t, "../etc/passwd", b.cookies["storefront_session"].Value)
}

func TestCatalogPages(t *testing.T) {
	shop := newTestShop(t)
	b := shop.newBrowser()

	rec := b.get(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "All products")
	assert.Contains(t, rec.Body.String(), "iPhone SE")

	rec = b.get(t, "/category/2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "MacBook Air")
	assert.NotContains(t, rec.Body.String(), "iPhone SE")

	rec = b.get(t, "/supplier/3")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "iPhone SE")

	assert.Equal(t, http.StatusBadRequest, b.get(t, "/category/tablets").Code)
	assert.Equal(t, http.StatusNotFound, b.get(t, "/supplier/77").Code)
	assert.Equal(t, http.StatusNotFound, b.postForm(t, "/cart/add/77", nil).Code)
}

func TestRegisterLoginLogout(t *testing.T) {
	shop := newTestShop(t)
	b := shop.newBrowser()
	form := url.Values{"name": {"Ada"}, "mail": {"ada@example.com"}, "psw": {"secret"}}

	rec := b.postForm(t, "/register", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = b.postForm(t, "/register", form)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = b.postForm(t, "/login", url.Values{"mail": {"ada@example.com"}, "psw": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password.")

	rec = b.postForm(t, "/login", url.Values{"mail": {"ada@example.com"}, "psw": {"secret"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, b.cookies, "storefront_auth")

	b.postForm(t, "/cart/add/1", nil)
	rec = b.get(t, "/")
	assert.Contains(t, rec.Body.String(), "Hello, Ada")
	sessionID := b.cookies["storefront_session"].Value
	require.Equal(t, 1, shop.registry.Len())

	rec = b.postForm(t, "/logout", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.NotContains(t, b.cookies, "storefront_auth")
	assert.NotContains(t, b.cookies, "storefront_session")
	assert.Zero(t, shop.registry.Len())

	rec = b.get(t, "/")
	assert.NotContains(t, rec.Body.String(), "Hello, Ada")
	assert.NotEqual(t, sessionID, b.cookies["storefront_session"].Value)
}

func TestRegister_InvalidForm(t *testing.T) {
	shop := newTestShop(t)
	b := shop.newBrowser()

	rec := b.postForm(t, "/register", url.Values{"name": {"Ada"}, "mail": {"nope"}, "psw": {"abc"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please provide a name")
}

func TestHealthz(t *testing.T) {
	shop := newTestShop(t)
	rec := shop.newBrowser().get(t, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
