package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopeasy/storefront/internal/storefront"
	errx "github.com/shopeasy/storefront/internal/core/error"
	"github.com/shopeasy/storefront/internal/storefront/cart"
	"github.com/shopeasy/storefront/internal/storefront/catalog"
	"github.com/shopeasy/storefront/internal/storefront/model"
	"github.com/shopeasy/storefront/internal/storefront/storetest"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

func newApp(t *testing.T) *fiber.App {
	t.Helper()
	_, rdb := storetest.Server(t)
	factory := storefront.NewFactory(rdb, catalog.Default(), storefront.Config{
		KeyPrefix:   storetest.Prefix,
		TaxRate:     cart.DefaultTaxRate,
		ResultsPath: "/search.html",
	})
	s, err := NewServer(factory, model.HTTPConfig{ClientHeader: "X-Client-ID", DefaultClient: "anonymous"})
	require.NoError(t, err)
	return s.App()
}

func do(t *testing.T, app *fiber.App, method, path, client, body string) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if client != "" {
		req.Header.Set("X-Client-ID", client)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type cartView struct {
	Items   []model.Entry     `json:"items"`
	Count   int               `json:"count"`
	Summary model.CartSummary `json:"summary"`
}

func TestHealth(t *testing.T) {
	status, env := do(t, newApp(t), http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", env.Message)
}

func TestProducts_PerPage(t *testing.T) {
	app := newApp(t)

	_, env := do(t, app, http.MethodGet, "/products?page=clothing", "", "")
	assert.Len(t, decode[[]model.Product](t, env.Result), 4)

	_, env = do(t, app, http.MethodGet, "/products", "", "")
	assert.Len(t, decode[[]model.Product](t, env.Result), 24)
}

func TestSearch(t *testing.T) {
	app := newApp(t)

	status, env := do(t, app, http.MethodGet, "/search?q=%20book%20&sort=price-asc", "", "")
	require.Equal(t, http.StatusOK, status)
	res := decode[storefront.Results](t, env.Result)
	assert.Equal(t, "book", res.Term)
	assert.Equal(t, "/search.html?q=book", res.URL)
	require.NotEmpty(t, res.Products)
	for i := 1; i < len(res.Products); i++ {
		assert.LessOrEqual(t, res.Products[i-1].Price, res.Products[i].Price)
	}

	status, _ = do(t, app, http.MethodGet, "/search?q=a&max_price=cheap", "", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSuggest(t *testing.T) {
	app := newApp(t)

	_, env := do(t, app, http.MethodGet, "/suggest?q=e", "", "")
	names := decode[[]string](t, env.Result)
	assert.NotEmpty(t, names)
	assert.LessOrEqual(t, len(names), 8)

	_, env = do(t, app, http.MethodGet, "/suggest?q=", "", "")
	assert.Empty(t, decode[[]string](t, env.Result))
}

func TestCart_Flow(t *testing.T) {
	app := newApp(t)
	const client = "browser-1"

	status, env := do(t, app, http.MethodPost, "/cart/items", client, `{"product_id": 13, "page": "search"}`)
	require.Equal(t, http.StatusOK, status)
	added := decode[changeResult](t, env.Result)
	assert.True(t, added.Changed)
	assert.Equal(t, 1, added.Count)
	assert.Equal(t, "Gaming Laptop added to cart!", env.Message)

	_, env = do(t, app, http.MethodPost, "/cart/items", client, `{"product_id": 9999}`)
	assert.False(t, decode[changeResult](t, env.Result).Changed)

	_, env = do(t, app, http.MethodGet, "/cart", client, "")
	view := decode[cartView](t, env.Result)
	require.Len(t, view.Items, 1)
	assert.InDelta(t, 1299.99*1.08, view.Summary.Total, 1e-9)

	_, env = do(t, app, http.MethodDelete, "/cart/items/5", client, "")
	assert.False(t, decode[changeResult](t, env.Result).Changed)

	status, _ = do(t, app, http.MethodDelete, "/cart/items/first", client, "")
	assert.Equal(t, http.StatusBadRequest, status)

	_, env = do(t, app, http.MethodDelete, "/cart/entries/"+view.Items[0].EntryID, client, "")
	removed := decode[changeResult](t, env.Result)
	assert.True(t, removed.Changed)
	assert.Zero(t, removed.Count)
}

func TestCart_CheckoutEmpty(t *testing.T) {
	status, env := do(t, newApp(t), http.MethodPost, "/cart/checkout", "c", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "your cart is empty", env.Message)
}

func TestClientsAreIsolated(t *testing.T) {
	app := newApp(t)
	do(t, app, http.MethodPost, "/cart/items", "a", `{"product_id": 1}`)

	_, env := do(t, app, http.MethodGet, "/cart/count", "b", "")
	assert.JSONEq(t, `{"count":0}`, string(env.Result))
	_, env = do(t, app, http.MethodGet, "/cart/count", "a", "")
	assert.JSONEq(t, `{"count":1}`, string(env.Result))
}

func TestWishlist_MoveToCart(t *testing.T) {
	app := newApp(t)
	const client = "w"

	_, env := do(t, app, http.MethodPost, "/wishlist/items", client, `{"product_id": 20, "page": "clothing"}`)
	require.True(t, decode[changeResult](t, env.Result).Changed)

	_, env = do(t, app, http.MethodPost, "/wishlist/items/0/move", client, "")
	moved := decode[changeResult](t, env.Result)
	assert.True(t, moved.Changed)
	assert.Equal(t, 1, moved.Count)

	_, env = do(t, app, http.MethodGet, "/wishlist", client, "")
	assert.JSONEq(t, `{"items":[],"count":0}`, string(env.Result))
}

func TestAccount_RegisterLoginLogout(t *testing.T) {
	app := newApp(t)
	const client = "acc"
	body := `{"name":"Ann","email":"ann@example.com","password":"secret1","confirmPassword":"secret1","termsAccepted":true}`

	status, env := do(t, app, http.MethodPost, "/account/register", client, body)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Account created successfully!", env.Message)

	status, env = do(t, app, http.MethodPost, "/account/register", client, body)
	assert.Equal(t, http.StatusConflict, status)
	assert.JSONEq(t, `{"kind":"duplicate_email"}`, string(env.Result))

	_, env = do(t, app, http.MethodGet, "/account", client, "")
	assert.JSONEq(t, `true`, string(decode[map[string]json.RawMessage](t, env.Result)["loggedIn"]))
	assert.Contains(t, string(env.Result), `"displayName":"ann"`)

	_, _ = do(t, app, http.MethodPost, "/account/logout", client, "")
	_, env = do(t, app, http.MethodGet, "/account", client, "")
	assert.JSONEq(t, `{"loggedIn":false}`, string(env.Result))

	status, _ = do(t, app, http.MethodPost, "/account/login", client, `{"email":"ann@example.com","password":"wrong!"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodPost, "/account/login", client, `{"email":"ann@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusOK, status)
}

func TestAccount_RegisterValidation(t *testing.T) {
	body := `{"name":"Ann","email":"ann@example","password":"secret1","confirmPassword":"secret1","termsAccepted":true}`
	status, env := do(t, newApp(t), http.MethodPost, "/account/register", "v", body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"kind":"validation"}`, string(env.Result))
}

func TestTools(t *testing.T) {
	app := newApp(t)

	_, env := do(t, app, http.MethodGet, "/tools", "", "")
	assert.Equal(t, []string{"get_product_details", "search_product", "suggest_products"}, decode[[]string](t, env.Result))

	req := httptest.NewRequest(http.MethodPost, "/tools/get_product_details", strings.NewReader(`{"product_id": 9}`))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var p model.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	assert.Equal(t, "Novel Book", p.Name)

	status, env := do(t, app, http.MethodPost, "/tools/unknown", "", "{}")
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"kind":"not_found"}`, string(env.Result))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusTeapot, statusOf(fmt.Errorf("wrapped: %w", fiber.NewError(http.StatusTeapot, "tea"))))
	assert.Equal(t, http.StatusConflict, statusOf(errx.DuplicateEmail("a@b.co")))
	assert.Equal(t, http.StatusInternalServerError, statusOf(fmt.Errorf("boom")))
}

func TestErrorHandler_WrappedFiberError(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fmt.Errorf("handler: %w", fiber.NewError(http.StatusTeapot, "short and stout"))
	})

	status, env := do(t, app, http.MethodGet, "/teapot", "", "")
	assert.Equal(t, http.StatusTeapot, status)
	assert.Equal(t, "short and stout", env.Message)

	status, _ = do(t, app, http.MethodGet, "/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, status)
}
