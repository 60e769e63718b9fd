package controllers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"webshop/config"
	"webshop/controllers"
	"webshop/middleware"
	"webshop/models"
	"webshop/sessions"
)

type stubFinder struct {
	products map[int]models.Product
}

func (s *stubFinder) ProductsByIDs(ctx context.Context, ids []int) ([]models.Product, error) {
	out := []models.Product{}
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubFinder) GetAvailableProductByID(ctx context.Context, id int) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok || !p.Available {
		return nil, errors.New("no rows in result set")
	}
	return &p, nil
}

type cartClient struct {
	t       *testing.T
	router  *gin.Engine
	cookies []*http.Cookie
}

func newCartClient(t *testing.T, finder *stubFinder) *cartClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.LoadConfig()

	ctrl := controllers.NewCartController(finder)

	router := gin.New()
	shop := router.Group("/")
	shop.Use(middleware.SessionMiddleware(sessions.NewMemoryStore()))
	{
		shop.GET("/cart", ctrl.GetCart)
		shop.POST("/cart/items/:id", ctrl.AddItem)
		shop.DELETE("/cart/items/:id", ctrl.RemoveItem)
		shop.DELETE("/cart", ctrl.ClearCart)
	}

	return &cartClient{t: t, router: router}
}

func (c *cartClient) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	if got := rec.Result().Cookies(); len(got) > 0 {
		c.cookies = got
	}
	return rec
}

type cartPayload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Items []struct {
			Product    models.Product `json:"product"`
			Quantity   int            `json:"quantity"`
			Price      string         `json:"price"`
			TotalPrice string         `json:"total_price"`
		} `json:"items"`
		TotalPrice string `json:"total_price"`
		Length     int    `json:"length"`
	} `json:"data"`
}

func (c *cartClient) getCart() cartPayload {
	c.t.Helper()
	rec := c.do(http.MethodGet, "/cart", "")
	require.Equal(c.t, http.StatusOK, rec.Code)

	var payload cartPayload
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func storefront() *stubFinder {
	return &stubFinder{products: map[int]models.Product{
		7: {ID: 7, Name: "Teapot", Slug: "teapot", Price: decimal.RequireFromString("19.99"), Available: true},
		8: {ID: 8, Name: "Mug", Slug: "mug", Price: decimal.RequireFromString("4.50"), Available: true},
	}}
}

func TestAddAndGetCart(t *testing.T) {
	client := newCartClient(t, storefront())

	rec := client.do(http.MethodPost, "/cart/items/7", `{"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := client.getCart()
	require.True(t, payload.Success)
	require.Equal(t, 2, payload.Data.Length)
	require.Len(t, payload.Data.Items, 1)
	require.Equal(t, "Teapot", payload.Data.Items[0].Product.Name)
	require.Equal(t, "39.98", payload.Data.TotalPrice)
}

func TestAddUnknownProductReturns404(t *testing.T) {
	client := newCartClient(t, storefront())

	rec := client.do(http.MethodPost, "/cart/items/99", `{"quantity":1}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddRejectsOutOfBoundsQuantity(t *testing.T) {
	client := newCartClient(t, storefront())

	for _, body := range []string{`{"quantity":0}`, `{"quantity":21}`, `{"quantity":-3}`} {
		rec := client.do(http.MethodPost, "/cart/items/7", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestReplaceOverwritesQuantity(t *testing.T) {
	client := newCartClient(t, storefront())

	client.do(http.MethodPost, "/cart/items/7", `{"quantity":2}`)
	client.do(http.MethodPost, "/cart/items/7", `{"quantity":5,"replace":true}`)

	payload := client.getCart()
	require.Equal(t, 5, payload.Data.Length)
}

func TestRemoveItem(t *testing.T) {
	client := newCartClient(t, storefront())

	client.do(http.MethodPost, "/cart/items/7", `{"quantity":2}`)
	client.do(http.MethodPost, "/cart/items/8", `{"quantity":1}`)

	rec := client.do(http.MethodDelete, "/cart/items/7", "")
	require.Equal(t, http.StatusOK, rec.Code)

	payload := client.getCart()
	require.Equal(t, 1, payload.Data.Length)
	require.Len(t, payload.Data.Items, 1)
	require.Equal(t, "Mug", payload.Data.Items[0].Product.Name)

	// Removing a product that is not in the cart is still a 200 no-op.
	rec = client.do(http.MethodDelete, "/cart/items/7", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestClearCart(t *testing.T) {
	client := newCartClient(t, storefront())

	client.do(http.MethodPost, "/cart/items/7", `{"quantity":2}`)
	rec := client.do(http.MethodDelete, "/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)

	payload := client.getCart()
	require.Equal(t, 0, payload.Data.Length)
	require.Empty(t, payload.Data.Items)
}

func TestCartPersistsAcrossRequestsViaSessionCookie(t *testing.T) {
	client := newCartClient(t, storefront())

	client.do(http.MethodPost, "/cart/items/7", `{"quantity":1}`)
	require.NotEmpty(t, client.cookies)

	payload := client.getCart()
	require.Equal(t, 1, payload.Data.Length)

	// A different visitor (no cookie) gets an empty cart.
	fresh := newCartClient(t, storefront())
	payload = fresh.getCart()
	require.Equal(t, 0, payload.Data.Length)
}
