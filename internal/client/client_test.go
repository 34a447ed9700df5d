package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/cart"
	"storefront/internal/client"
	"storefront/internal/models"
)

func TestClient_LoginSendsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@example.com", body["email"])
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"_id":"u1","name":"A","email":"a@example.com","isAdmin":false,"token":"tok"}`))
	}))
	defer srv.Close()

	s, err := client.New(srv.URL, "").Login("a@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "tok", s.Token)
	assert.Equal(t, "u1", s.ID)
}

func TestClient_ErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid email or password"}`))
	}))
	defer srv.Close()

	_, err := client.New(srv.URL, "").Login("a@example.com", "nope")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
}

func TestClient_ProductsReadsPaginationHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "denim", r.URL.Query().Get("keyword"))
		assert.Equal(t, "true", r.URL.Query().Get("featured"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Empty(t, r.URL.Query().Get("category"))
		w.Header().Set("X-Total-Count", "13")
		w.Header().Set("X-Page", "2")
		w.Header().Set("X-Total-Pages", "2")
		w.Write([]byte(`[{"_id":"p1","title":"Denim Jacket","price":2499}]`))
	}))
	defer srv.Close()

	list, err := client.New(srv.URL, "").Products(client.ProductQuery{Keyword: "denim", Featured: true, Page: 2})
	require.NoError(t, err)
	require.Len(t, list.Products, 1)
	assert.Equal(t, "Denim Jacket", list.Products[0].Title)
	assert.Equal(t, int64(13), list.Total)
	assert.Equal(t, 2, list.Page)
	assert.Equal(t, 2, list.Pages)
}

func TestClient_PlaceOrderSendsCartTotals(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"_id":"o1","totalPrice":2360}`))
	}))
	defer srv.Close()

	c := cart.New(cart.Item{ProductID: "p1", Title: "Scarf", Price: 1000, Quantity: 2, Images: []string{"a.jpg"}})
	order, err := client.New(srv.URL, "tok").PlaceOrder(c, models.ShippingAddress{City: "Pune"}, "PayPal")
	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, 2000.0, got["itemsPrice"])
	assert.Equal(t, 360.0, got["taxPrice"])
	assert.Equal(t, 0.0, got["shippingPrice"])
	assert.Equal(t, 2360.0, got["totalPrice"])
	items := got["orderItems"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "a.jpg", items[0].(map[string]any)["image"])
}

func TestState_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	st, err := client.LoadState(path)
	require.NoError(t, err)
	assert.Empty(t, st.Token())
	assert.Equal(t, 0, st.Cart().Len())

	c := cart.New()
	c.AddItem(cart.Item{ProductID: "p1", Title: "Belt", Price: 499, SelectedSize: "M"})
	c.AddItem(cart.Item{ProductID: "p1", Title: "Belt", Price: 499, SelectedSize: "M", Quantity: 2})
	st.SetToken("tok")
	require.NoError(t, st.SetCart(c))
	require.NoError(t, st.Save())

	reloaded, err := client.LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, "tok", reloaded.Token())
	restored := reloaded.Cart()
	require.Equal(t, 1, restored.Len())
	assert.Equal(t, 3, restored.Items()[0].Quantity)
	assert.Equal(t, c.Summary(), restored.Summary())

	reloaded.SetToken("")
	require.NoError(t, reloaded.Save())
	again, err := client.LoadState(path)
	require.NoError(t, err)
	assert.Empty(t, again.Token())
	assert.Equal(t, 1, again.Cart().Len())
}
