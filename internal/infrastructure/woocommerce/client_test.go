package woocommerce

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdocs/backend/internal/domain/shared"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&Config{
		BaseURL:        server.URL,
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
	}, WithPageDelay(0))
	require.NoError(t, err)
	return client
}

func TestListOrders(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wp-json/wc/v3/orders", r.URL.Path)
		assert.Equal(t, "ck_test", r.URL.Query().Get("consumer_key"))
		assert.Equal(t, "cs_test", r.URL.Query().Get("consumer_secret"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 7731, "total": "125000"}, {"id": 7730, "total": "42000"}]`))
	})

	orders, err := client.ListOrders(context.Background(), 2, 20)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, int64(7731), orders[0].ID)
	assert.Equal(t, "42000", orders[1].Total)
}

func TestListOrdersHTTPError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"woocommerce_rest_cannot_view"}`))
	})

	_, err := client.ListOrders(context.Background(), 1, 20)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrSourceFetch))
}

func TestListOrdersBadJSON(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := client.ListOrders(context.Background(), 1, 20)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrSourceFetch))
}

func TestFetchAllOrders(t *testing.T) {
	pages := map[string]string{
		"1": `[{"id": 3}, {"id": 2}]`,
		"2": `[{"id": 1}]`,
		"3": `[]`,
	}
	var requested []string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		requested = append(requested, page)
		body, ok := pages[page]
		require.True(t, ok, "unexpected page %s", page)
		_, _ = w.Write([]byte(body))
	})

	orders, err := client.FetchAllOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, []string{"1", "2", "3"}, requested)
	assert.Equal(t, int64(3), orders[0].ID)
	assert.Equal(t, int64(1), orders[2].ID)
}

func TestFetchAllOrdersPropagatesError(t *testing.T) {
	calls := 0
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			_, _ = fmt.Fprint(w, `[{"id": 9}]`)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchAllOrders(context.Background())
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	assert.Error(t, (&Config{}).Validate())
	assert.Error(t, (&Config{BaseURL: "https://shop.example"}).Validate())
	assert.Error(t, (&Config{BaseURL: "https://shop.example", ConsumerKey: "ck"}).Validate())
	assert.NoError(t, (&Config{BaseURL: "https://shop.example", ConsumerKey: "ck", ConsumerSecret: "cs"}).Validate())
}
