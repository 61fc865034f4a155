package interfaces

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artisan/internal/service/cart/application"
	"artisan/internal/service/cart/infrastructure/adapter"
)

func newCartMux(t *testing.T) (*http.ServeMux, *application.Store) {
	t.Helper()
	store := application.NewStore(context.Background(), adapter.NewMemoryPersistence())
	mux := http.NewServeMux()
	NewCartHandler(store, nil).RegisterRoutes(mux)
	return mux, store
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, body string) (*httptest.ResponseRecorder, snapshotResponse) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var snapshot snapshotResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	}
	return rec, snapshot
}

func TestGetCartStartsEmpty(t *testing.T) {
	mux, _ := newCartMux(t)

	rec, snapshot := doJSON(t, mux, http.MethodGet, "/cart", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Empty(t, snapshot.Items)
	assert.Zero(t, snapshot.GrandTotal)
}

func TestAddItemEndpointReturnsRoundedTotals(t *testing.T) {
	mux, _ := newCartMux(t)

	rec, snapshot := doJSON(t, mux, http.MethodPost, "/cart/add",
		`{"id":"p-1","name":"Handcrafted Ceramic Mug","price":24.99,"quantity":3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, 3, snapshot.ItemCount)
	assert.InDelta(t, 74.97, snapshot.Total, 1e-9)
	assert.InDelta(t, 0, snapshot.Shipping, 1e-9)
	// 接口层做展示取整：5.2479 → 5.25，80.2179 → 80.22
	assert.InDelta(t, 5.25, snapshot.Tax, 1e-9)
	assert.InDelta(t, 80.22, snapshot.GrandTotal, 1e-9)
}

func TestAddItemInvalidPayloadLeavesCartUnchanged(t *testing.T) {
	mux, _ := newCartMux(t)

	rec, snapshot := doJSON(t, mux, http.MethodPost, "/cart/add", `{"name":"no id","price":9.99}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, snapshot.Items)
}

func TestAddItemMalformedBody(t *testing.T) {
	mux, _ := newCartMux(t)

	rec, _ := doJSON(t, mux, http.MethodPost, "/cart/add", `{"id":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMutationEndpointsRejectGet(t *testing.T) {
	mux, _ := newCartMux(t)

	for _, path := range []string{"/cart/add", "/cart/update_quantity", "/cart/remove", "/cart/clear"} {
		rec, _ := doJSON(t, mux, http.MethodGet, path, "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
	}
}

func TestUpdateQuantityEndpoint(t *testing.T) {
	mux, _ := newCartMux(t)
	doJSON(t, mux, http.MethodPost, "/cart/add", `{"id":"p-1","name":"Mug","price":24.99,"quantity":1}`)

	_, snapshot := doJSON(t, mux, http.MethodPost, "/cart/update_quantity", `{"id":"p-1","quantity":4}`)
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, 4, snapshot.Items[0].Quantity)

	// 数量归零等价于移除
	_, snapshot = doJSON(t, mux, http.MethodPost, "/cart/update_quantity", `{"id":"p-1","quantity":0}`)
	assert.Empty(t, snapshot.Items)
}

func TestRemoveAndClearEndpoints(t *testing.T) {
	mux, _ := newCartMux(t)
	doJSON(t, mux, http.MethodPost, "/cart/add", `{"id":"p-1","name":"Mug","price":24.99,"quantity":1}`)
	doJSON(t, mux, http.MethodPost, "/cart/add", `{"id":"p-2","name":"Candle","price":19.99,"quantity":2}`)

	_, snapshot := doJSON(t, mux, http.MethodPost, "/cart/remove", `{"id":"p-1"}`)
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, "p-2", snapshot.Items[0].ID)

	_, snapshot = doJSON(t, mux, http.MethodPost, "/cart/clear", "")
	assert.Empty(t, snapshot.Items)
	assert.Zero(t, snapshot.GrandTotal)
}

func TestHealthz(t *testing.T) {
	mux, _ := newCartMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
