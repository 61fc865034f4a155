package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	authapp "artisan/internal/service/auth/application"
	authadapter "artisan/internal/service/auth/infrastructure/adapter"
	authifaces "artisan/internal/service/auth/interfaces"
	cartapp "artisan/internal/service/cart/application"
	cartdomain "artisan/internal/service/cart/domain"
	cartadapter "artisan/internal/service/cart/infrastructure/adapter"
	"artisan/internal/service/checkout/application"
	"artisan/internal/service/checkout/infrastructure/adapter"
	"artisan/internal/service/checkout/port"
)

type fixedGateway struct {
	orderID string
	fail    bool
}

func (g fixedGateway) SubmitOrder(context.Context, port.OrderDraft) (string, error) {
	if g.fail {
		return "", errors.New("simulated outage")
	}
	return g.orderID, nil
}

func validCheckoutBody() string {
	return `{
		"firstName": "Jane", "lastName": "Doe",
		"email": "jane@example.com", "phone": "5551234567",
		"address": "123 Main St", "city": "Portland", "state": "OR",
		"zipCode": "97201", "country": "US",
		"paymentMethod": "paypal"
	}`
}

type checkoutFixture struct {
	mux   *http.ServeMux
	cart  *cartapp.Store
	auth  *authapp.Service
	token string
}

func newCheckoutFixture(t *testing.T, gateway port.Gateway, fillCart bool) *checkoutFixture {
	t.Helper()
	ctx := context.Background()

	cart := cartapp.NewStore(ctx, cartadapter.NewMemoryPersistence())
	if fillCart {
		cart.AddItem(ctx, cartdomain.LineItem{ID: "p-1", Name: "Handcrafted Ceramic Mug", Price: 24.99, Quantity: 3})
	}

	authSvc := authapp.NewService(authadapter.NewMemorySessionStore())
	token, _, err := authSvc.Login(ctx, "jane@example.com", "password123")
	require.NoError(t, err)

	svc := application.NewService(cart, gateway, adapter.NewMemoryOrderRepository(), nil, otel.Tracer("test"))
	mux := http.NewServeMux()
	NewCheckoutHandler(svc, authifaces.NewMiddleware(authSvc)).RegisterRoutes(mux)

	return &checkoutFixture{mux: mux, cart: cart, auth: authSvc, token: token}
}

func (f *checkoutFixture) post(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func TestCheckoutSuccessReturnsSummary(t *testing.T) {
	f := newCheckoutFixture(t, fixedGateway{orderID: "ORD-A1B2C3D4E"}, true)

	rec := f.post(t, validCheckoutBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var summary orderSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "ORD-A1B2C3D4E", summary.OrderID)
	assert.Equal(t, "jane@example.com", summary.Email)
	assert.Equal(t, 3, summary.ItemCount)
	// 摘要金额做了展示取整
	assert.InDelta(t, 74.97, summary.Total, 1e-9)
	assert.InDelta(t, 5.25, summary.Tax, 1e-9)
	assert.InDelta(t, 80.22, summary.GrandTotal, 1e-9)

	assert.True(t, f.cart.Snapshot().IsEmpty())
}

func TestCheckoutEmptyCartRedirectsToCart(t *testing.T) {
	f := newCheckoutFixture(t, fixedGateway{orderID: "ORD-UNUSED"}, false)

	rec := f.post(t, validCheckoutBody())
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "/cart", rec.Header().Get("Location"))
}

func TestCheckoutValidationErrorsIncludeFocusField(t *testing.T) {
	f := newCheckoutFixture(t, fixedGateway{orderID: "ORD-UNUSED"}, true)

	body := strings.Replace(validCheckoutBody(), `"jane@example.com"`, `"not-an-email"`, 1)
	rec := f.post(t, body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Errors     map[string]string `json:"errors"`
		FocusField string            `json:"focusField"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "email", resp.FocusField)
	assert.Equal(t, "Please enter a valid email address", resp.Errors["email"])

	// 失败不清空购物车
	assert.Equal(t, 3, f.cart.Snapshot().ItemCount)
}

func TestCheckoutGatewayFailure(t *testing.T) {
	f := newCheckoutFixture(t, fixedGateway{fail: true}, true)

	rec := f.post(t, validCheckoutBody())
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "There was an error processing your order. Please try again.", resp["error"])
	assert.Equal(t, 3, f.cart.Snapshot().ItemCount)
}

func TestOrdersRequireAuthentication(t *testing.T) {
	f := newCheckoutFixture(t, fixedGateway{orderID: "ORD-UNUSED"}, true)

	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrdersListAndOwnership(t *testing.T) {
	f := newCheckoutFixture(t, fixedGateway{orderID: "ORD-A1B2C3D4E"}, true)
	require.Equal(t, http.StatusCreated, f.post(t, validCheckoutBody()).Code)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+f.token)
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var summaries []orderSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "ORD-A1B2C3D4E", summaries[0].OrderID)

	// 单笔查询，本人可见
	req = httptest.NewRequest(http.MethodGet, "/orders/get?id=ORD-A1B2C3D4E", nil)
	req.Header.Set("Authorization", "Bearer "+f.token)
	rec = httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// 管理员不是订单所有者，但例外放行
	adminToken, _, err := f.auth.Login(context.Background(), "admin@artisan.dev", "admin123")
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/orders/get?id=ORD-A1B2C3D4E", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
