package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	authifaces "artisan/internal/service/auth/interfaces"
	cartdomain "artisan/internal/service/cart/domain"
	"artisan/internal/service/checkout/application"
	"artisan/internal/service/checkout/domain"
	"artisan/internal/service/checkout/port"
)

const serviceName = "storefront"

// CheckoutHandler 封装结账和历史订单的 HTTP 处理器。
type CheckoutHandler struct {
	service *application.Service
	auth    *authifaces.Middleware
}

func NewCheckoutHandler(service *application.Service, auth *authifaces.Middleware) *CheckoutHandler {
	return &CheckoutHandler{service: service, auth: auth}
}

// RegisterRoutes 在 ServeMux 上注册所有路由。
func (h *CheckoutHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/checkout", h.placeOrder)
	mux.HandleFunc("/orders", h.auth.RequireAuth(h.listOrders))
	mux.HandleFunc("/orders/get", h.auth.RequireAuth(h.getOrder))
}

// orderSummary 是结账成功页展示的摘要，金额在这里做展示取整。
type orderSummary struct {
	OrderID    string             `json:"orderId"`
	Items      []domain.OrderLine `json:"items"`
	ItemCount  int                `json:"itemCount"`
	Total      float64            `json:"total"`
	Shipping   float64            `json:"shipping"`
	Tax        float64            `json:"tax"`
	GrandTotal float64            `json:"grandTotal"`
	Email      string             `json:"email"`
}

func toSummary(order *domain.Order) orderSummary {
	return orderSummary{
		OrderID:    order.ID,
		Items:      order.Lines,
		ItemCount:  order.ItemCount,
		Total:      cartdomain.Round2(order.Total),
		Shipping:   cartdomain.Round2(order.Shipping),
		Tax:        cartdomain.Round2(order.Tax),
		GrandTotal: cartdomain.Round2(order.GrandTotal),
		Email:      order.Customer.Email,
	}
}

func (h *CheckoutHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := otel.Tracer(serviceName).Start(ctx, "checkout.PlaceOrderHandler")
	defer span.End()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var customer domain.CustomerInfo
	if err := json.NewDecoder(r.Body).Decode(&customer); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	co, err := h.service.PlaceOrder(ctx, customer)
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		// 空购物车结账跳回购物车页，而不是创建订单
		w.Header().Set("Location", "/cart")
		writeJSON(w, http.StatusConflict, map[string]string{"error": "cart is empty"})
	case errors.Is(err, port.ErrSubmissionInFlight):
		writeJSON(w, http.StatusConflict, map[string]string{
			"error": "Your order is already being processed.",
		})
	case errors.Is(err, port.ErrSubmissionFailed):
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"error": "There was an error processing your order. Please try again.",
		})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "checkout failed"})
	case co.State == domain.StateEditing:
		// 校验失败：字段级错误 + 第一个需要聚焦的字段
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"errors":     co.FieldErrors,
			"focusField": co.FirstError,
		})
	default:
		writeJSON(w, http.StatusCreated, toSummary(co.Order))
	}
}

func (h *CheckoutHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	user, _ := authifaces.UserFromContext(r.Context())
	orders, err := h.service.ListOrders(r.Context(), user.Email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list orders"})
		return
	}
	summaries := make([]orderSummary, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, toSummary(order))
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *CheckoutHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	user, _ := authifaces.UserFromContext(r.Context())
	order, err := h.service.GetOrder(r.Context(), r.URL.Query().Get("id"))
	if errors.Is(err, domain.ErrOrderNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load order"})
		return
	}
	// 只能看自己的订单，管理员例外
	if !user.IsAdmin() && order.Customer.Email != user.Email {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
		return
	}
	writeJSON(w, http.StatusOK, toSummary(order))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
