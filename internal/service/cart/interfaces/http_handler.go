package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"

	"artisan/internal/service/cart/application"
	"artisan/internal/service/cart/domain"
)

const serviceName = "storefront"

// CartHandler 封装购物车的 HTTP 处理器。
type CartHandler struct {
	store *application.Store
	hub   *Hub
}

func NewCartHandler(store *application.Store, hub *Hub) *CartHandler {
	return &CartHandler{store: store, hub: hub}
}

// RegisterRoutes 在 ServeMux 上注册所有路由。
func (h *CartHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/cart", h.getCart)
	mux.HandleFunc("/cart/add", h.addItem)
	mux.HandleFunc("/cart/update_quantity", h.updateQuantity)
	mux.HandleFunc("/cart/remove", h.removeItem)
	mux.HandleFunc("/cart/clear", h.clearCart)
	if h.hub != nil {
		mux.HandleFunc("/cart/ws", func(w http.ResponseWriter, r *http.Request) {
			ServeWS(h.hub, w, r)
		})
	}
}

// snapshotResponse 是对外暴露的购物车视图，金额在这里做展示取整。
type snapshotResponse struct {
	Items      []domain.LineItem `json:"items"`
	ItemCount  int               `json:"itemCount"`
	Total      float64           `json:"total"`
	Shipping   float64           `json:"shipping"`
	Tax        float64           `json:"tax"`
	GrandTotal float64           `json:"grandTotal"`
}

func toResponse(s domain.State) snapshotResponse {
	return snapshotResponse{
		Items:      s.Items,
		ItemCount:  s.ItemCount,
		Total:      domain.Round2(s.Total),
		Shipping:   domain.Round2(s.Shipping),
		Tax:        domain.Round2(s.Tax),
		GrandTotal: domain.Round2(s.GrandTotal),
	}
}

func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toResponse(h.store.Snapshot()))
}

func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := otel.Tracer(serviceName).Start(ctx, "cart.AddItem")
	defer span.End()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var item domain.LineItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	span.SetAttributes(
		attribute.String("cart.item_id", item.ID),
		attribute.Int("cart.quantity", item.Quantity),
	)

	// 非法载荷在 Store 内部退化为空操作，接口层不报错
	h.store.AddItem(ctx, item)
	writeJSON(w, http.StatusOK, toResponse(h.store.Snapshot()))
}

func (h *CartHandler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := otel.Tracer(serviceName).Start(ctx, "cart.UpdateQuantity")
	defer span.End()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.store.UpdateQuantity(ctx, req.ID, req.Quantity)
	writeJSON(w, http.StatusOK, toResponse(h.store.Snapshot()))
}

func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := otel.Tracer(serviceName).Start(ctx, "cart.RemoveItem")
	defer span.End()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.store.RemoveItem(ctx, req.ID)
	writeJSON(w, http.StatusOK, toResponse(h.store.Snapshot()))
}

func (h *CartHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := otel.Tracer(serviceName).Start(ctx, "cart.Clear")
	defer span.End()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.store.Clear(ctx)
	writeJSON(w, http.StatusOK, toResponse(h.store.Snapshot()))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
