package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	authifaces "artisan/internal/service/auth/interfaces"
	"artisan/internal/service/catalog/application"
	"artisan/internal/service/catalog/domain"
)

const serviceName = "storefront"

// ProductHandler 封装商品目录和管理面板的 HTTP 处理器。
type ProductHandler struct {
	service *application.Service
	auth    *authifaces.Middleware
}

func NewProductHandler(service *application.Service, auth *authifaces.Middleware) *ProductHandler {
	return &ProductHandler{service: service, auth: auth}
}

// RegisterRoutes 在 ServeMux 上注册所有路由，管理接口要求管理员角色。
func (h *ProductHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/products", h.listProducts)
	mux.HandleFunc("/products/get", h.getProduct)
	mux.HandleFunc("/admin/products/create", h.auth.RequireAdmin(h.createProduct))
	mux.HandleFunc("/admin/products/update", h.auth.RequireAdmin(h.updateProduct))
	mux.HandleFunc("/admin/products/delete", h.auth.RequireAdmin(h.deleteProduct))
}

func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := otel.Tracer(serviceName).Start(ctx, "catalog.ListProductsHandler")
	defer span.End()

	products, err := h.service.ListProducts(ctx, r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, http.StatusBadGateway, "Failed to load products. Please try again later.")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := otel.Tracer(serviceName).Start(ctx, "catalog.GetProductHandler")
	defer span.End()

	product, err := h.service.GetProduct(ctx, r.URL.Query().Get("id"))
	if errors.Is(err, domain.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, "Failed to load product. Please try again later.")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !h.service.AdminEnabled() {
		writeError(w, http.StatusServiceUnavailable, "catalog is read-only")
		return
	}

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.service.CreateProduct(r.Context(), &product); err != nil {
		if errors.Is(err, domain.ErrInvalidProduct) {
			writeError(w, http.StatusUnprocessableEntity, "name and a non-negative price are required")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create product")
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !h.service.AdminEnabled() {
		writeError(w, http.StatusServiceUnavailable, "catalog is read-only")
		return
	}

	var product domain.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	err := h.service.UpdateProduct(r.Context(), &product)
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, domain.ErrInvalidProduct):
		writeError(w, http.StatusUnprocessableEntity, "name and a non-negative price are required")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed to update product")
	default:
		writeJSON(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !h.service.AdminEnabled() {
		writeError(w, http.StatusServiceUnavailable, "catalog is read-only")
		return
	}

	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	err := h.service.DeleteProduct(r.Context(), req.ID)
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed to delete product")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
