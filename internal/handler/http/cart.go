package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/salmankhalil12/Restaurant-Site/internal/service"
	"github.com/salmankhalil12/Restaurant-Site/pkg/httputil"
	"github.com/salmankhalil12/Restaurant-Site/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{service: svc, logger: logger}
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.service.View())
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req service.AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	view, err := h.service.Add(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, view)
}

// AddMenuItem handles POST /api/v1/cart/items/{id}
func (h *CartHandler) AddMenuItem(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.AddFromMenu(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, view)
}

// IncreaseItem handles POST /api/v1/cart/items/{id}/increase
func (h *CartHandler) IncreaseItem(w http.ResponseWriter, r *http.Request) {
	h.writeMutation(w, r)(h.service.Increase(r.Context(), chi.URLParam(r, "id")))
}

// DecreaseItem handles POST /api/v1/cart/items/{id}/decrease
func (h *CartHandler) DecreaseItem(w http.ResponseWriter, r *http.Request) {
	h.writeMutation(w, r)(h.service.Decrease(r.Context(), chi.URLParam(r, "id")))
}

// RemoveItem handles DELETE /api/v1/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.writeMutation(w, r)(h.service.Remove(r.Context(), chi.URLParam(r, "id")))
}

// Checkout handles POST /api/v1/cart/checkout. An empty cart is a normal
// response with accepted=false.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.service.Checkout(r.Context()))
}

// CartFragment handles GET /cart and returns the rendered sidebar body.
func (h *CartHandler) CartFragment(w http.ResponseWriter, r *http.Request) {
	view := h.service.View()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Cart-Count", view.Rendered.Count)
	w.Header().Set("X-Cart-Total", view.Rendered.Total)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(view.Rendered.CartHTML))
}

func (h *CartHandler) writeMutation(w http.ResponseWriter, r *http.Request) func(*service.MutationResult, error) {
	return func(res *service.MutationResult, err error) {
		if err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
		httputil.WriteData(w, http.StatusOK, res)
	}
}
