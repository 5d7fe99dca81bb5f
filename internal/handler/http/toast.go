package http

import (
	"net/http"

	"github.com/salmankhalil12/Restaurant-Site/internal/domain"
	"github.com/salmankhalil12/Restaurant-Site/pkg/httputil"
)

// ToastSource lists notifications still on screen.
type ToastSource interface {
	Active() []domain.Toast
}

// ToastHandler exposes the notification feed.
type ToastHandler struct {
	source ToastSource
}

// NewToastHandler creates a toast handler.
func NewToastHandler(source ToastSource) *ToastHandler {
	return &ToastHandler{source: source}
}

// ListToasts handles GET /api/v1/toasts
func (h *ToastHandler) ListToasts(w http.ResponseWriter, r *http.Request) {
	toasts := h.source.Active()
	if toasts == nil {
		toasts = []domain.Toast{}
	}
	httputil.WriteData(w, http.StatusOK, toasts)
}
