package http

import (
	"log/slog"
	"net/http"

	"github.com/salmankhalil12/Restaurant-Site/internal/service"
	"github.com/salmankhalil12/Restaurant-Site/pkg/httputil"
	"github.com/salmankhalil12/Restaurant-Site/pkg/validator"
)

// BookingHandler accepts the table reservation form.
type BookingHandler struct {
	service *service.BookingService
	logger  *slog.Logger
}

// NewBookingHandler creates a booking handler.
func NewBookingHandler(svc *service.BookingService, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{service: svc, logger: logger}
}

// SubmitBooking handles POST /api/v1/bookings. Field validation is left to
// the service so a rejected form still raises its toast.
func (h *BookingHandler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	var req service.BookingRequest
	if err := validator.Decode(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	booking, err := h.service.Submit(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, booking)
}
