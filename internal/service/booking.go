package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/salmankhalil12/Restaurant-Site/internal/domain"
	"github.com/salmankhalil12/Restaurant-Site/internal/notify"
	"github.com/salmankhalil12/Restaurant-Site/pkg/logger"
	"github.com/salmankhalil12/Restaurant-Site/pkg/validator"
)

// BookingRequest is the table reservation form.
type BookingRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Phone   string `json:"phone" validate:"required,min=7,max=20"`
	Email   string `json:"email" validate:"required,email"`
	Persons int    `json:"persons" validate:"required,gte=1,lte=20"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
}

// BookingService acknowledges reservations. Nothing is stored or sent.
type BookingService struct {
	notifier notify.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewBookingService creates a booking service.
func NewBookingService(notifier notify.Notifier, l *slog.Logger) *BookingService {
	if l == nil {
		l = slog.Default()
	}
	return &BookingService{notifier: notifier, logger: l, now: time.Now}
}

// Submit validates the form and confirms it with a toast.
func (s *BookingService) Submit(ctx context.Context, req BookingRequest) (*domain.Booking, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)

	if err := validator.Validate(req); err != nil {
		bookingsTotal.WithLabelValues(resultReject).Inc()
		s.notifier.Notify(ctx, "Booking Failed", err.Error(), domain.ToastError)
		return nil, err
	}

	booking := &domain.Booking{
		Reference:  uuid.NewString(),
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Persons:    req.Persons,
		Date:       req.Date,
		ReceivedAt: s.now().UTC(),
	}

	bookingsTotal.WithLabelValues(resultOK).Inc()
	logger.WithContext(ctx, s.logger).InfoContext(ctx, "booking received",
		slog.String("reference", booking.Reference),
		slog.Int("persons", booking.Persons),
		slog.String("date", booking.Date),
	)
	s.notifier.Notify(ctx, "Booking Confirmed!", "We will contact you shortly to confirm your reservation.", domain.ToastSuccess)
	return booking, nil
}
