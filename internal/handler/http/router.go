package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/salmankhalil12/Restaurant-Site/internal/catalog"
	"github.com/salmankhalil12/Restaurant-Site/internal/service"
	"github.com/salmankhalil12/Restaurant-Site/pkg/health"
	"github.com/salmankhalil12/Restaurant-Site/pkg/middleware"
)

const serviceName = "foodsprint"

// NewRouter creates a chi router with all FoodSprint routes registered.
func NewRouter(
	cartService *service.CartService,
	bookingService *service.BookingService,
	menu *catalog.Catalog,
	toasts ToastSource,
	healthHandler *health.Handler,
	pprofCIDRs []string,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(CORS)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())
	if middleware.RegisterPprof(r, pprofCIDRs, logger) {
		logger.Info("pprof endpoints enabled", slog.Any("allowed_cidrs", pprofCIDRs))
	}

	cartHandler := NewCartHandler(cartService, logger)
	menuHandler := NewMenuHandler(menu)
	bookingHandler := NewBookingHandler(bookingService, logger)
	toastHandler := NewToastHandler(toasts)

	r.With(middleware.NoStore).Get("/cart", cartHandler.CartFragment)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Get("/", cartHandler.GetCart)
			r.Post("/checkout", cartHandler.Checkout)

			r.Post("/items", cartHandler.AddItem)
			r.Post("/items/{id}", cartHandler.AddMenuItem)
			r.Post("/items/{id}/increase", cartHandler.IncreaseItem)
			r.Post("/items/{id}/decrease", cartHandler.DecreaseItem)
			r.Delete("/items/{id}", cartHandler.RemoveItem)
		})

		r.Route("/menu", func(r chi.Router) {
			r.Use(middleware.CacheControl(5 * time.Minute))
			r.Get("/", menuHandler.ListMenu)
			r.Get("/search", menuHandler.SearchMenu)
			r.Get("/categories", menuHandler.ListCategories)
		})

		r.Post("/bookings", bookingHandler.SubmitBooking)
		r.With(middleware.NoStore).Get("/toasts", toastHandler.ListToasts)
	})

	return r
}
