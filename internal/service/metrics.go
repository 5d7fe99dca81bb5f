package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK     = "ok"
	resultNoop   = "noop"
	resultError  = "error"
	resultReject = "rejected"
)

var cartOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "foodsprint_cart_operations_total",
		Help: "Cart operations by operation and result.",
	},
	[]string{"operation", "result"},
)

var bookingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "foodsprint_bookings_total",
		Help: "Booking form submissions by result.",
	},
	[]string{"result"},
)

func observe(op string, changed bool, err error) {
	switch {
	case err != nil:
		cartOperations.WithLabelValues(op, resultError).Inc()
	case changed:
		cartOperations.WithLabelValues(op, resultOK).Inc()
	default:
		cartOperations.WithLabelValues(op, resultNoop).Inc()
	}
}
