package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CheckoutMetrics struct {
	OrdersPlaced     *prometheus.CounterVec
	CheckoutFailures *prometheus.CounterVec
	ShippingQuotes   prometheus.Counter
}

func NewCheckoutMetrics(service string) *CheckoutMetrics {
	placed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: service,
		Name:      "orders_placed_total",
		Help:      "Total number of committed orders.",
	}, []string{"fulfillment"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: service,
		Name:      "checkout_failures_total",
		Help:      "Total number of rejected checkouts.",
	}, []string{"reason"})
	quotes := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: service,
		Name:      "shipping_quotes_total",
		Help:      "Total number of shipping fee quotes served.",
	})

	prometheus.MustRegister(placed, failures, quotes)
	return &CheckoutMetrics{OrdersPlaced: placed, CheckoutFailures: failures, ShippingQuotes: quotes}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
