package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_placed_total",
		Help: "Number of successfully placed orders.",
	})

	ordersFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_order_submission_failures_total",
		Help: "Number of simulated order submissions that failed.",
	})
)
