package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cart_mutations_total",
		Help: "Number of cart mutations by operation.",
	}, []string{"op"})

	persistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_persist_failures_total",
		Help: "Number of cart persistence failures (recovered in memory).",
	})

	invalidPayloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cart_invalid_payloads_total",
		Help: "Number of add-to-cart payloads rejected at the boundary.",
	})

	itemCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_cart_item_count",
		Help: "Current number of units in the cart.",
	})
)
