package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cartOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopfront_cart_operations_total",
		Help: "Cart engine operations dispatched, by operation.",
	}, []string{"op"})

	catalogRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopfront_catalog_requests_total",
		Help: "Catalog lookups served to the view layer, by outcome.",
	}, []string{"outcome"})

	ordersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shopfront_orders_placed_total",
		Help: "Orders successfully placed at checkout.",
	})
)
