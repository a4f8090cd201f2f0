// Package metrics exposes Prometheus counters for the invoicing core.
package metrics

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type Metrics struct {
	registry *prometheus.Registry

	InvoicesCreated prometheus.Counter
	NumberConflicts prometheus.Counter
	HTTPRequests    *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		InvoicesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flowbooks_invoices_created_total",
			Help: "Invoices successfully persisted.",
		}),
		NumberConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "flowbooks_invoice_number_conflicts_total",
			Help: "Invoice number proposals rejected by the unique constraint and retried.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flowbooks_http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
	}

	registry.MustRegister(m.InvoicesCreated, m.NumberConflicts, m.HTTPRequests)
	return m
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMiddleware counts requests per route and status.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		m.HTTPRequests.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}

// Module wires the metrics registry.
var Module = fx.Module("metrics",
	fx.Provide(New),
)
