// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics provides Prometheus metrics for the storage facade and
// the HTTP layer. All Record methods are safe to call on a nil *Metrics,
// which lets tests and tools run without a registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	Backend          *prometheus.GaugeVec
	StoreOpsTotal    *prometheus.CounterVec
	DemotionsTotal   *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	ThemeCacheLookup *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates and registers all metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Backend: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "devfolio_storage_backend",
				Help: "Pinned storage backend (1 for the backend in use).",
			},
			[]string{"backend"},
		),
		StoreOpsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devfolio_store_operations_total",
				Help: "Storage facade operations by collection, operation and result.",
			},
			[]string{"collection", "op", "result"},
		),
		DemotionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devfolio_store_demotions_total",
				Help: "Primary store calls served by a one-shot fallback store after an error.",
			},
			[]string{"collection", "op"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devfolio_http_requests_total",
				Help: "HTTP requests by method and status code.",
			},
			[]string{"method", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "devfolio_http_request_duration_seconds",
				Help:    "HTTP request duration by method.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		ThemeCacheLookup: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devfolio_theme_css_cache_total",
				Help: "Active theme stylesheet cache lookups by result.",
			},
			[]string{"result"},
		),
		registry: reg,
	}

	reg.MustRegister(m.Backend)
	reg.MustRegister(m.StoreOpsTotal)
	reg.MustRegister(m.DemotionsTotal)
	reg.MustRegister(m.HTTPRequests)
	reg.MustRegister(m.HTTPDuration)
	reg.MustRegister(m.ThemeCacheLookup)

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// SetBackend marks name as the pinned backend.
func (m *Metrics) SetBackend(name string) {
	if m == nil {
		return
	}
	m.Backend.Reset()
	m.Backend.WithLabelValues(name).Set(1)
}

// RecordStoreOp increments the store operation counter.
func (m *Metrics) RecordStoreOp(collection, op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.StoreOpsTotal.WithLabelValues(collection, op, result).Inc()
}

// RecordDemotion increments the per-call demotion counter.
func (m *Metrics) RecordDemotion(collection, op string) {
	if m == nil {
		return
	}
	m.DemotionsTotal.WithLabelValues(collection, op).Inc()
}

// RecordRequest records one finished HTTP request.
func (m *Metrics) RecordRequest(method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, status).Inc()
	m.HTTPDuration.WithLabelValues(method).Observe(seconds)
}

// RecordThemeCache records a stylesheet cache hit or miss.
func (m *Metrics) RecordThemeCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.ThemeCacheLookup.WithLabelValues(result).Inc()
}
