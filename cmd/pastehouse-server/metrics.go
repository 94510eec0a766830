// Copyright 2026 The Pastehouse Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Route labels.
const (
	routeRaw    = "raw"
	routePretty = "pretty"
)

// Metrics holds the server's Prometheus collectors on a private
// registry, so tests can build as many servers as they like.
type Metrics struct {
	requestsTotal  *prometheus.CounterVec
	bytesServed    *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers the retrieval metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pastehouse_requests_total",
				Help: "Retrieval requests by route and outcome",
			},
			[]string{"route", "outcome"},
		),

		bytesServed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pastehouse_artifact_bytes_total",
				Help: "Artifact bytes handed to the response writer by route, before compression",
			},
			[]string{"route"},
		),

		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pastehouse_render_duration_seconds",
				Help:    "Time spent highlighting an artifact",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
			},
			[]string{"grammar"},
		),

		registry: registry,
	}

	registry.MustRegister(
		m.requestsTotal,
		m.bytesServed,
		m.renderDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// RecordRequest counts one finished request.
func (m *Metrics) RecordRequest(route, outcome string) {
	m.requestsTotal.WithLabelValues(route, outcome).Inc()
}

// RecordBytes adds artifact bytes written for a route.
func (m *Metrics) RecordBytes(route string, size int64) {
	m.bytesServed.WithLabelValues(route).Add(float64(size))
}

// RecordRender observes one highlighting pass.
func (m *Metrics) RecordRender(grammar string, duration time.Duration) {
	m.renderDuration.WithLabelValues(grammar).Observe(duration.Seconds())
}

// Handler returns the exposition handler for /-/metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
