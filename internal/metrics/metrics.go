// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

// Package metrics provides Prometheus instrumentation for the Bob service:
// API throughput, chat intent mix, recommendation latency, collection fetch
// outcomes, and websocket connection counts. Metrics are exposed at /metrics
// in Prometheus text format.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// Chat Metrics
	ChatMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Total number of chat messages processed, by classified intent",
		},
		[]string{"intent"},
	)

	// Recommendation Metrics
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Recommendation and similarity scoring duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "recommend", "similar", "analyze"
	)

	CatalogBottles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_bottles",
			Help: "Number of bottles in the active catalog",
		},
	)

	// Collection Source Metrics
	CollectionFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collection_fetches_total",
			Help: "Total number of BAXUS collection fetches",
		},
		[]string{"outcome"}, // "ok", "empty", "error"
	)

	// WebSocket Metrics
	WebsocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_clients",
			Help: "Current number of connected websocket clients",
		},
	)
)
