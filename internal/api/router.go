// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router wires handlers and middleware into the HTTP routing tree.
type Router struct {
	handler    *Handler
	middleware *Middleware
}

// NewRouter creates a Router.
func NewRouter(handler *Handler, middleware *Middleware) *Router {
	return &Router{
		handler:    handler,
		middleware: middleware,
	}
}

// Setup configures all HTTP routes using the Chi router.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(RequestIDWithLogging())   // Add X-Request-ID header with logging context
	r.Use(chimiddleware.RealIP)     // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)  // Recover from panics
	r.Use(router.middleware.CORS()) // CORS must be global to handle OPTIONS preflight

	// Health endpoint, outside rate limiting so monitors are never throttled.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(PrometheusMetrics())
		r.Get("/", router.handler.Health)
	})

	// Core API endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.middleware.RateLimit())
		r.Use(PrometheusMetrics())

		r.Post("/chat", router.handler.Chat)
		r.Get("/recommendations/user/{username}", router.handler.UserRecommendations)
		r.Get("/bottles/similar", router.handler.SimilarBottles)
		r.Get("/bottles/{id}", router.handler.BottleByID)
		r.Get("/collection/{username}/analysis", router.handler.CollectionAnalysis)
		r.Get("/ws", router.handler.WebSocket)
	})

	// Observability
	r.Handle("/metrics", promhttp.Handler())

	return r
}
