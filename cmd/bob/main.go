// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

// Package main is the entry point for the Bob service.
//
// Bob is a whiskey expert agent for the BAXUS ecosystem. It analyzes user
// collections, recommends bottles from a curated catalog, and chats about
// whiskey over REST and WebSocket.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Catalog: Load the bottle dataset from CSV
//  3. Recommendation Engine: Score catalog bottles against user taste profiles
//  4. Intent Classifier: LLM-backed when OPENAI_API_KEY is set, keyword fallback otherwise
//  5. WebSocket Hub: Real-time chat with connected clients
//  6. HTTP Server: REST API plus Prometheus metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables
//   - Config file (config.yaml)
//   - Built-in defaults
//
// Common variables:
//   - HTTP_PORT: listen port (default 3000)
//   - CATALOG_PATH: bottle dataset CSV (default data/bottles.csv)
//   - BAXUS_URL: BAXUS API base URL
//   - OPENAI_API_KEY: enables LLM intent classification
//   - LOG_LEVEL, LOG_FORMAT: logging settings
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Closes all websocket clients
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BAXUSNFT/bob/internal/agent"
	"github.com/BAXUSNFT/bob/internal/api"
	"github.com/BAXUSNFT/bob/internal/baxus"
	"github.com/BAXUSNFT/bob/internal/catalog"
	"github.com/BAXUSNFT/bob/internal/config"
	"github.com/BAXUSNFT/bob/internal/intent"
	"github.com/BAXUSNFT/bob/internal/logging"
	"github.com/BAXUSNFT/bob/internal/metrics"
	"github.com/BAXUSNFT/bob/internal/recommend"
	ws "github.com/BAXUSNFT/bob/internal/websocket"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Str("version", version).Msg("Starting Bob")
	logging.Info().
		Str("catalog_path", cfg.Catalog.Path).
		Str("baxus_url", cfg.Baxus.URL).
		Bool("llm_enabled", cfg.LLM.APIKey != "").
		Msg("Configuration loaded")

	// Load the bottle catalog. A missing or empty catalog is not fatal:
	// the service still answers chat, just without recommendations.
	records := catalog.LoadCSV(cfg.Catalog.Path)
	store := catalog.NewStore(records)
	metrics.CatalogBottles.Set(float64(store.Len()))
	logging.Info().Int("bottles", store.Len()).Msg("Catalog loaded")

	// Recommendation engine
	engineCfg := recommend.DefaultConfig()
	engineCfg.DefaultTopN = cfg.Recommend.DefaultTopN
	engineCfg.MaxTopN = cfg.Recommend.MaxTopN
	engine, err := recommend.NewEngine(engineCfg, store, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}

	// BAXUS collection source, with an LRU cache in front so repeated chat
	// turns for the same user do not hammer the upstream API
	client := baxus.NewClient(baxus.Config{
		BaseURL: cfg.Baxus.URL,
		Timeout: cfg.Baxus.Timeout,
	}, logging.Logger())
	source := baxus.NewCachedClient(client, baxus.DefaultCacheSize, baxus.DefaultCacheTTL, logging.Logger())

	// Intent classification: LLM-backed when configured, keyword otherwise
	var classifier intent.Classifier = intent.NewKeywordClassifier()
	if cfg.LLM.APIKey != "" {
		llm, err := intent.NewLLMClassifier(intent.Config{
			APIKey:   cfg.LLM.APIKey,
			Endpoint: cfg.LLM.Endpoint,
			Model:    cfg.LLM.Model,
		}, logging.Logger())
		if err != nil {
			logging.Warn().Err(err).Msg("Failed to initialize LLM classifier, using keyword classification")
		} else {
			classifier = llm
			logging.Info().Msg("LLM intent classification enabled")
		}
	}

	// The agent wires engine, collection source, and classifier together
	bob, err := agent.New(engine, source, classifier, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize agent")
	}

	// WebSocket hub for realtime chat
	hub := ws.NewHub(bob)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hubDone := make(chan error, 1)
	go func() {
		hubDone <- hub.RunWithContext(ctx)
	}()

	// HTTP surface
	handler := api.NewHandler(bob, hub, version, engine.CatalogSize)
	middleware := api.NewMiddleware(&api.MiddlewareConfig{
		CORSAllowedOrigins: cfg.Security.CORSOrigins,
		CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "Authorization"},
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.Security.RateLimitReqs,
		RateLimitWindow:    cfg.Security.RateLimitWindow,
		RateLimitDisabled:  cfg.Security.RateLimitDisabled,
	})
	router := api.NewRouter(handler, middleware)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		serverErr <- server.ListenAndServe()
	}()

	// Wait for a shutdown signal or a server failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error().Err(err).Msg("HTTP server failed")
		}
	}

	// Graceful shutdown: stop accepting connections, drain in-flight
	// requests, then stop the hub.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("HTTP server shutdown error")
	}

	cancel()
	if err := <-hubDone; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("WebSocket hub shutdown error")
	}

	logging.Info().Msg("Application stopped gracefully")
}
