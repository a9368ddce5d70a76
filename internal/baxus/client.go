// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

// Package baxus fetches user bar collections from the BAXUS services API.
//
// The rest of the system treats a fetch failure and a genuinely empty bar
// identically: both produce an empty collection, and the recommendation core
// degrades to its popularity-driven path.
package baxus

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/BAXUSNFT/bob/internal/models"
)

// DefaultBaseURL is the production BAXUS services endpoint.
const DefaultBaseURL = "https://services.baxus.co"

// Config holds the client configuration.
type Config struct {
	// BaseURL is the BAXUS services root. Default: DefaultBaseURL.
	BaseURL string `koanf:"base_url"`

	// Timeout bounds each collection fetch. Default: 10s.
	Timeout time.Duration `koanf:"timeout"`
}

// DefaultConfig returns the standard client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: 10 * time.Second,
	}
}

// Client fetches bar collections over HTTP. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a BAXUS API client.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger.With().Str("component", "baxus").Logger(),
	}
}

// UserBottles returns the bottles in a user's bar. Users without a profile,
// transport failures, and malformed payloads all yield an empty collection;
// the error return is reserved for an invalid username.
func (c *Client) UserBottles(ctx context.Context, username string) ([]models.OwnedBottle, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	endpoint := fmt.Sprintf("%s/api/bar/user/%s", c.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", username).Msg("collection fetch failed")
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug().
			Int("status", resp.StatusCode).
			Str("username", username).
			Msg("no collection available")
		return nil, nil
	}

	var bottles []models.OwnedBottle
	if err := json.NewDecoder(resp.Body).Decode(&bottles); err != nil {
		c.logger.Warn().Err(err).Str("username", username).Msg("collection payload malformed")
		return nil, nil
	}

	c.logger.Debug().Int("bottles", len(bottles)).Str("username", username).Msg("collection fetched")
	return bottles, nil
}
