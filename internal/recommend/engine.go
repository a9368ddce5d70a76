// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

package recommend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/BAXUSNFT/bob/internal/catalog"
	"github.com/BAXUSNFT/bob/internal/models"
)

// Config holds the engine's tunable parameters.
type Config struct {
	// DefaultTopN is the result count used when a request does not specify
	// one. Default: 3.
	DefaultTopN int `koanf:"default_top_n"`

	// MaxTopN caps the per-request result count. Default: 25.
	MaxTopN int `koanf:"max_top_n"`

	Weights        Weights        `koanf:"weights"`
	SimilarWeights SimilarWeights `koanf:"similar_weights"`
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{
		DefaultTopN:    3,
		MaxTopN:        25,
		Weights:        DefaultWeights(),
		SimilarWeights: DefaultSimilarWeights(),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.DefaultTopN <= 0 {
		return fmt.Errorf("default_top_n must be positive, got %d", c.DefaultTopN)
	}
	if c.MaxTopN < c.DefaultTopN {
		return fmt.Errorf("max_top_n (%d) must be >= default_top_n (%d)", c.MaxTopN, c.DefaultTopN)
	}
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	return nil
}

// Engine owns the catalog store and text index and serves recommendation,
// similarity, and analysis queries. The store and index are replaced
// together under an exclusive lock on reload, so concurrent readers never
// observe a half-built catalog. Safe for concurrent use.
type Engine struct {
	config Config
	logger zerolog.Logger

	mu    sync.RWMutex
	store *catalog.Store
	index *TextIndex
}

// NewEngine creates an engine over the given catalog store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg Config, store *catalog.Store, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil {
		store = catalog.NewStore(nil)
	}

	e := &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	e.SetCatalog(store)
	return e, nil
}

// SetCatalog swaps in a freshly built catalog store, rebuilding the text
// index over it. Readers either see the old catalog or the new one, never a
// mixture.
func (e *Engine) SetCatalog(store *catalog.Store) {
	index := NewTextIndex(store)

	e.mu.Lock()
	e.store = store
	e.index = index
	e.mu.Unlock()

	e.logger.Info().Int("bottles", store.Len()).Msg("catalog swapped")
}

// CatalogSize returns the number of bottles in the active catalog.
func (e *Engine) CatalogSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.Len()
}

// Bottle resolves a catalog bottle by id.
func (e *Engine) Bottle(id int) (models.BottleRecord, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.FindByID(id)
}

// BottleByName resolves a catalog bottle by fuzzy name query.
func (e *Engine) BottleByName(name string) (models.BottleRecord, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.FindByName(name)
}

// Recommend ranks the catalog against profile and returns up to topN
// results. A zero or negative topN falls back to the configured default.
func (e *Engine) Recommend(profile models.UserProfile, topN int) []models.RankedResult {
	topN = e.clampTopN(topN)

	e.mu.RLock()
	store := e.store
	e.mu.RUnlock()

	results := Recommend(profile, store, e.config.Weights, topN)
	e.logger.Debug().
		Int("top_n", topN).
		Int("returned", len(results)).
		Int("owned_bottles", profile.BottleCount).
		Msg("recommendation complete")
	return results
}

// FindSimilar ranks catalog bottles by similarity to the named target. An
// unknown name returns an empty result.
func (e *Engine) FindSimilar(name string, topN int) []models.RankedResult {
	topN = e.clampTopN(topN)

	e.mu.RLock()
	store := e.store
	e.mu.RUnlock()

	results := FindSimilar(name, store, e.config.SimilarWeights, topN)
	e.logger.Debug().
		Str("target", name).
		Int("returned", len(results)).
		Msg("similarity query complete")
	return results
}

// TextualNeighbors ranks catalog bottles by TF-IDF text similarity to the
// named target, for "reads like" lookups in bottle info responses. Returns
// nil when the name does not resolve.
func (e *Engine) TextualNeighbors(name string, topN int) []models.RankedResult {
	topN = e.clampTopN(topN)

	e.mu.RLock()
	store, index := e.store, e.index
	e.mu.RUnlock()

	target, ok := store.FindByName(name)
	if !ok {
		return nil
	}

	results := make([]models.RankedResult, 0, store.Len())
	for _, b := range store.Bottles() {
		if b.ID == target.ID {
			continue
		}
		results = append(results, models.RankedResult{
			Bottle: b,
			Score:  index.Similarity(target, b),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topN {
		results = results[:topN]
	}
	return results
}

// Analyze summarizes a collection for the ANALYZE flow. The averages follow
// the upstream behavior: both divide by the number of bottles that carried a
// product description.
func (e *Engine) Analyze(owned []models.OwnedBottle) models.CollectionAnalysis {
	analysis := models.CollectionAnalysis{
		SpiritCounts: make(map[string]int),
		BrandCounts:  make(map[string]int),
	}

	var priceSum, proofSum float64
	for _, bottle := range owned {
		p := bottle.Product
		if p == nil {
			continue
		}
		analysis.BottleCount++
		if p.Spirit != "" {
			analysis.SpiritCounts[p.Spirit]++
		}
		if p.Brand != "" {
			analysis.BrandCounts[p.Brand]++
		}
		if v := numericValue(p.AverageMSRP); v != nil {
			priceSum += *v
		}
		if v := numericValue(p.Proof); v != nil {
			proofSum += *v
		}
	}

	if analysis.BottleCount > 0 {
		analysis.AvgPrice = priceSum / float64(analysis.BottleCount)
		analysis.AvgProof = proofSum / float64(analysis.BottleCount)
	}

	return analysis
}

func (e *Engine) clampTopN(topN int) int {
	if topN <= 0 {
		return e.config.DefaultTopN
	}
	if topN > e.config.MaxTopN {
		return e.config.MaxTopN
	}
	return topN
}
