// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

// Package agent implements Bob's conversational core. It classifies
// incoming messages, fetches the user's BAXUS collection when needed,
// runs the recommendation engine, and renders replies in Bob's voice.
// The structured methods (RecommendForUser, AnalyzeUser, SimilarBottles,
// BottleInfo) back the REST API; HandleMessage backs the chat surfaces.
package agent

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/BAXUSNFT/bob/internal/intent"
	"github.com/BAXUSNFT/bob/internal/metrics"
	"github.com/BAXUSNFT/bob/internal/models"
	"github.com/BAXUSNFT/bob/internal/persona"
	"github.com/BAXUSNFT/bob/internal/recommend"
)

// ErrUnknownBottle is returned when a bottle name cannot be resolved
// against the catalog.
var ErrUnknownBottle = errors.New("bottle not found in catalog")

// CollectionSource fetches a user's owned bottles. An empty slice with a
// nil error means the user has no (reachable) collection.
type CollectionSource interface {
	UserBottles(ctx context.Context, username string) ([]models.OwnedBottle, error)
}

// Agent answers user messages about whiskey using the recommendation
// engine, a collection source, and an intent classifier.
type Agent struct {
	engine     *recommend.Engine
	source     CollectionSource
	classifier intent.Classifier
	logger     zerolog.Logger
}

// New creates an Agent. All three collaborators are required.
func New(engine *recommend.Engine, source CollectionSource, classifier intent.Classifier, logger zerolog.Logger) (*Agent, error) {
	if engine == nil {
		return nil, errors.New("engine is required")
	}
	if source == nil {
		return nil, errors.New("collection source is required")
	}
	if classifier == nil {
		return nil, errors.New("classifier is required")
	}
	return &Agent{
		engine:     engine,
		source:     source,
		classifier: classifier,
		logger:     logger.With().Str("component", "agent").Logger(),
	}, nil
}

// HandleMessage runs one full chat turn: classify the message, act on the
// intent, and render Bob's reply. It never surfaces internal errors to the
// user; failures produce an apologetic reply instead.
func (a *Agent) HandleMessage(ctx context.Context, message string) (string, error) {
	return a.handle(ctx, "", message)
}

// HandleChat implements the websocket chat handler. The username, when
// non-empty, is the client's registered BAXUS username and is used for
// messages that do not name a user themselves.
func (a *Agent) HandleChat(ctx context.Context, username, message string) (string, error) {
	return a.handle(ctx, username, message)
}

func (a *Agent) handle(ctx context.Context, registeredUser, message string) (string, error) {
	it, err := a.classifier.Classify(ctx, message)
	if err != nil {
		a.logger.Error().Err(err).Msg("intent classification failed")
		return persona.ErrorReply(), nil
	}

	metrics.ChatMessagesTotal.WithLabelValues(string(it.Type)).Inc()

	username := it.Username
	if username == "" {
		username = registeredUser
	}
	if username == "" {
		username = intent.DefaultUsername
	}

	a.logger.Debug().
		Str("intent", string(it.Type)).
		Str("username", username).
		Str("bottle", it.BottleName).
		Msg("handling chat message")

	switch it.Type {
	case intent.TypeAnalyze:
		return a.replyAnalyze(ctx, username), nil
	case intent.TypeRecommend:
		return a.replyRecommend(ctx, username), nil
	case intent.TypeSimilar:
		return a.replySimilar(it.BottleName), nil
	case intent.TypeInfo:
		return a.replyInfo(it.BottleName), nil
	default:
		return persona.GeneralReply(), nil
	}
}

func (a *Agent) replyAnalyze(ctx context.Context, username string) string {
	owned, err := a.fetchCollection(ctx, username)
	if err != nil {
		return persona.ErrorReply()
	}
	if len(owned) == 0 {
		return persona.EmptyCollectionAnalyze()
	}

	start := time.Now()
	analysis := a.engine.Analyze(owned)
	metrics.RecommendationDuration.WithLabelValues("analyze").Observe(time.Since(start).Seconds())

	return persona.Analysis(analysis)
}

func (a *Agent) replyRecommend(ctx context.Context, username string) string {
	owned, err := a.fetchCollection(ctx, username)
	if err != nil {
		return persona.ErrorReply()
	}
	if len(owned) == 0 {
		return persona.EmptyCollectionRecommend()
	}

	start := time.Now()
	profile := recommend.BuildProfile(owned)
	results := a.engine.Recommend(profile, 0)
	metrics.RecommendationDuration.WithLabelValues("recommend").Observe(time.Since(start).Seconds())

	return persona.Recommendations(results)
}

func (a *Agent) replySimilar(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return persona.GeneralReply()
	}

	target, ok := a.engine.BottleByName(name)
	if !ok {
		return persona.UnknownBottle(name)
	}

	start := time.Now()
	results := a.engine.FindSimilar(name, 0)
	metrics.RecommendationDuration.WithLabelValues("similar").Observe(time.Since(start).Seconds())

	return persona.Similar(target, results)
}

func (a *Agent) replyInfo(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return persona.GeneralReply()
	}

	bottle, ok := a.engine.BottleByName(name)
	if !ok {
		return persona.UnknownBottle(name)
	}

	neighbors := a.engine.TextualNeighbors(name, 3)
	return persona.BottleInfo(bottle, neighbors)
}

// RecommendForUser fetches the user's collection, builds a taste profile,
// and returns the top scored bottles. An empty result with a nil error
// means the user has no collection to profile.
func (a *Agent) RecommendForUser(ctx context.Context, username string, topN int) ([]models.RankedResult, error) {
	owned, err := a.fetchCollection(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(owned) == 0 {
		return nil, nil
	}

	start := time.Now()
	profile := recommend.BuildProfile(owned)
	results := a.engine.Recommend(profile, topN)
	metrics.RecommendationDuration.WithLabelValues("recommend").Observe(time.Since(start).Seconds())

	return results, nil
}

// AnalyzeUser fetches the user's collection and summarizes it. A zero
// BottleCount in the returned analysis means the user has no collection.
func (a *Agent) AnalyzeUser(ctx context.Context, username string) (models.CollectionAnalysis, error) {
	owned, err := a.fetchCollection(ctx, username)
	if err != nil {
		return models.CollectionAnalysis{}, err
	}

	start := time.Now()
	analysis := a.engine.Analyze(owned)
	metrics.RecommendationDuration.WithLabelValues("analyze").Observe(time.Since(start).Seconds())

	return analysis, nil
}

// SimilarBottles resolves a bottle name and returns the catalog bottles
// most similar to it. Returns ErrUnknownBottle if the name does not
// resolve.
func (a *Agent) SimilarBottles(name string, topN int) (models.BottleRecord, []models.RankedResult, error) {
	target, ok := a.engine.BottleByName(name)
	if !ok {
		return models.BottleRecord{}, nil, ErrUnknownBottle
	}

	start := time.Now()
	results := a.engine.FindSimilar(name, topN)
	metrics.RecommendationDuration.WithLabelValues("similar").Observe(time.Since(start).Seconds())

	return target, results, nil
}

// BottleInfo resolves a bottle name and returns the bottle along with its
// closest textual neighbors in the catalog.
func (a *Agent) BottleInfo(name string) (models.BottleRecord, []models.RankedResult, error) {
	bottle, ok := a.engine.BottleByName(name)
	if !ok {
		return models.BottleRecord{}, nil, ErrUnknownBottle
	}
	return bottle, a.engine.TextualNeighbors(name, 3), nil
}

// Bottle looks up a catalog bottle by its ID.
func (a *Agent) Bottle(id int) (models.BottleRecord, bool) {
	return a.engine.Bottle(id)
}

func (a *Agent) fetchCollection(ctx context.Context, username string) ([]models.OwnedBottle, error) {
	owned, err := a.source.UserBottles(ctx, username)
	switch {
	case err != nil:
		metrics.CollectionFetchesTotal.WithLabelValues("error").Inc()
		a.logger.Error().Err(err).Str("username", username).Msg("collection fetch failed")
		return nil, err
	case len(owned) == 0:
		metrics.CollectionFetchesTotal.WithLabelValues("empty").Inc()
	default:
		metrics.CollectionFetchesTotal.WithLabelValues("ok").Inc()
	}
	return owned, nil
}
