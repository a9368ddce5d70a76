// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	gorillaws "github.com/gorilla/websocket"

	"github.com/BAXUSNFT/bob/internal/agent"
	"github.com/BAXUSNFT/bob/internal/logging"
	"github.com/BAXUSNFT/bob/internal/models"
	"github.com/BAXUSNFT/bob/internal/websocket"
)

var validate = validator.New()

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	agent    *agent.Agent
	hub      *websocket.Hub
	version  string
	catalog  func() int // reports current catalog size for health
	upgrader gorillaws.Upgrader
}

// NewHandler creates a Handler backed by the agent and websocket hub.
// catalogSize reports the number of bottles currently loaded.
func NewHandler(a *agent.Agent, hub *websocket.Hub, version string, catalogSize func() int) *Handler {
	return &Handler{
		agent:   a,
		hub:     hub,
		version: version,
		catalog: catalogSize,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS is enforced by middleware; the websocket endpoint
			// accepts any origin the CORS layer let through.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status         string    `json:"status"`
	Version        string    `json:"version"`
	CatalogBottles int       `json:"catalog_bottles"`
	Clients        int       `json:"websocket_clients"`
	Timestamp      time.Time `json:"timestamp"`
}

// Health reports service liveness and catalog state.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if h.catalog() == 0 {
		status = "degraded" // serving, but with no catalog to recommend from
	}

	WriteSuccess(w, r, HealthResponse{
		Status:         status,
		Version:        h.version,
		CatalogBottles: h.catalog(),
		Clients:        h.hub.GetClientCount(),
		Timestamp:      time.Now().UTC(),
	})
}

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	Message  string `json:"message" validate:"required,min=1,max=2000"`
	Username string `json:"username" validate:"omitempty,min=1,max=100"`
}

// ChatResponse carries Bob's reply to a chat message.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Chat runs one chat turn: classify the message and answer in Bob's voice.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("Invalid JSON body")
		return
	}

	if err := validate.Struct(req); err != nil {
		rw.ValidationError("Invalid chat request", err.Error())
		return
	}

	reply, err := h.agent.HandleChat(r.Context(), req.Username, req.Message)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("chat handling failed")
		rw.InternalError("Failed to process message")
		return
	}

	rw.Success(ChatResponse{Reply: reply})
}

// RecommendationsResponse is returned by the user recommendations endpoint.
type RecommendationsResponse struct {
	Username string                `json:"username"`
	Results  []models.RankedResult `json:"results"`
	Count    int                   `json:"count"`
}

// UserRecommendations returns scored catalog bottles for a BAXUS user's
// taste profile. An empty result set means the user has no collection.
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	username := chi.URLParam(r, "username")
	if username == "" {
		rw.BadRequest("Username is required")
		return
	}

	topN := queryInt(r, "k", 0)

	results, err := h.agent.RecommendForUser(r.Context(), username, topN)
	if err != nil {
		rw.ExternalServiceError("baxus", err)
		return
	}
	if results == nil {
		results = []models.RankedResult{}
	}

	rw.Success(RecommendationsResponse{
		Username: username,
		Results:  results,
		Count:    len(results),
	})
}

// SimilarResponse is returned by the similar bottles endpoint.
type SimilarResponse struct {
	Target  models.BottleRecord   `json:"target"`
	Results []models.RankedResult `json:"results"`
	Count   int                   `json:"count"`
}

// SimilarBottles returns catalog bottles similar to the named one.
func (h *Handler) SimilarBottles(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	name := r.URL.Query().Get("name")
	if name == "" {
		rw.BadRequest("Query parameter 'name' is required")
		return
	}

	topN := queryInt(r, "k", 0)

	target, results, err := h.agent.SimilarBottles(name, topN)
	if errors.Is(err, agent.ErrUnknownBottle) {
		rw.NotFound("No bottle matching '" + name + "' in the catalog")
		return
	}
	if err != nil {
		rw.InternalError("Failed to find similar bottles")
		return
	}
	if results == nil {
		results = []models.RankedResult{}
	}

	rw.Success(SimilarResponse{
		Target:  target,
		Results: results,
		Count:   len(results),
	})
}

// BottleByID returns a single catalog bottle.
func (h *Handler) BottleByID(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		rw.BadRequest("Bottle ID must be a positive integer")
		return
	}

	bottle, ok := h.agent.Bottle(id)
	if !ok {
		rw.NotFound("Bottle not found")
		return
	}

	rw.Success(bottle)
}

// CollectionAnalysis summarizes a BAXUS user's collection. A zero
// bottle count indicates the user has no (reachable) collection.
func (h *Handler) CollectionAnalysis(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	username := chi.URLParam(r, "username")
	if username == "" {
		rw.BadRequest("Username is required")
		return
	}

	analysis, err := h.agent.AnalyzeUser(r.Context(), username)
	if err != nil {
		rw.ExternalServiceError("baxus", err)
		return
	}

	rw.Success(analysis)
}

// WebSocket upgrades the connection and registers the client with the hub.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := websocket.NewClient(h.hub, conn)
	h.hub.Register <- client
	client.Start()
}

// queryInt parses an integer query parameter, returning def when absent
// or malformed.
func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
