// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

// Package websocket provides the realtime chat transport for Bob. Clients
// connect, optionally register a BAXUS username, and exchange chat messages
// that are answered by the agent. The hub also supports broadcasting service
// events (such as catalog reloads) to every connected client.
package websocket

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BAXUSNFT/bob/internal/logging"
	"github.com/BAXUSNFT/bob/internal/metrics"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled indicates the parent context was canceled.
	// This is the normal graceful shutdown path (e.g., SIGTERM).
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline indicates the context deadline was exceeded.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types for WebSocket communication
const (
	MessageTypeWelcome       = "welcome"
	MessageTypeRegister      = "register"
	MessageTypeRegistered    = "registered"
	MessageTypeChat          = "chat"
	MessageTypeResponse      = "response"
	MessageTypeError         = "error"
	MessageTypePing          = "ping"
	MessageTypePong          = "pong"
	MessageTypeCatalogReload = "catalog_reload"
)

// welcomeText is sent to every client immediately after it connects.
const welcomeText = "Hey there! I'm Bob, your whiskey expert. Ask me about bottles, get recommendations, or have me analyze your collection!"

// Message represents a WebSocket message in either direction.
// Clients send {type: "chat", message: "..."} and {type: "register",
// username: "..."}; the server replies with response, registered, or
// error messages and may attach structured data.
type Message struct {
	Type     string      `json:"type"`
	Message  string      `json:"message,omitempty"`
	Username string      `json:"username,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}

// ChatHandler answers a chat message from a connected client. The username
// is the client's registered BAXUS username, or empty if none was registered.
type ChatHandler interface {
	HandleChat(ctx context.Context, username, message string) (string, error)
}

// Hub maintains the set of active clients, answers their chat messages
// through the handler, and broadcasts service events to all clients.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	handler    ChatHandler
	mu         sync.RWMutex
}

// NewHub creates a new Hub. The handler answers chat messages; it may be
// nil, in which case chat messages receive an error reply.
func NewHub(handler ChatHandler) *Hub {
	return &Hub{
		broadcast:  make(chan Message, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		handler:    handler,
	}
}

// RunWithContext starts the hub with context support for graceful shutdown.
//
// When the context is canceled:
//  1. All connected clients are gracefully closed
//  2. The method returns ctx.Err()
//
// DETERMINISM: Uses priority-based selection to ensure predictable behavior:
// - Priority 1: Context cancellation (shutdown)
// - Priority 2: Client lifecycle events (Register/Unregister)
// - Priority 3: Broadcast messages
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		// Priority 1: Check for shutdown (highest priority, non-blocking)
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
			// Context not canceled, continue
		}

		// Priority 2: Handle client lifecycle events (non-blocking check)
		select {
		case client := <-h.Register:
			h.registerClient(client)
			continue
		case client := <-h.Unregister:
			h.unregisterClient(client)
			continue
		default:
			// No lifecycle events pending
		}

		// Priority 3: Handle broadcast messages or wait for any event (blocking)
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WebsocketClients.Inc()
	logging.Info().Int("total_clients", total).Msg("websocket client connected")

	// Greet the new client so the UI has something to show immediately.
	welcome := Message{
		Type:    MessageTypeWelcome,
		Message: welcomeText,
	}
	select {
	case client.send <- welcome:
	default:
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.closeSend()
		metrics.WebsocketClients.Dec()
	}
	total := len(h.clients)
	h.mu.Unlock()
	logging.Info().Int("total_clients", total).Msg("websocket client disconnected")
}

// logGracefulShutdown closes all connected clients and logs structured
// shutdown information. Context cancellation is expected behavior during
// graceful shutdown, so it is not logged as an error.
func (h *Hub) logGracefulShutdown(ctx context.Context) {
	clientCount := h.GetClientCount()

	h.closeAllClients()

	reason := getShutdownReason(ctx)

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(reason)).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

// getShutdownReason determines the shutdown reason from the context error.
func getShutdownReason(ctx context.Context) ShutdownReason {
	switch ctx.Err() {
	case context.Canceled:
		return ShutdownReasonContextCanceled
	case context.DeadlineExceeded:
		return ShutdownReasonContextDeadline
	default:
		return ShutdownReasonContextCanceled
	}
}

// broadcastToClients sends a message to all connected clients in a
// deterministic order.
// DETERMINISM: Sorts clients by ID to ensure consistent iteration order,
// which keeps message delivery reproducible in tests.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}

	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	// Track clients to remove (can't modify map during iteration)
	var toRemove []*Client

	for _, client := range clients {
		select {
		case client.send <- message:
			// Message sent successfully
		default:
			// Channel full or closed, mark for removal
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		client.closeSend()
		delete(h.clients, client)
		metrics.WebsocketClients.Dec()
	}
}

// closeAllClients gracefully closes all connected WebSocket clients.
// DETERMINISM: Closes clients in ID order for consistent shutdown behavior.
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	for _, client := range clients {
		client.closeSend()
		delete(h.clients, client)
		metrics.WebsocketClients.Dec()
	}
	logging.Info().Msg("closed all websocket clients during shutdown")
}

// CatalogReloadData represents data sent with catalog_reload messages.
type CatalogReloadData struct {
	Timestamp string `json:"timestamp"`
	Bottles   int    `json:"bottles"`
}

// BroadcastCatalogReload notifies all clients that the bottle catalog
// was reloaded.
func (h *Hub) BroadcastCatalogReload(bottles int) {
	message := Message{
		Type: MessageTypeCatalogReload,
		Data: CatalogReloadData{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Bottles:   bottles,
		},
	}

	select {
	case h.broadcast <- message:
		logging.Info().Int("clients", h.GetClientCount()).Int("bottles", bottles).Msg("broadcast catalog_reload")
	default:
		logging.Warn().Msg("broadcast channel full, dropping catalog_reload message")
	}
}

// BroadcastJSON sends a typed message with arbitrary data to all clients.
func (h *Hub) BroadcastJSON(messageType string, data interface{}) {
	message := Message{
		Type: messageType,
		Data: data,
	}

	select {
	case h.broadcast <- message:
	default:
		logging.Warn().Str("message_type", messageType).Msg("broadcast channel full, dropping JSON message")
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
