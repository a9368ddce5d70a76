// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

package websocket

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/BAXUSNFT/bob/internal/logging"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024 // 64 KB, plenty for chat messages

	// chatTimeout bounds a single chat turn, including the BAXUS
	// collection fetch and any LLM classification calls.
	chatTimeout = 30 * time.Second
)

// clientIDCounter generates unique, monotonically increasing IDs for clients.
// DETERMINISM: This ensures clients can be sorted in a consistent order for
// broadcast operations, eliminating non-deterministic map iteration order.
var clientIDCounter atomic.Uint64

// Client is a middleman between the websocket connection and the hub.
// It tracks the BAXUS username the client registered, if any, so that
// chat messages can be answered against that user's collection.
type Client struct {
	// id is a unique identifier for this client, used for deterministic ordering.
	id   uint64
	hub  *Hub
	conn *websocket.Conn

	// sendMu guards send against the hub closing it while an async chat
	// turn is still running; reply and closeSend synchronize on it so a
	// late reply is dropped instead of hitting a closed channel.
	sendMu sync.Mutex
	closed bool
	send   chan Message

	userMu   sync.RWMutex
	username string
}

// NewClient creates a new Client with a unique deterministic ID
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   clientIDCounter.Add(1),
		hub:  hub,
		conn: conn,
		send: make(chan Message, 256),
	}
}

// ID returns the client's unique identifier for deterministic ordering
func (c *Client) ID() uint64 {
	return c.id
}

// Username returns the BAXUS username the client registered, or "".
func (c *Client) Username() string {
	c.userMu.RLock()
	defer c.userMu.RUnlock()
	return c.username
}

func (c *Client) setUsername(username string) {
	c.userMu.Lock()
	c.username = username
	c.userMu.Unlock()
}

// readPump pumps messages from the websocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister <- c
		_ = c.conn.Close() // Explicitly ignore error - best-effort cleanup
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Error().Err(err).Msg("failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Error().Err(err).Msg("unexpected websocket close error")
			}
			break
		}

		switch msg.Type {
		case MessageTypePing:
			c.reply(Message{Type: MessageTypePong})

		case MessageTypeRegister:
			c.handleRegister(msg)

		case MessageTypeChat:
			// Answer asynchronously so a slow chat turn (collection
			// fetch, LLM call) does not block the read loop.
			go c.handleChat(msg)
		}
	}
}

// handleRegister binds a BAXUS username to this client for future chats.
func (c *Client) handleRegister(msg Message) {
	username := strings.TrimSpace(msg.Username)
	if username == "" {
		c.reply(Message{Type: MessageTypeError, Message: "A username is required to register"})
		return
	}

	c.setUsername(username)
	logging.Info().Uint64("client_id", c.id).Str("username", username).Msg("websocket client registered")
	c.reply(Message{
		Type:     MessageTypeRegistered,
		Username: username,
		Message:  "Got it! I'll keep " + username + "'s bar in mind.",
	})
}

// handleChat runs a full chat turn against the agent and sends the reply
// back to this client only.
func (c *Client) handleChat(msg Message) {
	message := strings.TrimSpace(msg.Message)
	if message == "" {
		c.reply(Message{Type: MessageTypeError, Message: "I didn't catch that. What would you like to know?"})
		return
	}

	if c.hub.handler == nil {
		c.reply(Message{Type: MessageTypeError, Message: "Error processing your message"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), chatTimeout)
	defer cancel()

	reply, err := c.hub.handler.HandleChat(ctx, c.Username(), message)
	if err != nil {
		logging.Error().Err(err).Uint64("client_id", c.id).Msg("websocket chat handling failed")
		c.reply(Message{Type: MessageTypeError, Message: "Error processing your message"})
		return
	}

	c.reply(Message{Type: MessageTypeResponse, Message: reply})
}

// reply queues a message for this client only, dropping it if the client
// is falling behind or already disconnected. Chat turns run asynchronously
// and may outlive the client, so the disconnected case is routine.
func (c *Client) reply(msg Message) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if c.closed {
		logging.Debug().Uint64("client_id", c.id).Str("message_type", msg.Type).Msg("client disconnected, dropping reply")
		return
	}

	select {
	case c.send <- msg:
	default:
		logging.Warn().Uint64("client_id", c.id).Str("message_type", msg.Type).Msg("client send buffer full, dropping message")
	}
}

// closeSend closes the send channel exactly once. All hub-side closes go
// through here so a concurrent reply can never race a bare close.
func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Explicitly ignore error - best-effort cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline")
				return
			}

			if !ok {
				// The hub closed the channel
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logging.Error().Err(err).Msg("failed to write close message")
				}
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				logging.Error().Err(err).Msg("failed to write JSON message")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline for ping")
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Start begins reading and writing for the client
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}
