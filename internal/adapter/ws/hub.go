// Package ws streams facade events to browser clients over websockets.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/karl5252/beastbazaar/internal/app/ports"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 256
)

var ErrHubStopped = errors.New("ws hub stopped")

// Message is the envelope written to every client.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans published events out to connected clients. New clients receive
// the most recent game:state first.
type Hub struct {
	logger     *zap.Logger
	clients    map[*client]bool
	broadcast  chan outbound
	register   chan *client
	unregister chan *client
	done       chan struct{}
	lastState  []byte
	origin     string
	upgrader   websocket.Upgrader
}

type outbound struct {
	name string
	data []byte
}

// NewHub builds a hub that upgrades requests from allowOrigin only. An
// empty or "*" allowOrigin accepts any origin, matching the HTTP CORS
// setting.
func NewHub(logger *zap.Logger, allowOrigin string) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		logger:     logger,
		clients:    make(map[*client]bool),
		broadcast:  make(chan outbound, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		origin:     strings.TrimSpace(allowOrigin),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	if h.origin == "" || h.origin == "*" {
		return true
	}
	// non-browser clients send no Origin
	origin := r.Header.Get("Origin")
	if origin == "" || strings.EqualFold(origin, h.origin) {
		return true
	}
	h.logger.Warn("ws origin rejected", zap.String("origin", origin))
	return false
}

// Run blocks until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		for c := range h.clients {
			delete(h.clients, c)
			close(c.send)
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = true
			if h.lastState != nil {
				c.send <- h.lastState
			}
			h.logger.Debug("ws client registered", zap.Int("clients", len(h.clients)))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			if msg.name == ports.EventGameState {
				h.lastState = msg.data
			}
			for c := range h.clients {
				select {
				case c.send <- msg.data:
				default:
					h.logger.Warn("ws client too slow, dropping")
					close(c.send)
					delete(h.clients, c)
				}
			}
		}
	}
}

func (h *Hub) Publish(ctx context.Context, name string, payload any) error {
	data, err := json.Marshal(Message{Type: name, Payload: payload})
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	select {
	case h.broadcast <- outbound{name: name, data: data}:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ServeHTTP upgrades the request and attaches the connection to the hub.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	c := &client{hub: h, conn: conn, send: make(chan []byte, sendBufferSize)}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}

// readPump only watches for close and pong frames; clients never send
// commands over the socket.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("ws read failed", zap.Error(err))
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
