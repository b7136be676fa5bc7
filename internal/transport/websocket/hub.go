// Package websocket
package websocket

import (
	"context"
	"encoding/json"

	"netspeed-monitor/internal/domain"
	"netspeed-monitor/internal/logger"
)

const EventRateUpdated = "rate.updated"

type Event struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Hub fans readings out to websocket clients. All client bookkeeping happens
// on the Run goroutine.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	readings   chan domain.Reading
	done       chan struct{}

	latest    domain.Reading
	hasLatest bool

	log logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]bool),

		register:   make(chan *Client),
		unregister: make(chan *Client),
		readings:   make(chan domain.Reading, 16),
		done:       make(chan struct{}),

		log: log,
	}
}

func (h *Hub) Run(ctx context.Context) error {
	defer func() {
		for client := range h.clients {
			delete(h.clients, client)
			close(client.send)
		}
		close(h.done)
	}()

	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.log.Info("ws: client registered", "id", client.ID, "total_clients", len(h.clients))

			if h.hasLatest {
				h.sendTo(client, h.latest)
			}

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.log.Info("ws: client unregistered", "id", client.ID, "total_clients", len(h.clients))
			}

		case r := <-h.readings:
			h.latest = r
			h.hasLatest = true
			for client := range h.clients {
				h.sendTo(client, r)
			}

		case <-ctx.Done():
			return nil
		}
	}
}

// Present hands a reading to the hub without blocking the caller.
func (h *Hub) Present(r domain.Reading) {
	select {
	case h.readings <- r:
	default:
		h.log.Warn("ws: reading buffer full, dropping update")
	}
}

func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) sendTo(client *Client, r domain.Reading) {
	message, err := json.Marshal(Event{Event: EventRateUpdated, Payload: r})
	if err != nil {
		h.log.Error("ws: failed to marshal reading", "error", err)
		return
	}

	select {
	case client.send <- message:
	default:
		h.log.Warn("ws: client channel full, force unregister", "id", client.ID)
		delete(h.clients, client)
		close(client.send)
	}
}
