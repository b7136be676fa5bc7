package websocket

import (
	"net/http"
	"net/url"
	"slices"

	"github.com/gorilla/websocket"

	"netspeed-monitor/internal/logger"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      logger.Logger
}

// NewHandler accepts origins from allowedOrigins, or only same-host origins
// when the list is empty.
func NewHandler(hub *Hub, log logger.Logger, allowedOrigins []string) *Handler {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}

			if len(allowedOrigins) == 0 {
				u, err := url.Parse(origin)
				if err == nil && u.Host == r.Host {
					return true
				}
			} else if slices.Contains(allowedOrigins, origin) {
				return true
			}

			log.Warn("ws: origin rejected", "origin", origin)
			return false
		},
	}

	return &Handler{
		hub:      hub,
		upgrader: upgrader,
		log:      log,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws: upgrade failed", "error", err)
		return
	}

	client := NewClient(h.hub, conn, h.log)
	if !h.hub.Register(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.log.Info("ws: client connected", "id", client.ID, "remote_addr", conn.RemoteAddr())
}
