package monitor

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	monitorservice "github.com/servicezone/concierge/internal/service/monitor"
)

// Handler streams conversation events to admin websocket clients.
type Handler struct {
	hub      *monitorservice.Hub
	upgrader websocket.Upgrader
}

// New creates the monitor handler.
func New(hub *monitorservice.Hub) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/monitor/ws", h.handleWebSocket)
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[monitor] websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, cancel := h.hub.Subscribe()
	defer cancel()

	// Drain client frames so pings and close messages are processed; the
	// feed is one-way.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	log.Printf("[monitor] client connected: %s", r.RemoteAddr)
	for event := range events {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("[monitor] client write failed: %v", err)
			return
		}
	}
}
