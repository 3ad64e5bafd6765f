package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gofiber/contrib/websocket"
)

// Client is a connected websocket peer; *websocket.Conn satisfies it.
type Client interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type Hub struct {
	clients    map[Client]bool
	Register   chan Client
	Unregister chan Client
	Broadcast  chan []byte

	done chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[Client]bool),
		Register:   make(chan Client),
		Unregister: make(chan Client),
		Broadcast:  make(chan []byte, 16),
		done:       make(chan struct{}),
	}
}

// Run owns the client set until ctx is cancelled. It must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			return

		case conn := <-h.Register:
			h.clients[conn] = true
			log.Println("New WS Client Connected")

		case conn := <-h.Unregister:
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}

		case message := <-h.Broadcast:
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
		}
	}
}

// Join registers conn; it is a no-op once Run has returned.
func (h *Hub) Join(conn Client) {
	select {
	case h.Register <- conn:
	case <-h.done:
	}
}

// Leave unregisters conn; it is a no-op once Run has returned.
func (h *Hub) Leave(conn Client) {
	select {
	case h.Unregister <- conn:
	case <-h.done:
	}
}

// Publish marshals event and hands it to Run. Events from one caller are
// delivered in order; after Run has returned they are dropped.
func (h *Hub) Publish(event any) {
	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("ws: marshal event: %v", err)
		return
	}
	select {
	case h.Broadcast <- msg:
	case <-h.done:
	}
}
