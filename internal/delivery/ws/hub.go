package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/Vovarama1992/voicescribe/internal/ports"
	"github.com/gorilla/websocket"
)

// Hub держит открытые ws-соединения и рассылает им события о записях,
// чтобы фронт не перезапрашивал историю целиком.
type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]bool
}

func NewHub() *Hub {
	log.Printf("[hub] init")
	return &Hub{
		conns: make(map[*websocket.Conn]bool),
	}
}

func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.conns[conn] = true
	log.Printf("[hub] register conns=%d", len(h.conns))
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		conn.Close()
		log.Printf("[hub] unregister conns=%d", len(h.conns))
	}
}

func (h *Hub) Broadcast(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.conns) == 0 {
		return
	}

	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("[hub][SEND-ERR] err=%v", err)
		}
	}
}

// Publish реализует ports.EventSink: хаб сам и есть сток событий.
func (h *Hub) Publish(ev ports.RecordEvent) {
	msg, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[hub][PUBLISH-ERR] json marshal failed: %v", err)
		return
	}
	h.Broadcast(msg)
}

var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}
