package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// allMarkets é a assinatura coringa (marketId 0): recebe todos os snapshots,
// inclusive a listagem de mercados
const allMarkets int64 = 0

// Hub gerencia conexões WebSocket e assinaturas por mercado
// subs: mapeia marketID para o conjunto de conexões inscritas
type Hub struct {
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	// marketID -> set of connections
	subs map[int64]map[*websocket.Conn]struct{}
	// writeMu serializa escritas por conexão (gorilla não aceita writers concorrentes)
	writeMu sync.Mutex
}

// NewHub cria uma instância de Hub com política customizada de origem (CORS)
func NewHub(allowOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		subs:     make(map[int64]map[*websocket.Conn]struct{}),
	}
}

// HandleWS gerencia o ciclo de vida de uma conexão WebSocket
// Permite subscribe/unsubscribe em mercados e responde a pings
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		var msg ClientMsg
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}
		switch msg.Type {
		case "subscribe":
			h.subscribe(msg.MarketID, conn)
		case "unsubscribe":
			h.unsubscribe(msg.MarketID, conn)
		case "ping":
			h.writeMu.Lock()
			_ = conn.WriteJSON(map[string]string{"type": "pong"})
			h.writeMu.Unlock()
		}
	}
	// Remove a conexão de todas as assinaturas ao desconectar
	h.mu.Lock()
	for id, set := range h.subs {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.subs, id)
		}
	}
	h.mu.Unlock()
}

func (h *Hub) subscribe(marketID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[marketID]; !ok {
		h.subs[marketID] = make(map[*websocket.Conn]struct{})
	}
	h.subs[marketID][conn] = struct{}{}
}

func (h *Hub) unsubscribe(marketID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m, ok := h.subs[marketID]; ok {
		delete(m, conn)
		if len(m) == 0 {
			delete(h.subs, marketID)
		}
	}
}

// Subscribers retorna quantas conexões estão inscritas no mercado
func (h *Hub) Subscribers(marketID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[marketID])
}

// Broadcast envia o snapshot para os inscritos no mercado e para os inscritos em todos
func (h *Hub) Broadcast(update MarketUpdate) {
	// conexão inscrita no mercado e no coringa recebe uma única cópia
	h.mu.RLock()
	targets := make(map[*websocket.Conn]struct{}, len(h.subs[update.MarketID])+len(h.subs[allMarkets]))
	for c := range h.subs[update.MarketID] {
		targets[c] = struct{}{}
	}
	for c := range h.subs[allMarkets] {
		targets[c] = struct{}{}
	}
	h.mu.RUnlock()
	if len(targets) == 0 {
		return
	}

	b, _ := json.Marshal(update)
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	for c := range targets {
		_ = c.WriteMessage(websocket.TextMessage, b)
	}
}
