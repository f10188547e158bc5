package ws

import "encoding/json"

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: subscribe | unsubscribe | ping
// MarketID: obrigatório para subscribe/unsubscribe
type ClientMsg struct {
	Type     string `json:"type"`     // subscribe | unsubscribe | ping
	MarketID int64  `json:"marketId"` // requerido em subscribe/unsubscribe
}

// MarketUpdate é o snapshot repassado aos clientes inscritos no mercado.
// Payload segue cru (JSON publicado pelo market-decoder-worker).
type MarketUpdate struct {
	MarketID int64           `json:"marketId"`
	Kind     string          `json:"kind"`
	Payload  json.RawMessage `json:"payload"`
}
