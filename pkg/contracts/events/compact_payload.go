package events

import "time"

// PayloadKind identifica qual chamada da exchange gerou o payload compacto
type PayloadKind string

const (
	KindMarkets  PayloadKind = "markets"  // "get all markets"
	KindPrices   PayloadKind = "prices"   // "get market prices" compactado
	KindComplete PayloadKind = "complete" // "get complete market prices" compactado
)

// Evento publicado no tópico "exchange_compact_payloads"
type CompactPayload struct {
	ID         string      `json:"id"`
	Kind       PayloadKind `json:"kind"`
	MarketID   int64       `json:"marketId,omitempty"` // vazio para KindMarkets
	Data       string      `json:"data"`               // texto compacto como recebido
	Source     string      `json:"source"`
	ReceivedAt time.Time   `json:"receivedAt"`
}
