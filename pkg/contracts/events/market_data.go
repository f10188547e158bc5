package events

import (
	"time"

	"github.com/radieske/exchange-market-data/pkg/contracts/markets"
)

// Evento publicado no tópico "exchange_market_data" após decodificar um CompactPayload.
// Apenas um dos campos Markets/Prices/Complete vem preenchido, conforme Kind.
type MarketDataDecoded struct {
	PayloadID string                        `json:"payloadId"`
	Kind      PayloadKind                   `json:"kind"`
	MarketID  int64                         `json:"marketId,omitempty"`
	Markets   []markets.Market              `json:"markets,omitempty"`
	Prices    *markets.MarketPrices         `json:"prices,omitempty"`
	Complete  *markets.CompleteMarketPrices `json:"complete,omitempty"`
	DecodedAt time.Time                     `json:"decodedAt"`
}

// Evento enviado para a DLQ quando o payload não pôde ser decodificado
type DecodeFailure struct {
	Payload  CompactPayload `json:"payload"`
	Segment  string         `json:"segment,omitempty"` // market | header | runner | ...
	Index    int            `json:"index"`
	Level    int            `json:"level"`
	Field    string         `json:"field,omitempty"`
	Reason   string         `json:"reason"`
	FailedAt time.Time      `json:"failedAt"`
}
