package topics

const (
	// Payloads compactos já obtidos da exchange (entrada do decoder)
	CompactPayloads = "exchange_compact_payloads"

	// Snapshots decodificados
	MarketData = "exchange_market_data"

	// DLQ
	CompactPayloadsDLQ = "exchange_compact_payloads_dlq"
)
