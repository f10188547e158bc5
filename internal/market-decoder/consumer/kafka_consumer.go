package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/exchange-market-data/internal/market-decoder/decoder"
	"github.com/radieske/exchange-market-data/pkg/contracts/events"
)

// MessageReader é satisfeito por *kafka.Reader
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// SnapshotCache guarda o último snapshot decodificado
type SnapshotCache interface {
	SetSnapshot(ctx context.Context, ev events.MarketDataDecoded) error
}

// Publisher envia um valor serializado em JSON com a chave informada
type Publisher interface {
	Publish(ctx context.Context, key string, v any) error
}

// Processor consome payloads compactos do Kafka, decodifica, atualiza o cache
// e publica o snapshot. Falhas de decodificação vão para a DLQ.
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa
type Processor struct {
	Log    *zap.Logger
	Reader MessageReader
	Cache  SnapshotCache
	Out    Publisher // tópico de snapshots decodificados
	DLQ    Publisher // opcional

	OnConsumed  func()                                                    // métricas (counter++)
	OnDecoded   func(kind, segment string, took time.Duration, err error) // métricas
	OnPublished func()                                                    // métricas
	OnError     func(string)                                              // métricas por fase

	// Após publicar no Kafka, envia o snapshot para o WebSocket via Redis Pub/Sub
	OnAfterPublish func(ev events.MarketDataDecoded)

	Now func() time.Time
}

// Run inicia o loop principal de consumo até o contexto ser cancelado
func (p *Processor) Run(ctx context.Context) error {
	for {
		m, err := p.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			p.onError("read")
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if p.OnConsumed != nil {
			p.OnConsumed()
		}

		p.Handle(ctx, m.Value)
	}
}

// Handle processa uma mensagem. Nunca retorna erro: cada falha é registrada,
// contada e, quando o payload é inválido, enviada para a DLQ.
func (p *Processor) Handle(ctx context.Context, value []byte) {
	var payload events.CompactPayload
	if err := json.Unmarshal(value, &payload); err != nil {
		p.Log.Warn("invalid message", zap.Error(err))
		p.onError("unmarshal")
		p.deadLetter(ctx, events.CompactPayload{Data: string(value)}, err)
		return
	}

	start := p.now()
	ev, err := decoder.Decode(payload, start)
	if p.OnDecoded != nil {
		p.OnDecoded(string(payload.Kind), decoder.Segment(err), p.now().Sub(start), err)
	}
	if err != nil {
		p.Log.Warn("decode failed",
			zap.String("payload_id", payload.ID),
			zap.String("kind", string(payload.Kind)),
			zap.Int64("market_id", payload.MarketID),
			zap.Error(err),
		)
		p.deadLetter(ctx, payload, err)
		return
	}

	// Atualiza cache Redis com o snapshot atual
	if err := p.Cache.SetSnapshot(ctx, ev); err != nil {
		p.Log.Warn("redis set failed", zap.Error(err))
		p.onError("cache")
		// não bloqueia a publicação se falhar o cache
	}

	if err := p.Out.Publish(ctx, decoder.Key(ev.Kind, ev.MarketID), ev); err != nil {
		p.Log.Warn("publish decoded failed", zap.String("payload_id", payload.ID), zap.Error(err))
		p.onError("publish")
		return
	}
	if p.OnPublished != nil {
		p.OnPublished()
	}
	if p.OnAfterPublish != nil {
		p.OnAfterPublish(ev)
	}

	p.Log.Debug("payload decoded",
		zap.String("payload_id", payload.ID),
		zap.String("kind", string(ev.Kind)),
		zap.Int64("market_id", ev.MarketID),
	)
}

func (p *Processor) deadLetter(ctx context.Context, payload events.CompactPayload, cause error) {
	if p.DLQ == nil {
		return
	}
	f := decoder.Failure(payload, cause, p.now())
	if err := p.DLQ.Publish(ctx, decoder.Key(payload.Kind, payload.MarketID), f); err != nil {
		p.Log.Error("dlq publish failed", zap.Error(err))
		p.onError("dlq")
	}
}

func (p *Processor) onError(stage string) {
	if p.OnError != nil {
		p.OnError(stage)
	}
}

func (p *Processor) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
