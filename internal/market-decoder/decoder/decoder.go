package decoder

import (
	"errors"
	"fmt"
	"time"

	"github.com/radieske/exchange-market-data/pkg/compact"
	"github.com/radieske/exchange-market-data/pkg/contracts/events"
)

var ErrUnknownKind = errors.New("unknown payload kind")

// Decode transforma um CompactPayload no snapshot decodificado correspondente
func Decode(p events.CompactPayload, now time.Time) (events.MarketDataDecoded, error) {
	out := events.MarketDataDecoded{
		PayloadID: p.ID,
		Kind:      p.Kind,
		MarketID:  p.MarketID,
		DecodedAt: now.UTC(),
	}

	switch p.Kind {
	case events.KindMarkets:
		ms, err := compact.DecodeMarkets(p.Data)
		if err != nil {
			return out, err
		}
		out.Markets = ms
	case events.KindPrices:
		mp, err := compact.DecodeMarketPrices(p.Data)
		if err != nil {
			return out, err
		}
		out.Prices = mp
		out.MarketID = mp.MarketID
	case events.KindComplete:
		cp, err := compact.DecodeCompleteMarketPrices(p.Data)
		if err != nil {
			return out, err
		}
		out.Complete = cp
		out.MarketID = cp.MarketID
	default:
		return out, fmt.Errorf("%w %q", ErrUnknownKind, p.Kind)
	}
	return out, nil
}

// Segment devolve o segmento do payload onde a falha ocorreu (vazio se não for DecodeError)
func Segment(err error) string {
	var de *compact.DecodeError
	if errors.As(err, &de) {
		return string(de.Segment)
	}
	return ""
}

// Failure monta o evento de DLQ com a localização da falha
func Failure(p events.CompactPayload, err error, now time.Time) events.DecodeFailure {
	f := events.DecodeFailure{
		Payload:  p,
		Index:    -1,
		Level:    -1,
		Reason:   err.Error(),
		FailedAt: now.UTC(),
	}

	var de *compact.DecodeError
	if errors.As(err, &de) {
		f.Segment = string(de.Segment)
		f.Index = de.Index
		f.Level = de.Level
		f.Field = de.Field
	}
	return f
}

// Key é a chave da mensagem Kafka: marketId quando existir, senão o kind
func Key(kind events.PayloadKind, marketID int64) string {
	if marketID != 0 {
		return fmt.Sprintf("%d", marketID)
	}
	return string(kind)
}
