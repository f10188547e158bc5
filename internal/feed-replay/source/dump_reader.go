package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/radieske/exchange-market-data/pkg/compact"
	"github.com/radieske/exchange-market-data/pkg/contracts/events"
)

// linhas de "get all markets" passam de centenas de KB
const maxLine = 8 << 20

var ErrUnknownKind = errors.New("feed-replay: unknown payload kind")

// Publisher é o destino dos payloads lidos do dump
type Publisher interface {
	Publish(ctx context.Context, p events.CompactPayload) error
}

// DumpReader transforma cada linha de um arquivo .dump em um CompactPayload
type DumpReader struct {
	Kind     events.PayloadKind
	Source   string
	Interval time.Duration // pausa entre publicações (0 = sem pausa)

	Now   func() time.Time
	NewID func() string
}

// ParseKind valida o tipo configurado
func ParseKind(s string) (events.PayloadKind, error) {
	switch k := events.PayloadKind(strings.ToLower(s)); k {
	case events.KindMarkets, events.KindPrices, events.KindComplete:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Payload monta o envelope de uma linha. Para prices/complete o marketId vem
// do primeiro campo do cabeçalho.
func (d DumpReader) Payload(line string) (events.CompactPayload, error) {
	now, newID := d.Now, d.NewID
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}

	p := events.CompactPayload{
		ID:         newID(),
		Kind:       d.Kind,
		Data:       line,
		Source:     d.Source,
		ReceivedAt: now().UTC(),
	}

	switch d.Kind {
	case events.KindMarkets:
	case events.KindPrices, events.KindComplete:
		id, err := compact.ToInt(compact.Split(line, '~')[0])
		if err != nil {
			return events.CompactPayload{}, fmt.Errorf("market id: %w", err)
		}
		p.MarketID = id
	default:
		return events.CompactPayload{}, fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
	}
	return p, nil
}

// Replay lê o dump linha a linha e publica cada payload. Linhas em branco são
// ignoradas. Retorna quantos payloads foram publicados.
func (d DumpReader) Replay(ctx context.Context, r io.Reader, pub Publisher) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	n, lineNo := 0, 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		p, err := d.Payload(line)
		if err != nil {
			return n, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := pub.Publish(ctx, p); err != nil {
			return n, fmt.Errorf("line %d: publish: %w", lineNo, err)
		}
		n++

		if d.Interval > 0 {
			select {
			case <-ctx.Done():
				return n, ctx.Err()
			case <-time.After(d.Interval):
			}
		} else if err := ctx.Err(); err != nil {
			return n, err
		}
	}
	if err := sc.Err(); err != nil {
		return n, fmt.Errorf("read dump: %w", err)
	}
	return n, nil
}
