package compact

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/radieske/exchange-market-data/pkg/contracts/markets"
)

type market = markets.Market

// marketSchema segue a ordem posicional do registro de mercado (16 campos)
var marketSchema = []column[market]{
	intCol("marketId", func(m *market, v int64) { m.ID = v }),
	textCol("name", func(m *market, v string) { m.Name = v }),
	rawCol("marketType", func(m *market, v string) { m.Type = v }),
	rawCol("marketStatus", func(m *market, v string) { m.Status = markets.MarketStatus(v) }),
	timeCol("marketTime", func(m *market, v time.Time) { m.MarketTime = v }),
	pathCol("menuPath", func(m *market, v string) { m.MenuPath = v }),
	{name: "eventHierarchy", set: setEventHierarchy},
	intCol("betDelay", func(m *market, v int64) { m.BetDelay = v }),
	intCol("exchangeId", func(m *market, v int64) { m.ExchangeID = v }),
	rawCol("countryISO3", func(m *market, v string) { m.CountryISO3 = v }),
	timeCol("lastRefresh", func(m *market, v time.Time) { m.LastRefresh = v }),
	countCol("numberOfRunners", 0, func(m *market, v int64) { m.NumberOfRunners = v }),
	countCol("numberOfWinners", 1, func(m *market, v int64) { m.NumberOfWinners = v }),
	amountCol("matchedSize", func(m *market, v decimal.Decimal) { m.MatchedSize = v }),
	boolCol("bspMarket", func(m *market, v bool) { m.BSPMarket = v }),
	boolCol("turningInPlay", func(m *market, v bool) { m.TurningInPlay = v }),
}

// setEventHierarchy lê "/1/23/" como [1 23]; tokens vazios das barras
// inicial/final são descartados
func setEventHierarchy(m *market, raw string) error {
	ids := make([]int64, 0, 4)
	for _, tok := range Split(raw, pathSep) {
		if tok == "" {
			continue
		}
		id, err := ToInt(tok)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: empty event hierarchy", ErrMalformedRecord)
	}
	m.EventHierarchy = ids
	return nil
}

// DecodeMarkets decodifica a listagem compacta de mercados.
// Registros vazios (ex.: ':' final) são ignorados; string vazia gera lista vazia.
func DecodeMarkets(batch string) ([]markets.Market, error) {
	records := Split(trimLine(batch), recordSep)

	out := make([]markets.Market, 0, len(records))
	for i, rec := range records {
		if rec == "" {
			continue
		}
		m, err := decodeMarket(rec, i)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func decodeMarket(rec string, index int) (markets.Market, error) {
	loc := at(SegmentMarket, index)

	var m markets.Market
	if err := decodeFields(Split(rec, fieldSep), marketSchema, loc, &m); err != nil {
		return markets.Market{}, err
	}
	if m.NumberOfWinners > m.NumberOfRunners {
		return markets.Market{}, loc.field("numberOfWinners", fmt.Sprint(m.NumberOfWinners),
			fmt.Errorf("%w: %d winners for %d runners", ErrMalformedRecord, m.NumberOfWinners, m.NumberOfRunners))
	}
	return m, nil
}
