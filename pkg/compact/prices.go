package compact

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/radieske/exchange-market-data/pkg/contracts/markets"
)

type (
	marketPrices  = markets.MarketPrices
	runnerPrice   = markets.RunnerPrice
	removedRunner = markets.RemovedRunner
)

// sidedLevel é o nível de preço ainda com o discriminador de lado
type sidedLevel struct {
	markets.PriceLevel
	side markets.Side
}

// headerSchema: cabeçalho do payload de preços (11 campos)
var headerSchema = []column[marketPrices]{
	intCol("marketId", func(mp *marketPrices, v int64) { mp.MarketID = v }),
	rawCol("currency", func(mp *marketPrices, v string) { mp.Currency = v }),
	rawCol("marketStatus", func(mp *marketPrices, v string) { mp.Status = markets.MarketStatus(v) }),
	intCol("delay", func(mp *marketPrices, v int64) { mp.Delay = v }),
	intCol("numberOfWinners", func(mp *marketPrices, v int64) { mp.NumberOfWinners = v }),
	textCol("marketInfo", func(mp *marketPrices, v string) { mp.MarketInfo = v }),
	boolCol("discountAllowed", func(mp *marketPrices, v bool) { mp.DiscountAllowed = v }),
	decimalCol("marketBaseRate", func(mp *marketPrices, v decimal.Decimal) { mp.MarketBaseRate = v }),
	timeCol("lastRefresh", func(mp *marketPrices, v time.Time) { mp.LastRefresh = v }),
	{name: "removedRunners", set: func(mp *marketPrices, raw string) error {
		rr, err := decodeRemovedRunners(raw)
		mp.RemovedRunners = rr
		return err
	}},
	boolCol("bspMarket", func(mp *marketPrices, v bool) { mp.BSPMarket = v }),
}

// removedRunnerSchema: "nome,timestamp,fator"
var removedRunnerSchema = []column[removedRunner]{
	textCol("selectionName", func(r *removedRunner, v string) { r.SelectionName = v }),
	timeCol("removedDate", func(r *removedRunner, v time.Time) { r.RemovedDate = v }),
	decimalCol("adjustmentFactor", func(r *removedRunner, v decimal.Decimal) { r.AdjustmentFactor = v }),
}

// runnerSchema: dados escalares do runner no formato compacto (10 campos, sem asianLineId)
var runnerSchema = []column[runnerPrice]{
	intCol("selectionId", func(rp *runnerPrice, v int64) { rp.SelectionID = v }),
	intCol("sortOrder", func(rp *runnerPrice, v int64) { rp.SortOrder = v }),
	amountCol("totalAmountMatched", func(rp *runnerPrice, v decimal.Decimal) { rp.TotalAmountMatched = v }),
	decimalCol("lastPriceMatched", func(rp *runnerPrice, v decimal.Decimal) { rp.LastPriceMatched = v }),
	decimalCol("handicap", func(rp *runnerPrice, v decimal.Decimal) { rp.Handicap = v }),
	decimalCol("reductionFactor", func(rp *runnerPrice, v decimal.Decimal) { rp.ReductionFactor = v }),
	boolCol("vacant", func(rp *runnerPrice, v bool) { rp.Vacant = v }),
	decimalCol("farBSP", func(rp *runnerPrice, v decimal.Decimal) { rp.FarBSP = v }),
	decimalCol("nearBSP", func(rp *runnerPrice, v decimal.Decimal) { rp.NearBSP = v }),
	decimalCol("actualBSP", func(rp *runnerPrice, v decimal.Decimal) { rp.ActualBSP = v }),
}

// priceLevelSchema: "price~amountAvailable~side~bspLayLiability~bspBackerStakeVolume"
var priceLevelSchema = []column[sidedLevel]{
	priceCol("price", func(l *sidedLevel, v decimal.Decimal) { l.Price = v }),
	amountCol("amountAvailable", func(l *sidedLevel, v decimal.Decimal) { l.AmountAvailable = v }),
	{name: "side", set: func(l *sidedLevel, raw string) error {
		switch s := markets.Side(raw); s {
		case markets.SideBack, markets.SideLay:
			l.side = s
			return nil
		}
		return invalidScalar(raw)
	}},
	amountCol("bspLayLiability", func(l *sidedLevel, v decimal.Decimal) { l.BSPLayLiability = v }),
	amountCol("bspBackerStakeVolume", func(l *sidedLevel, v decimal.Decimal) { l.BSPBackerStakeVolume = v }),
}

// DecodeMarketPrices decodifica o payload de preços de um mercado:
// cabeçalho, seguido de zero ou mais runners separados por ':'.
// Sem runners o resultado traz RunnerPrices vazio.
func DecodeMarketPrices(data string) (*markets.MarketPrices, error) {
	data = trimLine(data)
	if data == "" {
		return nil, ErrEmptyInput
	}

	segments := Split(data, recordSep)

	mp := &markets.MarketPrices{}
	if err := decodeFields(Split(segments[0], fieldSep), headerSchema, at(SegmentHeader, -1), mp); err != nil {
		return nil, err
	}

	mp.RunnerPrices = make([]markets.RunnerPrice, 0, len(segments)-1)
	for i, seg := range segments[1:] {
		if seg == "" {
			continue
		}
		rp, err := decodeRunnerPrice(seg, i)
		if err != nil {
			return nil, err
		}
		mp.RunnerPrices = append(mp.RunnerPrices, rp)
	}
	return mp, nil
}

// decodeRemovedRunners lê o subcampo "a,ts,f;b,ts,f;". Registros vazios são descartados.
func decodeRemovedRunners(raw string) ([]markets.RemovedRunner, error) {
	records := Split(raw, removedSep)

	out := make([]markets.RemovedRunner, 0, len(records))
	for i, rec := range records {
		if rec == "" {
			continue
		}
		var rr markets.RemovedRunner
		if err := decodeFields(Split(rec, removedFld), removedRunnerSchema, at(SegmentRemovedRunner, i), &rr); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, nil
}

// decodeRunnerPrice lê "escalares|nível|nível...". Cada nível vai para a lista
// de back ou de lay conforme o discriminador, mantendo a ordem recebida.
func decodeRunnerPrice(seg string, index int) (markets.RunnerPrice, error) {
	loc := at(SegmentRunner, index)
	parts := Split(seg, levelSep)

	rp := markets.RunnerPrice{
		BestPricesToBack: []markets.PriceLevel{},
		BestPricesToLay:  []markets.PriceLevel{},
	}
	if err := decodeFields(Split(parts[0], fieldSep), runnerSchema, loc, &rp); err != nil {
		return markets.RunnerPrice{}, err
	}

	for i, p := range parts[1:] {
		if p == "" {
			continue
		}
		var lvl sidedLevel
		if err := decodeFields(Split(p, fieldSep), priceLevelSchema, loc.withLevel(SegmentPriceLevel, i), &lvl); err != nil {
			return markets.RunnerPrice{}, err
		}
		if lvl.side == markets.SideBack {
			rp.BestPricesToBack = append(rp.BestPricesToBack, lvl.PriceLevel)
		} else {
			rp.BestPricesToLay = append(rp.BestPricesToLay, lvl.PriceLevel)
		}
	}
	return rp, nil
}
