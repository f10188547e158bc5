package compact

import (
	"github.com/shopspring/decimal"

	"github.com/radieske/exchange-market-data/pkg/contracts/markets"
)

type (
	completePrices = markets.CompleteMarketPrices
	completeRunner = markets.CompleteRunnerPrice
	depthLevel     = markets.DepthLevel
)

// completeHeaderSchema: "marketId~delay~removedRunners"
var completeHeaderSchema = []column[completePrices]{
	intCol("marketId", func(cp *completePrices, v int64) { cp.MarketID = v }),
	intCol("delay", func(cp *completePrices, v int64) { cp.Delay = v }),
	{name: "removedRunners", set: func(cp *completePrices, raw string) error {
		rr, err := decodeRemovedRunners(raw)
		cp.RemovedRunners = rr
		return err
	}},
}

// completeRunnerSchema: como o runner compacto, com asianLineId entre vacant e farBSP
var completeRunnerSchema = []column[completeRunner]{
	intCol("selectionId", func(r *completeRunner, v int64) { r.SelectionID = v }),
	intCol("sortOrder", func(r *completeRunner, v int64) { r.SortOrder = v }),
	amountCol("totalAmountMatched", func(r *completeRunner, v decimal.Decimal) { r.TotalAmountMatched = v }),
	decimalCol("lastPriceMatched", func(r *completeRunner, v decimal.Decimal) { r.LastPriceMatched = v }),
	decimalCol("handicap", func(r *completeRunner, v decimal.Decimal) { r.Handicap = v }),
	decimalCol("reductionFactor", func(r *completeRunner, v decimal.Decimal) { r.ReductionFactor = v }),
	boolCol("vacant", func(r *completeRunner, v bool) { r.Vacant = v }),
	intCol("asianLineId", func(r *completeRunner, v int64) { r.AsianLineID = v }),
	decimalCol("farBSP", func(r *completeRunner, v decimal.Decimal) { r.FarBSP = v }),
	decimalCol("nearBSP", func(r *completeRunner, v decimal.Decimal) { r.NearBSP = v }),
	decimalCol("actualBSP", func(r *completeRunner, v decimal.Decimal) { r.ActualBSP = v }),
}

// depthLevelSchema: "price~backAmount~layAmount~bspLayAmount~bspBackAmount"
var depthLevelSchema = []column[depthLevel]{
	priceCol("price", func(l *depthLevel, v decimal.Decimal) { l.Price = v }),
	amountCol("backAmount", func(l *depthLevel, v decimal.Decimal) { l.BackAmount = v }),
	amountCol("layAmount", func(l *depthLevel, v decimal.Decimal) { l.LayAmount = v }),
	amountCol("bspLayAmount", func(l *depthLevel, v decimal.Decimal) { l.BSPLayAmount = v }),
	amountCol("bspBackAmount", func(l *depthLevel, v decimal.Decimal) { l.BSPBackAmount = v }),
}

// DecodeCompleteMarketPrices decodifica a variante de profundidade completa do livro
func DecodeCompleteMarketPrices(data string) (*markets.CompleteMarketPrices, error) {
	data = trimLine(data)
	if data == "" {
		return nil, ErrEmptyInput
	}

	segments := Split(data, recordSep)

	cp := &markets.CompleteMarketPrices{}
	if err := decodeFields(Split(segments[0], fieldSep), completeHeaderSchema, at(SegmentHeader, -1), cp); err != nil {
		return nil, err
	}

	cp.Runners = make([]markets.CompleteRunnerPrice, 0, len(segments)-1)
	for i, seg := range segments[1:] {
		if seg == "" {
			continue
		}
		r, err := decodeCompleteRunner(seg, i)
		if err != nil {
			return nil, err
		}
		cp.Runners = append(cp.Runners, r)
	}
	return cp, nil
}

func decodeCompleteRunner(seg string, index int) (markets.CompleteRunnerPrice, error) {
	loc := at(SegmentRunner, index)
	parts := Split(seg, levelSep)

	r := markets.CompleteRunnerPrice{Depth: make([]markets.DepthLevel, 0, len(parts)-1)}
	if err := decodeFields(Split(parts[0], fieldSep), completeRunnerSchema, loc, &r); err != nil {
		return markets.CompleteRunnerPrice{}, err
	}
	for i, p := range parts[1:] {
		if p == "" {
			continue
		}
		var lvl markets.DepthLevel
		if err := decodeFields(Split(p, fieldSep), depthLevelSchema, loc.withLevel(SegmentDepthLevel, i), &lvl); err != nil {
			return markets.CompleteRunnerPrice{}, err
		}
		r.Depth = append(r.Depth, lvl)
	}
	return r, nil
}
