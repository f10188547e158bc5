package markets

import "github.com/shopspring/decimal"

// CompleteMarketPrices é a variante detalhada do livro (profundidade completa),
// onde cada runner traz o asianLineId e uma escada única com os dois lados.
type CompleteMarketPrices struct {
	MarketID       int64                 `json:"marketId"`
	Delay          int64                 `json:"delay"`
	RemovedRunners []RemovedRunner       `json:"removedRunners"`
	Runners        []CompleteRunnerPrice `json:"runners"`
}

type CompleteRunnerPrice struct {
	SelectionID        int64           `json:"selectionId"`
	SortOrder          int64           `json:"sortOrder"`
	TotalAmountMatched decimal.Decimal `json:"totalAmountMatched"`
	LastPriceMatched   decimal.Decimal `json:"lastPriceMatched"`
	Handicap           decimal.Decimal `json:"handicap"`
	ReductionFactor    decimal.Decimal `json:"reductionFactor"`
	Vacant             bool            `json:"vacant"`
	AsianLineID        int64           `json:"asianLineId"`
	FarBSP             decimal.Decimal `json:"farBSP"`
	NearBSP            decimal.Decimal `json:"nearBSP"`
	ActualBSP          decimal.Decimal `json:"actualBSP"`
	Depth              []DepthLevel    `json:"depth"`
}

// DepthLevel é um preço da escada completa com os volumes dos dois lados
type DepthLevel struct {
	Price         decimal.Decimal `json:"price"`
	BackAmount    decimal.Decimal `json:"backAmount"`
	LayAmount     decimal.Decimal `json:"layAmount"`
	BSPLayAmount  decimal.Decimal `json:"bspLayAmount"`
	BSPBackAmount decimal.Decimal `json:"bspBackAmount"`
}
