package markets

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side identifica o lado de um nível de preço no payload compacto.
// Não é armazenado no PriceLevel: define apenas em qual lista o nível entra.
type Side string

const (
	SideBack Side = "B"
	SideLay  Side = "L"
)

// MarketPrices é o snapshot do livro de ofertas de um mercado
type MarketPrices struct {
	MarketID        int64           `json:"marketId"`
	Currency        string          `json:"currency"`
	Status          MarketStatus    `json:"marketStatus"`
	Delay           int64           `json:"delay"`
	NumberOfWinners int64           `json:"numberOfWinners"`
	MarketInfo      string          `json:"marketInfo"`
	DiscountAllowed bool            `json:"discountAllowed"`
	MarketBaseRate  decimal.Decimal `json:"marketBaseRate"`
	LastRefresh     time.Time       `json:"lastRefresh"`
	RemovedRunners  []RemovedRunner `json:"removedRunners"`
	BSPMarket       bool            `json:"bspMarket"`
	RunnerPrices    []RunnerPrice   `json:"runnerPrices"` // ordem da exchange
}

// Runner procura um runner pelo selectionId
func (mp *MarketPrices) Runner(selectionID int64) (RunnerPrice, bool) {
	for _, rp := range mp.RunnerPrices {
		if rp.SelectionID == selectionID {
			return rp, true
		}
	}
	return RunnerPrice{}, false
}

// RemovedRunner é um runner retirado do mercado
type RemovedRunner struct {
	SelectionName    string          `json:"selectionName"`
	RemovedDate      time.Time       `json:"removedDate"`
	AdjustmentFactor decimal.Decimal `json:"adjustmentFactor"`
}

// RunnerPrice agrupa os preços de um runner ativo
type RunnerPrice struct {
	SelectionID        int64           `json:"selectionId"`
	SortOrder          int64           `json:"sortOrder"`
	TotalAmountMatched decimal.Decimal `json:"totalAmountMatched"`
	LastPriceMatched   decimal.Decimal `json:"lastPriceMatched"`
	Handicap           decimal.Decimal `json:"handicap"`
	ReductionFactor    decimal.Decimal `json:"reductionFactor"`
	Vacant             bool            `json:"vacant"`
	FarBSP             decimal.Decimal `json:"farBSP"`
	NearBSP            decimal.Decimal `json:"nearBSP"`
	ActualBSP          decimal.Decimal `json:"actualBSP"`
	AsianLineID        *int64          `json:"asianLineId"` // nil no formato compacto
	BestPricesToBack   []PriceLevel    `json:"bestPricesToBack"`
	BestPricesToLay    []PriceLevel    `json:"bestPricesToLay"`
}

// BestBack retorna o primeiro nível disponível para back, na ordem recebida
func (rp RunnerPrice) BestBack() (PriceLevel, bool) {
	if len(rp.BestPricesToBack) == 0 {
		return PriceLevel{}, false
	}
	return rp.BestPricesToBack[0], true
}

// BestLay retorna o primeiro nível disponível para lay, na ordem recebida
func (rp RunnerPrice) BestLay() (PriceLevel, bool) {
	if len(rp.BestPricesToLay) == 0 {
		return PriceLevel{}, false
	}
	return rp.BestPricesToLay[0], true
}

// PriceLevel é um degrau da escada de preços
type PriceLevel struct {
	Price                decimal.Decimal `json:"price"`
	AmountAvailable      decimal.Decimal `json:"amountAvailable"`
	BSPLayLiability      decimal.Decimal `json:"bspLayLiability"`
	BSPBackerStakeVolume decimal.Decimal `json:"bspBackerStakeVolume"`
}
