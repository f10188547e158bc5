package markets

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketStatus é o código de status informado pela exchange
type MarketStatus string

const (
	StatusActive    MarketStatus = "ACTIVE"
	StatusInactive  MarketStatus = "INACTIVE"
	StatusSuspended MarketStatus = "SUSPENDED"
	StatusClosed    MarketStatus = "CLOSED"
)

// Market representa um mercado retornado pela listagem compacta ("get all markets")
type Market struct {
	ID              int64           `json:"marketId"`
	Name            string          `json:"name"`
	Type            string          `json:"marketType"`
	Status          MarketStatus    `json:"marketStatus"`
	MarketTime      time.Time       `json:"marketTime"`
	MenuPath        string          `json:"menuPath"`
	EventHierarchy  []int64         `json:"eventHierarchy"` // categoria mais externa primeiro
	BetDelay        int64           `json:"betDelay"`       // segundos, in-play
	ExchangeID      int64           `json:"exchangeId"`
	CountryISO3     string          `json:"countryISO3"` // vazio = internacional
	LastRefresh     time.Time       `json:"lastRefresh"`
	NumberOfRunners int64           `json:"numberOfRunners"`
	NumberOfWinners int64           `json:"numberOfWinners"`
	MatchedSize     decimal.Decimal `json:"matchedSize"`
	BSPMarket       bool            `json:"bspMarket"`
	TurningInPlay   bool            `json:"turningInPlay"`
}

// International indica mercado sem país associado
func (m Market) International() bool { return m.CountryISO3 == "" }
