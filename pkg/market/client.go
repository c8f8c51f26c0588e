package market

import "context"

type Direction string

const (
	DirectionDesc Direction = "desc"
	DirectionAsc  Direction = "asc"
)

// Mover is one entry in a ranked listing: a ticker and its 24h move.
type Mover struct {
	Symbol    string
	ChangePct float64
}

// MarketClient is a quotes/listings provider. Symbols are passed through
// verbatim and must match the provider's ticker convention; every call is a
// single best-effort request with no retry or caching.
type MarketClient interface {
	Price(ctx context.Context, symbol string) (float64, error)
	MarketCap(ctx context.Context, symbol string) (float64, error)
	Volume24h(ctx context.Context, symbol string) (float64, error)
	TopMovers(ctx context.Context, dir Direction, limit int) ([]Mover, error)
	HistoricalPrice(ctx context.Context, symbol string) (float64, error)
}
