package collector

import (
	"context"

	"NiftyPulse/internal/model"
)

// Fetcher defines the interface for fetching market data.
// rng is a lookback window such as "1d" or "5d".
type Fetcher interface {
	FetchBars(ctx context.Context, symbol string, tf model.Timeframe, rng string) ([]model.OHLCV, error)
	Name() string
}
