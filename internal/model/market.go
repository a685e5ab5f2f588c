package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Timeframe is the sampling interval of a bar series.
type Timeframe string

const (
	Timeframe1m  Timeframe = "1m"
	Timeframe5m  Timeframe = "5m"
	Timeframe15m Timeframe = "15m"
)

// MarketData holds the three intraday series the engine works on.
// Each series is ordered by strictly increasing time.
type MarketData struct {
	Symbol    string
	Bars1m    []OHLCV // latest trading day
	Bars5m    []OHLCV // trailing 5 days
	Bars15m   []OHLCV // trailing 5 days
	FetchedAt time.Time
}

// Series returns the bars of the given timeframe.
func (d *MarketData) Series(tf Timeframe) []OHLCV {
	switch tf {
	case Timeframe1m:
		return d.Bars1m
	case Timeframe5m:
		return d.Bars5m
	case Timeframe15m:
		return d.Bars15m
	}
	return nil
}
