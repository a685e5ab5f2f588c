package model

// IndicatorSnapshot holds the latest indicator values needed by the signal engine.
// A NaN field means the statistic had insufficient data.
type IndicatorSnapshot struct {
	Price   float64 // latest 1m close
	DayHigh float64
	DayLow  float64

	EMA9_1m   float64
	EMA20_1m  float64
	EMA9_5m   float64
	EMA20_5m  float64
	EMA9_15m  float64
	EMA20_15m float64

	VWAP float64 // 1m, cumulative over the supplied session
	ATR  float64 // 5m, ATR(14)

	// Rolling 10-bar channel on 5m highs/lows.
	ChannelHigh float64
	ChannelLow  float64
}
