package model

import "time"

// Bias is the overall directional lean derived from the EMA20 trend anchors.
type Bias string

const (
	BiasBullish  Bias = "Bullish"
	BiasBearish  Bias = "Bearish"
	BiasSideways Bias = "Sideways"
)

// Structure is the price-channel state relative to the recent high/low channel.
type Structure string

const (
	StructureBreakout  Structure = "Breakout"
	StructureBreakdown Structure = "Breakdown"
	StructureRange     Structure = "Range"
)

// Action is the trade decision.
type Action string

const (
	ActionCall Action = "CALL"
	ActionPut  Action = "PUT"
	ActionWait Action = "WAIT"
)

// Classification pairs the bias and structure labels.
type Classification struct {
	Bias      Bias
	Structure Structure
}

// TradeSignal is the output of the signal engine.
// Stoploss and Target are NaN for WAIT, or when ATR is unavailable.
type TradeSignal struct {
	Action   Action
	Reason   string
	Stoploss float64
	Target   float64
}

// ResultRecord is the externally visible evaluation result.
// Nil numeric fields mean the value was unavailable.
type ResultRecord struct {
	Price   *float64 `json:"price"`
	DayHigh *float64 `json:"day_high"`
	DayLow  *float64 `json:"day_low"`

	VWAP *float64 `json:"vwap"`
	ATR  *float64 `json:"atr"`

	EMA9_15m  *float64 `json:"ema9_15m"`
	EMA20_15m *float64 `json:"ema20_15m"`
	EMA9_5m   *float64 `json:"ema9_5m"`
	EMA20_5m  *float64 `json:"ema20_5m"`
	EMA9_1m   *float64 `json:"ema9_1m"`
	EMA20_1m  *float64 `json:"ema20_1m"`

	Bias      Bias      `json:"bias"`
	Structure Structure `json:"structure"`

	Signal   Action   `json:"signal"`
	Reason   string   `json:"reason"`
	Stoploss *float64 `json:"stoploss"`
	Target   *float64 `json:"target"`

	Time time.Time `json:"time"`
}
