// Package result turns engine output into the externally visible record.
package result

import (
	"math"
	"time"

	"NiftyPulse/internal/model"
)

// maxRounded bounds the magnitudes Round2 touches. Above it float64 has no
// cent resolution left and v*100 can overflow.
const maxRounded = 1e15

// Round2 rounds v to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	if math.Abs(v) >= maxRounded {
		return v
	}
	return math.Round(v*100) / 100
}

// Sanitize maps NaN and infinite values to nil and rounds everything else
// to 2 decimal places.
func Sanitize(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	r := Round2(v)
	if math.IsInf(r, 0) {
		return nil
	}
	return &r
}

// Build assembles the record from the snapshot, its classification and the signal.
func Build(snap *model.IndicatorSnapshot, cls model.Classification, sig model.TradeSignal, now time.Time) *model.ResultRecord {
	return &model.ResultRecord{
		Price:   Sanitize(snap.Price),
		DayHigh: Sanitize(snap.DayHigh),
		DayLow:  Sanitize(snap.DayLow),

		VWAP: Sanitize(snap.VWAP),
		ATR:  Sanitize(snap.ATR),

		EMA9_15m:  Sanitize(snap.EMA9_15m),
		EMA20_15m: Sanitize(snap.EMA20_15m),
		EMA9_5m:   Sanitize(snap.EMA9_5m),
		EMA20_5m:  Sanitize(snap.EMA20_5m),
		EMA9_1m:   Sanitize(snap.EMA9_1m),
		EMA20_1m:  Sanitize(snap.EMA20_1m),

		Bias:      cls.Bias,
		Structure: cls.Structure,

		Signal:   sig.Action,
		Reason:   sig.Reason,
		Stoploss: Sanitize(sig.Stoploss),
		Target:   Sanitize(sig.Target),

		Time: now,
	}
}
