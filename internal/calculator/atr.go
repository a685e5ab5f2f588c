package calculator

import (
	"math"

	"NiftyPulse/internal/model"
)

// DefaultATRPeriod is the ATR lookback used by the snapshot.
const DefaultATRPeriod = 14

// CalculateTrueRange returns max(high-low, |high-prevClose|, |low-prevClose|) per bar.
// The first bar has no previous close, so its true range is high-low.
func CalculateTrueRange(bars []model.OHLCV) []float64 {
	tr := make([]float64, len(bars))
	for i, b := range bars {
		r := b.High - b.Low
		if i > 0 {
			prevClose := bars[i-1].Close
			r = nanMax(r, math.Abs(b.High-prevClose))
			r = nanMax(r, math.Abs(b.Low-prevClose))
		}
		tr[i] = r
	}
	return tr
}

// CalculateATR returns the trailing simple average of true range over period bars.
// The first period-1 positions are NaN.
func CalculateATR(bars []model.OHLCV, period int) []float64 {
	return RollingMean(CalculateTrueRange(bars), period)
}

// nanMax returns the larger of a and b, ignoring a NaN operand.
func nanMax(a, b float64) float64 {
	switch {
	case math.IsNaN(a):
		return b
	case math.IsNaN(b):
		return a
	case b > a:
		return b
	}
	return a
}
