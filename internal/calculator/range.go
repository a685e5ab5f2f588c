package calculator

import (
	"errors"
	"math"

	talib "github.com/markcheno/go-talib"

	"NiftyPulse/internal/model"
)

// DefaultChannelWindow is the number of 5m bars in the structure channel.
const DefaultChannelWindow = 10

// CalculateRollingMax returns the trailing maximum over window values.
// Positions before the window fills, or whose window holds a NaN, are NaN.
func CalculateRollingMax(values []float64, window int) []float64 {
	return channel(values, window, talib.Max)
}

// CalculateRollingMin returns the trailing minimum over window values.
func CalculateRollingMin(values []float64, window int) []float64 {
	return channel(values, window, talib.Min)
}

// channel runs a talib extreme and masks the slots talib zero-fills or
// computes across a NaN.
func channel(values []float64, window int, extreme func([]float64, int) []float64) []float64 {
	out := make([]float64, len(values))
	if window < 1 || len(values) < window {
		fillNaN(out)
		return out
	}
	if window == 1 {
		copy(out, values)
		return out
	}
	copy(out, extreme(values, window))

	nans := 0
	for i, v := range values {
		if math.IsNaN(v) {
			nans++
		}
		if i >= window && math.IsNaN(values[i-window]) {
			nans--
		}
		if i+1 < window || nans > 0 {
			out[i] = math.NaN()
		}
	}
	return out
}

// CalculateDayRange returns the highest high and lowest low across bars.
func CalculateDayRange(bars []model.OHLCV) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	if math.IsInf(high, -1) {
		high = math.NaN()
	}
	if math.IsInf(low, 1) {
		low = math.NaN()
	}
	return high, low, nil
}
