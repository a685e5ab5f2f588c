package calculator

import (
	"math"

	"NiftyPulse/internal/model"
)

// CalculateEMA returns the exponential moving average of values using
// alpha = 2/(period+1), seeded with the first value (no warm-up averaging).
// The result has the same length as values. A NaN input carries the previous
// average forward.
func CalculateEMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if period < 1 {
		fillNaN(out)
		return out
	}
	alpha := 2.0 / float64(period+1)
	prev := math.NaN()
	for i, v := range values {
		switch {
		case math.IsNaN(v):
			// keep prev
		case math.IsNaN(prev):
			prev = v
		default:
			prev = alpha*v + (1-alpha)*prev
		}
		out[i] = prev
	}
	return out
}

// RollingMean returns the trailing simple average over window values.
// Positions before the window fills, or whose window holds a NaN, are NaN.
func RollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window < 1 {
		fillNaN(out)
		return out
	}
	var sum float64
	nans := 0
	for i, v := range values {
		if math.IsNaN(v) {
			nans++
		} else {
			sum += v
		}
		if i >= window {
			old := values[i-window]
			if math.IsNaN(old) {
				nans--
			} else {
				sum -= old
			}
		}
		if i+1 < window || nans > 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(window)
	}
	return out
}

// Last returns the final element, or NaN when values is empty.
func Last(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return values[len(values)-1]
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

func extractHighs(bars []model.OHLCV) []float64 {
	highs := make([]float64, len(bars))
	for i, b := range bars {
		highs[i] = b.High
	}
	return highs
}

func extractLows(bars []model.OHLCV) []float64 {
	lows := make([]float64, len(bars))
	for i, b := range bars {
		lows[i] = b.Low
	}
	return lows
}

func fillNaN(out []float64) {
	for i := range out {
		out[i] = math.NaN()
	}
}
