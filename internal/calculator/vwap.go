package calculator

import (
	"math"

	"NiftyPulse/internal/model"
)

// CalculateVWAP returns the cumulative volume-weighted average close from the
// first bar onward. It does not reset at session boundaries, so callers pass a
// single session. Positions with zero cumulative volume are NaN.
func CalculateVWAP(bars []model.OHLCV) []float64 {
	out := make([]float64, len(bars))
	var pv, vol float64
	for i, b := range bars {
		if !math.IsNaN(b.Close) && !math.IsNaN(b.Volume) {
			pv += b.Close * b.Volume
			vol += b.Volume
		}
		if vol == 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = pv / vol
	}
	return out
}
