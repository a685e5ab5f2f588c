package calculator

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NiftyPulse/internal/model"
)

func makeBars(closes []float64, volume float64) []model.OHLCV {
	start := time.Date(2026, 10, 16, 9, 15, 0, 0, time.UTC)
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   start.Add(time.Duration(i) * time.Minute),
			Open:   c,
			High:   c + 2,
			Low:    c - 2,
			Close:  c,
			Volume: volume,
		}
	}
	return bars
}

func ramp(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func TestCalculateEMA_SeededWithFirstValue(t *testing.T) {
	values := []float64{10, 11, 12, 13}
	ema := CalculateEMA(values, 3)

	require.Len(t, ema, len(values))
	assert.Equal(t, 10.0, ema[0])
	// alpha = 0.5
	assert.InDelta(t, 10.5, ema[1], 1e-9)
	assert.InDelta(t, 11.25, ema[2], 1e-9)
	assert.InDelta(t, 12.125, ema[3], 1e-9)
}

func TestCalculateEMA_ShortSeriesHasNoWarmupGap(t *testing.T) {
	ema := CalculateEMA([]float64{100, 102}, 20)
	for i, v := range ema {
		assert.False(t, math.IsNaN(v), "position %d should be defined", i)
	}
	assert.Equal(t, 100.0, ema[0])
}

func TestCalculateEMA_InvalidPeriod(t *testing.T) {
	ema := CalculateEMA([]float64{1, 2}, 0)
	require.Len(t, ema, 2)
	assert.True(t, math.IsNaN(ema[1]))
}

func TestCalculateTrueRange_UsesPreviousClose(t *testing.T) {
	bars := []model.OHLCV{
		{High: 105, Low: 100, Close: 102},
		{High: 110, Low: 108, Close: 109}, // gap up: |110-102| = 8
		{High: 104, Low: 101, Close: 103}, // gap down: |101-109| = 8
	}
	tr := CalculateTrueRange(bars)
	assert.Equal(t, []float64{5, 8, 8}, tr)
}

func TestCalculateATR_WarmupAndNonNegative(t *testing.T) {
	bars := makeBars(ramp(30, 22000, 5), 100)
	atr := CalculateATR(bars, 14)

	require.Len(t, atr, 30)
	for i := 0; i < 13; i++ {
		assert.True(t, math.IsNaN(atr[i]), "position %d should be undefined", i)
	}
	for i := 13; i < 30; i++ {
		assert.GreaterOrEqual(t, atr[i], 0.0)
	}
	// every bar has high-low = 4 and |high-prevClose| = 7 once a previous bar exists
	assert.InDelta(t, (4.0+13*7.0)/14.0, atr[13], 1e-9)
	assert.InDelta(t, 7.0, atr[29], 1e-9)
}

func TestCalculateVWAP_StaysWithinCloseRange(t *testing.T) {
	closes := []float64{100, 104, 98, 101, 103}
	bars := makeBars(closes, 0)
	for i := range bars {
		bars[i].Volume = float64(10 * (i + 1))
	}
	vwap := CalculateVWAP(bars)

	lo, hi := math.Inf(1), math.Inf(-1)
	for i, c := range closes {
		lo = math.Min(lo, c)
		hi = math.Max(hi, c)
		assert.GreaterOrEqual(t, vwap[i], lo)
		assert.LessOrEqual(t, vwap[i], hi)
	}
	assert.Equal(t, 100.0, vwap[0])
}

func TestCalculateVWAP_ZeroVolumePrefix(t *testing.T) {
	bars := makeBars([]float64{100, 101, 102}, 0)
	bars[2].Volume = 50

	vwap := CalculateVWAP(bars)
	assert.True(t, math.IsNaN(vwap[0]))
	assert.True(t, math.IsNaN(vwap[1]))
	assert.Equal(t, 102.0, vwap[2])
}

func TestCalculateRollingMaxMin(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2}
	max := CalculateRollingMax(values, 3)
	min := CalculateRollingMin(values, 3)

	assert.True(t, math.IsNaN(max[0]))
	assert.True(t, math.IsNaN(max[1]))
	assert.Equal(t, []float64{4, 4, 5, 9, 9}, max[2:])
	assert.Equal(t, []float64{1, 1, 1, 1, 2}, min[2:])
}

func TestCalculateRollingMaxMin_WarmupAndNaN(t *testing.T) {
	values := []float64{2, 7, math.NaN(), 4, 6, 5}
	max := CalculateRollingMax(values, 2)
	min := CalculateRollingMin(values, 2)

	assert.True(t, math.IsNaN(max[0]))
	assert.Equal(t, 7.0, max[1])
	assert.Equal(t, 2.0, min[1])
	assert.True(t, math.IsNaN(max[2]))
	assert.True(t, math.IsNaN(min[3]))
	assert.Equal(t, []float64{6, 6}, max[4:])
	assert.Equal(t, []float64{4, 5}, min[4:])
}

func TestCalculateRollingMaxMin_SmallWindows(t *testing.T) {
	values := []float64{3, 1, 4}
	assert.Equal(t, values, CalculateRollingMax(values, 1))
	assert.Equal(t, values, CalculateRollingMin(values, 1))

	for _, v := range CalculateRollingMax(values, 0) {
		assert.True(t, math.IsNaN(v))
	}
	for _, v := range CalculateRollingMin(values, 5) {
		assert.True(t, math.IsNaN(v))
	}
}

func TestRollingMean_RecoversAfterNaNLeavesWindow(t *testing.T) {
	values := []float64{1, math.NaN(), 3, 5, 7}
	mean := RollingMean(values, 2)

	assert.True(t, math.IsNaN(mean[1]))
	assert.True(t, math.IsNaN(mean[2]))
	assert.Equal(t, 4.0, mean[3])
	assert.Equal(t, 6.0, mean[4])
}

func TestCalculateDayRange(t *testing.T) {
	high, low, err := CalculateDayRange(makeBars([]float64{100, 110, 90}, 1))
	require.NoError(t, err)
	assert.Equal(t, 112.0, high)
	assert.Equal(t, 88.0, low)

	_, _, err = CalculateDayRange(nil)
	assert.Error(t, err)
}

func TestBuildSnapshot_MissingSeries(t *testing.T) {
	data := &model.MarketData{
		Bars5m:  makeBars(ramp(30, 100, 1), 1),
		Bars15m: makeBars(ramp(30, 100, 1), 1),
	}
	snap, err := BuildSnapshot(data)
	assert.Nil(t, snap)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingSeries))

	var mse *MissingSeriesError
	require.True(t, errors.As(err, &mse))
	assert.Equal(t, model.Timeframe1m, mse.Timeframe)
}

func TestBuildSnapshot_ShortSeriesYieldsNaNNotFailure(t *testing.T) {
	data := &model.MarketData{
		Bars1m:  makeBars(ramp(5, 22000, 1), 100),
		Bars5m:  makeBars(ramp(5, 22000, 1), 100),
		Bars15m: makeBars(ramp(3, 22000, 1), 100),
	}
	snap, err := BuildSnapshot(data)
	require.NoError(t, err)

	assert.Equal(t, 22004.0, snap.Price)
	assert.Equal(t, 22006.0, snap.DayHigh)
	assert.Equal(t, 21998.0, snap.DayLow)
	assert.False(t, math.IsNaN(snap.EMA20_15m))
	assert.True(t, math.IsNaN(snap.ATR))
	assert.True(t, math.IsNaN(snap.ChannelHigh))
	assert.True(t, math.IsNaN(snap.ChannelLow))
}

func TestBuildSnapshot_FullSeries(t *testing.T) {
	data := &model.MarketData{
		Bars1m:  makeBars(ramp(60, 22000, 1), 100),
		Bars5m:  makeBars(ramp(40, 21950, 2), 100),
		Bars15m: makeBars(ramp(40, 21900, 3), 100),
	}
	snap, err := BuildSnapshot(data)
	require.NoError(t, err)

	assert.Equal(t, 22059.0, snap.Price)
	assert.False(t, math.IsNaN(snap.ATR))
	assert.Equal(t, 21950.0+39*2+2, snap.ChannelHigh)
	assert.Equal(t, 21950.0+30*2-2, snap.ChannelLow)
	assert.InDelta(t, 22029.5, snap.VWAP, 1e-9)
}
