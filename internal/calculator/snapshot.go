package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"NiftyPulse/internal/model"
)

// ErrMissingSeries is returned when one of the required series is empty.
var ErrMissingSeries = errors.New("market data unavailable")

// MissingSeriesError names the empty timeframe. It unwraps to ErrMissingSeries.
type MissingSeriesError struct {
	Timeframe model.Timeframe
}

func (e *MissingSeriesError) Error() string {
	return fmt.Sprintf("%s series is empty: %v", e.Timeframe, ErrMissingSeries)
}

func (e *MissingSeriesError) Unwrap() error { return ErrMissingSeries }

// BuildSnapshot reduces the three series to the latest indicator values.
// Statistics whose lookback exceeds the series length come back as NaN.
func BuildSnapshot(data *model.MarketData) (*model.IndicatorSnapshot, error) {
	if data == nil {
		return nil, &MissingSeriesError{Timeframe: model.Timeframe1m}
	}
	for _, tf := range []model.Timeframe{model.Timeframe1m, model.Timeframe5m, model.Timeframe15m} {
		if len(data.Series(tf)) == 0 {
			return nil, &MissingSeriesError{Timeframe: tf}
		}
	}

	snap := &model.IndicatorSnapshot{
		Price: data.Bars1m[len(data.Bars1m)-1].Close,
	}

	// Intraday range from the 1m session
	snap.DayHigh, snap.DayLow, _ = CalculateDayRange(data.Bars1m)

	closes1m := extractCloses(data.Bars1m)
	closes5m := extractCloses(data.Bars5m)
	closes15m := extractCloses(data.Bars15m)

	snap.EMA9_1m = Last(CalculateEMA(closes1m, 9))
	snap.EMA20_1m = Last(CalculateEMA(closes1m, 20))
	snap.EMA9_5m = Last(CalculateEMA(closes5m, 9))
	snap.EMA20_5m = Last(CalculateEMA(closes5m, 20))
	snap.EMA9_15m = Last(CalculateEMA(closes15m, 9))
	snap.EMA20_15m = Last(CalculateEMA(closes15m, 20))

	snap.VWAP = Last(CalculateVWAP(data.Bars1m))
	if math.IsNaN(snap.VWAP) {
		log.Debug().Int("bars", len(data.Bars1m)).Msg("vwap unavailable: zero cumulative volume")
	}

	snap.ATR = Last(CalculateATR(data.Bars5m, DefaultATRPeriod))
	if math.IsNaN(snap.ATR) {
		log.Debug().Int("bars", len(data.Bars5m)).Int("period", DefaultATRPeriod).Msg("atr unavailable: insufficient 5m bars")
	}

	snap.ChannelHigh = Last(CalculateRollingMax(extractHighs(data.Bars5m), DefaultChannelWindow))
	snap.ChannelLow = Last(CalculateRollingMin(extractLows(data.Bars5m), DefaultChannelWindow))

	return snap, nil
}
