package strategy

import (
	"fmt"
	"math"
	"time"

	"NiftyPulse/internal/calculator"
	"NiftyPulse/internal/model"
	"NiftyPulse/internal/result"
)

// ATR multiples for the protective stop and the profit target.
const (
	StoplossATR = 1.2
	TargetATR   = 2.0
)

const (
	ReasonUptrend   = "Uptrend + Pullback above VWAP"
	ReasonDowntrend = "Downtrend + Pullback below VWAP"
	ReasonSideways  = "Market in range — avoid trading"
	ReasonNoSetup   = "No clear setup"
)

// Decide applies the decision table in priority order; the first matching rule wins.
// With an unavailable ATR a CALL/PUT keeps its action but carries NaN levels.
func Decide(bias model.Bias, snap *model.IndicatorSnapshot) model.TradeSignal {
	price, atr := snap.Price, snap.ATR

	switch {
	case bias == model.BiasBullish && price > snap.EMA9_5m && price > snap.VWAP:
		return model.TradeSignal{
			Action:   model.ActionCall,
			Reason:   ReasonUptrend,
			Stoploss: price - atr*StoplossATR,
			Target:   price + atr*TargetATR,
		}
	case bias == model.BiasBearish && price < snap.EMA9_5m && price < snap.VWAP:
		return model.TradeSignal{
			Action:   model.ActionPut,
			Reason:   ReasonDowntrend,
			Stoploss: price + atr*StoplossATR,
			Target:   price - atr*TargetATR,
		}
	case bias == model.BiasSideways:
		return wait(ReasonSideways)
	default:
		return wait(ReasonNoSetup)
	}
}

func wait(reason string) model.TradeSignal {
	return model.TradeSignal{
		Action:   model.ActionWait,
		Reason:   reason,
		Stoploss: math.NaN(),
		Target:   math.NaN(),
	}
}

// Evaluate runs the full pipeline over the three series: snapshot, classification,
// signal, sanitized record. It fails only when a series is empty.
func Evaluate(data *model.MarketData, now time.Time) (*model.ResultRecord, error) {
	snap, err := calculator.BuildSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}
	cls := Classify(snap)
	sig := Decide(cls.Bias, snap)
	return result.Build(snap, cls, sig, now), nil
}
