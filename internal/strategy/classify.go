package strategy

import "NiftyPulse/internal/model"

// ClassifyBias compares price against the 5m and 15m EMA20 anchors.
// Only strict inequalities count, so a tie or an unavailable (NaN) anchor
// yields Sideways.
func ClassifyBias(price, ema20_5m, ema20_15m float64) model.Bias {
	switch {
	case price > ema20_15m && price > ema20_5m:
		return model.BiasBullish
	case price < ema20_15m && price < ema20_5m:
		return model.BiasBearish
	default:
		return model.BiasSideways
	}
}

// ClassifyStructure compares price against the rolling high/low channel.
// An undefined (NaN) channel never compares true, so it reports Range.
func ClassifyStructure(price, channelHigh, channelLow float64) model.Structure {
	switch {
	case price > channelHigh:
		return model.StructureBreakout
	case price < channelLow:
		return model.StructureBreakdown
	default:
		return model.StructureRange
	}
}

// Classify labels a snapshot with its bias and structure.
func Classify(snap *model.IndicatorSnapshot) model.Classification {
	return model.Classification{
		Bias:      ClassifyBias(snap.Price, snap.EMA20_5m, snap.EMA20_15m),
		Structure: ClassifyStructure(snap.Price, snap.ChannelHigh, snap.ChannelLow),
	}
}
