package collector

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"NiftyPulse/internal/metrics"
	"NiftyPulse/internal/model"
)

// FetchPlan is the lookback requested for each timeframe.
var FetchPlan = []struct {
	Timeframe model.Timeframe
	Range     string
}{
	{model.Timeframe1m, "1d"},
	{model.Timeframe5m, "5d"},
	{model.Timeframe15m, "5d"},
}

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  map[model.Timeframe][]model.OHLCV
	Err   error
	Calls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(_ context.Context, _ string, tf model.Timeframe, _ string) ([]model.OHLCV, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if bars, ok := m.Bars[tf]; ok {
		return bars, nil
	}
	return generateMockBars(m.Price, tf, 60), nil
}

func generateMockBars(basePrice float64, tf model.Timeframe, count int) []model.OHLCV {
	step := timeframeDuration(tf)
	end := time.Now().Truncate(step)
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.0002)
		bars[i] = model.OHLCV{
			Time:   end.Add(-time.Duration(count-1-i) * step),
			Open:   p * 0.9995,
			High:   p * 1.001,
			Low:    p * 0.999,
			Close:  p,
			Volume: 1000,
		}
	}
	return bars
}

// Collector fetches the three intraday series for one symbol.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
	Metrics *metrics.Registry
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string, m *metrics.Registry) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol, Metrics: m}
}

// Collect fetches every series in FetchPlan. Empty series are returned as-is;
// the engine decides whether data is sufficient.
func (c *Collector) Collect(ctx context.Context) (*model.MarketData, error) {
	data := &model.MarketData{Symbol: c.Symbol}
	for _, p := range FetchPlan {
		start := time.Now()
		bars, err := c.Fetcher.FetchBars(ctx, c.Symbol, p.Timeframe, p.Range)
		c.Metrics.ObserveFetch(string(p.Timeframe), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("fetch %s bars: %w", p.Timeframe, err)
		}
		log.Debug().Str("symbol", c.Symbol).Str("timeframe", string(p.Timeframe)).Int("bars", len(bars)).Msg("fetched bars")

		switch p.Timeframe {
		case model.Timeframe1m:
			data.Bars1m = bars
		case model.Timeframe5m:
			data.Bars5m = bars
		case model.Timeframe15m:
			data.Bars15m = bars
		}
	}
	data.FetchedAt = time.Now()
	return data, nil
}

// normalize sorts bars by time and drops duplicate timestamps, keeping the last one.
func normalize(bars []model.OHLCV) []model.OHLCV {
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && out[n-1].Time.Equal(b.Time) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

// Aggregate folds 1m bars into tf buckets aligned to the bucket duration.
func Aggregate(minute []model.OHLCV, tf model.Timeframe) []model.OHLCV {
	step := timeframeDuration(tf)
	var out []model.OHLCV
	for _, b := range minute {
		bucket := b.Time.Truncate(step)
		n := len(out)
		if n == 0 || !out[n-1].Time.Equal(bucket) {
			out = append(out, model.OHLCV{Time: bucket, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Volume: b.Volume})
			continue
		}
		cur := &out[n-1]
		if b.High > cur.High {
			cur.High = b.High
		}
		if b.Low < cur.Low {
			cur.Low = b.Low
		}
		cur.Close = b.Close
		cur.Volume += b.Volume
	}
	return out
}

func timeframeDuration(tf model.Timeframe) time.Duration {
	switch tf {
	case model.Timeframe5m:
		return 5 * time.Minute
	case model.Timeframe15m:
		return 15 * time.Minute
	}
	return time.Minute
}

func unixTime(ts int64) time.Time {
	return time.Unix(ts, 0).UTC()
}
