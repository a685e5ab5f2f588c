package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"NiftyPulse/internal/model"
)

// RESTFetcher implements Fetcher against a self-hosted bars API:
//
//	GET {base}/api/v1/bars?symbol=..&interval=..&range=..
//
// returning a JSON array of {timestamp, open, high, low, close, volume}.
type RESTFetcher struct {
	Client  *Client
	BaseURL string
	APIKey  string
}

// NewRESTFetcher creates a fetcher for the bars API at baseURL.
func NewRESTFetcher(client *Client, baseURL, apiKey string) *RESTFetcher {
	return &RESTFetcher{Client: client, BaseURL: baseURL, APIKey: apiKey}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars API.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (f *RESTFetcher) FetchBars(ctx context.Context, symbol string, tf model.Timeframe, rng string) ([]model.OHLCV, error) {
	bars, err := f.fetchBars(ctx, symbol, tf, rng)
	if err == nil || tf == model.Timeframe1m {
		return bars, err
	}
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusNotFound {
		return nil, err
	}

	// Interval not served: build it from 1m bars over the same range.
	log.Warn().Str("timeframe", string(tf)).Msg("interval not served, aggregating from 1m bars")
	minute, minuteErr := f.fetchBars(ctx, symbol, model.Timeframe1m, rng)
	if minuteErr != nil {
		return nil, fmt.Errorf("%s fetch failed: %w; 1m fallback also failed: %w", tf, err, minuteErr)
	}
	return Aggregate(minute, tf), nil
}

func (f *RESTFetcher) fetchBars(ctx context.Context, symbol string, tf model.Timeframe, rng string) ([]model.OHLCV, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", string(tf))
	q.Set("range", rng)
	endpoint := fmt.Sprintf("%s/api/v1/bars?%s", f.BaseURL, q.Encode())

	var header http.Header
	if f.APIKey != "" {
		header = http.Header{"Authorization": []string{"Bearer " + f.APIKey}}
	}
	body, err := f.Client.Get(ctx, endpoint, header)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}

	var raw []restBar
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	bars := make([]model.OHLCV, len(raw))
	for i, rb := range raw {
		bars[i] = model.OHLCV{
			Time:   unixTime(rb.Timestamp),
			Open:   rb.Open,
			High:   rb.High,
			Low:    rb.Low,
			Close:  rb.Close,
			Volume: rb.Volume,
		}
	}
	return normalize(bars), nil
}
