package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NiftyPulse/internal/calculator"
	"NiftyPulse/internal/collector"
	"NiftyPulse/internal/metrics"
	"NiftyPulse/internal/model"
	"NiftyPulse/internal/result"
)

type evaluatorFunc func(ctx context.Context) (*model.ResultRecord, error)

func (f evaluatorFunc) Evaluate(ctx context.Context) (*model.ResultRecord, error) { return f(ctx) }

func newTestServer(ev Evaluator) (*Server, *metrics.Registry) {
	m := metrics.New()
	s := New(Config{Addr: ":0", RequestTimeout: time.Second}, ev, m)
	s.now = func() time.Time { return time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC) }
	return s, m
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestNifty_Success(t *testing.T) {
	s, m := newTestServer(evaluatorFunc(func(ctx context.Context) (*model.ResultRecord, error) {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return &model.ResultRecord{
			Price:     result.Sanitize(22000),
			ATR:       result.Sanitize(50),
			Bias:      model.BiasBullish,
			Structure: model.StructureRange,
			Signal:    model.ActionCall,
			Reason:    "Uptrend + Pullback above VWAP",
			Stoploss:  result.Sanitize(21940),
			Target:    result.Sanitize(22100),
			Time:      time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC),
		}, nil
	}))

	rec := get(t, s, "/nifty")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	for _, k := range []string{"price", "day_high", "day_low", "vwap", "atr", "ema9_15m", "ema20_15m",
		"ema9_5m", "ema20_5m", "ema9_1m", "ema20_1m", "bias", "structure", "signal", "reason", "stoploss", "target", "time"} {
		assert.Contains(t, body, k)
	}
	assert.Equal(t, 22000.0, body["price"])
	assert.Nil(t, body["vwap"])
	assert.Equal(t, "CALL", body["signal"])
	assert.Equal(t, 21940.0, body["stoploss"])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/nifty", "200")))
}

func TestNifty_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"missing series", fmt.Errorf("build snapshot: %w", &calculator.MissingSeriesError{Timeframe: model.Timeframe1m}), http.StatusServiceUnavailable, "Market data unavailable"},
		{"breaker open", fmt.Errorf("collect: %w", collector.ErrProviderUnavailable), http.StatusServiceUnavailable, "Market data unavailable"},
		{"timeout", fmt.Errorf("collect: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "market data request timed out"},
		{"provider", errors.New("yahoo: status 500"), http.StatusBadGateway, "yahoo: status 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(evaluatorFunc(func(context.Context) (*model.ResultRecord, error) { return nil, tt.err }))
			rec := get(t, s, "/nifty")
			require.Equal(t, tt.status, rec.Code)

			var env errorEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.Equal(t, tt.msg, env.Error)
			assert.False(t, env.Time.IsZero())
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	s, _ := newTestServer(evaluatorFunc(func(context.Context) (*model.ResultRecord, error) { return nil, nil }))

	rec := get(t, s, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "niftypulse_http_requests_total")
}

func TestNotFound(t *testing.T) {
	s, _ := newTestServer(evaluatorFunc(func(context.Context) (*model.ResultRecord, error) { return nil, nil }))
	rec := get(t, s, "/banknifty")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not found")
}

func TestMethodNotAllowed(t *testing.T) {
	called := false
	s, _ := newTestServer(evaluatorFunc(func(context.Context) (*model.ResultRecord, error) {
		called = true
		return nil, nil
	}))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/nifty", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "method not allowed", body["error"])
	assert.Contains(t, body, "time")
	assert.False(t, called)
}

func TestRequestIDIsPropagated(t *testing.T) {
	var seen string
	s, _ := newTestServer(evaluatorFunc(func(ctx context.Context) (*model.ResultRecord, error) {
		seen = RequestID(ctx)
		return &model.ResultRecord{Signal: model.ActionWait}, nil
	}))
	req := httptest.NewRequest(http.MethodGet, "/nifty", nil)
	req.Header.Set("X-Request-ID", "abc123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "abc123", seen)
	assert.Equal(t, "abc123", rec.Header().Get("X-Request-ID"))
}
