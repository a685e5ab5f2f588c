// Package metrics holds the Prometheus collectors for the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all NiftyPulse metrics. A nil *Registry is valid and records nothing.
type Registry struct {
	reg *prometheus.Registry

	FetchDuration *prometheus.HistogramVec
	FetchErrors   *prometheus.CounterVec
	Evaluations   *prometheus.CounterVec
	HTTPRequests  *prometheus.CounterVec
	BreakerOpen   prometheus.Gauge
}

// New creates a registry with all collectors registered.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		FetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "niftypulse_fetch_duration_seconds",
				Help:    "Duration of market data fetches by timeframe",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
			},
			[]string{"timeframe", "result"},
		),
		FetchErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "niftypulse_fetch_errors_total",
				Help: "Market data fetch failures by timeframe",
			},
			[]string{"timeframe"},
		),
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "niftypulse_evaluations_total",
				Help: "Signal evaluations by resulting action",
			},
			[]string{"signal"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "niftypulse_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		BreakerOpen: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "niftypulse_provider_breaker_open",
				Help: "1 when the market data provider circuit breaker is open",
			},
		),
	}
	r.reg.MustRegister(r.FetchDuration, r.FetchErrors, r.Evaluations, r.HTTPRequests, r.BreakerOpen)
	return r
}

// Handler exposes the registry for scraping.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

func (r *Registry) ObserveFetch(timeframe string, d time.Duration, err error) {
	if r == nil {
		return
	}
	res := "ok"
	if err != nil {
		res = "error"
		r.FetchErrors.WithLabelValues(timeframe).Inc()
	}
	r.FetchDuration.WithLabelValues(timeframe, res).Observe(d.Seconds())
}

func (r *Registry) ObserveEvaluation(signal string) {
	if r == nil {
		return
	}
	r.Evaluations.WithLabelValues(signal).Inc()
}

func (r *Registry) ObserveHTTP(route string, code int) {
	if r == nil {
		return
	}
	r.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

func (r *Registry) SetBreakerOpen(open bool) {
	if r == nil {
		return
	}
	if open {
		r.BreakerOpen.Set(1)
	} else {
		r.BreakerOpen.Set(0)
	}
}
