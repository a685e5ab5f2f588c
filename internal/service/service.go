// Package service wires data collection to the signal engine.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"NiftyPulse/internal/collector"
	"NiftyPulse/internal/metrics"
	"NiftyPulse/internal/model"
	"NiftyPulse/internal/strategy"
)

// Service fetches the three series and evaluates them. It keeps no state
// between calls and is safe for concurrent use.
type Service struct {
	Collector *collector.Collector
	Metrics   *metrics.Registry
	Now       func() time.Time
}

// New creates a Service stamping records with the wall clock.
func New(col *collector.Collector, m *metrics.Registry) *Service {
	return &Service{Collector: col, Metrics: m, Now: time.Now}
}

// Symbol returns the symbol being evaluated.
func (s *Service) Symbol() string { return s.Collector.Symbol }

// Evaluate fetches fresh data and returns the evaluation record.
func (s *Service) Evaluate(ctx context.Context) (*model.ResultRecord, error) {
	data, err := s.Collector.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}
	rec, err := strategy.Evaluate(data, s.Now())
	if err != nil {
		return nil, err
	}
	s.Metrics.ObserveEvaluation(string(rec.Signal))
	log.Info().
		Str("symbol", data.Symbol).
		Str("signal", string(rec.Signal)).
		Str("bias", string(rec.Bias)).
		Str("structure", string(rec.Structure)).
		Msg("evaluated")
	return rec, nil
}
