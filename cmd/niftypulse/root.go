package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"NiftyPulse/internal/collector"
	"NiftyPulse/internal/config"
	"NiftyPulse/internal/metrics"
	"NiftyPulse/internal/service"
)

func newRootCmd() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "niftypulse",
		Short:         "Intraday NIFTY bias and entry/exit signals",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", defaultPath, "path to YAML config")

	load := func() (*config.Config, error) {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		setupLogging(cfg)
		return cfg, nil
	}

	root.AddCommand(newServeCmd(load), newOnceCmd(load))
	return root
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Warn().Str("level", cfg.Log.Level).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Log.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// newService builds the fetcher stack selected by the config.
func newService(cfg *config.Config, m *metrics.Registry) *service.Service {
	client := collector.NewClient(collector.ClientOptions{
		Timeout:        cfg.DataSource.Timeout,
		RequestsPerSec: cfg.DataSource.RequestsPerSec,
		MaxRetries:     *cfg.DataSource.MaxRetries,
		Proxy:          cfg.Proxy,
		Metrics:        m,
	})

	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(client, cfg.DataSource.BaseURL, cfg.DataSource.APIKey)
	} else {
		fetcher = collector.NewYahooFetcher(client)
	}
	log.Info().Str("source", fetcher.Name()).Str("symbol", cfg.DataSource.Symbol).Msg("data source configured")

	return service.New(collector.NewCollector(fetcher, cfg.DataSource.Symbol, m), m)
}
