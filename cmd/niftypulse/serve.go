package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"NiftyPulse/internal/config"
	"NiftyPulse/internal/metrics"
	"NiftyPulse/internal/notifier"
	"NiftyPulse/internal/scheduler"
	"NiftyPulse/internal/server"
)

func newServeCmd(load func() (*config.Config, error)) *cobra.Command {
	var runOnStart bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, scheduled evaluation and Telegram bot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, runOnStart)
		},
	}
	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "evaluate once immediately after start")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, runOnStart bool) error {
	log.Info().Msg("NiftyPulse starting")
	m := metrics.New()
	svc := newService(cfg, m)

	var sender notifier.Sender
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		var err error
		tn, err = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, "")
		if err != nil {
			log.Warn().Err(err).Msg("telegram disabled")
		} else {
			sender = tn
		}
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	sched := scheduler.NewScheduler(ctx, svc, sender, loc)
	if err := sched.Register(cfg.Schedule.EvalCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info().Msg("telegram polling started")
	}
	if runOnStart {
		go sched.RunNow()
	}

	srv := server.New(server.Config{
		Addr:           cfg.HTTP.Addr,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	}, svc, m)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received, stopping")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("NiftyPulse stopped")
	return nil
}
