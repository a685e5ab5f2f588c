package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"NiftyPulse/internal/config"
	"NiftyPulse/internal/notifier"
)

func newOnceCmd(load func() (*config.Config, error)) *cobra.Command {
	var text bool

	cmd := &cobra.Command{
		Use:   "once",
		Short: "Fetch data, evaluate once and print the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			svc := newService(cfg, nil)
			rec, err := svc.Evaluate(cmd.Context())
			if err != nil {
				return err
			}
			if text {
				_, err := fmt.Fprint(cmd.OutOrStdout(), notifier.FormatSignal(svc.Symbol(), rec))
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "print the Telegram-formatted message instead of JSON")
	return cmd
}
