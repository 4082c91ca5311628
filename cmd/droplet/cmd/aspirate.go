/*
Copyright © 2024 Jonathan Taylor <jonrtaylor12@gmail.com>
*/
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/jt05610/droplet/env"
	"github.com/jt05610/droplet/experiment"
	"github.com/jt05610/droplet/pump"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	aspirateVolume float64
	aspirateRate   float64
)

var aspirateCmd = &cobra.Command{
	Use:   "aspirate",
	Short: "Withdraw a fixed volume into the syringe",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		defer func() { _ = logger.Sync() }()
		environ := env.LoadEnv(logger)
		cfg, err := pumpConfig(environ)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		p := pump.New(cfg, logger)
		if err := p.Connect(); err != nil {
			return err
		}
		defer func() {
			if p.Connected() {
				p.Stop()
			}
			if err := p.Disconnect(); err != nil {
				logger.Error("Failed to disconnect pump", zap.Error(err))
			}
		}()

		runner := experiment.NewRunner(p, logger)
		runner.Configure(diameter, pump.Withdraw)
		logger.Info("Aspirating", zap.Float64("volume_uL", aspirateVolume), zap.Float64("rate_mlh", aspirateRate))
		return runner.Single(ctx, experiment.Params{VolumeUL: aspirateVolume, RateMLH: aspirateRate})
	},
}

func init() {
	rootCmd.AddCommand(aspirateCmd)
	aspirateCmd.Flags().Float64Var(&diameter, "dia", 0, "syringe diameter in mm (e.g. 14.5 for a 10 mL syringe)")
	aspirateCmd.Flags().Float64Var(&aspirateVolume, "volume", 500, "volume to aspirate (µL)")
	aspirateCmd.Flags().Float64Var(&aspirateRate, "rate", 10, "aspiration flow rate (mL/h)")
	_ = aspirateCmd.MarkFlagRequired("dia")
}
