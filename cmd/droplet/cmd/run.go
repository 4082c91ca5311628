/*
Copyright © 2024 Jonathan Taylor <jonrtaylor12@gmail.com>
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/jt05610/droplet/cmd/droplet/tui"
	"github.com/jt05610/droplet/env"
	"github.com/jt05610/droplet/experiment"
	"github.com/jt05610/droplet/pump"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var resultsDir string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a droplet experiment interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		defer func() { _ = logger.Sync() }()
		environ := env.LoadEnv(logger)
		cfg, err := pumpConfig(environ)
		if err != nil {
			return err
		}

		choice, err := tui.Choose("What type of experiment would you like to run?", []string{"single", "coalescence"})
		if err != nil {
			return err
		}

		var params []experiment.Params
		switch choice {
		case "single":
			p, err := promptParams("droplet")
			if err != nil {
				return err
			}
			params = []experiment.Params{p}
		case "coalescence":
			leading, err := promptParams("leading droplet")
			if err != nil {
				return err
			}
			trailing, err := promptParams("trailing droplet")
			if err != nil {
				return err
			}
			params = []experiment.Params{leading, trailing}
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

		rec := experiment.NewRecord(choice, diameter, params...)
		runner := experiment.NewRunner(p, logger).WithRecord(rec)
		runner.Configure(diameter, pump.Infuse)

		switch choice {
		case "single":
			err = runner.Single(ctx, params[0])
		case "coalescence":
			err = runner.Coalescence(ctx, experiment.CoalescenceParams{
				Leading:  params[0],
				Trailing: params[1],
			})
		}
		rec.Finish()
		if saveErr := saveRecord(logger, rec); saveErr != nil {
			logger.Error("Failed to save run record", zap.Error(saveErr))
		}
		return err
	},
}

func promptParams(label string) (experiment.Params, error) {
	volume, err := tui.Float("Enter the "+label+" volume (µL):", 1.0)
	if err != nil {
		return experiment.Params{}, err
	}
	rate, err := tui.Float("Enter the "+label+" flow rate (mL/h):", 0.5)
	if err != nil {
		return experiment.Params{}, err
	}
	return experiment.Params{VolumeUL: volume, RateMLH: rate}, nil
}

func saveRecord(logger *zap.Logger, rec *experiment.Record) error {
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(resultsDir, rec.ID+".yaml")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := rec.Save(f); err != nil {
		return err
	}
	logger.Info("Saved run record", zap.String("file", path))
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Float64Var(&diameter, "dia", 0, "syringe diameter in mm (e.g. 14.5 for a 10 mL syringe)")
	runCmd.Flags().StringVar(&resultsDir, "results", "results", "directory for run records")
	_ = runCmd.MarkFlagRequired("dia")
}
