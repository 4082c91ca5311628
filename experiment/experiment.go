package experiment

import (
	"context"
	"time"

	"github.com/jt05610/droplet/pump"
	"go.uber.org/zap"
)

// WaitSeconds returns how long an injection of volumeUL at rateMLH takes,
// plus a one second settle buffer. A rate of zero or less yields zero so the
// degenerate case never divides by zero.
func WaitSeconds(volumeUL, rateMLH float64) float64 {
	if rateMLH <= 0 {
		return 0
	}
	return (volumeUL/1000/rateMLH)*3600 + 1.0
}

func WaitFor(volumeUL, rateMLH float64) time.Duration {
	return time.Duration(WaitSeconds(volumeUL, rateMLH) * float64(time.Second))
}

// Params describes one droplet injection.
type Params struct {
	VolumeUL float64 `yaml:"volume_uL"`
	RateMLH  float64 `yaml:"rate_mlh"`
}

type CoalescenceParams struct {
	Leading  Params `yaml:"leading"`
	Trailing Params `yaml:"trailing"`
	// PauseS is an extra pause between the droplets on top of the computed
	// completion wait. Zero reproduces the back-to-back behavior.
	PauseS float64 `yaml:"pause_s,omitempty"`
}

// Driver is the slice of the pump surface the orchestrator needs.
type Driver interface {
	SetDiameter(mm float64) string
	SetRate(value float64, unit pump.RateUnit) string
	SetVolume(value float64, unit pump.VolumeUnit) string
	SetDirection(d pump.Direction) string
	Run() string
	Stop() string
	Reset() string
}

type State string

const (
	Idle       State = "idle"
	Configured State = "configured"
	Running    State = "running"
	Waiting    State = "waiting"
	Stopped    State = "stopped"
	Done       State = "done"
)

// Runner sequences driver calls for one experiment. The completion model is
// open loop: run, sleep for the computed duration, stop. Nothing is retried;
// cancellation stops the pump and returns the context's error. The caller
// owns the connection and tears it down afterwards.
type Runner struct {
	pump   Driver
	logger *zap.Logger
	state  State
	rec    *Record
	sleep  func(ctx context.Context, d time.Duration) error
}

func NewRunner(d Driver, logger *zap.Logger) *Runner {
	return &Runner{
		pump:   d,
		logger: logger,
		state:  Idle,
		sleep:  sleepCtx,
	}
}

// WithRecord collects every pump echo into rec as the experiment runs.
func (r *Runner) WithRecord(rec *Record) *Runner {
	r.rec = rec
	return r
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func (r *Runner) setState(s State) {
	r.logger.Debug("Experiment state", zap.String("from", string(r.state)), zap.String("to", string(s)))
	r.state = s
}

func (r *Runner) note(resp string) {
	if r.rec != nil {
		r.rec.Append(resp)
	}
}

// Configure resets the pump and sets the syringe diameter and direction.
// Diameter has to land before any volume-based run for the pump's internal
// calibration to mean anything.
func (r *Runner) Configure(diameterMM float64, dir pump.Direction) {
	r.note(r.pump.Reset())
	r.note(r.pump.SetDiameter(diameterMM))
	r.note(r.pump.SetDirection(dir))
	r.setState(Configured)
}

// infuse runs one droplet: volume and rate set, run issued, fixed wait, stop.
// The pump is stopped even when the wait is cancelled.
func (r *Runner) infuse(ctx context.Context, p Params) error {
	r.note(r.pump.SetVolume(p.VolumeUL, pump.Microliters))
	r.note(r.pump.SetRate(p.RateMLH, pump.MillilitersPerHour))
	r.note(r.pump.Run())
	r.setState(Running)

	wait := WaitFor(p.VolumeUL, p.RateMLH)
	r.logger.Info("Waiting for infusion to complete",
		zap.Float64("volume_uL", p.VolumeUL),
		zap.Float64("rate_mlh", p.RateMLH),
		zap.Duration("wait", wait))
	r.setState(Waiting)
	err := r.sleep(ctx, wait)
	r.note(r.pump.Stop())
	r.setState(Stopped)
	return err
}

// Single injects one droplet.
func (r *Runner) Single(ctx context.Context, p Params) error {
	r.logger.Info("Running single droplet experiment")
	if err := r.infuse(ctx, p); err != nil {
		return err
	}
	r.setState(Done)
	r.logger.Info("Single experiment finished")
	return nil
}

// Coalescence injects a leading then a trailing droplet so the second catches
// up and merges with the first.
func (r *Runner) Coalescence(ctx context.Context, c CoalescenceParams) error {
	r.logger.Info("Running coalescence experiment")

	r.logger.Info("Infusing leading droplet")
	if err := r.infuse(ctx, c.Leading); err != nil {
		return err
	}
	if c.PauseS > 0 {
		r.logger.Info("Pausing before trailing droplet", zap.Float64("pause_s", c.PauseS))
		if err := r.sleep(ctx, time.Duration(c.PauseS*float64(time.Second))); err != nil {
			return err
		}
	}
	r.logger.Info("Infusing trailing droplet")
	if err := r.infuse(ctx, c.Trailing); err != nil {
		return err
	}
	r.setState(Done)
	r.logger.Info("Coalescence experiment finished")
	return nil
}
