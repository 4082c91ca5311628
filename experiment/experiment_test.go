package experiment

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/jt05610/droplet/pump"
	"go.uber.org/zap"
)

var waitCases = []struct {
	name     string
	volumeUL float64
	rateMLH  float64
	expect   float64
}{
	{name: "one uL at half rate", volumeUL: 1, rateMLH: 0.5, expect: 8.2},
	{name: "aspirate default", volumeUL: 500, rateMLH: 10, expect: 181},
	{name: "zero rate", volumeUL: 10, rateMLH: 0, expect: 0},
	{name: "negative rate", volumeUL: 10, rateMLH: -1, expect: 0},
}

func TestWaitSeconds(t *testing.T) {
	for _, tc := range waitCases {
		t.Run(tc.name, func(t *testing.T) {
			got := WaitSeconds(tc.volumeUL, tc.rateMLH)
			if math.Abs(got-tc.expect) > 1e-9 {
				t.Fatalf("expected %v, got %v", tc.expect, got)
			}
		})
	}
}

func TestWaitSecondsMonotonic(t *testing.T) {
	if WaitSeconds(5, 0.5) <= WaitSeconds(1, 0.5) {
		t.Fatal("wait should increase with volume")
	}
	if WaitSeconds(5, 1) >= WaitSeconds(5, 0.5) {
		t.Fatal("wait should decrease with rate")
	}
}

type fakeDriver struct {
	calls []string
}

func (f *fakeDriver) call(s string) string {
	f.calls = append(f.calls, s)
	return "00S"
}

func (f *fakeDriver) SetDiameter(mm float64) string { return f.call("DIA") }
func (f *fakeDriver) SetRate(value float64, unit pump.RateUnit) string {
	return f.call("RAT")
}
func (f *fakeDriver) SetVolume(value float64, unit pump.VolumeUnit) string {
	return f.call("VOL")
}
func (f *fakeDriver) SetDirection(d pump.Direction) string { return f.call("DIR " + string(d)) }
func (f *fakeDriver) Run() string                          { return f.call("RUN") }
func (f *fakeDriver) Stop() string                         { return f.call("STP") }
func (f *fakeDriver) Reset() string                        { return f.call("RST") }

func newTestRunner(d Driver) *Runner {
	r := NewRunner(d, zap.NewNop())
	r.sleep = func(ctx context.Context, _ time.Duration) error {
		return ctx.Err()
	}
	return r
}

func TestSingleSequence(t *testing.T) {
	d := &fakeDriver{}
	r := newTestRunner(d)
	r.Configure(14.5, pump.Infuse)
	if err := r.Single(context.Background(), Params{VolumeUL: 1, RateMLH: 0.5}); err != nil {
		t.Fatal(err)
	}
	expect := []string{"RST", "DIA", "DIR INF", "VOL", "RAT", "RUN", "STP"}
	if strings.Join(d.calls, ",") != strings.Join(expect, ",") {
		t.Fatalf("expected call order %v, got %v", expect, d.calls)
	}
}

func TestCoalescenceSequence(t *testing.T) {
	d := &fakeDriver{}
	r := newTestRunner(d)
	err := r.Coalescence(context.Background(), CoalescenceParams{
		Leading:  Params{VolumeUL: 7, RateMLH: 0.5},
		Trailing: Params{VolumeUL: 2, RateMLH: 0.5},
		PauseS:   3,
	})
	if err != nil {
		t.Fatal(err)
	}
	expect := []string{"VOL", "RAT", "RUN", "STP", "VOL", "RAT", "RUN", "STP"}
	if strings.Join(d.calls, ",") != strings.Join(expect, ",") {
		t.Fatalf("expected call order %v, got %v", expect, d.calls)
	}
}

func TestCancelStopsPump(t *testing.T) {
	d := &fakeDriver{}
	r := NewRunner(d, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Single(ctx, Params{VolumeUL: 1, RateMLH: 0.5})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if d.calls[len(d.calls)-1] != "STP" {
		t.Fatalf("expected STP after cancellation, got %v", d.calls)
	}
}

func TestRecordCollectsResponses(t *testing.T) {
	d := &fakeDriver{}
	rec := NewRecord("single", 14.5, Params{VolumeUL: 1, RateMLH: 0.5})
	r := newTestRunner(d).WithRecord(rec)
	if err := r.Single(context.Background(), rec.Params[0]); err != nil {
		t.Fatal(err)
	}
	rec.Finish()
	if len(rec.Responses) != 4 {
		t.Fatalf("expected 4 responses, got %d", len(rec.Responses))
	}
	if rec.ID == "" {
		t.Fatal("expected a run id")
	}
	buf := new(bytes.Buffer)
	if err := rec.Save(buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"type: single", "diameter_mm: 14.5", "volume_uL: 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in saved record, got:\n%s", want, out)
		}
	}
}
