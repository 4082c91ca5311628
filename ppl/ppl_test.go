package ppl_test

import (
	"strings"
	"testing"

	"github.com/jt05610/droplet/ppl"
)

// commands strips comments and blank lines so only the command sequence is
// left.
func commands(script string) []string {
	out := make([]string, 0)
	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		out = append(out, line)
	}
	return out
}

func TestSingle(t *testing.T) {
	got := commands(ppl.Single(1, 0.5))
	expect := []string{"VOL 1 uL", "RAT 0.5 MH", "DIR INF", "RUN"}
	if strings.Join(got, ";") != strings.Join(expect, ";") {
		t.Fatalf("expected %v, got %v", expect, got)
	}
}

func TestCoalescence(t *testing.T) {
	got := commands(ppl.Coalescence(7, 2, 0.5, 3))
	expect := []string{"VOL 7 uL", "RAT 0.5 MH", "DIR INF", "RUN", "PAS 3", "VOL 2 uL", "RUN"}
	if strings.Join(got, ";") != strings.Join(expect, ";") {
		t.Fatalf("expected %v, got %v", expect, got)
	}
}

func TestFloat(t *testing.T) {
	for v, want := range map[float64]string{1: "1", 0.5: "0.5", 14.5: "14.5", 2.25: "2.25"} {
		if got := ppl.Float(v); got != want {
			t.Fatalf("expected %q for %v, got %q", want, v, got)
		}
	}
}
