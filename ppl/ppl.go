// Package ppl renders Pump Programming Language scripts: the line-oriented
// command format the pump controller executes on its own, without a host
// connection.
package ppl

import (
	"fmt"
	"strconv"
	"strings"
)

// Float renders a value in the shortest decimal form the PPL grammar expects,
// so 1.0 becomes "1" and 0.5 stays "0.5".
func Float(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func comment(b *strings.Builder, format string, args ...interface{}) {
	b.WriteString("; ")
	fmt.Fprintf(b, format, args...)
	b.WriteString("\n")
}

func command(b *strings.Builder, format string, args ...interface{}) {
	fmt.Fprintf(b, format, args...)
	b.WriteString("\n")
}

// Single renders the script for a single droplet injection.
func Single(volumeUL, rateMLH float64) string {
	b := new(strings.Builder)
	comment(b, "Single droplet injection")
	comment(b, "volume: %s uL, rate: %s mL/h", Float(volumeUL), Float(rateMLH))
	command(b, "VOL %s uL", Float(volumeUL))
	command(b, "RAT %s MH", Float(rateMLH))
	command(b, "DIR INF")
	command(b, "RUN")
	return b.String()
}

// Coalescence renders the script for a leading/trailing droplet pair with a
// pause between the injections.
func Coalescence(leadingUL, trailingUL, rateMLH, waitS float64) string {
	b := new(strings.Builder)
	comment(b, "Coalescence experiment")
	comment(b, "leading: %s uL, trailing: %s uL", Float(leadingUL), Float(trailingUL))
	comment(b, "rate: %s mL/h, wait: %s s", Float(rateMLH), Float(waitS))
	command(b, "VOL %s uL", Float(leadingUL))
	command(b, "RAT %s MH", Float(rateMLH))
	command(b, "DIR INF")
	command(b, "RUN")
	command(b, "PAS %s", Float(waitS))
	command(b, "VOL %s uL", Float(trailingUL))
	command(b, "RUN")
	return b.String()
}
