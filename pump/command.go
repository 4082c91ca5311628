package pump

import "strconv"

// The pump speaks a line-oriented ASCII vocabulary:
//
//	DIA <mm>
//	RAT <value> <MH|MM>
//	VOL <value> <UL|ML>
//	DIR <INF|WDR>   (DIRE on some firmware revisions)
//	RUN
//	STP
//	RST
//
// Responses are free-form echo text and are never parsed for status.

type Direction string

const (
	Infuse   Direction = "INF"
	Withdraw Direction = "WDR"
)

type RateUnit string

const (
	MillilitersPerHour   RateUnit = "MH"
	MillilitersPerMinute RateUnit = "MM"
)

type VolumeUnit string

const (
	Microliters VolumeUnit = "UL"
	Milliliters VolumeUnit = "ML"
)

// formatFloat renders a value the way the pump expects it: shortest decimal
// form, so 14.5 stays "14.5" and 1.0 becomes "1".
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
