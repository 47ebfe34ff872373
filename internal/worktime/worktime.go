// Package worktime converts between the (hours, minutes) pair technicians
// enter and the decimal-hour quantity the store persists.
package worktime

import (
	"fmt"
	"math"
)

// Encode converts an (hours, minutes) pair to decimal hours.
func Encode(hours, minutes int) float64 {
	return float64(hours) + float64(minutes)/60
}

// Decode splits decimal hours back into an (hours, minutes) pair. It is the
// exact left inverse of Encode for any minute value in 0..59.
func Decode(d float64) (hours, minutes int) {
	hours = int(math.Floor(d))
	minutes = int(math.Round((d - float64(hours)) * 60))
	if minutes == 60 {
		hours++
		minutes = 0
	}
	return hours, minutes
}

// Format renders decimal hours as "2h30". The minutes suffix is omitted when
// minutes are zero: "3h", never "3h0".
func Format(d float64) string {
	hours, minutes := Decode(d)
	if minutes == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%d", hours, minutes)
}

// Sum adds decimal-hour quantities by accumulating whole minutes, so chains
// of fractional additions cannot drift.
func Sum(ds ...float64) float64 {
	total := 0
	for _, d := range ds {
		hours, minutes := Decode(d)
		total += hours*60 + minutes
	}
	return float64(total) / 60
}
