package core

import (
	"math"
	"strconv"
)

const (
	kib = 1024.0
	mib = kib * 1024.0
	gib = mib * 1024.0
)

// FormatRate renders bytes per second as "<value> <unit>" scaled to B/s, KB/s,
// MB/s or GB/s. Values of 100 and above drop the decimal.
func FormatRate(bytesPerSecond float64) string {
	var unit string
	var val float64

	switch {
	case bytesPerSecond >= gib:
		unit, val = "GB/s", bytesPerSecond/gib
	case bytesPerSecond >= mib:
		unit, val = "MB/s", bytesPerSecond/mib
	case bytesPerSecond >= kib:
		unit, val = "KB/s", bytesPerSecond/kib
	default:
		unit, val = "B/s", bytesPerSecond
	}

	if val >= 100 {
		return strconv.FormatFloat(math.Round(val), 'f', 0, 64) + " " + unit
	}
	return strconv.FormatFloat(math.Round(val*10)/10, 'f', 1, 64) + " " + unit
}
