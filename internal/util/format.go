package util

import (
	"fmt"
	"time"
)

// Timeify converts seconds to "HH:MM:SS" format. Negative input clamps to zero.
func Timeify(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	seconds %= 3600
	minutes := seconds / 60
	seconds %= 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// Elapsed formats a duration for the CLI summary: milliseconds below one
// second, "HH:MM:SS" otherwise.
func Elapsed(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return Timeify(int(d / time.Second))
}

// Sizeify converts bytes to a human-readable string (B, KiB, MiB, GiB).
func Sizeify(size int64) string {
	switch {
	case size >= GiB:
		return fmt.Sprintf("%.2f GiB", float64(size)/float64(GiB))
	case size >= MiB:
		return fmt.Sprintf("%.2f MiB", float64(size)/float64(MiB))
	case size >= KiB:
		return fmt.Sprintf("%.2f KiB", float64(size)/float64(KiB))
	default:
		return fmt.Sprintf("%d B", size)
	}
}

// Ratio formats "done/total".
func Ratio(done, total int) string {
	return fmt.Sprintf("%d/%d", done, total)
}
