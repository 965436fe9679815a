// Package util provides small formatting helpers and shared constants for
// CrackLeaf's command-line output.
//
// This package contains:
//   - Size constants (KiB, MiB, GiB) for byte calculations
//   - Status colors used by the CLI styles
//   - Size and elapsed-time formatting (Sizeify, Timeify, Elapsed, Ratio)
package util

// Size constants for byte calculations
const (
	KiB = 1 << 10 // 1024
	MiB = 1 << 20 // 1,048,576
	GiB = 1 << 30 // 1,073,741,824
)

// Status colors as hex strings, shared by the CLI styles.
const (
	ColorSuccess = "#4CC84B"
	ColorFailure = "#C84C4B"
	ColorWarning = "#CC7000" // Dark amber for better readability
	ColorMuted   = "#8A7F70"
)
