package util

import (
	"testing"
	"time"
)

func TestTimeify(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3599, "00:59:59"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{86399, "23:59:59"},
		{-10, "00:00:00"}, // negative values should clamp to 0
	}

	for _, tt := range tests {
		result := Timeify(tt.seconds)
		if result != tt.expected {
			t.Errorf("Timeify(%d) = %s; want %s", tt.seconds, result, tt.expected)
		}
	}
}

func TestElapsed(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0ms"},
		{250 * time.Millisecond, "250ms"},
		{time.Second, "00:00:01"},
		{90*time.Second + 400*time.Millisecond, "00:01:30"},
	}

	for _, tt := range tests {
		if result := Elapsed(tt.d); result != tt.expected {
			t.Errorf("Elapsed(%v) = %s; want %s", tt.d, result, tt.expected)
		}
	}
}

func TestSizeify(t *testing.T) {
	tests := []struct {
		size     int64
		expected string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.00 KiB"},
		{1536, "1.50 KiB"},
		{MiB, "1.00 MiB"},
		{MiB + MiB/2, "1.50 MiB"},
		{GiB, "1.00 GiB"},
		{5 * GiB, "5.00 GiB"},
	}

	for _, tt := range tests {
		result := Sizeify(tt.size)
		if result != tt.expected {
			t.Errorf("Sizeify(%d) = %s; want %s", tt.size, result, tt.expected)
		}
	}
}

func TestRatio(t *testing.T) {
	if got := Ratio(1, 2); got != "1/2" {
		t.Errorf("Ratio(1, 2) = %s; want 1/2", got)
	}
}
