package utils

import (
	"testing"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{60, "1:00"},
		{215, "3:35"},
		{-5, "0:00"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatDurationLong(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0min"},
		{1800, "30min"},
		{3600, "1h 0min"},
		{12300, "3h 25min"},
	}

	for _, tt := range tests {
		if got := FormatDurationLong(tt.seconds); got != tt.want {
			t.Errorf("FormatDurationLong(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
