package utils_test

import (
	"testing"
	"time"

	"rds-restore/internal/utils"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{
			name:     "seconds only",
			input:    30 * time.Second,
			expected: "30s",
		},
		{
			name:     "minutes only",
			input:    45 * time.Minute,
			expected: "45m",
		},
		{
			name:     "hours and minutes",
			input:    2*time.Hour + 30*time.Minute,
			expected: "2h30m",
		},
		{
			name:     "days and hours",
			input:    2*24*time.Hour + 5*time.Hour,
			expected: "2d5h",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := utils.FormatDuration(tt.input)
			if result != tt.expected {
				t.Errorf("FormatDuration(%v) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{name: "zero time", input: time.Time{}, expected: "-"},
		{name: "three days", input: now.Add(-72 * time.Hour), expected: "3d"},
		{name: "in the future", input: now.Add(time.Hour), expected: "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := utils.FormatAge(tt.input, now); result != tt.expected {
				t.Errorf("FormatAge(%v) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatStorage(t *testing.T) {
	tests := []struct {
		gib      int64
		expected string
	}{
		{gib: 0, expected: "-"},
		{gib: 20, expected: "20 GiB"},
		{gib: 1024, expected: "1.0 TiB"},
	}

	for _, tt := range tests {
		if result := utils.FormatStorage(tt.gib); result != tt.expected {
			t.Errorf("FormatStorage(%d) = %v, want %v", tt.gib, result, tt.expected)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := utils.FormatTimestamp(ts); got != "2024-01-02 03:04:05 UTC" {
		t.Errorf("FormatTimestamp() = %v", got)
	}
	if got := utils.FormatTimestamp(time.Time{}); got != "-" {
		t.Errorf("FormatTimestamp(zero) = %v", got)
	}
}
