package utils

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatStorage formats an RDS storage size given in GiB
func FormatStorage(gib int64) string {
	if gib <= 0 {
		return "-"
	}
	return humanize.IBytes(uint64(gib) << 30)
}

// FormatTimestamp formats a snapshot creation time the way the tables show it
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04:05 MST")
}

// FormatAge formats how long before now t was
func FormatAge(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	if d := now.Sub(t); d > 0 {
		return FormatDuration(d)
	}
	return "0s"
}

// FormatDuration formats a duration in a compact human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	if d < 24*time.Hour {
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % 60
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	if hours == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd%dh", days, hours)
}
