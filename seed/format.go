package seed

import (
	"fmt"
	"time"
)

// Layouts used across the dataset
const (
	DateTimeLayout = "2006-01-02 15:04:05"
	MinuteLayout   = "2006-01-02 15:04"
	ClockLayout    = "15:04:05"
	ISOLayout      = "2006-01-02T15:04:05.000Z07:00"
)

// FormatDateTime renders YYYY-MM-DD HH:MM:SS, which sorts chronologically
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// FormatISO renders an RFC 3339 timestamp in UTC with milliseconds
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// FormatDuration renders seconds as HH:MM:SS
func FormatDuration(sec int) string {
	return fmt.Sprintf("%02d:%02d:%02d", sec/3600, (sec%3600)/60, sec%60)
}

// FormatSize renders megabytes, switching to GB above 1024 MB
func FormatSize(mb int) string {
	if mb > 1024 {
		return fmt.Sprintf("%.1f GB", float64(mb)/1024)
	}
	return fmt.Sprintf("%d MB", mb)
}

// FormatBytes renders a byte count with FormatSize, rounding up to 1 MB
func FormatBytes(n int64) string {
	const mb = 1 << 20
	size := int((n + mb - 1) / mb)
	if size < 1 {
		size = 1
	}
	return FormatSize(size)
}
