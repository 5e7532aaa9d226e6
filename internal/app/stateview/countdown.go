package stateview

import (
	"fmt"
	"time"
)

// Countdown formats the time remaining until a deadline for display.
// The format is fixed:
//
//	no deadline        -> ""
//	deadline passed    -> "0m"
//	under one minute   -> "<1m"
//	under one hour     -> "{m}m"
//	one hour or more   -> "{h}h {mm}m"  (minutes zero-padded to two digits)
//
// Calling it again with a later now never yields a larger remaining time,
// so a ticking display is monotonic.
func Countdown(deadline *time.Time, now time.Time) string {
	if deadline == nil {
		return ""
	}
	left := deadline.Sub(now)
	if left <= 0 {
		return "0m"
	}
	totalMinutes := int(left / time.Minute)
	if totalMinutes <= 0 {
		return "<1m"
	}
	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %02dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// IsPastDeadline reports whether now is strictly after the deadline.
// A nil deadline is never past.
func IsPastDeadline(deadline *time.Time, now time.Time) bool {
	if deadline == nil {
		return false
	}
	return now.After(*deadline)
}
