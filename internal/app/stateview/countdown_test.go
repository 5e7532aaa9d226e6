package stateview

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountdown_Format(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline time.Time
		want     string
	}{
		{"hours and zero-padded minutes", now.Add(5*time.Hour + 3*time.Minute + 30*time.Second), "5h 03m"},
		{"minutes only", now.Add(12 * time.Minute), "12m"},
		{"under a minute", now.Add(45 * time.Second), "<1m"},
		{"exactly at deadline", now, "0m"},
		{"past deadline", now.Add(-2 * time.Hour), "0m"},
		{"exactly one hour", now.Add(time.Hour), "1h 00m"},
		{"many hours", now.Add(49*time.Hour + 9*time.Minute), "49h 09m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Countdown(&tt.deadline, now))
		})
	}
}

func TestCountdown_NilDeadline(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "", Countdown(nil, now))
}

func TestCountdown_MonotonicAsTimePasses(t *testing.T) {
	deadline := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	now := deadline.Add(-3 * time.Hour)
	previous := Countdown(&deadline, now)
	for now.Before(deadline.Add(30 * time.Minute)) {
		now = now.Add(7 * time.Minute)
		current := Countdown(&deadline, now)
		assert.LessOrEqual(t, countdownMinutes(t, current), countdownMinutes(t, previous))
		previous = current
	}
	assert.Equal(t, "0m", previous)
}

// countdownMinutes converts a formatted countdown back to a minute count so
// successive values can be compared.
func countdownMinutes(t *testing.T, formatted string) int {
	t.Helper()
	switch formatted {
	case "0m":
		return 0
	case "<1m":
		return 1
	}
	var h, m int
	if n, err := fmt.Sscanf(formatted, "%dh %dm", &h, &m); err == nil && n == 2 {
		return h*60 + m
	}
	if n, err := fmt.Sscanf(formatted, "%dm", &m); err == nil && n == 1 {
		return m
	}
	t.Fatalf("unrecognized countdown %q", formatted)
	return 0
}

func TestIsPastDeadline(t *testing.T) {
	deadline := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	assert.False(t, IsPastDeadline(&deadline, deadline.Add(-time.Second)))
	assert.False(t, IsPastDeadline(&deadline, deadline))
	assert.True(t, IsPastDeadline(&deadline, deadline.Add(time.Second)))
	assert.False(t, IsPastDeadline(nil, deadline))
}
