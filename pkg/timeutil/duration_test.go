package timeutil

import (
	"testing"
	"time"
)

func TestFormatWindow(t *testing.T) {
	for _, tc := range []struct {
		in   time.Duration
		want string
	}{
		{0, "0m"},
		{-time.Hour, "0m"},
		{20 * time.Second, "0m"},
		{45 * time.Second, "1m"},
		{8*time.Hour + 30*time.Minute, "8h30m"},
		{26 * time.Hour, "1d2h"},
		{(9*24+6)*time.Hour + 30*time.Minute, "9d6h30m"},
	} {
		if got := FormatWindow(tc.in); got != tc.want {
			t.Fatalf("FormatWindow(%v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestHoursDuration(t *testing.T) {
	if got := HoursDuration(9.5); got != 9*time.Hour+30*time.Minute {
		t.Fatalf("unexpected duration %v", got)
	}
}
