package timeutil

import (
	"strconv"
	"strings"
	"time"
)

var windowUnits = []struct {
	suffix string
	size   time.Duration
}{
	{"d", 24 * time.Hour},
	{"h", time.Hour},
	{"m", time.Minute},
}

// FormatWindow renders d rounded to the minute as day, hour and minute
// tokens, for example "8h30m" or "1d2h". Anything under half a minute is "0m".
func FormatWindow(d time.Duration) string {
	rest := d.Round(time.Minute)
	if rest <= 0 {
		return "0m"
	}
	var b strings.Builder
	for _, u := range windowUnits {
		if n := rest / u.size; n > 0 {
			b.WriteString(strconv.FormatInt(int64(n), 10))
			b.WriteString(u.suffix)
			rest -= n * u.size
		}
	}
	return b.String()
}

// HoursDuration converts fractional hours into a Duration rounded to the minute.
func HoursDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour)).Round(time.Minute)
}
