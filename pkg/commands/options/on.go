package options

import (
	"time"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/calendar"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions reads a calendar date flag.
type OnOptions struct {
	OnString string
	// Now is used to resolve dates without a year. Zero means time.Now.
	Now time.Time
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions, name, usage string) {
	cmd.Flags().StringVar(&o.OnString, name, "",
		base.Wrap80(usage+` Example: --`+name+`="2020-2-28" or --`+name+`="2/28".`))
}

// Set reports whether the flag was given.
func (o *OnOptions) Set() bool {
	return o.OnString != ""
}

// GetOn parses the flag. An empty flag yields the zero date.
func (o *OnOptions) GetOn() (calendar.Date, error) {
	if o.OnString == "" {
		return calendar.Date{}, nil
	}
	now := o.Now
	if now.IsZero() {
		now = time.Now()
	}
	if o.OnString == "today" {
		return calendar.Of(now), nil
	}
	t, err := time.Parse(layoutISO, o.OnString)
	if err != nil {
		// Let the year be the same.
		t, err = time.Parse(layoutISOShort, o.OnString)
		if err != nil {
			return calendar.Date{}, err
		}
		t = t.AddDate(now.Year(), 0, 0)
		// I am gonna assume if you said 1/3 on 12/5, you meant next year, not 11 months ago.
		if calendar.Of(t).Before(calendar.Of(now)) {
			t = t.AddDate(1, 0, 0)
		}
	}
	return calendar.Of(t), nil
}
