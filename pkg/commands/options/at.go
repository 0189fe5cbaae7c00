package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/timeutil"
)

// AtOptions reads a clock time flag such as --at="05:30 PM".
type AtOptions struct {
	AtString string
	Now      time.Time
}

func AddAtArgs(cmd *cobra.Command, o *AtOptions) {
	cmd.Flags().StringVar(&o.AtString, "at", "",
		`Clock time to use instead of now, example: --at="05:30 PM".`)
}

// GetAt returns the flag time on today's date, or now when unset.
func (o *AtOptions) GetAt() (time.Time, error) {
	now := o.Now
	if now.IsZero() {
		now = time.Now()
	}
	if o.AtString == "" {
		return now, nil
	}
	minutes, err := timeutil.ParseClock(o.AtString)
	if err != nil {
		return time.Time{}, err
	}
	return timeutil.At(now, minutes), nil
}
