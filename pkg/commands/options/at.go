package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutClock    = "15:04"
	layoutDateTime = "2006-01-02 15:04"
)

// AtOptions
type AtOptions struct {
	At string
}

func AddAtArgs(cmd *cobra.Command, o *AtOptions) {
	cmd.Flags().StringVar(&o.At, "at", "",
		`When it happened, example: --at=8:30, --at="2026-10-14 21:15" or RFC3339. Defaults to now.`)
}

// GetAt resolves the flag against now. A bare clock time means today. The
// zero time is returned when the flag is empty.
func (o *AtOptions) GetAt(now time.Time) (time.Time, error) {
	return ParseAt(o.At, now)
}

// ParseAt parses "15:04", "2006-01-02 15:04" or RFC3339 in the local zone.
func ParseAt(v string, now time.Time) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(layoutClock, v, time.Local); err == nil {
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
	}
	if t, err := time.ParseInLocation(layoutDateTime, v, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM, \"YYYY-MM-DD HH:MM\" or RFC3339", v)
}
