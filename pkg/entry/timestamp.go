package entry

import (
	"time"
)

// Timestamp is a point in time in epoch milliseconds.
type Timestamp int64

// MaxTimestamp is the largest representable timestamp, used for open ranges.
const MaxTimestamp = Timestamp(1<<63 - 1)

// FromTime converts t into a Timestamp.
func FromTime(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

// Time returns the timestamp as a local time.
func (t Timestamp) Time() time.Time {
	return time.UnixMilli(int64(t)).Local()
}

func (t Timestamp) IsZero() bool {
	return t == 0
}

// Add returns t shifted by d.
func (t Timestamp) Add(d time.Duration) Timestamp {
	return t + Timestamp(d.Milliseconds())
}

// Within reports whether t lies in [start, end], inclusive on both ends.
func (t Timestamp) Within(start, end Timestamp) bool {
	return t >= start && t <= end
}

// SameDay reports whether t falls on the local calendar day of then.
func (t Timestamp) SameDay(then time.Time) bool {
	a := t.Time()
	b := then.Local()
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func (t Timestamp) String() string {
	return t.Time().Format(time.RFC3339)
}

// ParseTime accepts RFC3339 values.
func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
