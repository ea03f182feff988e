package core

import (
	"fmt"
	"time"
)

// Timestamp represents a point in time with timezone awareness
type Timestamp time.Time

// NewTimestamp creates a new timestamp from time.Time
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t)
}

// Now returns the current timestamp
func Now() Timestamp {
	return Timestamp(time.Now())
}

// Time returns the underlying time.Time
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// IsZero checks if the timestamp is zero
func (t Timestamp) IsZero() bool {
	return time.Time(t).IsZero()
}

// JSON marshaling for Timestamp
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return time.Time(t).MarshalJSON()
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var tm time.Time
	if err := tm.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = Timestamp(tm)
	return nil
}

// MonthID is a sequential month index. Index 1 is January 1980, matching the
// month numbering the forecast tables are keyed by.
type MonthID int

// NewMonthID builds a month index from a calendar year and month.
func NewMonthID(year int, month time.Month) MonthID {
	return MonthID((year-1980)*12 + int(month))
}

// Year returns the calendar year of the month index.
func (m MonthID) Year() int {
	return 1980 + (int(m)-1)/12
}

// Month returns the calendar month of the month index.
func (m MonthID) Month() time.Month {
	return time.Month((int(m)-1)%12 + 1)
}

// String formats the index as "January 2026".
func (m MonthID) String() string {
	return fmt.Sprintf("%s %d", m.Month(), m.Year())
}

// Add returns the month index shifted by n months.
func (m MonthID) Add(n int) MonthID {
	return m + MonthID(n)
}
