package domain

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// MaxRangeDays bounds custom report ranges.
const MaxRangeDays = 366

var dateLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// ParseDate reads a calendar date in any of the accepted forms and returns it
// as midnight UTC. Time-of-day and offsets are dropped after the calendar
// date is read in the offset it was written in.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return CalendarDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// CalendarDate strips the time of day, keeping the date as seen in t's location.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func DateKey(t time.Time) string {
	return CalendarDate(t).Format(DateLayout)
}

type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: CalendarDate(start), End: CalendarDate(end)}
	if r.Start.After(r.End) {
		return DateRange{}, fmt.Errorf("%w: start_date cannot be after end_date", ErrInvalidRange)
	}
	if r.Days() > MaxRangeDays {
		return DateRange{}, fmt.Errorf("%w: date range too large, max %d days", ErrInvalidRange, MaxRangeDays)
	}
	return r, nil
}

// Contains compares by calendar date only, inclusive on both ends.
func (r DateRange) Contains(t time.Time) bool {
	d := CalendarDate(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days counts the calendar days in the range, both ends included.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// CurrentWeek is the Sunday to Saturday week containing now.
func CurrentWeek(now time.Time) DateRange {
	today := CalendarDate(now)
	start := today.AddDate(0, 0, -int(now.Weekday()))
	return DateRange{Start: start, End: start.AddDate(0, 0, 6)}
}

// CurrentMonth spans the first to the last day of now's month.
func CurrentMonth(now time.Time) DateRange {
	y, m, _ := now.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{Start: start, End: start.AddDate(0, 1, -1)}
}
