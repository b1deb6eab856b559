package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: end must be after start")
)

// DateTimeRange represents a half-open interval [start, end).
type DateTimeRange struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (DateTimeRange, error) {
	r := DateTimeRange{Start: start, End: end}
	if err := r.Validate(); err != nil {
		return DateTimeRange{}, err
	}
	return r, nil
}

func (r DateTimeRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return ErrInvalidRange
	}
	if !r.End.After(r.Start) {
		return ErrInvalidRange
	}
	return nil
}

// Millis is the elapsed time between start and end in whole milliseconds.
// Unlike End.Sub(Start) it does not saturate for ranges beyond ~292 years.
func (r DateTimeRange) Millis() int64 {
	return r.End.UnixMilli() - r.Start.UnixMilli()
}

// CalendarDays steps from Start one calendar day at a time while the cursor is
// still before End. Each returned value keeps Start's clock time and location,
// so a 25 hour range starting Friday evening yields Friday and Saturday.
func (r DateTimeRange) CalendarDays() []time.Time {
	if r.Validate() != nil {
		return nil
	}
	var days []time.Time
	for cursor := r.Start; cursor.Before(r.End); cursor = cursor.AddDate(0, 0, 1) {
		days = append(days, cursor)
	}
	return days
}
