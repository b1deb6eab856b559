package pricing

import (
	"github.com/shopspring/decimal"

	"comerzio/internal/domain/shared/daterange"
)

const (
	millisPerHour = int64(3_600_000)
	millisPerDay  = 24 * millisPerHour
)

var hoursPerDay = decimal.NewFromInt(24)

// Duration is the elapsed time of a booking range. TotalHours and TotalDays are
// exact decimals; whole-day helpers work on integer milliseconds so floor and
// ceil never suffer from division precision.
type Duration struct {
	Range      daterange.DateTimeRange
	Millis     int64
	TotalHours decimal.Decimal
	TotalDays  decimal.Decimal
}

// MeasureDuration fails with ErrInvalidRange unless end is after start.
func MeasureDuration(rng daterange.DateTimeRange) (Duration, error) {
	if err := rng.Validate(); err != nil {
		return Duration{}, err
	}
	ms := rng.Millis()
	hours := decimal.NewFromInt(ms).Div(decimal.NewFromInt(millisPerHour))
	return Duration{
		Range:      rng,
		Millis:     ms,
		TotalHours: hours,
		TotalDays:  hours.Div(hoursPerDay),
	}, nil
}

func (d Duration) FullDays() int64 {
	return d.Millis / millisPerDay
}

func (d Duration) CeilDays() int64 {
	return (d.Millis + millisPerDay - 1) / millisPerDay
}

// ExtraHours is what remains after the full days, i.e. totalHours - fullDays*24.
func (d Duration) ExtraHours() decimal.Decimal {
	return decimal.NewFromInt(d.Millis % millisPerDay).Div(decimal.NewFromInt(millisPerHour))
}
