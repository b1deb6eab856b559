package pricing

import "time"

// HolidayCalendar decides whether a calendar day is a public holiday. The day
// is judged in the location carried by the time value.
type HolidayCalendar interface {
	IsHoliday(day time.Time) bool
}

// NoHolidays never reports a holiday.
type NoHolidays struct{}

func (NoHolidays) IsHoliday(time.Time) bool { return false }

type civilDate struct {
	year  int
	month time.Month
	day   int
}

func dateOf(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{year: y, month: m, day: d}
}

// HolidaySet is an explicit list of holiday dates.
type HolidaySet map[civilDate]struct{}

func NewHolidaySet(days ...time.Time) HolidaySet {
	set := make(HolidaySet, len(days))
	for _, d := range days {
		set[dateOf(d)] = struct{}{}
	}
	return set
}

func (s HolidaySet) IsHoliday(day time.Time) bool {
	_, ok := s[dateOf(day)]
	return ok
}

// SwissHolidays reports the nationally observed Swiss public holidays for any
// year. Cantonal holidays are not included.
type SwissHolidays struct{}

var swissFixedHolidays = []struct {
	month time.Month
	day   int
}{
	{time.January, 1},   // Neujahr
	{time.January, 2},   // Berchtoldstag
	{time.August, 1},    // Bundesfeier
	{time.December, 25}, // Weihnachten
	{time.December, 26}, // Stephanstag
}

// Offsets from Easter Sunday.
var swissEasterHolidays = []int{
	-2, // Karfreitag
	1,  // Ostermontag
	39, // Auffahrt
	50, // Pfingstmontag
}

func (SwissHolidays) IsHoliday(day time.Time) bool {
	y, m, d := day.Date()
	for _, h := range swissFixedHolidays {
		if h.month == m && h.day == d {
			return true
		}
	}
	easter := easterSunday(y)
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	for _, offset := range swissEasterHolidays {
		if date.Equal(easter.AddDate(0, 0, offset)) {
			return true
		}
	}
	return false
}

// easterSunday uses the anonymous Gregorian computus.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
