package entity

import (
	"time"
)

const dayLayout = "2006-01-02"

// Day is a calendar-day marker in YYYY-MM-DD form.
type Day string

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	return Day(t.Format(dayLayout))
}

// Start returns local midnight of the day in loc.
func (d Day) Start(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dayLayout, string(d), loc)
}

// AddDays shifts the day by n calendar days (n may be negative).
func (d Day) AddDays(n int) Day {
	t, err := time.Parse(dayLayout, string(d))
	if err != nil {
		return d
	}
	return DayOf(t.AddDate(0, 0, n))
}

func (d Day) Valid() bool {
	_, err := time.Parse(dayLayout, string(d))
	return err == nil
}

// AgeInDays returns the number of whole 24h periods between local midnight of d
// and now. Days after now give a negative age.
func (d Day) AgeInDays(now time.Time) (int, error) {
	start, err := d.Start(now.Location())
	if err != nil {
		return 0, err
	}
	return floorDays(now.Sub(start)), nil
}

// floorDays converts a duration to whole days rounding toward negative infinity.
func floorDays(d time.Duration) int {
	days := int(d / (24 * time.Hour))
	if d < 0 && d%(24*time.Hour) != 0 {
		days--
	}
	return days
}

// DaysBetween returns floor((to - from) / 24h).
func DaysBetween(from, to time.Time) int {
	return floorDays(to.Sub(from))
}

// DaySet helpers. Sets keep insertion order and never hold duplicates.

func ContainsDay(days []Day, d Day) bool {
	for _, day := range days {
		if day == d {
			return true
		}
	}
	return false
}

func AddDay(days []Day, d Day) []Day {
	if ContainsDay(days, d) {
		return days
	}
	return append(days, d)
}

func RemoveDay(days []Day, d Day) []Day {
	result := make([]Day, 0, len(days))
	for _, day := range days {
		if day != d {
			result = append(result, day)
		}
	}
	return result
}
