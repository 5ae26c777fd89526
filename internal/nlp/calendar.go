package nlp

import (
	"fmt"
	"time"
)

var monthNames = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

var dayNames = [...]string{
	"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu",
}

// Calendar supplies the clock and calendar rules the resolver works with.
// Tests pin Now and FirstDayOfWeek; production uses the configured zone.
type Calendar struct {
	Now            func() time.Time
	Location       *time.Location
	FirstDayOfWeek time.Weekday
}

// DefaultCalendar uses the wall clock in loc with Monday-start weeks.
func DefaultCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.Local
	}
	return Calendar{Now: time.Now, Location: loc, FirstDayOfWeek: time.Monday}
}

func (c Calendar) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// Today returns the current instant in the calendar's location.
func (c Calendar) Today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return now().In(c.location())
}

// StartOfDay returns 00:00:00.000 of t's day.
func (c Calendar) StartOfDay(t time.Time) time.Time {
	t = t.In(c.location())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.location())
}

// EndOfDay returns 23:59:59.999 of t's day.
func (c Calendar) EndOfDay(t time.Time) time.Time {
	t = t.In(c.location())
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, c.location())
}

// DayRange spans the whole of t's day.
func (c Calendar) DayRange(t time.Time) (time.Time, time.Time) {
	return c.StartOfDay(t), c.EndOfDay(t)
}

// WeekRange spans the week containing t, starting on FirstDayOfWeek.
func (c Calendar) WeekRange(t time.Time) (time.Time, time.Time) {
	start := c.StartOfDay(t)
	offset := (int(start.Weekday()) - int(c.FirstDayOfWeek) + 7) % 7
	start = start.AddDate(0, 0, -offset)
	return start, c.EndOfDay(start.AddDate(0, 0, 6))
}

// MonthRange spans the given calendar month.
func (c Calendar) MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, c.location())
	return start, c.EndOfDay(start.AddDate(0, 1, -1))
}

// YearRange spans the given calendar year.
func (c Calendar) YearRange(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, c.location())
	return start, c.EndOfDay(time.Date(year, time.December, 31, 0, 0, 0, 0, c.location()))
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthName returns the Indonesian name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// DayName returns the Indonesian name of d.
func DayName(d time.Weekday) string {
	return dayNames[d]
}

// FormatDate renders t as "05 Maret 2024".
func (c Calendar) FormatDate(t time.Time) string {
	t = t.In(c.location())
	return fmt.Sprintf("%02d %s %d", t.Day(), MonthName(t.Month()), t.Year())
}
