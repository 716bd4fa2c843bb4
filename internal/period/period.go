// Package period maps wall-clock instants onto the college timetable.
//
// Windows are half-open and fixed by the institution:
//
//	P1 09:00-10:00  P2 10:00-11:00  (11:00-11:10 short interval)
//	P3 11:10-12:05  P4 12:05-13:00  BREAK 13:00-14:00
//	P5 14:00-15:00  P6 15:00-16:00  P7 16:00-17:00
package period

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for every slot key.
const DateLayout = "2006-01-02"

// First and Last bound valid period numbers.
const (
	First = 1
	Last  = 7
)

// Kind classifies the result of Current.
type Kind int

const (
	None Kind = iota
	Class
	Break
)

// Period is what the clock says is happening at an instant.
// Number is only meaningful when Kind is Class.
type Period struct {
	Kind   Kind
	Number int
}

// Range is a period's time window label.
type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// String renders "09:00 - 10:00".
func (r Range) String() string {
	return r.Start + " - " + r.End
}

// On places the range on day's calendar date in day's location.
func (r Range) On(day time.Time) (start, end time.Time) {
	return clockTime(day, r.Start), clockTime(day, r.End)
}

func clockTime(day time.Time, hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return day
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location())
}

// WeekStart returns midnight of the Monday on or before t, in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

type window struct {
	from, to int // minutes since midnight, [from, to)
	period   Period
}

// Order matters: first match wins.
var windows = []window{
	{540, 600, Period{Class, 1}},
	{600, 660, Period{Class, 2}},
	{670, 725, Period{Class, 3}},
	{725, 780, Period{Class, 4}},
	{780, 840, Period{Kind: Break}},
	{840, 900, Period{Class, 5}},
	{900, 960, Period{Class, 6}},
	{960, 1020, Period{Class, 7}},
}

var ranges = map[int]Range{
	1: {"09:00", "10:00"},
	2: {"10:00", "11:00"},
	3: {"11:10", "12:05"},
	4: {"12:05", "13:00"},
	5: {"14:00", "15:00"},
	6: {"15:00", "16:00"},
	7: {"16:00", "17:00"},
}

// BreakRange is the lunch break window.
var BreakRange = Range{"13:00", "14:00"}

// Weekday returns Sunday..Saturday for t's calendar day in t's location.
func Weekday(t time.Time) string {
	return t.Weekday().String()
}

// Date returns t's calendar day as YYYY-MM-DD in t's location.
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// Current resolves the period in progress at t.
func Current(t time.Time) Period {
	minute := t.Hour()*60 + t.Minute()
	for _, w := range windows {
		if minute >= w.from && minute < w.to {
			return w.period
		}
	}
	return Period{Kind: None}
}

// TimeRange looks up a class period's window. Break has no entry.
func TimeRange(p int) (Range, bool) {
	r, ok := ranges[p]
	return r, ok
}

// Label formats a period number as "P3".
func Label(p int) string {
	return fmt.Sprintf("P%d", p)
}

// Valid reports whether p is a class period number.
func Valid(p int) bool {
	return p >= First && p <= Last
}

// ParseDate validates a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// WeekdayOf returns the weekday name of a YYYY-MM-DD date.
func WeekdayOf(date string) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return d.Weekday().String(), nil
}

// Weekdays lists valid weekday labels in calendar order.
var Weekdays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// ValidWeekday reports whether s is one of Weekdays.
func ValidWeekday(s string) bool {
	for _, d := range Weekdays {
		if d == s {
			return true
		}
	}
	return false
}

// MonthBounds returns the first and last calendar dates of a YYYY-MM month.
func MonthBounds(month string) (from, to string, err error) {
	m, err := time.Parse("2006-01", month)
	if err != nil {
		return "", "", err
	}
	last := m.AddDate(0, 1, -1)
	return m.Format(DateLayout), last.Format(DateLayout), nil
}
