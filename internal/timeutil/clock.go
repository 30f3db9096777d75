// Package timeutil implements the 12-hour clock arithmetic used by the travel
// diary and vehicle log-book: formatting, parsing, and trip durations with
// overnight wraparound.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
)

// Clock is a 12-hour wall-clock time.
type Clock struct {
	Hour   int // 1..12
	Minute int // 0..59
	Period string // "AM" or "PM"
}

const minutesPerDay = 24 * 60

// clockPattern accepts only in-range values: hours 1-12 (optional leading
// zero), minutes 00-59, and an upper-case period.
var clockPattern = regexp.MustCompile(`^(0?[1-9]|1[0-2]):([0-5][0-9]) (AM|PM)$`)

// Format renders the clock as "HH:MM AM". The caller guarantees the fields
// are in range.
func (c Clock) Format() string {
	return fmt.Sprintf("%02d:%02d %s", c.Hour, c.Minute, c.Period)
}

// Parse parses "HH:MM AM|PM". It reports false for anything outside the
// literal grammar, which also rejects out-of-range hours and minutes.
func Parse(s string) (Clock, bool) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return Clock{}, false
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return Clock{Hour: hour, Minute: minute, Period: m[3]}, true
}

// MinutesSinceMidnight maps the clock to minutes since midnight: 12 AM is 0
// and 12 PM is 720.
func (c Clock) MinutesSinceMidnight() int {
	hour := c.Hour % 12
	minutes := hour*60 + c.Minute
	if c.Period == "PM" {
		minutes += 720
	}
	return minutes
}

// TripMinutes returns the minutes from departure to arrival. An arrival at or
// before the departure clock time is treated as falling on the next calendar
// day.
func TripMinutes(departure, arrival Clock) int {
	diff := arrival.MinutesSinceMidnight() - departure.MinutesSinceMidnight()
	if diff <= 0 {
		diff += minutesPerDay
	}
	return diff
}

// Duration formats the trip time between two "HH:MM AM" strings as "Nh Mm".
// Unparseable input yields the display sentinel "N/A"; callers needing to
// enforce ordering must validate the inputs themselves.
func Duration(departure, arrival string) string {
	dep, ok := Parse(departure)
	if !ok {
		return "N/A"
	}
	arr, ok := Parse(arrival)
	if !ok {
		return "N/A"
	}
	minutes := TripMinutes(dep, arr)
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
