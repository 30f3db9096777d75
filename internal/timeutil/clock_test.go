package timeutil

import (
	"fmt"
	"testing"
)

func TestFormatParseRoundTrip(t *testing.T) {
	for _, period := range []string{"AM", "PM"} {
		for hour := 1; hour <= 12; hour++ {
			for _, minute := range []int{0, 1, 9, 30, 59} {
				c := Clock{Hour: hour, Minute: minute, Period: period}
				got, ok := Parse(c.Format())
				if !ok {
					t.Fatalf("Parse(%q) failed", c.Format())
				}
				if got != c {
					t.Fatalf("round trip: got %+v, want %+v", got, c)
				}
			}
		}
	}
}

func TestParseRejectsOutOfRange(t *testing.T) {
	bad := []string{
		"",
		"13:00 AM",
		"00:30 PM",
		"10:60 AM",
		"10:05 am",
		"1005 AM",
		"10:05AM",
		"10:5 AM",
	}
	for _, s := range bad {
		if _, ok := Parse(s); ok {
			t.Fatalf("Parse(%q) should fail", s)
		}
	}
}

func TestMinutesSinceMidnight(t *testing.T) {
	cases := []struct {
		clock Clock
		want  int
	}{
		{Clock{12, 0, "AM"}, 0},
		{Clock{12, 30, "AM"}, 30},
		{Clock{1, 0, "AM"}, 60},
		{Clock{11, 59, "AM"}, 719},
		{Clock{12, 0, "PM"}, 720},
		{Clock{1, 15, "PM"}, 795},
		{Clock{11, 59, "PM"}, 1439},
	}
	for _, tc := range cases {
		if got := tc.clock.MinutesSinceMidnight(); got != tc.want {
			t.Fatalf("%+v: got %d, want %d", tc.clock, got, tc.want)
		}
	}
}

func TestDurationSameDay(t *testing.T) {
	cases := []struct {
		dep, arr, want string
	}{
		{"09:00 AM", "05:30 PM", "8h 30m"},
		{"10:15 AM", "10:45 AM", "0h 30m"},
		{"12:00 AM", "12:00 PM", "12h 0m"},
	}
	for _, tc := range cases {
		if got := Duration(tc.dep, tc.arr); got != tc.want {
			t.Fatalf("Duration(%q, %q) = %q, want %q", tc.dep, tc.arr, got, tc.want)
		}
	}
}

func TestDurationOvernightWraparound(t *testing.T) {
	if got := Duration("11:00 PM", "01:00 AM"); got != "2h 0m" {
		t.Fatalf("overnight duration = %q, want 2h 0m", got)
	}
	// Equal times read as a full day later.
	if got := Duration("08:00 AM", "08:00 AM"); got != "24h 0m" {
		t.Fatalf("equal times = %q, want 24h 0m", got)
	}
}

func TestDurationUnparseableIsNA(t *testing.T) {
	if got := Duration("nonsense", "01:00 AM"); got != "N/A" {
		t.Fatalf("got %q, want N/A", got)
	}
	if got := Duration("01:00 AM", ""); got != "N/A" {
		t.Fatalf("got %q, want N/A", got)
	}
}

func TestDurationArithmetic(t *testing.T) {
	// For same-day pairs the minutes must equal the raw difference.
	dep := Clock{9, 10, "AM"}
	arr := Clock{2, 25, "PM"}
	want := arr.MinutesSinceMidnight() - dep.MinutesSinceMidnight()
	if got := TripMinutes(dep, arr); got != want {
		t.Fatalf("TripMinutes = %d, want %d", got, want)
	}
	if s := Duration(dep.Format(), arr.Format()); s != fmt.Sprintf("%dh %dm", want/60, want%60) {
		t.Fatalf("Duration = %q", s)
	}
}
