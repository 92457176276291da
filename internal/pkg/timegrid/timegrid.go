// Package timegrid converts between wall-clock strings and minute grids and
// enumerates calendar days. Nothing here knows about bookings.
package timegrid

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"
)

const (
	MinutesPerDay = 24 * 60
	DateLayout    = "2006-01-02"
)

// Slot is a wall-clock window expressed in minutes from midnight.
type Slot struct {
	Start int
	End   int
}

func (s Slot) StartTime() string { return MinutesToTime(s.Start) }
func (s Slot) EndTime() string   { return MinutesToTime(s.End) }

// TimeToMinutes parses "HH:MM" (or "HH:MM:SS", seconds ignored).
// "24:00" is accepted as end of day.
func TimeToMinutes(hhmm string) (int, error) {
	parts := strings.Split(strings.TrimSpace(hhmm), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time format: %q", hhmm)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", hhmm, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", hhmm, err)
	}
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 || (hour == 24 && minute != 0) {
		return 0, fmt.Errorf("time out of range: %q", hhmm)
	}

	return hour*60 + minute, nil
}

// MinutesToTime formats minutes from midnight as "HH:MM".
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// GenerateTimeSlots walks [windowStart, windowEnd] in steps of stepMinutes,
// yielding slots durationMinutes long. A non-positive duration falls back
// to the step. The sequence stops at the first slot that would end after
// windowEnd, and can be ranged over any number of times.
func GenerateTimeSlots(windowStart, windowEnd string, stepMinutes, durationMinutes int) (iter.Seq[Slot], error) {
	start, err := TimeToMinutes(windowStart)
	if err != nil {
		return nil, err
	}
	end, err := TimeToMinutes(windowEnd)
	if err != nil {
		return nil, err
	}
	return GenerateMinuteSlots(start, end, stepMinutes, durationMinutes), nil
}

// GenerateMinuteSlots is GenerateTimeSlots over already-parsed minutes.
func GenerateMinuteSlots(start, end, stepMinutes, durationMinutes int) iter.Seq[Slot] {
	if durationMinutes <= 0 {
		durationMinutes = stepMinutes
	}
	return func(yield func(Slot) bool) {
		if stepMinutes <= 0 || durationMinutes <= 0 {
			return
		}
		for cursor := start; cursor+durationMinutes <= end; cursor += stepMinutes {
			if !yield(Slot{Start: cursor, End: cursor + durationMinutes}) {
				return
			}
		}
	}
}

// CollectSlots drains a slot sequence into a slice.
func CollectSlots(seq iter.Seq[Slot]) []Slot {
	var out []Slot
	for s := range seq {
		out = append(out, s)
	}
	return out
}

// DateRange yields every calendar day from `from` to `to` inclusive, at
// midnight in from's location.
func DateRange(from, to time.Time) iter.Seq[time.Time] {
	first := StartOfDay(from)
	last := StartOfDay(to.In(from.Location()))
	return func(yield func(time.Time) bool) {
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// DaysBetween counts the days in the inclusive range; zero when to < from.
func DaysBetween(from, to time.Time) int {
	n := 0
	for range DateRange(from, to) {
		n++
	}
	return n
}

// Weekday maps a date to 0=Sunday..6=Saturday.
func Weekday(date time.Time) int {
	return int(date.Weekday())
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// At returns the instant at `minutes` past midnight on date's calendar day.
func At(date time.Time, minutes int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, date.Location())
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Overlaps is the strict open-interval test shared by slots, blocks and
// reservations: touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
