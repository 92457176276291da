// Package availability turns loaded schedule, catalog and booking data into
// bookable slots. It does no I/O; the queries layer loads an Input and calls
// Compute.
package availability

import (
	"cmp"
	"slices"
	"time"

	"shop-reservation/internal/domain/schedule"
	"shop-reservation/internal/pkg/timegrid"

	"github.com/google/uuid"
)

// Candidate is one place a booking can land: a linked resource, or the
// shop itself when the service needs no resource (ResourceID nil).
type Candidate struct {
	ResourceID      *uuid.UUID
	ResourceName    string
	DurationMinutes int
}

func (c Candidate) IsShopLevel() bool { return c.ResourceID == nil }

// Booking is an existing reservation that holds its window.
type Booking struct {
	ResourceID *uuid.UUID
	ServiceID  uuid.UUID
	Start      time.Time
	End        time.Time
	PartySize  int
}

type Input struct {
	ServiceID       uuid.UUID
	Capacity        int
	Candidates      []Candidate
	Rules           []schedule.Rule
	Blocks          []schedule.Block
	Bookings        []Booking
	StepMinutes     int
	MinAdvanceHours int
	Now             time.Time
}

// Slot keeps its wall-clock minutes next to the instants so a slot ending
// at a 24:00 boundary reads "24:00" rather than the next day's "00:00".
type Slot struct {
	Start        time.Time
	End          time.Time
	StartMinute  int
	EndMinute    int
	Available    bool
	ResourceID   *uuid.UUID
	ResourceName *string
}

func (s Slot) StartTime() string { return timegrid.MinutesToTime(s.StartMinute) }
func (s Slot) EndTime() string   { return timegrid.MinutesToTime(s.EndMinute) }

type Day struct {
	Date  time.Time
	Slots []Slot
}

// Compute returns exactly one Day per calendar day in [from, to], in order.
func Compute(in Input, from, to time.Time) []Day {
	days := make([]Day, 0, timegrid.DaysBetween(from, to))
	for date := range timegrid.DateRange(from, to) {
		days = append(days, ComputeDay(in, date))
	}
	return days
}

// ComputeDay builds the slot list for a single calendar day. Slots that
// start too soon or hit a block are dropped; slots taken by bookings are
// kept and marked unavailable.
func ComputeDay(in Input, date time.Time) Day {
	day := Day{Date: timegrid.StartOfDay(date), Slots: []Slot{}}
	earliest := in.Now.Add(time.Duration(in.MinAdvanceHours) * time.Hour)
	weekday := timegrid.Weekday(date)

	for _, cand := range in.Candidates {
		for _, rule := range EffectiveRules(in.Rules, cand.ResourceID, weekday) {
			slots := timegrid.GenerateMinuteSlots(rule.StartMinute(), rule.EndMinute(), in.StepMinutes, cand.DurationMinutes)
			for gs := range slots {
				start := timegrid.At(date, gs.Start)
				end := timegrid.At(date, gs.End)
				if start.Before(earliest) {
					continue
				}
				if blocked(in.Blocks, cand.ResourceID, start, end) {
					continue
				}
				day.Slots = append(day.Slots, Slot{
					Start:        start,
					End:          end,
					StartMinute:  gs.Start,
					EndMinute:    gs.End,
					Available:    in.isFree(cand, start, end),
					ResourceID:   cand.ResourceID,
					ResourceName: nameOf(cand),
				})
			}
		}
	}

	sortSlots(day.Slots)
	return day
}

// EffectiveRules picks the rules that govern a candidate on one weekday.
// A resource with its own rules for that day ignores the shop rules
// entirely; otherwise the shop rules apply.
func EffectiveRules(rules []schedule.Rule, resourceID *uuid.UUID, weekday int) []schedule.Rule {
	var own, shop []schedule.Rule
	for _, r := range rules {
		if !r.IsActive() || r.DayOfWeek() != weekday {
			continue
		}
		switch {
		case r.IsShopLevel():
			shop = append(shop, r)
		case resourceID != nil && r.BelongsTo(*resourceID):
			own = append(own, r)
		}
	}
	if len(own) > 0 {
		return own
	}
	return shop
}

// Schedulable reports whether [start, end) sits inside one of the
// candidate's effective rules for that day and clear of every block that
// applies to it. start and end must be in the shop's location.
func Schedulable(rules []schedule.Rule, blocks []schedule.Block, resourceID *uuid.UUID, start, end time.Time) bool {
	midnight := timegrid.StartOfDay(start)
	startMinute := int(start.Sub(midnight) / time.Minute)
	endMinute := int(end.Sub(midnight) / time.Minute)

	onShift := false
	for _, r := range EffectiveRules(rules, resourceID, timegrid.Weekday(start)) {
		if r.StartMinute() <= startMinute && endMinute <= r.EndMinute() {
			onShift = true
			break
		}
	}
	return onShift && !blocked(blocks, resourceID, start, end)
}

func (in Input) isFree(cand Candidate, start, end time.Time) bool {
	if !cand.IsShopLevel() {
		for _, b := range in.Bookings {
			if b.ResourceID != nil && *b.ResourceID == *cand.ResourceID && timegrid.Overlaps(b.Start, b.End, start, end) {
				return false
			}
		}
		return true
	}

	capacity := in.Capacity
	if capacity < 1 {
		capacity = 1
	}
	taken := 0
	for _, b := range in.Bookings {
		if b.ServiceID == in.ServiceID && timegrid.Overlaps(b.Start, b.End, start, end) {
			taken += b.PartySize
		}
	}
	return taken < capacity
}

func blocked(blocks []schedule.Block, resourceID *uuid.UUID, start, end time.Time) bool {
	for _, b := range blocks {
		if b.AppliesTo(resourceID) && b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

func nameOf(c Candidate) *string {
	if c.IsShopLevel() {
		return nil
	}
	name := c.ResourceName
	return &name
}

func sortSlots(slots []Slot) {
	slices.SortStableFunc(slots, func(a, b Slot) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		if c := cmp.Compare(deref(a.ResourceName), deref(b.ResourceName)); c != 0 {
			return c
		}
		return cmp.Compare(idString(a.ResourceID), idString(b.ResourceID))
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func idString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

// FirstAvailable scans days from `from` for at most `days` days and returns
// the first open slot.
func FirstAvailable(in Input, from time.Time, days int) (Slot, bool) {
	date := timegrid.StartOfDay(from)
	for i := 0; i < days; i++ {
		for _, s := range ComputeDay(in, date).Slots {
			if s.Available {
				return s, true
			}
		}
		date = date.AddDate(0, 0, 1)
	}
	return Slot{}, false
}
