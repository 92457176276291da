package reservation

import (
	"fmt"
	"strings"
	"time"

	"shop-reservation/internal/pkg/errs"
	"shop-reservation/internal/pkg/timegrid"
)

var (
	ErrNoteTooLong = errs.Validation("note cannot exceed 2000 characters")
	ErrInvalidSlot = errs.Validation("start time must be before end time")
)

const maxNoteLength = 2000

// TimeSlot is a half-open [start, end) interval in absolute time.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidSlot
	}
	return TimeSlot{start: start, end: end}, nil
}

// SlotFor builds the slot starting at start and lasting durationMinutes.
func SlotFor(start time.Time, durationMinutes int) (TimeSlot, error) {
	return NewTimeSlot(start, start.Add(time.Duration(durationMinutes)*time.Minute))
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps is strict: back-to-back slots do not overlap.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return timegrid.Overlaps(ts.start, ts.end, other.start, other.end)
}

func (ts TimeSlot) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}

type Note struct {
	value string
}

func NewNote(value string) (Note, error) {
	value = strings.TrimSpace(value)
	if len([]rune(value)) > maxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	return Note{value: value}, nil
}

func NotePtr(value *string) (*Note, error) {
	if value == nil {
		return nil, nil
	}
	n, err := NewNote(*value)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}

// Ptr returns nil for an empty note so the column stays NULL.
func (n *Note) Ptr() *string {
	if n == nil || n.value == "" {
		return nil
	}
	v := n.value
	return &v
}
