package reservation

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

var AllStatuses = []Status{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow}

// transitions lists, for every target state, the states it may be entered from.
var transitions = map[Status][]Status{
	StatusConfirmed: {StatusPending},
	StatusCancelled: {StatusPending, StatusConfirmed},
	StatusCompleted: {StatusConfirmed},
	StatusNoShow:    {StatusPending, StatusConfirmed},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// HoldsSlot reports whether a reservation in this state occupies its window.
func (s Status) HoldsSlot() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, from := range transitions[target] {
		if from == s {
			return true
		}
	}
	return false
}

// SourceStatuses returns the states from which target may be entered.
func SourceStatuses(target Status) []Status {
	src := transitions[target]
	out := make([]Status, len(src))
	copy(out, src)
	return out
}

type ConfirmationMode string

const (
	ConfirmationAuto   ConfirmationMode = "auto"
	ConfirmationManual ConfirmationMode = "manual"
)

func (m ConfirmationMode) IsValid() bool {
	return m == ConfirmationAuto || m == ConfirmationManual
}

// InitialStatus is the state a new reservation starts in under this mode.
func (m ConfirmationMode) InitialStatus() Status {
	if m == ConfirmationManual {
		return StatusPending
	}
	return StatusConfirmed
}
