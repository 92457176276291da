package reservation

import (
	"time"

	"shop-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrPartySize = errs.Validation("party size must be at least 1")
	ErrIdentity  = errs.Validation("a reservation needs either an app user or a guest contact, not both")
)

// Record is the flat persisted form of a reservation.
type Record struct {
	ID                 uuid.UUID
	ShopID             uuid.UUID
	ServiceID          uuid.UUID
	ResourceID         *uuid.UUID
	AppUserID          *uuid.UUID
	Guest              *GuestContact
	Start              time.Time
	End                time.Time
	PartySize          int
	Price              *int64
	Status             Status
	ConfirmationMode   ConfirmationMode
	ConfirmedAt        *time.Time
	ConfirmedBy        *string
	CancelledAt        *time.Time
	CancelledBy        *string
	CancellationReason *string
	NoShowAt           *time.Time
	NoShowBy           *string
	CompletedAt        *time.Time
	CustomerNotes      *string
	InternalNotes      *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Reservation struct {
	rec Record
}

// Identity is who the reservation is for.
type Identity struct {
	AppUserID *uuid.UUID
	Guest     *GuestContact
}

func (i Identity) validate() error {
	hasUser := i.AppUserID != nil
	hasGuest := i.Guest != nil && !i.Guest.IsZero()
	if hasUser == hasGuest {
		return ErrIdentity
	}
	return nil
}

type NewParams struct {
	ShopID        uuid.UUID
	ServiceID     uuid.UUID
	ResourceID    *uuid.UUID
	Identity      Identity
	Slot          TimeSlot
	PartySize     int
	Price         *int64
	Mode          ConfirmationMode
	CreatedBy     Actor
	CustomerNotes *Note
	InternalNotes *Note
	Now           time.Time
}

func NewReservation(p NewParams) (*Reservation, error) {
	if err := p.Identity.validate(); err != nil {
		return nil, err
	}
	if p.PartySize < 1 {
		return nil, ErrPartySize
	}
	mode := p.Mode
	if !mode.IsValid() {
		mode = ConfirmationAuto
	}

	rec := Record{
		ID:               uuid.New(),
		ShopID:           p.ShopID,
		ServiceID:        p.ServiceID,
		ResourceID:       p.ResourceID,
		AppUserID:        p.Identity.AppUserID,
		Guest:            p.Identity.Guest,
		Start:            p.Slot.Start(),
		End:              p.Slot.End(),
		PartySize:        p.PartySize,
		Price:            p.Price,
		Status:           mode.InitialStatus(),
		ConfirmationMode: mode,
		CustomerNotes:    p.CustomerNotes.Ptr(),
		InternalNotes:    p.InternalNotes.Ptr(),
		CreatedAt:        p.Now,
		UpdatedAt:        p.Now,
	}
	if rec.Status == StatusConfirmed {
		at := p.Now
		by := p.CreatedBy.Ref()
		rec.ConfirmedAt = &at
		rec.ConfirmedBy = &by
	}
	return &Reservation{rec: rec}, nil
}

func ReconstructReservation(rec Record) *Reservation {
	return &Reservation{rec: rec}
}

// Reschedule moves the reservation to slot. End is always stored, never derived later.
func (r *Reservation) Reschedule(slot TimeSlot, now time.Time) error {
	if err := r.ensureOpen(); err != nil {
		return err
	}
	r.rec.Start = slot.Start()
	r.rec.End = slot.End()
	r.rec.UpdatedAt = now
	return nil
}

func (r *Reservation) ChangePartySize(size int, now time.Time) error {
	if err := r.ensureOpen(); err != nil {
		return err
	}
	if size < 1 {
		return ErrPartySize
	}
	r.rec.PartySize = size
	r.rec.UpdatedAt = now
	return nil
}

func (r *Reservation) SetCustomerNotes(n *Note, now time.Time) error {
	if err := r.ensureOpen(); err != nil {
		return err
	}
	r.rec.CustomerNotes = n.Ptr()
	r.rec.UpdatedAt = now
	return nil
}

func (r *Reservation) SetInternalNotes(n *Note, now time.Time) error {
	if err := r.ensureOpen(); err != nil {
		return err
	}
	r.rec.InternalNotes = n.Ptr()
	r.rec.UpdatedAt = now
	return nil
}

func (r *Reservation) Cancel(by Actor, reason *string, now time.Time) error {
	if !r.rec.Status.CanTransitionTo(StatusCancelled) {
		return errs.InvalidStatef("reservation is already %s", r.rec.Status)
	}
	at := now
	ref := by.Ref()
	r.rec.Status = StatusCancelled
	r.rec.CancelledAt = &at
	r.rec.CancelledBy = &ref
	r.rec.CancellationReason = reason
	r.rec.UpdatedAt = now
	return nil
}

// Transition applies confirm, complete or no-show. It reports false and
// leaves the reservation untouched when the current state does not allow it.
func (r *Reservation) Transition(to Status, by Actor, now time.Time) bool {
	if to == StatusCancelled || !r.rec.Status.CanTransitionTo(to) {
		return false
	}
	at := now
	ref := by.Ref()
	switch to {
	case StatusConfirmed:
		r.rec.ConfirmedAt = &at
		r.rec.ConfirmedBy = &ref
	case StatusCompleted:
		r.rec.CompletedAt = &at
	case StatusNoShow:
		r.rec.NoShowAt = &at
		r.rec.NoShowBy = &ref
	}
	r.rec.Status = to
	r.rec.UpdatedAt = now
	return true
}

func (r *Reservation) ensureOpen() error {
	if r.rec.Status.IsTerminal() {
		return errs.InvalidStatef("reservation is %s and can no longer be modified", r.rec.Status)
	}
	return nil
}

func (r *Reservation) Slot() TimeSlot {
	return TimeSlot{start: r.rec.Start, end: r.rec.End}
}

func (r *Reservation) HoldsSlot() bool {
	return r.rec.Status.HoldsSlot()
}

func (r *Reservation) Record() Record { return r.rec }

func (r *Reservation) ID() uuid.UUID                      { return r.rec.ID }
func (r *Reservation) ShopID() uuid.UUID                  { return r.rec.ShopID }
func (r *Reservation) ServiceID() uuid.UUID               { return r.rec.ServiceID }
func (r *Reservation) ResourceID() *uuid.UUID             { return r.rec.ResourceID }
func (r *Reservation) AppUserID() *uuid.UUID              { return r.rec.AppUserID }
func (r *Reservation) Guest() *GuestContact               { return r.rec.Guest }
func (r *Reservation) StartTime() time.Time               { return r.rec.Start }
func (r *Reservation) EndTime() time.Time                 { return r.rec.End }
func (r *Reservation) PartySize() int                     { return r.rec.PartySize }
func (r *Reservation) Price() *int64                      { return r.rec.Price }
func (r *Reservation) Status() Status                     { return r.rec.Status }
func (r *Reservation) ConfirmationMode() ConfirmationMode { return r.rec.ConfirmationMode }
func (r *Reservation) ConfirmedAt() *time.Time            { return r.rec.ConfirmedAt }
func (r *Reservation) CancelledAt() *time.Time            { return r.rec.CancelledAt }
func (r *Reservation) CancelledBy() *string               { return r.rec.CancelledBy }
func (r *Reservation) CancellationReason() *string        { return r.rec.CancellationReason }
func (r *Reservation) NoShowAt() *time.Time               { return r.rec.NoShowAt }
func (r *Reservation) CompletedAt() *time.Time            { return r.rec.CompletedAt }
func (r *Reservation) CustomerNotes() *string             { return r.rec.CustomerNotes }
func (r *Reservation) InternalNotes() *string             { return r.rec.InternalNotes }
func (r *Reservation) CreatedAt() time.Time               { return r.rec.CreatedAt }
func (r *Reservation) UpdatedAt() time.Time               { return r.rec.UpdatedAt }
