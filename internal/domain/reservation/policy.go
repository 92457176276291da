package reservation

import (
	"time"

	"shop-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

// ValidateBookingWindow checks start against the shop's advance limits.
func ValidateBookingWindow(start, now time.Time, s Settings) error {
	earliest := now.Add(time.Duration(s.MinAdvanceHours) * time.Hour)
	if start.Before(earliest) {
		return errs.Validationf("Reservations must be made at least %d hours in advance", s.MinAdvanceHours)
	}
	latest := now.Add(time.Duration(s.MaxAdvanceDays) * 24 * time.Hour)
	if start.After(latest) {
		return errs.Validationf("Reservations cannot be made more than %d days in advance", s.MaxAdvanceDays)
	}
	return nil
}

// ValidateCancellationDeadline applies to customers and guests only.
func ValidateCancellationDeadline(start, now time.Time, s Settings) error {
	deadline := start.Add(-time.Duration(s.CancellationHours) * time.Hour)
	if now.After(deadline) {
		return errs.Validationf("Reservations must be cancelled at least %d hours before the start time", s.CancellationHours)
	}
	return nil
}

// ResolveIdentity decides who a new reservation is for. Customers and
// guests always book for themselves; shop staff must name exactly one of
// an app user or a guest contact.
func ResolveIdentity(actor Actor, appUserID *uuid.UUID, guest *GuestContact) (Identity, error) {
	switch actor.Kind() {
	case ActorCustomer:
		id := actor.UserID()
		return Identity{AppUserID: &id}, nil
	case ActorGuest:
		g := actor.Contact()
		return Identity{Guest: &g}, nil
	}
	id := Identity{AppUserID: appUserID, Guest: guest}
	if err := id.validate(); err != nil {
		return Identity{}, err
	}
	return id, nil
}
