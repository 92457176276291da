//go:build unit || e2e

package builder

import (
	"time"

	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/infra/repository/converter"
	sqlc "shop-reservation/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ShopID          uuid.UUID
	ServiceID       uuid.UUID
	ResourceID      *uuid.UUID
	AppUserID       *uuid.UUID
	Guest           *reservation.GuestContact
	Start           time.Time
	DurationMinutes int
	PartySize       int
	Price           *int64
	Mode            reservation.ConfirmationMode
	Now             time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()
	resourceID := uuid.New()
	price := int64(5000)
	return &ReservationBuilder{
		ShopID:          uuid.New(),
		ServiceID:       uuid.New(),
		ResourceID:      &resourceID,
		AppUserID:       &userID,
		Start:           now.Add(49 * time.Hour),
		DurationMinutes: 60,
		PartySize:       1,
		Price:           &price,
		Mode:            reservation.ConfirmationAuto,
		Now:             now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	slot, err := reservation.SlotFor(b.Start, b.DurationMinutes)
	if err != nil {
		return nil, err
	}

	createdBy := reservation.Guest(reservation.GuestContact{})
	if b.AppUserID != nil {
		createdBy = reservation.Customer(*b.AppUserID)
	} else if b.Guest != nil {
		createdBy = reservation.Guest(*b.Guest)
	}

	return reservation.NewReservation(reservation.NewParams{
		ShopID:     b.ShopID,
		ServiceID:  b.ServiceID,
		ResourceID: b.ResourceID,
		Identity:   reservation.Identity{AppUserID: b.AppUserID, Guest: b.Guest},
		Slot:       slot,
		PartySize:  b.PartySize,
		Price:      b.Price,
		Mode:       b.Mode,
		CreatedBy:  createdBy,
		Now:        b.Now,
	})
}

func (b *ReservationBuilder) Build() *reservation.Reservation {
	r, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return r
}

func (b *ReservationBuilder) BuildInfra() sqlc.Reservations {
	return converter.ReservationToInfra(b.Build())
}

// Fluent setters
func (b *ReservationBuilder) WithShopID(id uuid.UUID) *ReservationBuilder {
	b.ShopID = id
	return b
}

func (b *ReservationBuilder) WithResourceID(id uuid.UUID) *ReservationBuilder {
	b.ResourceID = &id
	return b
}

func (b *ReservationBuilder) WithStart(start time.Time) *ReservationBuilder {
	b.Start = start
	return b
}

func (b *ReservationBuilder) WithDuration(minutes int) *ReservationBuilder {
	b.DurationMinutes = minutes
	return b
}

func (b *ReservationBuilder) WithManualConfirmation() *ReservationBuilder {
	b.Mode = reservation.ConfirmationManual
	return b
}

func (b *ReservationBuilder) AsGuest(name, phone string) *ReservationBuilder {
	g := reservation.ReconstructGuestContact(name, &phone, nil)
	b.AppUserID = nil
	b.Guest = &g
	return b
}
