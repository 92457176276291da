package reservation

import (
	"time"

	"shop-reservation/internal/domain/catalog"
	"shop-reservation/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

// Booking is everything resolved about a new reservation before it is built.
type Booking struct {
	Service       *catalog.Service
	Link          *catalog.Link
	Start         time.Time
	PartySize     int
	Identity      Identity
	Actor         Actor
	Settings      Settings
	CustomerNotes *Note
	InternalNotes *Note
}

// SlotFor returns the stored window for a booking starting at start.
func (f *Factory) SlotFor(service *catalog.Service, link *catalog.Link, start time.Time, s Settings) (TimeSlot, error) {
	var override *int
	if link != nil {
		override = link.DurationOverride
	}
	return SlotFor(start, catalog.EffectiveDuration(override, service.DurationMinutes(), s.SlotDurationMinutes))
}

func (f *Factory) CreateReservation(b Booking) (*Reservation, error) {
	slot, err := f.SlotFor(b.Service, b.Link, b.Start, b.Settings)
	if err != nil {
		return nil, err
	}

	partySize := b.PartySize
	if partySize == 0 {
		partySize = 1
	}

	var resourceID *uuid.UUID
	var override *int64
	if b.Link != nil {
		id := b.Link.ResourceID
		resourceID = &id
		override = b.Link.PriceOverride
	}
	price := f.PriceCalculator.CalculatePrice(PriceInput{
		ServicePrice:      b.Service.Price(),
		LinkPriceOverride: override,
		PartySize:         partySize,
	})

	return NewReservation(NewParams{
		ShopID:        b.Service.ShopID(),
		ServiceID:     b.Service.ID(),
		ResourceID:    resourceID,
		Identity:      b.Identity,
		Slot:          slot,
		PartySize:     partySize,
		Price:         price,
		Mode:          b.Settings.ConfirmationMode,
		CreatedBy:     b.Actor,
		CustomerNotes: b.CustomerNotes,
		InternalNotes: b.InternalNotes,
		Now:           f.Clock.Now(),
	})
}
