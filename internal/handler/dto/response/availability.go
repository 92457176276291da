package response

import (
	"shop-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type AvailabilityResponse struct {
	ShopID     uuid.UUID                 `json:"shop_id"`
	ServiceID  uuid.UUID                 `json:"service_id"`
	ResourceID *uuid.UUID                `json:"resource_id,omitempty"`
	DateFrom   string                    `json:"date_from"`
	DateTo     string                    `json:"date_to"`
	Days       []queries.DayAvailability `json:"days"`
}

// NextSlotResponse carries a nil slot when nothing is open in the booking window.
type NextSlotResponse struct {
	ShopID    uuid.UUID             `json:"shop_id"`
	ServiceID uuid.UUID             `json:"service_id"`
	Slot      *queries.NextSlotView `json:"slot"`
}
