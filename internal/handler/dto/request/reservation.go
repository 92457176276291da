package request

import (
	"strings"
	"time"

	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/usecase/commands"

	"github.com/google/uuid"
)

// GuestContact identifies a guest. Without a bearer token it is who the
// caller is; with a staff token it is who the booking is for.
type GuestContact struct {
	Name  string  `json:"name" binding:"required"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

func (g *GuestContact) ToDomain(phoneRegion string) (reservation.GuestContact, error) {
	return reservation.NewGuestContact(strings.TrimSpace(g.Name), g.Phone, g.Email, phoneRegion)
}

type CreateReservationRequest struct {
	ServiceID     uuid.UUID     `json:"service_id" binding:"required"`
	ResourceID    *uuid.UUID    `json:"resource_id,omitempty"`
	StartTime     time.Time     `json:"start_time" binding:"required"`
	PartySize     int           `json:"party_size,omitempty"`
	AppUserID     *uuid.UUID    `json:"app_user_id,omitempty"`
	Guest         *GuestContact `json:"guest,omitempty"`
	CustomerNotes *string       `json:"customer_notes,omitempty"`
	InternalNotes *string       `json:"internal_notes,omitempty"`
}

func (r CreateReservationRequest) ToInput(guestIsCaller bool) commands.CreateReservationInput {
	in := commands.CreateReservationInput{
		ServiceID:     r.ServiceID,
		ResourceID:    r.ResourceID,
		StartTime:     r.StartTime,
		PartySize:     r.PartySize,
		AppUserID:     r.AppUserID,
		CustomerNotes: trimmed(r.CustomerNotes),
		InternalNotes: trimmed(r.InternalNotes),
	}
	if r.Guest != nil && !guestIsCaller {
		in.Guest = &commands.GuestInput{
			Name:  strings.TrimSpace(r.Guest.Name),
			Phone: r.Guest.Phone,
			Email: r.Guest.Email,
		}
	}
	return in
}

type UpdateReservationRequest struct {
	StartTime     *time.Time    `json:"start_time,omitempty"`
	PartySize     *int          `json:"party_size,omitempty"`
	CustomerNotes *string       `json:"customer_notes,omitempty"`
	InternalNotes *string       `json:"internal_notes,omitempty"`
	Guest         *GuestContact `json:"guest,omitempty"`
}

func (r UpdateReservationRequest) ToInput() commands.UpdateReservationInput {
	return commands.UpdateReservationInput{
		StartTime:     r.StartTime,
		PartySize:     r.PartySize,
		CustomerNotes: r.CustomerNotes,
		InternalNotes: r.InternalNotes,
	}
}

type CancelReservationRequest struct {
	Reason *string       `json:"reason,omitempty"`
	Guest  *GuestContact `json:"guest,omitempty"`
}

func (r CancelReservationRequest) GetReason() *string {
	return trimmed(r.Reason)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
