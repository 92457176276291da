package sqlc

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type AvailabilityRules struct {
	ID         uuid.UUID          `json:"id"`
	ShopID     uuid.UUID          `json:"shop_id"`
	ResourceID pgtype.UUID        `json:"resource_id"`
	DayOfWeek  int16              `json:"day_of_week"`
	StartTime  pgtype.Time        `json:"start_time"`
	EndTime    pgtype.Time        `json:"end_time"`
	IsActive   bool               `json:"is_active"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
}

type Blocks struct {
	ID            uuid.UUID          `json:"id"`
	ShopID        uuid.UUID          `json:"shop_id"`
	ResourceID    pgtype.UUID        `json:"resource_id"`
	StartDatetime pgtype.Timestamptz `json:"start_datetime"`
	EndDatetime   pgtype.Timestamptz `json:"end_datetime"`
	Reason        pgtype.Text        `json:"reason"`
	BlockType     string             `json:"block_type"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

type IdempotencyKeys struct {
	Key                 uuid.UUID          `json:"key"`
	ActorKey            string             `json:"actor_key"`
	Endpoint            string             `json:"endpoint"`
	RequestHash         string             `json:"request_hash"`
	Status              string             `json:"status"`
	ResultReservationID pgtype.UUID        `json:"result_reservation_id"`
	ExpiresAt           pgtype.Timestamptz `json:"expires_at"`
	CreatedAt           pgtype.Timestamptz `json:"created_at"`
	UpdatedAt           pgtype.Timestamptz `json:"updated_at"`
}

type Reservations struct {
	ID                 uuid.UUID          `json:"id"`
	ShopID             uuid.UUID          `json:"shop_id"`
	ServiceID          uuid.UUID          `json:"service_id"`
	ResourceID         pgtype.UUID        `json:"resource_id"`
	AppUserID          pgtype.UUID        `json:"app_user_id"`
	GuestName          pgtype.Text        `json:"guest_name"`
	GuestPhone         pgtype.Text        `json:"guest_phone"`
	GuestEmail         pgtype.Text        `json:"guest_email"`
	StartTime          pgtype.Timestamptz `json:"start_time"`
	EndTime            pgtype.Timestamptz `json:"end_time"`
	PartySize          int32              `json:"party_size"`
	Price              pgtype.Int8        `json:"price"`
	Status             string             `json:"status"`
	ConfirmationMode   string             `json:"confirmation_mode"`
	ConfirmedAt        pgtype.Timestamptz `json:"confirmed_at"`
	ConfirmedBy        pgtype.Text        `json:"confirmed_by"`
	CancelledAt        pgtype.Timestamptz `json:"cancelled_at"`
	CancelledBy        pgtype.Text        `json:"cancelled_by"`
	CancellationReason pgtype.Text        `json:"cancellation_reason"`
	NoShowAt           pgtype.Timestamptz `json:"no_show_at"`
	NoShowBy           pgtype.Text        `json:"no_show_by"`
	CompletedAt        pgtype.Timestamptz `json:"completed_at"`
	CustomerNotes      pgtype.Text        `json:"customer_notes"`
	InternalNotes      pgtype.Text        `json:"internal_notes"`
	CreatedAt          pgtype.Timestamptz `json:"created_at"`
	UpdatedAt          pgtype.Timestamptz `json:"updated_at"`
}

type ResourceServices struct {
	ResourceID       uuid.UUID   `json:"resource_id"`
	ServiceID        uuid.UUID   `json:"service_id"`
	PriceOverride    pgtype.Int8 `json:"price_override"`
	DurationOverride pgtype.Int4 `json:"duration_override"`
	IsActive         bool        `json:"is_active"`
}

type Resources struct {
	ID        uuid.UUID          `json:"id"`
	ShopID    uuid.UUID          `json:"shop_id"`
	Name      string             `json:"name"`
	Type      string             `json:"type"`
	IsActive  bool               `json:"is_active"`
	SortOrder int32              `json:"sort_order"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type Services struct {
	ID               uuid.UUID          `json:"id"`
	ShopID           uuid.UUID          `json:"shop_id"`
	Name             string             `json:"name"`
	Description      pgtype.Text        `json:"description"`
	DurationMinutes  pgtype.Int4        `json:"duration_minutes"`
	Price            pgtype.Int8        `json:"price"`
	Capacity         int32              `json:"capacity"`
	RequiresResource bool               `json:"requires_resource"`
	IsActive         bool               `json:"is_active"`
	SortOrder        int32              `json:"sort_order"`
	CreatedAt        pgtype.Timestamptz `json:"created_at"`
	UpdatedAt        pgtype.Timestamptz `json:"updated_at"`
}
