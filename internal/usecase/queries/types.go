package queries

import (
	"time"

	"github.com/google/uuid"
)

// ReservationView is a reservation flattened with its service and resource names.
type ReservationView struct {
	ID                 uuid.UUID  `json:"id"`
	ShopID             uuid.UUID  `json:"shop_id"`
	ServiceID          uuid.UUID  `json:"service_id"`
	ServiceName        string     `json:"service_name"`
	ResourceID         *uuid.UUID `json:"resource_id,omitempty"`
	ResourceName       *string    `json:"resource_name,omitempty"`
	AppUserID          *uuid.UUID `json:"app_user_id,omitempty"`
	GuestName          *string    `json:"guest_name,omitempty"`
	GuestPhone         *string    `json:"guest_phone,omitempty"`
	GuestEmail         *string    `json:"guest_email,omitempty"`
	StartTime          time.Time  `json:"start_time"`
	EndTime            time.Time  `json:"end_time"`
	PartySize          int        `json:"party_size"`
	Price              *int64     `json:"price,omitempty"`
	Status             string     `json:"status"`
	ConfirmationMode   string     `json:"confirmation_mode"`
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	NoShowAt           *time.Time `json:"no_show_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CustomerNotes      *string    `json:"customer_notes,omitempty"`
	InternalNotes      *string    `json:"internal_notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ReservationFilter narrows ListReservations. From/To bound start_time as [From, To).
type ReservationFilter struct {
	Status     *string
	ServiceID  *uuid.UUID
	ResourceID *uuid.UUID
	AppUserID  *uuid.UUID
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

type ReservationPage struct {
	Items  []*ReservationView `json:"items"`
	Total  int64              `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

type ReservationStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Cancelled int64 `json:"cancelled"`
	Completed int64 `json:"completed"`
	NoShow    int64 `json:"no_show"`
}

type ServiceView struct {
	ID               uuid.UUID            `json:"id"`
	ShopID           uuid.UUID            `json:"shop_id"`
	Name             string               `json:"name"`
	Description      *string              `json:"description,omitempty"`
	DurationMinutes  *int                 `json:"duration_minutes,omitempty"`
	Price            *int64               `json:"price,omitempty"`
	Capacity         int                  `json:"capacity"`
	RequiresResource bool                 `json:"requires_resource"`
	IsActive         bool                 `json:"is_active"`
	SortOrder        int                  `json:"sort_order"`
	Resources        []LinkedResourceView `json:"resources,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// LinkedResourceView is a resource as seen from one of its services, overrides flattened.
type LinkedResourceView struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Type             string    `json:"type"`
	IsActive         bool      `json:"is_active"`
	LinkActive       bool      `json:"link_active"`
	PriceOverride    *int64    `json:"price_override,omitempty"`
	DurationOverride *int      `json:"duration_override,omitempty"`
}

type ResourceView struct {
	ID        uuid.UUID           `json:"id"`
	ShopID    uuid.UUID           `json:"shop_id"`
	Name      string              `json:"name"`
	Type      string              `json:"type"`
	IsActive  bool                `json:"is_active"`
	SortOrder int                 `json:"sort_order"`
	Services  []LinkedServiceView `json:"services,omitempty"`
	Rules     []RuleView          `json:"availability_rules,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

type LinkedServiceView struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	IsActive         bool      `json:"is_active"`
	LinkActive       bool      `json:"link_active"`
	PriceOverride    *int64    `json:"price_override,omitempty"`
	DurationOverride *int      `json:"duration_override,omitempty"`
}

type RuleView struct {
	ID         uuid.UUID  `json:"id"`
	ResourceID *uuid.UUID `json:"resource_id,omitempty"`
	DayOfWeek  int        `json:"day_of_week"`
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
	IsActive   bool       `json:"is_active"`
}

type BlockView struct {
	ID            uuid.UUID  `json:"id"`
	ResourceID    *uuid.UUID `json:"resource_id,omitempty"`
	StartDatetime time.Time  `json:"start_datetime"`
	EndDatetime   time.Time  `json:"end_datetime"`
	Reason        *string    `json:"reason,omitempty"`
	BlockType     string     `json:"block_type"`
	CreatedAt     time.Time  `json:"created_at"`
}

type SlotView struct {
	StartTime    string     `json:"start_time"`
	EndTime      string     `json:"end_time"`
	Available    bool       `json:"available"`
	ResourceID   *uuid.UUID `json:"resource_id,omitempty"`
	ResourceName *string    `json:"resource_name,omitempty"`
}

type DayAvailability struct {
	Date  string     `json:"date"`
	Slots []SlotView `json:"slots"`
}

type NextSlotView struct {
	Date string `json:"date"`
	SlotView
}

type SettingsView struct {
	ConfirmationMode    string `json:"confirmation_mode"`
	CancellationHours   int    `json:"cancellation_hours"`
	MaxAdvanceDays      int    `json:"max_advance_days"`
	MinAdvanceHours     int    `json:"min_advance_hours"`
	AllowAnyStaff       bool   `json:"allow_any_staff"`
	SlotDurationMinutes int    `json:"slot_duration_minutes"`
}
