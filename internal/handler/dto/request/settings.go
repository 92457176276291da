package request

import (
	"shop-reservation/internal/domain/reservation"
)

// UpdateSettingsRequest is a patch; omitted fields keep their current value.
type UpdateSettingsRequest struct {
	ConfirmationMode    *string `json:"confirmation_mode,omitempty"`
	CancellationHours   *int    `json:"cancellation_hours,omitempty"`
	MaxAdvanceDays      *int    `json:"max_advance_days,omitempty"`
	MinAdvanceHours     *int    `json:"min_advance_hours,omitempty"`
	AllowAnyStaff       *bool   `json:"allow_any_staff,omitempty"`
	SlotDurationMinutes *int    `json:"slot_duration_minutes,omitempty"`
}

func (r UpdateSettingsRequest) ToPatch() reservation.SettingsPatch {
	p := reservation.SettingsPatch{
		CancellationHours:   r.CancellationHours,
		MaxAdvanceDays:      r.MaxAdvanceDays,
		MinAdvanceHours:     r.MinAdvanceHours,
		AllowAnyStaff:       r.AllowAnyStaff,
		SlotDurationMinutes: r.SlotDurationMinutes,
	}
	if r.ConfirmationMode != nil {
		mode := reservation.ConfirmationMode(*r.ConfirmationMode)
		p.ConfirmationMode = &mode
	}
	return p
}
