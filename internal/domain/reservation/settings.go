package reservation

import (
	"encoding/json"

	"shop-reservation/internal/pkg/errs"
)

const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 24 * 60
	MaxAdvanceDaysLimit    = 365
)

// Settings is the per-shop booking policy, always fully populated.
type Settings struct {
	ConfirmationMode    ConfirmationMode `json:"confirmation_mode"`
	CancellationHours   int              `json:"cancellation_hours"`
	MaxAdvanceDays      int              `json:"max_advance_days"`
	MinAdvanceHours     int              `json:"min_advance_hours"`
	AllowAnyStaff       bool             `json:"allow_any_staff"`
	SlotDurationMinutes int              `json:"slot_duration_minutes"`
}

// SettingsPatch is the stored or requested partial form; nil means "inherit".
type SettingsPatch struct {
	ConfirmationMode    *ConfirmationMode `json:"confirmation_mode,omitempty"`
	CancellationHours   *int              `json:"cancellation_hours,omitempty"`
	MaxAdvanceDays      *int              `json:"max_advance_days,omitempty"`
	MinAdvanceHours     *int              `json:"min_advance_hours,omitempty"`
	AllowAnyStaff       *bool             `json:"allow_any_staff,omitempty"`
	SlotDurationMinutes *int              `json:"slot_duration_minutes,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		ConfirmationMode:    ConfirmationAuto,
		CancellationHours:   24,
		MaxAdvanceDays:      60,
		MinAdvanceHours:     1,
		AllowAnyStaff:       true,
		SlotDurationMinutes: 30,
	}
}

func (s Settings) Merge(p SettingsPatch) Settings {
	if p.ConfirmationMode != nil {
		s.ConfirmationMode = *p.ConfirmationMode
	}
	if p.CancellationHours != nil {
		s.CancellationHours = *p.CancellationHours
	}
	if p.MaxAdvanceDays != nil {
		s.MaxAdvanceDays = *p.MaxAdvanceDays
	}
	if p.MinAdvanceHours != nil {
		s.MinAdvanceHours = *p.MinAdvanceHours
	}
	if p.AllowAnyStaff != nil {
		s.AllowAnyStaff = *p.AllowAnyStaff
	}
	if p.SlotDurationMinutes != nil {
		s.SlotDurationMinutes = *p.SlotDurationMinutes
	}
	return s
}

func (s Settings) Validate() error {
	if !s.ConfirmationMode.IsValid() {
		return errs.Validationf("confirmation_mode must be one of auto, manual (got %q)", s.ConfirmationMode)
	}
	if s.CancellationHours < 0 {
		return errs.Validation("cancellation_hours must be 0 or greater")
	}
	if s.MinAdvanceHours < 0 {
		return errs.Validation("min_advance_hours must be 0 or greater")
	}
	if s.MaxAdvanceDays < 1 || s.MaxAdvanceDays > MaxAdvanceDaysLimit {
		return errs.Validationf("max_advance_days must be between 1 and %d", MaxAdvanceDaysLimit)
	}
	if s.SlotDurationMinutes < MinSlotDurationMinutes || s.SlotDurationMinutes > MaxSlotDurationMinutes {
		return errs.Validationf("slot_duration_minutes must be between %d and %d", MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}
	return nil
}

// Overlay returns p with every field set in next replacing its own.
func (p SettingsPatch) Overlay(next SettingsPatch) SettingsPatch {
	if next.ConfirmationMode != nil {
		p.ConfirmationMode = next.ConfirmationMode
	}
	if next.CancellationHours != nil {
		p.CancellationHours = next.CancellationHours
	}
	if next.MaxAdvanceDays != nil {
		p.MaxAdvanceDays = next.MaxAdvanceDays
	}
	if next.MinAdvanceHours != nil {
		p.MinAdvanceHours = next.MinAdvanceHours
	}
	if next.AllowAnyStaff != nil {
		p.AllowAnyStaff = next.AllowAnyStaff
	}
	if next.SlotDurationMinutes != nil {
		p.SlotDurationMinutes = next.SlotDurationMinutes
	}
	return p
}

// DecodeSettingsPatch reads the stored partial form. An empty blob is an empty patch.
func DecodeSettingsPatch(raw []byte) (SettingsPatch, error) {
	var p SettingsPatch
	if len(raw) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return SettingsPatch{}, errs.Wrap(err, "decode reservation settings")
	}
	return p, nil
}

// DecodeSettings merges a stored JSON blob over defaults. An empty blob
// yields the defaults unchanged.
func DecodeSettings(raw []byte, defaults Settings) (Settings, error) {
	p, err := DecodeSettingsPatch(raw)
	if err != nil {
		return Settings{}, err
	}
	return defaults.Merge(p), nil
}

// EncodeSettingsPatch stores only the fields a shop has set, so unset ones
// keep following the global defaults.
func EncodeSettingsPatch(p SettingsPatch) ([]byte, error) {
	return json.Marshal(p)
}
