package shared

import (
	"context"

	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/pkg/config"

	"github.com/google/uuid"
)

// SettingsDefaults are the global defaults every shop inherits.
type SettingsDefaults reservation.Settings

func NewSettingsDefaults(cfg config.Config) SettingsDefaults {
	rc := cfg.Reservation
	return SettingsDefaults{
		ConfirmationMode:    reservation.ConfirmationMode(rc.DefaultConfirmationMode),
		CancellationHours:   rc.DefaultCancellationHours,
		MaxAdvanceDays:      rc.DefaultMaxAdvanceDays,
		MinAdvanceHours:     rc.DefaultMinAdvanceHours,
		AllowAnyStaff:       rc.DefaultAllowAnyStaff,
		SlotDurationMinutes: rc.DefaultSlotDurationMinutes,
	}
}

// LoadSettings returns the shop's stored settings merged over defaults.
func LoadSettings(ctx context.Context, tx Tx, shopID uuid.UUID, defaults SettingsDefaults) (reservation.Settings, error) {
	raw, err := tx.Shops().GetSettings(ctx, shopID)
	if err != nil {
		return reservation.Settings{}, TranslateRepoErr(err, "shop")
	}
	s, err := reservation.DecodeSettings(raw, reservation.Settings(defaults))
	if err != nil {
		return reservation.Settings{}, TranslateRepoErr(err, "shop settings")
	}
	return s, nil
}
