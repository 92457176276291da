package commands

import (
	"context"

	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/usecase/queries"
	"shop-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type SettingsCommands interface {
	// UpdateSettings merges the patch into the shop's stored settings and
	// rejects the result unless the effective settings validate.
	UpdateSettings(ctx context.Context, actor reservation.Actor, shopID uuid.UUID, patch reservation.SettingsPatch) (*queries.SettingsView, error)
}

type settingsCommandsImpl struct {
	uow      shared.UnitOfWork
	cache    shared.AvailabilityCache
	defaults shared.SettingsDefaults
}

func NewSettingsCommands(uow shared.UnitOfWork, cache shared.AvailabilityCache, defaults shared.SettingsDefaults) SettingsCommands {
	return &settingsCommandsImpl{uow: uow, cache: cache, defaults: defaults}
}

func (u *settingsCommandsImpl) UpdateSettings(ctx context.Context, actor reservation.Actor, shopID uuid.UUID, patch reservation.SettingsPatch) (*queries.SettingsView, error) {
	if err := shared.RequireShopAdmin(actor, shopID); err != nil {
		return nil, err
	}

	var effective reservation.Settings
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		raw, err := tx.Shops().GetSettings(ctx, shopID)
		if err != nil {
			return shared.TranslateRepoErr(err, "shop")
		}
		stored, err := reservation.DecodeSettingsPatch(raw)
		if err != nil {
			return shared.TranslateRepoErr(err, "shop settings")
		}

		next := stored.Overlay(patch)
		effective = reservation.Settings(u.defaults).Merge(next)
		if err := effective.Validate(); err != nil {
			return err
		}

		encoded, err := reservation.EncodeSettingsPatch(next)
		if err != nil {
			return shared.TranslateRepoErr(err, "shop settings")
		}
		return shared.TranslateRepoErr(tx.Shops().UpdateSettings(ctx, shopID, encoded), "shop")
	})
	if err != nil {
		return nil, err
	}

	shared.InvalidateAvailability(ctx, u.cache, shopID)
	return queries.ToSettingsView(effective), nil
}
