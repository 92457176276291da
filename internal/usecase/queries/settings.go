package queries

import (
	"context"

	"shop-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type SettingsQueries interface {
	GetSettings(ctx context.Context, shopID uuid.UUID) (*SettingsView, error)
}

type settingsQueriesImpl struct {
	uow      shared.UnitOfWork
	defaults shared.SettingsDefaults
}

func NewSettingsQueries(uow shared.UnitOfWork, defaults shared.SettingsDefaults) SettingsQueries {
	return &settingsQueriesImpl{uow: uow, defaults: defaults}
}

func (q *settingsQueriesImpl) GetSettings(ctx context.Context, shopID uuid.UUID) (*SettingsView, error) {
	var out *SettingsView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := shared.LoadSettings(ctx, tx, shopID, q.defaults)
		if err != nil {
			return err
		}
		out = ToSettingsView(s)
		return nil
	})
	return out, err
}
