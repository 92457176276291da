package repository

import (
	"context"

	"shop-reservation/internal/infra"
	sqlc "shop-reservation/internal/infra/sqlc/generated"
	"shop-reservation/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ShopQueries interface {
	GetShopSettings(ctx context.Context, db sqlc.DBTX, id uuid.UUID) ([]byte, error)
	UpdateShopSettings(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateShopSettingsParams) (int64, error)
}

type ShopRepository struct {
	queries ShopQueries
	db      sqlc.DBTX
}

func NewShopRepository(queries ShopQueries, db sqlc.DBTX) *ShopRepository {
	return &ShopRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ShopRepository) GetSettings(ctx context.Context, shopID uuid.UUID) ([]byte, error) {
	raw, err := r.queries.GetShopSettings(ctx, r.db, shopID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("shop not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get shop settings", err)
	}
	return raw, nil
}

func (r *ShopRepository) UpdateSettings(ctx context.Context, shopID uuid.UUID, raw []byte) error {
	n, err := r.queries.UpdateShopSettings(ctx, r.db, sqlc.UpdateShopSettingsParams{
		ID:                  shopID,
		ReservationSettings: raw,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update shop settings", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("shop not found", nil, infra.KindNotFound)
	}
	return nil
}
