package repository

import (
	"context"

	"shop-reservation/internal/infra"
	sqlc "shop-reservation/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UserWriteQueries interface {
	IncrementNoShowCount(ctx context.Context, db sqlc.DBTX, id uuid.UUID) error
}

type UserRepository struct {
	queries UserWriteQueries
	db      sqlc.DBTX
}

func NewUserRepository(queries UserWriteQueries, db sqlc.DBTX) *UserRepository {
	return &UserRepository{
		queries: queries,
		db:      db,
	}
}

func (r *UserRepository) IncrementNoShowCount(ctx context.Context, userID uuid.UUID) error {
	if err := r.queries.IncrementNoShowCount(ctx, r.db, userID); err != nil {
		return infra.WrapRepoErr("failed to increment no-show count", err)
	}
	return nil
}
