package repository

import (
	"context"

	"shop-reservation/internal/domain/schedule"
	"shop-reservation/internal/infra"
	"shop-reservation/internal/infra/repository/converter"
	sqlc "shop-reservation/internal/infra/sqlc/generated"
	"shop-reservation/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ScheduleWriteQueries interface {
	DeleteAvailabilityRules(ctx context.Context, db sqlc.DBTX, arg sqlc.DeleteAvailabilityRulesParams) error
	InsertAvailabilityRule(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertAvailabilityRuleParams) error
	ListAvailabilityRules(ctx context.Context, db sqlc.DBTX, arg sqlc.ListAvailabilityRulesParams) ([]sqlc.AvailabilityRules, error)
	ListAllActiveRules(ctx context.Context, db sqlc.DBTX, shopID uuid.UUID) ([]sqlc.AvailabilityRules, error)
	CreateBlock(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBlockParams) error
	ListBlocks(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBlocksParams) ([]sqlc.Blocks, error)
	DeleteBlock(ctx context.Context, db sqlc.DBTX, arg sqlc.DeleteBlockParams) (int64, error)
}

type ScheduleRepository struct {
	queries ScheduleWriteQueries
	db      sqlc.DBTX
}

func NewScheduleRepository(queries ScheduleWriteQueries, db sqlc.DBTX) *ScheduleRepository {
	return &ScheduleRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ScheduleRepository) DeleteRules(ctx context.Context, shopID uuid.UUID, resourceID *uuid.UUID) error {
	err := r.queries.DeleteAvailabilityRules(ctx, r.db, sqlc.DeleteAvailabilityRulesParams{
		ShopID:     shopID,
		ResourceID: pgconv.UUIDPtrToPgtype(resourceID),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to delete availability rules", err)
	}
	return nil
}

func (r *ScheduleRepository) InsertRule(ctx context.Context, rule schedule.Rule) error {
	if err := r.queries.InsertAvailabilityRule(ctx, r.db, converter.RuleToInsertParams(rule)); err != nil {
		return infra.WrapRepoErr("failed to insert availability rule", err)
	}
	return nil
}

func (r *ScheduleRepository) ListRules(ctx context.Context, shopID uuid.UUID, resourceID *uuid.UUID) ([]schedule.Rule, error) {
	rows, err := r.queries.ListAvailabilityRules(ctx, r.db, sqlc.ListAvailabilityRulesParams{
		ShopID:     shopID,
		ResourceID: pgconv.UUIDPtrToPgtype(resourceID),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list availability rules", err)
	}
	return rulesFromRows(rows), nil
}

func (r *ScheduleRepository) ListAllActiveRules(ctx context.Context, shopID uuid.UUID) ([]schedule.Rule, error) {
	rows, err := r.queries.ListAllActiveRules(ctx, r.db, shopID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active availability rules", err)
	}
	return rulesFromRows(rows), nil
}

func rulesFromRows(rows []sqlc.AvailabilityRules) []schedule.Rule {
	result := make([]schedule.Rule, len(rows))
	for i, row := range rows {
		result[i] = converter.RuleFromRow(row)
	}
	return result
}

func (r *ScheduleRepository) CreateBlock(ctx context.Context, b schedule.Block) error {
	if err := r.queries.CreateBlock(ctx, r.db, converter.BlockToCreateParams(b)); err != nil {
		return infra.WrapRepoErr("failed to create block", err)
	}
	return nil
}

func (r *ScheduleRepository) ListBlocks(ctx context.Context, shopID uuid.UUID, f schedule.BlockFilter) ([]schedule.Block, error) {
	rows, err := r.queries.ListBlocks(ctx, r.db, sqlc.ListBlocksParams{
		ShopID:     shopID,
		From:       pgconv.TimePtrToPgtype(f.From),
		To:         pgconv.TimePtrToPgtype(f.To),
		ScopeSet:   f.Scope.IsSet(),
		ResourceID: pgconv.UUIDPtrToPgtype(f.Scope.ResourceID()),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blocks", err)
	}
	result := make([]schedule.Block, len(rows))
	for i, row := range rows {
		result[i] = converter.BlockFromRow(row)
	}
	return result, nil
}

func (r *ScheduleRepository) DeleteBlock(ctx context.Context, shopID, id uuid.UUID) error {
	n, err := r.queries.DeleteBlock(ctx, r.db, sqlc.DeleteBlockParams{ID: id, ShopID: shopID})
	if err != nil {
		return infra.WrapRepoErr("failed to delete block", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("block not found", nil, infra.KindNotFound)
	}
	return nil
}
