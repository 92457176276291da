package queries

import (
	"context"

	"shop-reservation/internal/domain/schedule"
	"shop-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type ScheduleQueries interface {
	// GetAvailabilitySchedule returns shop-level rules when resourceID is nil.
	GetAvailabilitySchedule(ctx context.Context, shopID uuid.UUID, resourceID *uuid.UUID) ([]RuleView, error)
	ListBlocks(ctx context.Context, shopID uuid.UUID, filter schedule.BlockFilter) ([]BlockView, error)
}

type scheduleQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewScheduleQueries(uow shared.UnitOfWork) ScheduleQueries {
	return &scheduleQueriesImpl{uow: uow}
}

func (q *scheduleQueriesImpl) GetAvailabilitySchedule(ctx context.Context, shopID uuid.UUID, resourceID *uuid.UUID) ([]RuleView, error) {
	var out []RuleView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if resourceID != nil {
			if _, err := tx.Resources().Get(ctx, shopID, *resourceID); err != nil {
				return shared.TranslateRepoErr(err, "resource")
			}
		}
		rules, err := tx.Schedules().ListRules(ctx, shopID, resourceID)
		if err != nil {
			return shared.TranslateRepoErr(err, "availability rules")
		}
		out = ToRuleViews(rules)
		return nil
	})
	return out, err
}

func (q *scheduleQueriesImpl) ListBlocks(ctx context.Context, shopID uuid.UUID, filter schedule.BlockFilter) ([]BlockView, error) {
	var out []BlockView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		blocks, err := tx.Schedules().ListBlocks(ctx, shopID, filter)
		if err != nil {
			return shared.TranslateRepoErr(err, "blocks")
		}
		out = make([]BlockView, len(blocks))
		for i, b := range blocks {
			out[i] = ToBlockView(b)
		}
		return nil
	})
	return out, err
}
