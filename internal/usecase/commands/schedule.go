package commands

import (
	"context"
	"time"

	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/domain/schedule"
	"shop-reservation/internal/pkg/clock"
	"shop-reservation/internal/pkg/errs"
	"shop-reservation/internal/usecase/queries"
	"shop-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrNoRules = errs.Validation("at least one availability rule is required")

type RuleInput struct {
	DayOfWeek int
	StartTime string
	EndTime   string
}

type BlockInput struct {
	ResourceID *uuid.UUID
	Start      time.Time
	End        time.Time
	Reason     *string
	BlockType  string
}

type ScheduleCommands interface {
	// SetAvailability replaces every rule of one scope: the shop itself when
	// resourceID is nil, otherwise that resource.
	SetAvailability(ctx context.Context, actor reservation.Actor, shopID uuid.UUID, resourceID *uuid.UUID, rules []RuleInput) ([]queries.RuleView, error)
	CreateBlock(ctx context.Context, actor reservation.Actor, shopID uuid.UUID, in BlockInput) (*queries.BlockView, error)
	DeleteBlock(ctx context.Context, actor reservation.Actor, shopID, blockID uuid.UUID) error
}

type scheduleCommandsImpl struct {
	uow   shared.UnitOfWork
	cache shared.AvailabilityCache
	clock clock.Clock
}

func NewScheduleCommands(uow shared.UnitOfWork, cache shared.AvailabilityCache, clock clock.Clock) ScheduleCommands {
	return &scheduleCommandsImpl{uow: uow, cache: cache, clock: clock}
}

func (u *scheduleCommandsImpl) SetAvailability(ctx context.Context, actor reservation.Actor, shopID uuid.UUID, resourceID *uuid.UUID, in []RuleInput) ([]queries.RuleView, error) {
	if err := shared.RequireShopAdmin(actor, shopID); err != nil {
		return nil, err
	}
	if len(in) == 0 {
		return nil, ErrNoRules
	}

	rules := make([]schedule.Rule, len(in))
	for i, ri := range in {
		rule, err := schedule.NewRule(shopID, resourceID, ri.DayOfWeek, ri.StartTime, ri.EndTime)
		if err != nil {
			return nil, err
		}
		rules[i] = rule
	}

	var out []queries.RuleView
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if resourceID != nil {
			if _, err := tx.Resources().Get(ctx, shopID, *resourceID); err != nil {
				return shared.TranslateRepoErr(err, "resource")
			}
		}
		if err := tx.Schedules().DeleteRules(ctx, shopID, resourceID); err != nil {
			return shared.TranslateRepoErr(err, "availability rules")
		}
		for _, r := range rules {
			if err := tx.Schedules().InsertRule(ctx, r); err != nil {
				return shared.TranslateRepoErr(err, "availability rules")
			}
		}
		stored, err := tx.Schedules().ListRules(ctx, shopID, resourceID)
		if err != nil {
			return shared.TranslateRepoErr(err, "availability rules")
		}
		out = queries.ToRuleViews(stored)
		return nil
	})
	if err != nil {
		return nil, err
	}

	shared.InvalidateAvailability(ctx, u.cache, shopID)
	return out, nil
}

func (u *scheduleCommandsImpl) CreateBlock(ctx context.Context, actor reservation.Actor, shopID uuid.UUID, in BlockInput) (*queries.BlockView, error) {
	if err := shared.RequireShopAdmin(actor, shopID); err != nil {
		return nil, err
	}
	block, err := schedule.NewBlock(shopID, in.ResourceID, in.Start, in.End, in.Reason, in.BlockType, u.clock.Now())
	if err != nil {
		return nil, err
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if in.ResourceID != nil {
			if _, err := tx.Resources().Get(ctx, shopID, *in.ResourceID); err != nil {
				return shared.TranslateRepoErr(err, "resource")
			}
		}
		return shared.TranslateRepoErr(tx.Schedules().CreateBlock(ctx, block), "block")
	})
	if err != nil {
		return nil, err
	}

	shared.InvalidateAvailability(ctx, u.cache, shopID)
	view := queries.ToBlockView(block)
	return &view, nil
}

func (u *scheduleCommandsImpl) DeleteBlock(ctx context.Context, actor reservation.Actor, shopID, blockID uuid.UUID) error {
	if err := shared.RequireShopAdmin(actor, shopID); err != nil {
		return err
	}
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return shared.TranslateRepoErr(tx.Schedules().DeleteBlock(ctx, shopID, blockID), "block")
	})
	if err != nil {
		return err
	}

	shared.InvalidateAvailability(ctx, u.cache, shopID)
	return nil
}
