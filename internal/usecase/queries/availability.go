package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"shop-reservation/internal/domain/availability"
	"shop-reservation/internal/domain/catalog"
	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/domain/schedule"
	"shop-reservation/internal/pkg/clock"
	"shop-reservation/internal/pkg/errs"
	"shop-reservation/internal/pkg/metrics"
	"shop-reservation/internal/pkg/timegrid"
	"shop-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type AvailabilityQueries interface {
	// GetAvailability returns one entry per calendar day in [from, to].
	GetAvailability(ctx context.Context, shopID, serviceID uuid.UUID, from, to time.Time, resourceID *uuid.UUID) ([]DayAvailability, error)
	// GetNextAvailableSlot returns nil when nothing is open within the booking window.
	GetNextAvailableSlot(ctx context.Context, shopID, serviceID uuid.UUID, resourceID *uuid.UUID) (*NextSlotView, error)
}

type availabilityQueriesImpl struct {
	uow      shared.UnitOfWork
	cache    shared.AvailabilityCache
	clock    clock.Clock
	defaults shared.SettingsDefaults
}

func NewAvailabilityQueries(uow shared.UnitOfWork, cache shared.AvailabilityCache, clock clock.Clock, defaults shared.SettingsDefaults) AvailabilityQueries {
	return &availabilityQueriesImpl{
		uow:      uow,
		cache:    cache,
		clock:    clock,
		defaults: defaults,
	}
}

func (q *availabilityQueriesImpl) GetAvailability(ctx context.Context, shopID, serviceID uuid.UUID, from, to time.Time, resourceID *uuid.UUID) ([]DayAvailability, error) {
	started := time.Now()
	defer func() { metrics.ObserveAvailability(time.Since(started)) }()

	from = timegrid.StartOfDay(from)
	to = timegrid.StartOfDay(to.In(from.Location()))
	if from.After(to) {
		return nil, errs.Validation("date_from must not be after date_to")
	}

	now := q.clock.Now()
	key, cacheable := q.cacheKey(ctx, shopID, serviceID, from, to, resourceID, now)
	if cacheable {
		if days, ok := q.readCache(ctx, key); ok {
			metrics.IncCacheResult("hit")
			return days, nil
		}
		metrics.IncCacheResult("miss")
	}

	var out []DayAvailability
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		settings, err := shared.LoadSettings(ctx, tx, shopID, q.defaults)
		if err != nil {
			return err
		}
		if maxDays := settings.MaxAdvanceDays + 1; timegrid.DaysBetween(from, to) > maxDays {
			return errs.Validationf("date range cannot exceed %d days", maxDays)
		}

		in, err := q.loadInput(ctx, tx, shopID, serviceID, resourceID, settings, from, to.AddDate(0, 0, 1), now)
		if err != nil {
			return err
		}
		out = toDayViews(availability.Compute(in, from, to))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cacheable {
		q.writeCache(ctx, key, out)
	}
	return out, nil
}

func (q *availabilityQueriesImpl) GetNextAvailableSlot(ctx context.Context, shopID, serviceID uuid.UUID, resourceID *uuid.UUID) (*NextSlotView, error) {
	var out *NextSlotView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		settings, err := shared.LoadSettings(ctx, tx, shopID, q.defaults)
		if err != nil {
			return err
		}

		now := q.clock.Now()
		today := timegrid.StartOfDay(now)
		days := settings.MaxAdvanceDays
		in, err := q.loadInput(ctx, tx, shopID, serviceID, resourceID, settings, today, today.AddDate(0, 0, days), now)
		if err != nil {
			return err
		}

		slot, ok := availability.FirstAvailable(in, today, days)
		if !ok {
			return nil
		}
		out = &NextSlotView{
			Date:     timegrid.FormatDate(slot.Start),
			SlotView: toSlotView(slot),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// loadInput gathers everything the engine needs for instants in [windowFrom, windowTo).
func (q *availabilityQueriesImpl) loadInput(
	ctx context.Context,
	tx shared.Tx,
	shopID, serviceID uuid.UUID,
	resourceID *uuid.UUID,
	settings reservation.Settings,
	windowFrom, windowTo, now time.Time,
) (availability.Input, error) {
	svc, err := tx.Services().Get(ctx, shopID, serviceID)
	if err != nil {
		return availability.Input{}, shared.TranslateRepoErr(err, "service")
	}
	if !svc.IsActive() {
		return availability.Input{}, errs.NotFound("service")
	}

	candidates, err := q.candidates(ctx, tx, svc, resourceID, settings)
	if err != nil {
		return availability.Input{}, err
	}

	rules, err := tx.Schedules().ListAllActiveRules(ctx, shopID)
	if err != nil {
		return availability.Input{}, shared.TranslateRepoErr(err, "availability rules")
	}
	blocks, err := tx.Schedules().ListBlocks(ctx, shopID, schedule.BlockFilter{
		From:  &windowFrom,
		To:    &windowTo,
		Scope: schedule.AnyScope(),
	})
	if err != nil {
		return availability.Input{}, shared.TranslateRepoErr(err, "blocks")
	}
	active, err := tx.Reservations().ListActiveInRange(ctx, shopID, windowFrom, windowTo)
	if err != nil {
		return availability.Input{}, shared.TranslateRepoErr(err, "reservations")
	}

	bookings := make([]availability.Booking, len(active))
	for i, r := range active {
		bookings[i] = availability.Booking{
			ResourceID: r.ResourceID(),
			ServiceID:  r.ServiceID(),
			Start:      r.StartTime(),
			End:        r.EndTime(),
			PartySize:  r.PartySize(),
		}
	}

	return availability.Input{
		ServiceID:       svc.ID(),
		Capacity:        svc.Capacity(),
		Candidates:      candidates,
		Rules:           rules,
		Blocks:          blocks,
		Bookings:        bookings,
		StepMinutes:     settings.SlotDurationMinutes,
		MinAdvanceHours: settings.MinAdvanceHours,
		Now:             now,
	}, nil
}

func (q *availabilityQueriesImpl) candidates(ctx context.Context, tx shared.Tx, svc *catalog.Service, resourceID *uuid.UUID, settings reservation.Settings) ([]availability.Candidate, error) {
	if !svc.RequiresResource() {
		return []availability.Candidate{{
			DurationMinutes: catalog.EffectiveDuration(nil, svc.DurationMinutes(), settings.SlotDurationMinutes),
		}}, nil
	}

	linked, err := tx.Links().ListByService(ctx, svc.ShopID(), svc.ID(), true)
	if err != nil {
		return nil, shared.TranslateRepoErr(err, "service resources")
	}

	out := make([]availability.Candidate, 0, len(linked))
	for _, lr := range linked {
		id := lr.Resource.ID()
		if resourceID != nil && *resourceID != id {
			continue
		}
		out = append(out, availability.Candidate{
			ResourceID:      &id,
			ResourceName:    lr.Resource.Name(),
			DurationMinutes: catalog.EffectiveDuration(lr.Link.DurationOverride, svc.DurationMinutes(), settings.SlotDurationMinutes),
		})
	}
	return out, nil
}

// cacheKey embeds the shop version and the current minute, so a bumped
// version or a passing minute both lead to a fresh computation.
func (q *availabilityQueriesImpl) cacheKey(ctx context.Context, shopID, serviceID uuid.UUID, from, to time.Time, resourceID *uuid.UUID, now time.Time) (string, bool) {
	if q.cache == nil {
		return "", false
	}
	version, err := q.cache.Version(ctx, shopID)
	if err != nil {
		slog.Warn("availability cache unavailable",
			"shop_id", shopID.String(),
			"error", err.Error())
		return "", false
	}

	resource := "-"
	if resourceID != nil {
		resource = resourceID.String()
	}
	return fmt.Sprintf("%s:%s:%s:%s:%s:%d:v%d",
		shopID, serviceID, resource,
		timegrid.FormatDate(from), timegrid.FormatDate(to),
		now.Unix()/60, version,
	), true
}

func (q *availabilityQueriesImpl) readCache(ctx context.Context, key string) ([]DayAvailability, bool) {
	raw, ok, err := q.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("availability cache read failed", "key", key, "error", err.Error())
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var days []DayAvailability
	if err := json.Unmarshal(raw, &days); err != nil {
		slog.Warn("availability cache entry is corrupt", "key", key, "error", err.Error())
		return nil, false
	}
	return days, true
}

func (q *availabilityQueriesImpl) writeCache(ctx context.Context, key string, days []DayAvailability) {
	raw, err := json.Marshal(days)
	if err != nil {
		return
	}
	if err := q.cache.Set(ctx, key, raw); err != nil {
		slog.Warn("availability cache write failed", "key", key, "error", err.Error())
	}
}
