//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"shop-reservation/internal/domain/catalog"
	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/domain/schedule"
	"shop-reservation/internal/infra/cache"
	"shop-reservation/internal/pkg/clock"
	"shop-reservation/internal/pkg/config"
	"shop-reservation/internal/pkg/errs"
	"shop-reservation/internal/usecase/queries"
	"shop-reservation/internal/usecase/shared"
	"shop-reservation/tests/common/builder"
	"shop-reservation/tests/common/memstore"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday 2026-10-19 09:00 UTC
var baseTime = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

var tuesday = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

type availabilityFixture struct {
	store   *memstore.Store
	cache   *cache.RedisAvailabilityCache
	queries queries.AvailabilityQueries
	shopID  uuid.UUID
	service *catalog.Service
	staffA  *catalog.Resource
	staffB  *catalog.Resource
}

func newAvailabilityFixture(t *testing.T) *availabilityFixture {
	t.Helper()
	store := memstore.New()
	shopID := uuid.New()
	store.AddShop(shopID, nil)

	svc := builder.NewServiceBuilder().WithShopID(shopID).WithDuration(60).Build()
	staffA := builder.NewResourceBuilder().WithShopID(shopID).WithName("Aiko").WithSortOrder(0).Build()
	staffB := builder.NewResourceBuilder().WithShopID(shopID).WithName("Ben").WithSortOrder(1).Build()
	store.AddService(svc)
	store.AddResource(staffA)
	store.AddResource(staffB)
	store.AddLink(catalog.Link{ResourceID: staffA.ID(), ServiceID: svc.ID(), IsActive: true})
	store.AddLink(catalog.Link{ResourceID: staffB.ID(), ServiceID: svc.ID(), IsActive: true})

	rule, err := schedule.NewRule(shopID, nil, 2, "09:00", "12:00")
	require.NoError(t, err)
	store.AddRule(rule)

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	c := cache.NewRedisAvailabilityCache(rdb, time.Minute, "test")

	return &availabilityFixture{
		store:   store,
		cache:   c,
		queries: queries.NewAvailabilityQueries(store, c, clock.NewMockClock(baseTime), shared.NewSettingsDefaults(config.NewTestConfig())),
		shopID:  shopID,
		service: svc,
		staffA:  staffA,
		staffB:  staffB,
	}
}

func (f *availabilityFixture) addBooking(t *testing.T, resourceID uuid.UUID, start time.Time) {
	t.Helper()
	userID := uuid.New()
	slot, err := reservation.SlotFor(start, 60)
	require.NoError(t, err)
	res, err := reservation.NewReservation(reservation.NewParams{
		ShopID:     f.shopID,
		ServiceID:  f.service.ID(),
		ResourceID: &resourceID,
		Identity:   reservation.Identity{AppUserID: &userID},
		Slot:       slot,
		PartySize:  1,
		Now:        baseTime,
	})
	require.NoError(t, err)
	f.store.AddReservation(res)
}

type slotKey struct {
	start     string
	resource  uuid.UUID
	available bool
}

func slotsOf(day queries.DayAvailability) []slotKey {
	out := make([]slotKey, 0, len(day.Slots))
	for _, s := range day.Slots {
		var id uuid.UUID
		if s.ResourceID != nil {
			id = *s.ResourceID
		}
		out = append(out, slotKey{start: s.StartTime, resource: id, available: s.Available})
	}
	return out
}

func TestGetAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("基本成功ケース", func(t *testing.T) {
		f := newAvailabilityFixture(t)

		days, err := f.queries.GetAvailability(ctx, f.shopID, f.service.ID(), tuesday, tuesday, nil)

		require.NoError(t, err)
		require.Len(t, days, 1)
		assert.Equal(t, "2026-10-20", days[0].Date)
		assert.Len(t, days[0].Slots, 10)
		for _, s := range days[0].Slots {
			assert.True(t, s.Available)
			require.NotNil(t, s.ResourceName)
		}
	})

	t.Run("予約済みの枠は利用不可として残りブロックは除外", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		f.addBooking(t, f.staffA.ID(), tuesday.Add(9*time.Hour))
		staffB := f.staffB.ID()
		block, err := schedule.NewBlock(f.shopID, &staffB, tuesday.Add(11*time.Hour), tuesday.Add(12*time.Hour), nil, "break", baseTime)
		require.NoError(t, err)
		f.store.AddBlock(block)

		days, err := f.queries.GetAvailability(ctx, f.shopID, f.service.ID(), tuesday, tuesday, nil)

		require.NoError(t, err)
		slots := slotsOf(days[0])
		assert.Contains(t, slots, slotKey{start: "09:00", resource: f.staffA.ID(), available: false})
		assert.Contains(t, slots, slotKey{start: "09:30", resource: f.staffA.ID(), available: false})
		assert.Contains(t, slots, slotKey{start: "10:00", resource: f.staffA.ID(), available: true})
		assert.Contains(t, slots, slotKey{start: "10:00", resource: staffB, available: true})
		assert.NotContains(t, slots, slotKey{start: "11:00", resource: staffB, available: true})
		assert.NotContains(t, slots, slotKey{start: "10:30", resource: staffB, available: true})
	})

	t.Run("リソース指定で絞り込み", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		staffB := f.staffB.ID()

		days, err := f.queries.GetAvailability(ctx, f.shopID, f.service.ID(), tuesday, tuesday, &staffB)

		require.NoError(t, err)
		assert.Len(t, days[0].Slots, 5)
		for _, s := range days[0].Slots {
			require.NotNil(t, s.ResourceID)
			assert.Equal(t, staffB, *s.ResourceID)
		}
	})

	t.Run("ルールのない日は空の一覧", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		wednesday := tuesday.AddDate(0, 0, 1)

		days, err := f.queries.GetAvailability(ctx, f.shopID, f.service.ID(), tuesday, wednesday, nil)

		require.NoError(t, err)
		require.Len(t, days, 2)
		assert.Equal(t, "2026-10-21", days[1].Date)
		assert.Empty(t, days[1].Slots)
	})

	t.Run("期間の検証", func(t *testing.T) {
		f := newAvailabilityFixture(t)

		_, err := f.queries.GetAvailability(ctx, f.shopID, f.service.ID(), tuesday, tuesday.AddDate(0, 0, -1), nil)
		assert.True(t, errs.Is(err, errs.ErrValidation))

		_, err = f.queries.GetAvailability(ctx, f.shopID, f.service.ID(), tuesday, tuesday.AddDate(0, 0, 61), nil)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("非アクティブなサービスはNOT_FOUND", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		inactive := builder.NewServiceBuilder().WithShopID(f.shopID).AsInactive().Build()
		f.store.AddService(inactive)

		_, err := f.queries.GetAvailability(ctx, f.shopID, inactive.ID(), tuesday, tuesday, nil)

		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("キャッシュはバージョン更新まで再利用", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		staffA := f.staffA.ID()

		first, err := f.queries.GetAvailability(ctx, f.shopID, f.service.ID(), tuesday, tuesday, &staffA)
		require.NoError(t, err)
		f.addBooking(t, staffA, tuesday.Add(9*time.Hour))

		cached, err := f.queries.GetAvailability(ctx, f.shopID, f.service.ID(), tuesday, tuesday, &staffA)
		require.NoError(t, err)
		assert.Equal(t, first, cached)

		require.NoError(t, f.cache.Invalidate(ctx, f.shopID))
		fresh, err := f.queries.GetAvailability(ctx, f.shopID, f.service.ID(), tuesday, tuesday, &staffA)
		require.NoError(t, err)
		assert.False(t, fresh[0].Slots[0].Available)
	})
}

func TestGetNextAvailableSlot(t *testing.T) {
	ctx := context.Background()

	t.Run("最初の空き枠を返す", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		f.addBooking(t, f.staffA.ID(), tuesday.Add(9*time.Hour))
		f.addBooking(t, f.staffB.ID(), tuesday.Add(9*time.Hour))

		slot, err := f.queries.GetNextAvailableSlot(ctx, f.shopID, f.service.ID(), nil)

		require.NoError(t, err)
		require.NotNil(t, slot)
		assert.Equal(t, "2026-10-20", slot.Date)
		assert.Equal(t, "10:00", slot.StartTime)
		assert.True(t, slot.Available)
	})

	t.Run("空きがなければnil", func(t *testing.T) {
		f := newAvailabilityFixture(t)
		other := builder.NewServiceBuilder().WithShopID(f.shopID).Build()
		f.store.AddService(other)

		slot, err := f.queries.GetNextAvailableSlot(ctx, f.shopID, other.ID(), nil)

		require.NoError(t, err)
		assert.Nil(t, slot)
	})
}
