//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/domain/schedule"
	"shop-reservation/internal/pkg/clock"
	"shop-reservation/internal/pkg/errs"
	"shop-reservation/internal/usecase/commands"
	"shop-reservation/tests/common/builder"
	"shop-reservation/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scheduleFixture struct {
	store  *memstore.Store
	cmds   commands.ScheduleCommands
	shopID uuid.UUID
	owner  reservation.Actor
}

func newScheduleFixture(t *testing.T) *scheduleFixture {
	t.Helper()
	store := memstore.New()
	shopID := uuid.New()
	store.AddShop(shopID, nil)
	return &scheduleFixture{
		store:  store,
		cmds:   commands.NewScheduleCommands(store, nil, clock.NewMockClock(baseTime)),
		shopID: shopID,
		owner:  reservation.ShopOwner(uuid.New(), shopID),
	}
}

func TestScheduleCommands_SetAvailability(t *testing.T) {
	ctx := context.Background()

	t.Run("店舗レベルのルールを置き換え", func(t *testing.T) {
		f := newScheduleFixture(t)
		old, err := schedule.NewRule(f.shopID, nil, 1, "10:00", "12:00")
		require.NoError(t, err)
		f.store.AddRule(old)

		views, err := f.cmds.SetAvailability(ctx, f.owner, f.shopID, nil, []commands.RuleInput{
			{DayOfWeek: 2, StartTime: "13:00", EndTime: "17:00"},
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
		})

		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, 1, views[0].DayOfWeek)
		assert.Equal(t, "09:00", views[0].StartTime)
		assert.Equal(t, 2, views[1].DayOfWeek)
		assert.Len(t, f.store.Rules(), 2)
	})

	t.Run("リソースのルールは店舗レベルに影響しない", func(t *testing.T) {
		f := newScheduleFixture(t)
		res := builder.NewResourceBuilder().WithShopID(f.shopID).Build()
		f.store.AddResource(res)
		shopRule, err := schedule.NewRule(f.shopID, nil, 1, "09:00", "18:00")
		require.NoError(t, err)
		f.store.AddRule(shopRule)
		resID := res.ID()

		views, err := f.cmds.SetAvailability(ctx, f.owner, f.shopID, &resID, []commands.RuleInput{
			{DayOfWeek: 1, StartTime: "10:00", EndTime: "15:00"},
		})

		require.NoError(t, err)
		require.Len(t, views, 1)
		require.NotNil(t, views[0].ResourceID)
		assert.Equal(t, resID, *views[0].ResourceID)
		assert.Len(t, f.store.Rules(), 2)
	})

	t.Run("ルールの検証", func(t *testing.T) {
		f := newScheduleFixture(t)

		cases := []struct {
			name  string
			rules []commands.RuleInput
		}{
			{name: "空のルール", rules: nil},
			{name: "曜日が範囲外", rules: []commands.RuleInput{{DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00"}}},
			{name: "時刻形式が不正", rules: []commands.RuleInput{{DayOfWeek: 1, StartTime: "9am", EndTime: "10:00"}}},
			{name: "開始が終了以降", rules: []commands.RuleInput{{DayOfWeek: 1, StartTime: "10:00", EndTime: "10:00"}}},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				_, err := f.cmds.SetAvailability(ctx, f.owner, f.shopID, nil, c.rules)
				assert.True(t, errs.Is(err, errs.ErrValidation))
			})
		}
	})

	t.Run("他店舗のリソースはNOT_FOUND", func(t *testing.T) {
		f := newScheduleFixture(t)
		res := builder.NewResourceBuilder().Build()
		f.store.AddResource(res)
		resID := res.ID()

		_, err := f.cmds.SetAvailability(ctx, f.owner, f.shopID, &resID, []commands.RuleInput{
			{DayOfWeek: 1, StartTime: "10:00", EndTime: "15:00"},
		})

		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("途中で失敗した場合は既存ルールを保持", func(t *testing.T) {
		f := newScheduleFixture(t)
		old, err := schedule.NewRule(f.shopID, nil, 1, "10:00", "12:00")
		require.NoError(t, err)
		f.store.AddRule(old)
		f.store.Fail("Schedules.InsertRule", assert.AnError)

		_, err = f.cmds.SetAvailability(ctx, f.owner, f.shopID, nil, []commands.RuleInput{
			{DayOfWeek: 2, StartTime: "13:00", EndTime: "17:00"},
		})

		assert.True(t, errs.Is(err, errs.ErrStore))
		rules := f.store.Rules()
		require.Len(t, rules, 1)
		assert.Equal(t, old.ID(), rules[0].ID())
	})
}

func TestScheduleCommands_Blocks(t *testing.T) {
	ctx := context.Background()

	t.Run("基本成功ケース", func(t *testing.T) {
		f := newScheduleFixture(t)
		start := baseTime.Add(24 * time.Hour)

		view, err := f.cmds.CreateBlock(ctx, f.owner, f.shopID, commands.BlockInput{
			Start:     start,
			End:       start.Add(8 * time.Hour),
			Reason:    ptr("maintenance"),
			BlockType: "holiday",
		})

		require.NoError(t, err)
		assert.Equal(t, string(schedule.BlockTypeHoliday), view.BlockType)
		assert.Nil(t, view.ResourceID)
		assert.Equal(t, 1, f.store.BlockCount())
	})

	t.Run("種別未指定はcustom", func(t *testing.T) {
		f := newScheduleFixture(t)
		start := baseTime.Add(24 * time.Hour)

		view, err := f.cmds.CreateBlock(ctx, f.owner, f.shopID, commands.BlockInput{Start: start, End: start.Add(time.Hour)})

		require.NoError(t, err)
		assert.Equal(t, string(schedule.BlockTypeCustom), view.BlockType)
	})

	t.Run("期間と種別の検証", func(t *testing.T) {
		f := newScheduleFixture(t)
		start := baseTime.Add(24 * time.Hour)

		_, err := f.cmds.CreateBlock(ctx, f.owner, f.shopID, commands.BlockInput{Start: start, End: start})
		assert.True(t, errs.Is(err, errs.ErrValidation))

		_, err = f.cmds.CreateBlock(ctx, f.owner, f.shopID, commands.BlockInput{Start: start, End: start.Add(time.Hour), BlockType: "party"})
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("削除と存在しないブロック", func(t *testing.T) {
		f := newScheduleFixture(t)
		start := baseTime.Add(24 * time.Hour)
		view, err := f.cmds.CreateBlock(ctx, f.owner, f.shopID, commands.BlockInput{Start: start, End: start.Add(time.Hour)})
		require.NoError(t, err)

		require.NoError(t, f.cmds.DeleteBlock(ctx, f.owner, f.shopID, view.ID))
		assert.Equal(t, 0, f.store.BlockCount())

		err = f.cmds.DeleteBlock(ctx, f.owner, f.shopID, view.ID)
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("店舗管理者以外はFORBIDDEN", func(t *testing.T) {
		f := newScheduleFixture(t)
		start := baseTime.Add(24 * time.Hour)

		_, err := f.cmds.CreateBlock(ctx, reservation.Customer(uuid.New()), f.shopID, commands.BlockInput{Start: start, End: start.Add(time.Hour)})

		assert.True(t, errs.Is(err, errs.ErrForbidden))
	})
}
