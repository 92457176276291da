//go:build unit

package commands_test

import (
	"context"
	"testing"

	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/pkg/config"
	"shop-reservation/internal/pkg/errs"
	"shop-reservation/internal/usecase/commands"
	"shop-reservation/internal/usecase/shared"
	"shop-reservation/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCommands_UpdateSettings(t *testing.T) {
	ctx := context.Background()
	defaults := shared.NewSettingsDefaults(config.NewTestConfig())

	setup := func(t *testing.T, stored string) (*memstore.Store, commands.SettingsCommands, uuid.UUID) {
		t.Helper()
		store := memstore.New()
		shopID := uuid.New()
		var raw []byte
		if stored != "" {
			raw = []byte(stored)
		}
		store.AddShop(shopID, raw)
		return store, commands.NewSettingsCommands(store, nil, defaults), shopID
	}

	t.Run("指定した項目のみ保存", func(t *testing.T) {
		store, cmds, shopID := setup(t, "")
		mode := reservation.ConfirmationManual

		view, err := cmds.UpdateSettings(ctx, reservation.ShopOwner(uuid.New(), shopID), shopID, reservation.SettingsPatch{
			ConfirmationMode: &mode,
		})

		require.NoError(t, err)
		assert.Equal(t, "manual", view.ConfirmationMode)
		assert.Equal(t, defaults.CancellationHours, view.CancellationHours)
		assert.JSONEq(t, `{"confirmation_mode":"manual"}`, string(store.SettingsBlob(shopID)))
	})

	t.Run("既存の設定に上書き", func(t *testing.T) {
		store, cmds, shopID := setup(t, `{"confirmation_mode":"manual","max_advance_days":30}`)

		view, err := cmds.UpdateSettings(ctx, reservation.Admin(uuid.New()), shopID, reservation.SettingsPatch{
			MaxAdvanceDays: ptr(90),
		})

		require.NoError(t, err)
		assert.Equal(t, "manual", view.ConfirmationMode)
		assert.Equal(t, 90, view.MaxAdvanceDays)
		assert.JSONEq(t, `{"confirmation_mode":"manual","max_advance_days":90}`, string(store.SettingsBlob(shopID)))
	})

	t.Run("不正な値は保存しない", func(t *testing.T) {
		badMode := reservation.ConfirmationMode("sometimes")
		cases := []struct {
			name  string
			patch reservation.SettingsPatch
		}{
			{name: "確定モード", patch: reservation.SettingsPatch{ConfirmationMode: &badMode}},
			{name: "負のキャンセル期限", patch: reservation.SettingsPatch{CancellationHours: ptr(-1)}},
			{name: "最長受付日数0", patch: reservation.SettingsPatch{MaxAdvanceDays: ptr(0)}},
			{name: "最長受付日数が上限超過", patch: reservation.SettingsPatch{MaxAdvanceDays: ptr(366)}},
			{name: "スロット間隔が短すぎる", patch: reservation.SettingsPatch{SlotDurationMinutes: ptr(4)}},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				store, cmds, shopID := setup(t, "")

				_, err := cmds.UpdateSettings(ctx, reservation.Admin(uuid.New()), shopID, c.patch)

				assert.True(t, errs.Is(err, errs.ErrValidation))
				assert.Empty(t, store.SettingsBlob(shopID))
			})
		}
	})

	t.Run("存在しない店舗はNOT_FOUND", func(t *testing.T) {
		_, cmds, _ := setup(t, "")

		_, err := cmds.UpdateSettings(ctx, reservation.Admin(uuid.New()), uuid.New(), reservation.SettingsPatch{})

		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("他店舗のオーナーはFORBIDDEN", func(t *testing.T) {
		_, cmds, shopID := setup(t, "")

		_, err := cmds.UpdateSettings(ctx, reservation.ShopOwner(uuid.New(), uuid.New()), shopID, reservation.SettingsPatch{})

		assert.True(t, errs.Is(err, errs.ErrForbidden))
	})
}
