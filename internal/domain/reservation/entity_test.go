//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"shop-reservation/internal/domain/catalog"
	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/pkg/clock"
	"shop-reservation/internal/pkg/errs"
	"shop-reservation/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func newReservation(t *testing.T, mode reservation.ConfirmationMode) *reservation.Reservation {
	t.Helper()
	userID := uuid.New()
	slot, err := reservation.SlotFor(now.Add(48*time.Hour), 60)
	require.NoError(t, err)
	r, err := reservation.NewReservation(reservation.NewParams{
		ShopID:    uuid.New(),
		ServiceID: uuid.New(),
		Identity:  reservation.Identity{AppUserID: &userID},
		Slot:      slot,
		PartySize: 1,
		Mode:      mode,
		CreatedBy: reservation.Customer(userID),
		Now:       now,
	})
	require.NoError(t, err)
	return r
}

func TestNewReservation(t *testing.T) {
	t.Run("自動確定モードはconfirmedで作成", func(t *testing.T) {
		r := newReservation(t, reservation.ConfirmationAuto)

		assert.Equal(t, reservation.StatusConfirmed, r.Status())
		require.NotNil(t, r.ConfirmedAt())
		assert.Equal(t, now, *r.ConfirmedAt())
		assert.Equal(t, 60*time.Minute, r.EndTime().Sub(r.StartTime()))
	})

	t.Run("手動確定モードはpendingで作成", func(t *testing.T) {
		r := newReservation(t, reservation.ConfirmationManual)

		assert.Equal(t, reservation.StatusPending, r.Status())
		assert.Nil(t, r.ConfirmedAt())
	})

	t.Run("識別情報の検証", func(t *testing.T) {
		guest := reservation.ReconstructGuestContact("Hanako", ptr("+819012345678"), nil)
		userID := uuid.New()
		slot, _ := reservation.SlotFor(now, 30)

		cases := []struct {
			name     string
			identity reservation.Identity
			ok       bool
		}{
			{name: "会員のみOK", identity: reservation.Identity{AppUserID: &userID}, ok: true},
			{name: "ゲストのみOK", identity: reservation.Identity{Guest: &guest}, ok: true},
			{name: "両方NG", identity: reservation.Identity{AppUserID: &userID, Guest: &guest}},
			{name: "どちらもなしNG", identity: reservation.Identity{}},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				_, err := reservation.NewReservation(reservation.NewParams{
					Identity: c.identity, Slot: slot, PartySize: 1, Now: now,
				})
				if c.ok {
					require.NoError(t, err)
					return
				}
				require.ErrorIs(t, err, reservation.ErrIdentity)
				assert.True(t, errs.Is(err, errs.ErrValidation))
			})
		}
	})

	t.Run("人数0はNG", func(t *testing.T) {
		userID := uuid.New()
		slot, _ := reservation.SlotFor(now, 30)
		_, err := reservation.NewReservation(reservation.NewParams{
			Identity: reservation.Identity{AppUserID: &userID}, Slot: slot, PartySize: 0, Now: now,
		})

		require.ErrorIs(t, err, reservation.ErrPartySize)
	})
}

func TestReservationLifecycle(t *testing.T) {
	admin := reservation.Admin(uuid.New())

	t.Run("確定はpendingからのみ", func(t *testing.T) {
		r := newReservation(t, reservation.ConfirmationManual)

		assert.True(t, r.Transition(reservation.StatusConfirmed, admin, now))
		assert.Equal(t, reservation.StatusConfirmed, r.Status())

		before := r.Record()
		assert.False(t, r.Transition(reservation.StatusConfirmed, admin, now.Add(time.Hour)))
		assert.Equal(t, before, r.Record())
	})

	t.Run("完了はconfirmedからのみ", func(t *testing.T) {
		r := newReservation(t, reservation.ConfirmationManual)

		assert.False(t, r.Transition(reservation.StatusCompleted, admin, now))
		assert.Equal(t, reservation.StatusPending, r.Status())

		r.Transition(reservation.StatusConfirmed, admin, now)
		assert.True(t, r.Transition(reservation.StatusCompleted, admin, now))
		assert.NotNil(t, r.CompletedAt())
	})

	t.Run("無断キャンセルはpending/confirmedから", func(t *testing.T) {
		r := newReservation(t, reservation.ConfirmationAuto)

		assert.True(t, r.Transition(reservation.StatusNoShow, admin, now))
		assert.False(t, r.HoldsSlot())
		assert.False(t, r.Transition(reservation.StatusNoShow, admin, now))
	})

	t.Run("キャンセルはTransitionでは扱わない", func(t *testing.T) {
		r := newReservation(t, reservation.ConfirmationAuto)

		assert.False(t, r.Transition(reservation.StatusCancelled, admin, now))
	})

	t.Run("終了状態のキャンセルはInvalidState", func(t *testing.T) {
		for _, terminal := range []reservation.Status{reservation.StatusCancelled, reservation.StatusCompleted, reservation.StatusNoShow} {
			t.Run(terminal.String(), func(t *testing.T) {
				rec := newReservation(t, reservation.ConfirmationAuto).Record()
				rec.Status = terminal
				r := reservation.ReconstructReservation(rec)

				err := r.Cancel(admin, nil, now)

				require.Error(t, err)
				assert.True(t, errs.Is(err, errs.ErrInvalidState))
			})
		}
	})

	t.Run("キャンセルで監査項目を記録", func(t *testing.T) {
		r := newReservation(t, reservation.ConfirmationAuto)

		require.NoError(t, r.Cancel(admin, ptr("sick"), now))

		assert.Equal(t, reservation.StatusCancelled, r.Status())
		assert.Equal(t, "admin:"+admin.UserID().String(), *r.CancelledBy())
		assert.Equal(t, "sick", *r.CancellationReason())
	})

	t.Run("終了状態は変更不可", func(t *testing.T) {
		r := newReservation(t, reservation.ConfirmationAuto)
		require.NoError(t, r.Cancel(admin, nil, now))

		slot, _ := reservation.SlotFor(now.Add(72*time.Hour), 60)
		err := r.Reschedule(slot, now)
		assert.True(t, errs.Is(err, errs.ErrInvalidState))

		err = r.ChangePartySize(2, now)
		assert.True(t, errs.Is(err, errs.ErrInvalidState))
	})
}

func TestPolicy(t *testing.T) {
	s := reservation.DefaultSettings()
	s.MinAdvanceHours = 1
	s.MaxAdvanceDays = 30

	t.Run("予約可能期間", func(t *testing.T) {
		cases := []struct {
			name  string
			start time.Time
			ok    bool
			msg   string
		}{
			{name: "30分後NG", start: now.Add(30 * time.Minute), msg: "at least 1 hours in advance"},
			{name: "ちょうど1時間後OK", start: now.Add(time.Hour), ok: true},
			{name: "30日後OK", start: now.Add(30 * 24 * time.Hour), ok: true},
			{name: "31日後NG", start: now.AddDate(0, 0, 31), msg: "more than 30 days in advance"},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				err := reservation.ValidateBookingWindow(c.start, now, s)
				if c.ok {
					require.NoError(t, err)
					return
				}
				require.Error(t, err)
				assert.True(t, errs.Is(err, errs.ErrValidation))
				assert.Contains(t, err.Error(), c.msg)
			})
		}
	})

	t.Run("キャンセル期限", func(t *testing.T) {
		err := reservation.ValidateCancellationDeadline(now.Add(23*time.Hour), now, s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "24 hours")

		assert.NoError(t, reservation.ValidateCancellationDeadline(now.Add(24*time.Hour), now, s))
	})

	t.Run("識別情報の解決", func(t *testing.T) {
		userID := uuid.New()
		id, err := reservation.ResolveIdentity(reservation.Customer(userID), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, userID, *id.AppUserID)

		_, err = reservation.ResolveIdentity(reservation.Admin(uuid.New()), nil, nil)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestFactory(t *testing.T) {
	f := reservation.NewFactory(clock.NewMockClock(now), reservation.NewDefaultPriceCalculator())
	service := builder.NewServiceBuilder().WithDuration(60).WithPrice(5000).Build()
	userID := uuid.New()

	booking := func(link *catalog.Link) reservation.Booking {
		return reservation.Booking{
			Service:  service,
			Link:     link,
			Start:    now.Add(48 * time.Hour),
			Identity: reservation.Identity{AppUserID: &userID},
			Actor:    reservation.Customer(userID),
			Settings: reservation.DefaultSettings(),
		}
	}

	t.Run("リンクなしはサービスの料金と所要時間", func(t *testing.T) {
		r, err := f.CreateReservation(booking(nil))
		require.NoError(t, err)

		assert.Equal(t, int64(5000), *r.Price())
		assert.Equal(t, time.Hour, r.EndTime().Sub(r.StartTime()))
		assert.Equal(t, 1, r.PartySize())
		assert.Nil(t, r.ResourceID())
	})

	t.Run("リンクの上書きが優先", func(t *testing.T) {
		link, err := catalog.NewLink(uuid.New(), service.ID(), ptr(int64(7000)), ptr(90))
		require.NoError(t, err)

		r, err := f.CreateReservation(booking(&link))
		require.NoError(t, err)

		assert.Equal(t, int64(7000), *r.Price())
		assert.Equal(t, 90*time.Minute, r.EndTime().Sub(r.StartTime()))
		assert.Equal(t, link.ResourceID, *r.ResourceID())
	})

	t.Run("所要時間未設定は店舗の枠長", func(t *testing.T) {
		b := booking(nil)
		b.Service = builder.NewServiceBuilder().WithoutDuration().Build()
		b.Settings.SlotDurationMinutes = 45

		r, err := f.CreateReservation(b)
		require.NoError(t, err)

		assert.Equal(t, 45*time.Minute, r.EndTime().Sub(r.StartTime()))
	})
}
