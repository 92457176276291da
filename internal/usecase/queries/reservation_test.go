//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/pkg/config"
	"shop-reservation/internal/pkg/errs"
	"shop-reservation/internal/usecase/queries"
	"shop-reservation/tests/common/builder"
	"shop-reservation/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reservationQueryFixture struct {
	store   *memstore.Store
	queries queries.ReservationQueries
	shopID  uuid.UUID
	owner   reservation.Actor
}

func newReservationQueryFixture(t *testing.T) *reservationQueryFixture {
	t.Helper()
	cfg := config.NewTestConfig()
	cfg.Reservation.ListDefaultLimit = 2
	cfg.Reservation.ListMaxLimit = 3
	store := memstore.New()
	shopID := uuid.New()
	store.AddShop(shopID, nil)
	return &reservationQueryFixture{
		store:   store,
		queries: queries.NewReservationQueries(store, cfg),
		shopID:  shopID,
		owner:   reservation.ShopOwner(uuid.New(), shopID),
	}
}

func (f *reservationQueryFixture) add(t *testing.T, identity reservation.Identity, start time.Time, internal *string) *reservation.Reservation {
	t.Helper()
	svc := builder.NewServiceBuilder().WithShopID(f.shopID).ShopLevel().Build()
	f.store.AddService(svc)
	slot, err := reservation.SlotFor(start, 60)
	require.NoError(t, err)
	var notes *reservation.Note
	if internal != nil {
		notes, err = reservation.NotePtr(internal)
		require.NoError(t, err)
	}
	res, err := reservation.NewReservation(reservation.NewParams{
		ShopID:        f.shopID,
		ServiceID:     svc.ID(),
		Identity:      identity,
		Slot:          slot,
		PartySize:     1,
		InternalNotes: notes,
		Now:           baseTime,
	})
	require.NoError(t, err)
	f.store.AddReservation(res)
	return res
}

func TestGetReservation(t *testing.T) {
	ctx := context.Background()
	customerID := uuid.New()
	customer := reservation.Customer(customerID)

	t.Run("店舗管理者は内部メモを含めて取得", func(t *testing.T) {
		f := newReservationQueryFixture(t)
		res := f.add(t, reservation.Identity{AppUserID: &customerID}, baseTime.Add(24*time.Hour), ptr("VIP"))

		view, err := f.queries.GetReservation(ctx, f.owner, f.shopID, res.ID())

		require.NoError(t, err)
		require.NotNil(t, view.InternalNotes)
		assert.Equal(t, "VIP", *view.InternalNotes)
		assert.Equal(t, "Cut", view.ServiceName)
	})

	t.Run("顧客には内部メモを隠す", func(t *testing.T) {
		f := newReservationQueryFixture(t)
		res := f.add(t, reservation.Identity{AppUserID: &customerID}, baseTime.Add(24*time.Hour), ptr("VIP"))

		view, err := f.queries.GetReservation(ctx, customer, f.shopID, res.ID())

		require.NoError(t, err)
		assert.Nil(t, view.InternalNotes)
	})

	t.Run("他人の予約と他店舗の予約はNOT_FOUND", func(t *testing.T) {
		f := newReservationQueryFixture(t)
		res := f.add(t, reservation.Identity{AppUserID: &customerID}, baseTime.Add(24*time.Hour), nil)

		_, err := f.queries.GetReservation(ctx, reservation.Customer(uuid.New()), f.shopID, res.ID())
		assert.True(t, errs.Is(err, errs.ErrNotFound))

		_, err = f.queries.GetReservation(ctx, reservation.ShopOwner(uuid.New(), uuid.New()), f.shopID, res.ID())
		assert.True(t, errs.Is(err, errs.ErrNotFound))

		_, err = f.queries.GetReservation(ctx, customer, uuid.New(), res.ID())
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("ゲストは連絡先が一致すれば取得可能", func(t *testing.T) {
		f := newReservationQueryFixture(t)
		stored := reservation.ReconstructGuestContact("Hanako", nil, ptr("hanako@example.com"))
		res := f.add(t, reservation.Identity{Guest: &stored}, baseTime.Add(24*time.Hour), nil)

		caller := reservation.ReconstructGuestContact("H", nil, ptr("hanako@example.com"))
		view, err := f.queries.GetReservation(ctx, reservation.Guest(caller), f.shopID, res.ID())

		require.NoError(t, err)
		require.NotNil(t, view.GuestName)
		assert.Equal(t, "Hanako", *view.GuestName)
	})
}

func TestListReservations(t *testing.T) {
	ctx := context.Background()

	t.Run("顧客は自分の予約のみ", func(t *testing.T) {
		f := newReservationQueryFixture(t)
		mine := uuid.New()
		theirs := uuid.New()
		f.add(t, reservation.Identity{AppUserID: &mine}, baseTime.Add(24*time.Hour), ptr("VIP"))
		f.add(t, reservation.Identity{AppUserID: &theirs}, baseTime.Add(25*time.Hour), nil)

		page, err := f.queries.ListReservations(ctx, reservation.Customer(mine), f.shopID, queries.ReservationFilter{AppUserID: &theirs})

		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, mine, *page.Items[0].AppUserID)
		assert.Nil(t, page.Items[0].InternalNotes)
	})

	t.Run("開始時刻順でページング", func(t *testing.T) {
		f := newReservationQueryFixture(t)
		userID := uuid.New()
		for i := range 4 {
			f.add(t, reservation.Identity{AppUserID: &userID}, baseTime.Add(time.Duration(24+i)*time.Hour), nil)
		}

		page, err := f.queries.ListReservations(ctx, f.owner, f.shopID, queries.ReservationFilter{Offset: 1})

		require.NoError(t, err)
		assert.Equal(t, int64(4), page.Total)
		assert.Equal(t, 2, page.Limit)
		require.Len(t, page.Items, 2)
		assert.Equal(t, baseTime.Add(25*time.Hour), page.Items[0].StartTime)
		assert.True(t, page.Items[0].StartTime.Before(page.Items[1].StartTime))

		page, err = f.queries.ListReservations(ctx, f.owner, f.shopID, queries.ReservationFilter{Limit: 100})
		require.NoError(t, err)
		assert.Equal(t, 3, page.Limit)
		assert.Len(t, page.Items, 3)
	})

	t.Run("期間で絞り込み", func(t *testing.T) {
		f := newReservationQueryFixture(t)
		userID := uuid.New()
		f.add(t, reservation.Identity{AppUserID: &userID}, baseTime.Add(24*time.Hour), nil)
		f.add(t, reservation.Identity{AppUserID: &userID}, baseTime.Add(48*time.Hour), nil)
		from := baseTime.Add(24 * time.Hour)
		to := baseTime.Add(48 * time.Hour)

		page, err := f.queries.ListReservations(ctx, f.owner, f.shopID, queries.ReservationFilter{From: &from, To: &to})

		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
	})

	t.Run("フィルタの検証", func(t *testing.T) {
		f := newReservationQueryFixture(t)
		from := baseTime.Add(48 * time.Hour)
		to := baseTime

		_, err := f.queries.ListReservations(ctx, f.owner, f.shopID, queries.ReservationFilter{Status: ptr("done")})
		assert.True(t, errs.Is(err, errs.ErrValidation))

		_, err = f.queries.ListReservations(ctx, f.owner, f.shopID, queries.ReservationFilter{From: &from, To: &to})
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("ゲストと他店舗のオーナーは一覧不可", func(t *testing.T) {
		f := newReservationQueryFixture(t)
		guest := reservation.ReconstructGuestContact("Hanako", nil, ptr("hanako@example.com"))

		_, err := f.queries.ListReservations(ctx, reservation.Guest(guest), f.shopID, queries.ReservationFilter{})
		assert.True(t, errs.Is(err, errs.ErrForbidden))

		_, err = f.queries.ListReservations(ctx, reservation.ShopOwner(uuid.New(), uuid.New()), f.shopID, queries.ReservationFilter{})
		assert.True(t, errs.Is(err, errs.ErrForbidden))
	})
}

func TestGetReservationStats(t *testing.T) {
	ctx := context.Background()

	t.Run("状態ごとの件数", func(t *testing.T) {
		f := newReservationQueryFixture(t)
		userID := uuid.New()
		f.add(t, reservation.Identity{AppUserID: &userID}, baseTime.Add(24*time.Hour), nil)
		cancelled := f.add(t, reservation.Identity{AppUserID: &userID}, baseTime.Add(26*time.Hour), nil)
		require.NoError(t, cancelled.Cancel(f.owner, nil, baseTime))
		f.store.AddReservation(cancelled)

		stats, err := f.queries.GetReservationStats(ctx, f.owner, f.shopID, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, int64(2), stats.Total)
		assert.Equal(t, int64(1), stats.Confirmed)
		assert.Equal(t, int64(1), stats.Cancelled)
		assert.Zero(t, stats.Pending)
	})

	t.Run("店舗管理者以外はFORBIDDEN", func(t *testing.T) {
		f := newReservationQueryFixture(t)

		_, err := f.queries.GetReservationStats(ctx, reservation.Customer(uuid.New()), f.shopID, nil, nil)

		assert.True(t, errs.Is(err, errs.ErrForbidden))
	})
}
