//go:build unit

package readstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"shop-reservation/internal/infra"
	"shop-reservation/internal/infra/readstore"
	sqlc "shop-reservation/internal/infra/sqlc/generated"
	"shop-reservation/internal/usecase/queries"
	readstoremock "shop-reservation/tests/mock/readstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	errDBConnectionLost = errors.New("database connection lost")
)

func createViewRow(id, shopID uuid.UUID, status string) sqlc.ListReservationsRow {
	start := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	return sqlc.ListReservationsRow{
		Reservations: sqlc.Reservations{
			ID:               id,
			ShopID:           shopID,
			ServiceID:        uuid.New(),
			ResourceID:       pgtype.UUID{Bytes: uuid.New(), Valid: true},
			AppUserID:        pgtype.UUID{Bytes: uuid.New(), Valid: true},
			StartTime:        pgtype.Timestamptz{Time: start, Valid: true},
			EndTime:          pgtype.Timestamptz{Time: start.Add(time.Hour), Valid: true},
			PartySize:        2,
			Price:            pgtype.Int8{Int64: 5000, Valid: true},
			Status:           status,
			ConfirmationMode: "auto",
			InternalNotes:    pgtype.Text{String: "VIP", Valid: true},
			CreatedAt:        pgtype.Timestamptz{Time: start.Add(-48 * time.Hour), Valid: true},
			UpdatedAt:        pgtype.Timestamptz{Time: start.Add(-48 * time.Hour), Valid: true},
		},
		ServiceName:  "Cut",
		ResourceName: pgtype.Text{String: "Alice", Valid: true},
	}
}

// =============================================================================
// FindByID Tests
// =============================================================================

func TestReservationReadStore_FindByID(t *testing.T) {
	ctx := context.Background()
	reservationID := uuid.New()
	shopID := uuid.New()

	testCases := []struct {
		name          string
		setupMock     func(*readstoremock.MockReservationViewQueries)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: reservation found",
			setupMock: func(mock *readstoremock.MockReservationViewQueries) {
				mock.EXPECT().GetReservationView(ctx, gomock.Any(), reservationID).Return(createViewRow(reservationID, shopID, "confirmed"), nil)
			},
		},
		{
			name: "error: reservation not found",
			setupMock: func(mock *readstoremock.MockReservationViewQueries) {
				mock.EXPECT().GetReservationView(ctx, gomock.Any(), reservationID).Return(sqlc.ListReservationsRow{}, pgx.ErrNoRows)
			},
			expectedError: true,
			expectKind:    infra.KindNotFound,
		},
		{
			name: "error: database error",
			setupMock: func(mock *readstoremock.MockReservationViewQueries) {
				mock.EXPECT().GetReservationView(ctx, gomock.Any(), reservationID).Return(sqlc.ListReservationsRow{}, errDBConnectionLost)
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := readstoremock.NewMockReservationViewQueries(ctrl)
			store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

			tc.setupMock(mockQueries)

			result, actualError := store.FindByID(ctx, reservationID)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, actualError)
			require.NotNil(t, result)
			assert.Equal(t, reservationID, result.ID)
			assert.Equal(t, shopID, result.ShopID)
			assert.Equal(t, "Cut", result.ServiceName)
			require.NotNil(t, result.ResourceName)
			assert.Equal(t, "Alice", *result.ResourceName)
			assert.Equal(t, time.Hour, result.EndTime.Sub(result.StartTime))
			require.NotNil(t, result.Price)
			assert.Equal(t, int64(5000), *result.Price)
			assert.Nil(t, result.GuestName)
		})
	}
}

// =============================================================================
// List / Count Tests
// =============================================================================

func TestReservationReadStore_List(t *testing.T) {
	ctx := context.Background()
	shopID := uuid.New()

	t.Run("success: filter is passed through as nullable params", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockReservationViewQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

		status := "pending"
		userID := uuid.New()
		from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		filter := queries.ReservationFilter{Status: &status, AppUserID: &userID, From: &from, Limit: 20, Offset: 40}

		mockQueries.EXPECT().ListReservations(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ sqlc.DBTX, arg sqlc.ListReservationsParams) ([]sqlc.ListReservationsRow, error) {
				assert.Equal(t, shopID, arg.ShopID)
				assert.Equal(t, pgtype.Text{String: "pending", Valid: true}, arg.Status)
				assert.Equal(t, pgtype.UUID{Bytes: userID, Valid: true}, arg.AppUserID)
				assert.False(t, arg.ServiceID.Valid)
				assert.False(t, arg.ResourceID.Valid)
				assert.True(t, arg.From.Valid)
				assert.False(t, arg.To.Valid)
				assert.Equal(t, int32(20), arg.Limit)
				assert.Equal(t, int32(40), arg.Offset)
				return []sqlc.ListReservationsRow{
					createViewRow(uuid.New(), shopID, "pending"),
					createViewRow(uuid.New(), shopID, "pending"),
				}, nil
			})

		items, err := store.List(ctx, shopID, filter)

		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("success: empty result", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockReservationViewQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

		mockQueries.EXPECT().ListReservations(ctx, gomock.Any(), gomock.Any()).Return([]sqlc.ListReservationsRow{}, nil)

		items, err := store.List(ctx, shopID, queries.ReservationFilter{Limit: 20})

		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("error: database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockReservationViewQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

		mockQueries.EXPECT().ListReservations(ctx, gomock.Any(), gomock.Any()).Return(nil, errDBConnectionLost)

		items, err := store.List(ctx, shopID, queries.ReservationFilter{Limit: 20})

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
		assert.Nil(t, items)
	})

	t.Run("success: count", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockReservationViewQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

		mockQueries.EXPECT().CountReservations(ctx, gomock.Any(), gomock.Any()).Return(int64(57), nil)

		n, err := store.Count(ctx, shopID, queries.ReservationFilter{})

		require.NoError(t, err)
		assert.Equal(t, int64(57), n)
	})
}

func TestReservationReadStore_CountByStatus(t *testing.T) {
	ctx := context.Background()
	shopID := uuid.New()

	t.Run("success: rows are folded into a map", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockReservationViewQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

		mockQueries.EXPECT().CountReservationsByStatus(ctx, gomock.Any(), gomock.Any()).Return([]sqlc.CountReservationsByStatusRow{
			{Status: "confirmed", Count: 4},
			{Status: "cancelled", Count: 1},
		}, nil)

		counts, err := store.CountByStatus(ctx, shopID, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"confirmed": 4, "cancelled": 1}, counts)
	})

	t.Run("error: database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockReservationViewQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

		mockQueries.EXPECT().CountReservationsByStatus(ctx, gomock.Any(), gomock.Any()).Return(nil, errDBConnectionLost)

		_, err := store.CountByStatus(ctx, shopID, nil, nil)

		require.Error(t, err)
	})
}

// mockDBTX is a mock implementation of sqlc.DBTX interface
type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
