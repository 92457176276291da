//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/infra"
	"shop-reservation/internal/infra/repository"
	sqlc "shop-reservation/internal/infra/sqlc/generated"
	"shop-reservation/internal/pkg/pgconv"
	"shop-reservation/internal/usecase/shared"
	"shop-reservation/tests/common/builder"
	repositorymock "shop-reservation/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// Create Reservation Tests
// =============================================================================

func TestReservationRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		setupMock     func(*repositorymock.MockReservationWriteQueries, *reservation.Reservation, sqlc.DBTX)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: reservation created with its slot and identity",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, res *reservation.Reservation, db sqlc.DBTX) {
				mock.EXPECT().CreateReservation(ctx, db, gomock.Any()).DoAndReturn(
					func(_ context.Context, _ sqlc.DBTX, row sqlc.Reservations) error {
						assert.Equal(t, res.ID(), row.ID)
						assert.Equal(t, res.StartTime(), row.StartTime.Time)
						assert.Equal(t, res.EndTime(), row.EndTime.Time)
						assert.Equal(t, "confirmed", row.Status)
						assert.True(t, row.AppUserID.Valid)
						assert.False(t, row.GuestName.Valid)
						return nil
					})
			},
		},
		{
			name: "error: exclusion constraint maps to conflict",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, db sqlc.DBTX) {
				excl := &pgconn.PgError{Code: "23P01", Message: "conflicting key value violates exclusion constraint"}
				mock.EXPECT().CreateReservation(ctx, db, gomock.Any()).Return(excl)
			},
			expectedError: true,
			expectKind:    infra.KindConflict,
		},
		{
			name: "error: unknown service maps to foreign key violation",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, db sqlc.DBTX) {
				fk := &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}
				mock.EXPECT().CreateReservation(ctx, db, gomock.Any()).Return(fk)
			},
			expectedError: true,
			expectKind:    infra.KindForeignKeyViolated,
		},
		{
			name: "error: database error occurs",
			setupMock: func(mock *repositorymock.MockReservationWriteQueries, _ *reservation.Reservation, db sqlc.DBTX) {
				mock.EXPECT().CreateReservation(ctx, db, gomock.Any()).Return(errors.New("database connection error"))
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewReservationRepository(mockQueries, mockDB)

			res, err := builder.NewReservationBuilder().BuildDomain()
			require.NoError(t, err)

			tc.setupMock(mockQueries, res, mockDB)

			actualError := repo.Create(ctx, res)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
			} else {
				assert.NoError(t, actualError)
			}
		})
	}
}

func TestReservationRepository_CreateGuest(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewReservationRepository(mockQueries, mockDB)

	res, err := builder.NewReservationBuilder().AsGuest("Hanako", "+819012345678").BuildDomain()
	require.NoError(t, err)

	mockQueries.EXPECT().CreateReservation(ctx, mockDB, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ sqlc.DBTX, row sqlc.Reservations) error {
			assert.False(t, row.AppUserID.Valid)
			assert.Equal(t, "Hanako", row.GuestName.String)
			assert.Equal(t, "+819012345678", row.GuestPhone.String)
			assert.False(t, row.GuestEmail.Valid)
			return nil
		})

	require.NoError(t, repo.Create(ctx, res))
}

// =============================================================================
// Lock / Conflict Tests
// =============================================================================

func TestReservationRepository_LockResource(t *testing.T) {
	ctx := context.Background()
	shopID := uuid.New()
	resourceID := uuid.New()

	t.Run("success: lock key is scoped to shop and resource", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewReservationRepository(mockQueries, mockDB)

		mockQueries.EXPECT().AcquireResourceLock(ctx, mockDB, shopID.String()+":"+resourceID.String()).Return(nil)

		assert.NoError(t, repo.LockResource(ctx, shopID, resourceID))
	})

	t.Run("error: lock failure is a db failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewReservationRepository(mockQueries, mockDB)

		mockQueries.EXPECT().AcquireResourceLock(ctx, mockDB, gomock.Any()).Return(errors.New("canceling statement due to lock timeout"))

		err := repo.LockResource(ctx, shopID, resourceID)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestReservationRepository_HasConflict(t *testing.T) {
	ctx := context.Background()
	shopID := uuid.New()
	resourceID := uuid.New()
	excludeID := uuid.New()
	start := time.Date(2026, 10, 21, 10, 0, 0, 0, time.UTC)
	slot, err := reservation.SlotFor(start, 30)
	require.NoError(t, err)

	testCases := []struct {
		name          string
		excludeID     *uuid.UUID
		returnValue   bool
		returnErr     error
		expected      bool
		expectedError bool
	}{
		{name: "success: overlap found", returnValue: true, expected: true},
		{name: "success: free slot while rescheduling", excludeID: &excludeID, returnValue: false, expected: false},
		{name: "error: database error occurs", returnErr: errors.New("database connection error"), expectedError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewReservationRepository(mockQueries, mockDB)

			mockQueries.EXPECT().HasConflictingReservation(ctx, mockDB, gomock.Any()).DoAndReturn(
				func(_ context.Context, _ sqlc.DBTX, arg sqlc.HasConflictingReservationParams) (bool, error) {
					assert.Equal(t, shopID, arg.ShopID)
					assert.Equal(t, resourceID, arg.ResourceID)
					assert.Equal(t, start, arg.StartTime.Time)
					assert.Equal(t, start.Add(30*time.Minute), arg.EndTime.Time)
					assert.Equal(t, tc.excludeID != nil, arg.ExcludeID.Valid)
					return tc.returnValue, tc.returnErr
				})

			actual, actualError := repo.HasConflict(ctx, shopID, resourceID, slot, tc.excludeID)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, infra.KindDBFailure))
				return
			}
			require.NoError(t, actualError)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

// =============================================================================
// Read / Update Tests
// =============================================================================

func TestReservationRepository_GetForUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("success: row is rebuilt into the aggregate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewReservationRepository(mockQueries, mockDB)

		row := builder.NewReservationBuilder().WithManualConfirmation().BuildInfra()
		mockQueries.EXPECT().GetReservationForUpdate(ctx, mockDB, row.ID).Return(row, nil)

		res, err := repo.GetForUpdate(ctx, row.ID)
		require.NoError(t, err)
		assert.Equal(t, row.ID, res.ID())
		assert.Equal(t, reservation.StatusPending, res.Status())
		assert.Equal(t, reservation.ConfirmationManual, res.ConfirmationMode())
		assert.Equal(t, row.StartTime.Time, res.StartTime())
	})

	t.Run("error: missing row is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewReservationRepository(mockQueries, mockDB)

		mockQueries.EXPECT().GetReservationForUpdate(ctx, mockDB, gomock.Any()).Return(sqlc.Reservations{}, pgx.ErrNoRows)

		res, err := repo.GetForUpdate(ctx, uuid.New())
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		assert.Nil(t, res)
	})
}

func TestReservationRepository_Update(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		rows          int64
		err           error
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{name: "success: reservation updated", rows: 1},
		{name: "error: reservation not found", rows: 0, expectedError: true, expectKind: infra.KindNotFound},
		{name: "error: rescheduled onto a held slot", err: &pgconn.PgError{Code: "23P01"}, expectedError: true, expectKind: infra.KindConflict},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewReservationRepository(mockQueries, mockDB)

			res := builder.NewReservationBuilder().Build()
			mockQueries.EXPECT().UpdateReservation(ctx, mockDB, gomock.Any()).DoAndReturn(
				func(_ context.Context, _ sqlc.DBTX, arg sqlc.UpdateReservationParams) (int64, error) {
					assert.Equal(t, res.ID(), arg.ID)
					return tc.rows, tc.err
				})

			actualError := repo.Update(ctx, res)

			if tc.expectedError {
				require.Error(t, actualError)
				assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
			} else {
				assert.NoError(t, actualError)
			}
		})
	}
}

func TestReservationRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	t.Run("success: guarded transition passes source statuses", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewReservationRepository(mockQueries, mockDB)

		row := builder.NewReservationBuilder().BuildInfra()
		row.Status = "completed"
		change := shared.StatusChange{
			ID:     row.ID,
			ShopID: row.ShopID,
			To:     reservation.StatusCompleted,
			From:   []reservation.Status{reservation.StatusConfirmed},
			By:     "admin:" + uuid.NewString(),
			At:     at,
		}

		mockQueries.EXPECT().UpdateReservationStatus(ctx, mockDB, sqlc.UpdateReservationStatusParams{
			ID:           change.ID,
			ShopID:       change.ShopID,
			Status:       "completed",
			FromStatuses: []string{"confirmed"},
			At:           pgconv.TimeToPgtype(at),
			By:           change.By,
		}).Return(row, nil)

		res, err := repo.UpdateStatus(ctx, change)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCompleted, res.Status())
	})

	t.Run("error: source status mismatch is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockReservationWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewReservationRepository(mockQueries, mockDB)

		mockQueries.EXPECT().UpdateReservationStatus(ctx, mockDB, gomock.Any()).Return(sqlc.Reservations{}, pgx.ErrNoRows)

		res, err := repo.UpdateStatus(ctx, shared.StatusChange{ID: uuid.New(), To: reservation.StatusConfirmed, At: at})
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		assert.Nil(t, res)
	})
}

// =============================================================================
// Test Helper Functions
// =============================================================================

// mockDBTX is a mock implementation of sqlc.DBTX interface
type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("mockDBTX.QueryRow was called unexpectedly. Use sqlc mock instead.")
}
