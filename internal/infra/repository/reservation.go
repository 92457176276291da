package repository

import (
	"context"
	"time"

	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/infra"
	"shop-reservation/internal/infra/repository/converter"
	sqlc "shop-reservation/internal/infra/sqlc/generated"
	"shop-reservation/internal/pkg/pgconv"
	"shop-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationWriteQueries interface {
	AcquireResourceLock(ctx context.Context, db sqlc.DBTX, lockKey string) error
	HasConflictingReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.HasConflictingReservationParams) (bool, error)
	CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.Reservations) error
	GetReservation(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reservations, error)
	GetReservationForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reservations, error)
	UpdateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReservationParams) (int64, error)
	UpdateReservationStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReservationStatusParams) (sqlc.Reservations, error)
	ListActiveReservationsInRange(ctx context.Context, db sqlc.DBTX, arg sqlc.ListActiveReservationsInRangeParams) ([]sqlc.Reservations, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	db      sqlc.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db sqlc.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

func ResourceLockKey(shopID, resourceID uuid.UUID) string {
	return shopID.String() + ":" + resourceID.String()
}

func (r *ReservationRepository) LockResource(ctx context.Context, shopID, resourceID uuid.UUID) error {
	if err := r.queries.AcquireResourceLock(ctx, r.db, ResourceLockKey(shopID, resourceID)); err != nil {
		return infra.WrapRepoErr("failed to acquire resource lock", err)
	}
	return nil
}

func (r *ReservationRepository) HasConflict(ctx context.Context, shopID, resourceID uuid.UUID, slot reservation.TimeSlot, excludeID *uuid.UUID) (bool, error) {
	exists, err := r.queries.HasConflictingReservation(ctx, r.db, sqlc.HasConflictingReservationParams{
		ShopID:     shopID,
		ResourceID: resourceID,
		StartTime:  pgconv.TimeToPgtype(slot.Start()),
		EndTime:    pgconv.TimeToPgtype(slot.End()),
		ExcludeID:  pgconv.UUIDPtrToPgtype(excludeID),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to check conflicting reservations", err)
	}
	return exists, nil
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	if err := r.queries.CreateReservation(ctx, r.db, converter.ReservationToInfra(res)); err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) Get(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservation(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return converter.ReservationFromRow(row), nil
}

func (r *ReservationRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationForUpdate(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}
	return converter.ReservationFromRow(row), nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	n, err := r.queries.UpdateReservation(ctx, r.db, converter.ReservationToUpdateParams(res))
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, change shared.StatusChange) (*reservation.Reservation, error) {
	row, err := r.queries.UpdateReservationStatus(ctx, r.db, sqlc.UpdateReservationStatusParams{
		ID:           change.ID,
		ShopID:       change.ShopID,
		Status:       change.To.String(),
		FromStatuses: converter.StatusesToStrings(change.From),
		At:           pgconv.TimeToPgtype(change.At),
		By:           change.By,
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found in a transitionable state", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to update reservation status", err)
	}
	return converter.ReservationFromRow(row), nil
}

func (r *ReservationRepository) ListActiveInRange(ctx context.Context, shopID uuid.UUID, from, to time.Time) ([]*reservation.Reservation, error) {
	rows, err := r.queries.ListActiveReservationsInRange(ctx, r.db, sqlc.ListActiveReservationsInRangeParams{
		ShopID: shopID,
		From:   pgconv.TimeToPgtype(from),
		To:     pgconv.TimeToPgtype(to),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active reservations", err)
	}
	result := make([]*reservation.Reservation, len(rows))
	for i, row := range rows {
		result[i] = converter.ReservationFromRow(row)
	}
	return result, nil
}
