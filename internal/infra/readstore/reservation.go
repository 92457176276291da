package readstore

import (
	"context"
	"time"

	"shop-reservation/internal/infra"
	sqlc "shop-reservation/internal/infra/sqlc/generated"
	"shop-reservation/internal/pkg/pgconv"
	"shop-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationViewQueries interface {
	GetReservationView(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.ListReservationsRow, error)
	ListReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReservationsParams) ([]sqlc.ListReservationsRow, error)
	CountReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.CountReservationsParams) (int64, error)
	CountReservationsByStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.CountReservationsByStatusParams) ([]sqlc.CountReservationsByStatusRow, error)
}

// ReservationReadStore serves reservation views straight from the pool,
// outside any unit of work.
type ReservationReadStore struct {
	queries ReservationViewQueries
	db      sqlc.DBTX
}

var _ queries.ReservationViewRepo = (*ReservationReadStore)(nil)

func NewReservationReadStore(queries ReservationViewQueries, db sqlc.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationView(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return rowToReservationView(row), nil
}

func (r *ReservationReadStore) List(ctx context.Context, shopID uuid.UUID, f queries.ReservationFilter) ([]*queries.ReservationView, error) {
	params := sqlc.ListReservationsParams{
		ShopID:     shopID,
		Status:     pgconv.StringPtrToPgtype(f.Status),
		ServiceID:  pgconv.UUIDPtrToPgtype(f.ServiceID),
		ResourceID: pgconv.UUIDPtrToPgtype(f.ResourceID),
		AppUserID:  pgconv.UUIDPtrToPgtype(f.AppUserID),
		From:       pgconv.TimePtrToPgtype(f.From),
		To:         pgconv.TimePtrToPgtype(f.To),
		Limit:      pgconv.IntToInt32(f.Limit),
		Offset:     pgconv.IntToInt32(f.Offset),
	}

	rows, err := r.queries.ListReservations(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}

	result := make([]*queries.ReservationView, len(rows))
	for i, row := range rows {
		result[i] = rowToReservationView(row)
	}
	return result, nil
}

func (r *ReservationReadStore) Count(ctx context.Context, shopID uuid.UUID, f queries.ReservationFilter) (int64, error) {
	n, err := r.queries.CountReservations(ctx, r.db, sqlc.CountReservationsParams{
		ShopID:     shopID,
		Status:     pgconv.StringPtrToPgtype(f.Status),
		ServiceID:  pgconv.UUIDPtrToPgtype(f.ServiceID),
		ResourceID: pgconv.UUIDPtrToPgtype(f.ResourceID),
		AppUserID:  pgconv.UUIDPtrToPgtype(f.AppUserID),
		From:       pgconv.TimePtrToPgtype(f.From),
		To:         pgconv.TimePtrToPgtype(f.To),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count reservations", err)
	}
	return n, nil
}

func (r *ReservationReadStore) CountByStatus(ctx context.Context, shopID uuid.UUID, from, to *time.Time) (map[string]int64, error) {
	rows, err := r.queries.CountReservationsByStatus(ctx, r.db, sqlc.CountReservationsByStatusParams{
		ShopID: shopID,
		From:   pgconv.TimePtrToPgtype(from),
		To:     pgconv.TimePtrToPgtype(to),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count reservations by status", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func rowToReservationView(row sqlc.ListReservationsRow) *queries.ReservationView {
	r := row.Reservations
	return &queries.ReservationView{
		ID:                 r.ID,
		ShopID:             r.ShopID,
		ServiceID:          r.ServiceID,
		ServiceName:        row.ServiceName,
		ResourceID:         pgconv.UUIDPtrFromPgtype(r.ResourceID),
		ResourceName:       pgconv.StringPtrFromPgtype(row.ResourceName),
		AppUserID:          pgconv.UUIDPtrFromPgtype(r.AppUserID),
		GuestName:          pgconv.StringPtrFromPgtype(r.GuestName),
		GuestPhone:         pgconv.StringPtrFromPgtype(r.GuestPhone),
		GuestEmail:         pgconv.StringPtrFromPgtype(r.GuestEmail),
		StartTime:          pgconv.TimeFromPgtype(r.StartTime),
		EndTime:            pgconv.TimeFromPgtype(r.EndTime),
		PartySize:          int(r.PartySize),
		Price:              pgconv.Int64PtrFromPgtype(r.Price),
		Status:             r.Status,
		ConfirmationMode:   r.ConfirmationMode,
		ConfirmedAt:        pgconv.TimePtrFromPgtype(r.ConfirmedAt),
		CancelledAt:        pgconv.TimePtrFromPgtype(r.CancelledAt),
		CancellationReason: pgconv.StringPtrFromPgtype(r.CancellationReason),
		NoShowAt:           pgconv.TimePtrFromPgtype(r.NoShowAt),
		CompletedAt:        pgconv.TimePtrFromPgtype(r.CompletedAt),
		CustomerNotes:      pgconv.StringPtrFromPgtype(r.CustomerNotes),
		InternalNotes:      pgconv.StringPtrFromPgtype(r.InternalNotes),
		CreatedAt:          pgconv.TimeFromPgtype(r.CreatedAt),
		UpdatedAt:          pgconv.TimeFromPgtype(r.UpdatedAt),
	}
}
