package converter

import (
	"shop-reservation/internal/domain/reservation"
	sqlc "shop-reservation/internal/infra/sqlc/generated"
	"shop-reservation/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func ReservationToInfra(res *reservation.Reservation) sqlc.Reservations {
	rec := res.Record()
	row := sqlc.Reservations{
		ID:                 rec.ID,
		ShopID:             rec.ShopID,
		ServiceID:          rec.ServiceID,
		ResourceID:         pgconv.UUIDPtrToPgtype(rec.ResourceID),
		AppUserID:          pgconv.UUIDPtrToPgtype(rec.AppUserID),
		StartTime:          pgconv.TimeToPgtype(rec.Start),
		EndTime:            pgconv.TimeToPgtype(rec.End),
		PartySize:          pgconv.IntToInt32(rec.PartySize),
		Price:              pgconv.Int64PtrToPgtype(rec.Price),
		Status:             rec.Status.String(),
		ConfirmationMode:   string(rec.ConfirmationMode),
		ConfirmedAt:        pgconv.TimePtrToPgtype(rec.ConfirmedAt),
		ConfirmedBy:        pgconv.StringPtrToPgtype(rec.ConfirmedBy),
		CancelledAt:        pgconv.TimePtrToPgtype(rec.CancelledAt),
		CancelledBy:        pgconv.StringPtrToPgtype(rec.CancelledBy),
		CancellationReason: pgconv.StringPtrToPgtype(rec.CancellationReason),
		NoShowAt:           pgconv.TimePtrToPgtype(rec.NoShowAt),
		NoShowBy:           pgconv.StringPtrToPgtype(rec.NoShowBy),
		CompletedAt:        pgconv.TimePtrToPgtype(rec.CompletedAt),
		CustomerNotes:      pgconv.StringPtrToPgtype(rec.CustomerNotes),
		InternalNotes:      pgconv.StringPtrToPgtype(rec.InternalNotes),
		CreatedAt:          pgconv.TimeToPgtype(rec.CreatedAt),
		UpdatedAt:          pgconv.TimeToPgtype(rec.UpdatedAt),
	}

	if g := rec.Guest; g != nil {
		row.GuestName = pgconv.StringToPgtype(g.Name())
		row.GuestPhone = pgconv.StringPtrToPgtype(g.Phone())
		row.GuestEmail = pgconv.StringPtrToPgtype(g.Email())
	} else {
		row.GuestName = pgtype.Text{Valid: false}
		row.GuestPhone = pgtype.Text{Valid: false}
		row.GuestEmail = pgtype.Text{Valid: false}
	}

	return row
}

func ReservationToUpdateParams(res *reservation.Reservation) sqlc.UpdateReservationParams {
	rec := res.Record()
	return sqlc.UpdateReservationParams{
		ID:                 rec.ID,
		StartTime:          pgconv.TimeToPgtype(rec.Start),
		EndTime:            pgconv.TimeToPgtype(rec.End),
		PartySize:          pgconv.IntToInt32(rec.PartySize),
		Status:             rec.Status.String(),
		CancelledAt:        pgconv.TimePtrToPgtype(rec.CancelledAt),
		CancelledBy:        pgconv.StringPtrToPgtype(rec.CancelledBy),
		CancellationReason: pgconv.StringPtrToPgtype(rec.CancellationReason),
		CustomerNotes:      pgconv.StringPtrToPgtype(rec.CustomerNotes),
		InternalNotes:      pgconv.StringPtrToPgtype(rec.InternalNotes),
		UpdatedAt:          pgconv.TimeToPgtype(rec.UpdatedAt),
	}
}

func ReservationFromRow(row sqlc.Reservations) *reservation.Reservation {
	return reservation.ReconstructReservation(RecordFromRow(row))
}

func RecordFromRow(row sqlc.Reservations) reservation.Record {
	rec := reservation.Record{
		ID:                 row.ID,
		ShopID:             row.ShopID,
		ServiceID:          row.ServiceID,
		ResourceID:         pgconv.UUIDPtrFromPgtype(row.ResourceID),
		AppUserID:          pgconv.UUIDPtrFromPgtype(row.AppUserID),
		Start:              pgconv.TimeFromPgtype(row.StartTime),
		End:                pgconv.TimeFromPgtype(row.EndTime),
		PartySize:          int(row.PartySize),
		Price:              pgconv.Int64PtrFromPgtype(row.Price),
		Status:             reservation.Status(row.Status),
		ConfirmationMode:   reservation.ConfirmationMode(row.ConfirmationMode),
		ConfirmedAt:        pgconv.TimePtrFromPgtype(row.ConfirmedAt),
		ConfirmedBy:        pgconv.StringPtrFromPgtype(row.ConfirmedBy),
		CancelledAt:        pgconv.TimePtrFromPgtype(row.CancelledAt),
		CancelledBy:        pgconv.StringPtrFromPgtype(row.CancelledBy),
		CancellationReason: pgconv.StringPtrFromPgtype(row.CancellationReason),
		NoShowAt:           pgconv.TimePtrFromPgtype(row.NoShowAt),
		NoShowBy:           pgconv.StringPtrFromPgtype(row.NoShowBy),
		CompletedAt:        pgconv.TimePtrFromPgtype(row.CompletedAt),
		CustomerNotes:      pgconv.StringPtrFromPgtype(row.CustomerNotes),
		InternalNotes:      pgconv.StringPtrFromPgtype(row.InternalNotes),
		CreatedAt:          pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:          pgconv.TimeFromPgtype(row.UpdatedAt),
	}
	if row.GuestName.Valid {
		g := reservation.ReconstructGuestContact(
			row.GuestName.String,
			pgconv.StringPtrFromPgtype(row.GuestPhone),
			pgconv.StringPtrFromPgtype(row.GuestEmail),
		)
		rec.Guest = &g
	}
	return rec
}

func StatusesToStrings(in []reservation.Status) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = s.String()
	}
	return out
}
