package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `id, shop_id, service_id, resource_id, app_user_id, guest_name, guest_phone, guest_email,
    start_time, end_time, party_size, price, status, confirmation_mode,
    confirmed_at, confirmed_by, cancelled_at, cancelled_by, cancellation_reason,
    no_show_at, no_show_by, completed_at, customer_notes, internal_notes, created_at, updated_at`

func reservationDest(i *Reservations) []any {
	return []any{
		&i.ID,
		&i.ShopID,
		&i.ServiceID,
		&i.ResourceID,
		&i.AppUserID,
		&i.GuestName,
		&i.GuestPhone,
		&i.GuestEmail,
		&i.StartTime,
		&i.EndTime,
		&i.PartySize,
		&i.Price,
		&i.Status,
		&i.ConfirmationMode,
		&i.ConfirmedAt,
		&i.ConfirmedBy,
		&i.CancelledAt,
		&i.CancelledBy,
		&i.CancellationReason,
		&i.NoShowAt,
		&i.NoShowBy,
		&i.CompletedAt,
		&i.CustomerNotes,
		&i.InternalNotes,
		&i.CreatedAt,
		&i.UpdatedAt,
	}
}

const createReservation = `-- name: CreateReservation :exec
INSERT INTO reservations (` + reservationColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
`

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg Reservations) error {
	_, err := db.Exec(ctx, createReservation,
		arg.ID,
		arg.ShopID,
		arg.ServiceID,
		arg.ResourceID,
		arg.AppUserID,
		arg.GuestName,
		arg.GuestPhone,
		arg.GuestEmail,
		arg.StartTime,
		arg.EndTime,
		arg.PartySize,
		arg.Price,
		arg.Status,
		arg.ConfirmationMode,
		arg.ConfirmedAt,
		arg.ConfirmedBy,
		arg.CancelledAt,
		arg.CancelledBy,
		arg.CancellationReason,
		arg.NoShowAt,
		arg.NoShowBy,
		arg.CompletedAt,
		arg.CustomerNotes,
		arg.InternalNotes,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getReservation = `-- name: GetReservation :one
SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1
`

func (q *Queries) GetReservation(ctx context.Context, db DBTX, id uuid.UUID) (Reservations, error) {
	var i Reservations
	err := db.QueryRow(ctx, getReservation, id).Scan(reservationDest(&i)...)
	return i, err
}

const getReservationForUpdate = `-- name: GetReservationForUpdate :one
SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetReservationForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Reservations, error) {
	var i Reservations
	err := db.QueryRow(ctx, getReservationForUpdate, id).Scan(reservationDest(&i)...)
	return i, err
}

const updateReservation = `-- name: UpdateReservation :execrows
UPDATE reservations
SET start_time = $2,
    end_time = $3,
    party_size = $4,
    status = $5,
    cancelled_at = $6,
    cancelled_by = $7,
    cancellation_reason = $8,
    customer_notes = $9,
    internal_notes = $10,
    updated_at = $11
WHERE id = $1
`

type UpdateReservationParams struct {
	ID                 uuid.UUID          `json:"id"`
	StartTime          pgtype.Timestamptz `json:"start_time"`
	EndTime            pgtype.Timestamptz `json:"end_time"`
	PartySize          int32              `json:"party_size"`
	Status             string             `json:"status"`
	CancelledAt        pgtype.Timestamptz `json:"cancelled_at"`
	CancelledBy        pgtype.Text        `json:"cancelled_by"`
	CancellationReason pgtype.Text        `json:"cancellation_reason"`
	CustomerNotes      pgtype.Text        `json:"customer_notes"`
	InternalNotes      pgtype.Text        `json:"internal_notes"`
	UpdatedAt          pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateReservation(ctx context.Context, db DBTX, arg UpdateReservationParams) (int64, error) {
	result, err := db.Exec(ctx, updateReservation,
		arg.ID,
		arg.StartTime,
		arg.EndTime,
		arg.PartySize,
		arg.Status,
		arg.CancelledAt,
		arg.CancelledBy,
		arg.CancellationReason,
		arg.CustomerNotes,
		arg.InternalNotes,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateReservationStatus = `-- name: UpdateReservationStatus :one
UPDATE reservations
SET status = $3::text,
    confirmed_at = CASE WHEN $3::text = 'confirmed' THEN $5::timestamptz ELSE confirmed_at END,
    confirmed_by = CASE WHEN $3::text = 'confirmed' THEN $6::text ELSE confirmed_by END,
    completed_at = CASE WHEN $3::text = 'completed' THEN $5::timestamptz ELSE completed_at END,
    no_show_at = CASE WHEN $3::text = 'no_show' THEN $5::timestamptz ELSE no_show_at END,
    no_show_by = CASE WHEN $3::text = 'no_show' THEN $6::text ELSE no_show_by END,
    updated_at = $5::timestamptz
WHERE id = $1 AND shop_id = $2 AND status = ANY($4::text[])
RETURNING ` + reservationColumns + `
`

type UpdateReservationStatusParams struct {
	ID           uuid.UUID          `json:"id"`
	ShopID       uuid.UUID          `json:"shop_id"`
	Status       string             `json:"status"`
	FromStatuses []string           `json:"from_statuses"`
	At           pgtype.Timestamptz `json:"at"`
	By           string             `json:"by"`
}

func (q *Queries) UpdateReservationStatus(ctx context.Context, db DBTX, arg UpdateReservationStatusParams) (Reservations, error) {
	row := db.QueryRow(ctx, updateReservationStatus,
		arg.ID,
		arg.ShopID,
		arg.Status,
		arg.FromStatuses,
		arg.At,
		arg.By,
	)
	var i Reservations
	err := row.Scan(reservationDest(&i)...)
	return i, err
}

const acquireResourceLock = `-- name: AcquireResourceLock :exec
SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))
`

func (q *Queries) AcquireResourceLock(ctx context.Context, db DBTX, lockKey string) error {
	_, err := db.Exec(ctx, acquireResourceLock, lockKey)
	return err
}

const hasConflictingReservation = `-- name: HasConflictingReservation :one
SELECT EXISTS (
    SELECT 1 FROM reservations
    WHERE shop_id = $1
      AND resource_id = $2
      AND status IN ('pending', 'confirmed')
      AND start_time < $4
      AND end_time > $3
      AND ($5::uuid IS NULL OR id <> $5)
)
`

type HasConflictingReservationParams struct {
	ShopID     uuid.UUID          `json:"shop_id"`
	ResourceID uuid.UUID          `json:"resource_id"`
	StartTime  pgtype.Timestamptz `json:"start_time"`
	EndTime    pgtype.Timestamptz `json:"end_time"`
	ExcludeID  pgtype.UUID        `json:"exclude_id"`
}

func (q *Queries) HasConflictingReservation(ctx context.Context, db DBTX, arg HasConflictingReservationParams) (bool, error) {
	row := db.QueryRow(ctx, hasConflictingReservation,
		arg.ShopID,
		arg.ResourceID,
		arg.StartTime,
		arg.EndTime,
		arg.ExcludeID,
	)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const listActiveReservationsInRange = `-- name: ListActiveReservationsInRange :many
SELECT ` + reservationColumns + ` FROM reservations
WHERE shop_id = $1
  AND status IN ('pending', 'confirmed')
  AND start_time < $3
  AND end_time > $2
ORDER BY start_time, id
`

type ListActiveReservationsInRangeParams struct {
	ShopID uuid.UUID          `json:"shop_id"`
	From   pgtype.Timestamptz `json:"from"`
	To     pgtype.Timestamptz `json:"to"`
}

func (q *Queries) ListActiveReservationsInRange(ctx context.Context, db DBTX, arg ListActiveReservationsInRangeParams) ([]Reservations, error) {
	rows, err := db.Query(ctx, listActiveReservationsInRange, arg.ShopID, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Reservations{}
	for rows.Next() {
		var i Reservations
		if err := rows.Scan(reservationDest(&i)...); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const reservationFilter = `
WHERE r.shop_id = $1
  AND ($2::text IS NULL OR r.status = $2)
  AND ($3::uuid IS NULL OR r.service_id = $3)
  AND ($4::uuid IS NULL OR r.resource_id = $4)
  AND ($5::uuid IS NULL OR r.app_user_id = $5)
  AND ($6::timestamptz IS NULL OR r.start_time >= $6)
  AND ($7::timestamptz IS NULL OR r.start_time < $7)
`

const listReservations = `-- name: ListReservations :many
SELECT r.id, r.shop_id, r.service_id, r.resource_id, r.app_user_id, r.guest_name, r.guest_phone, r.guest_email,
    r.start_time, r.end_time, r.party_size, r.price, r.status, r.confirmation_mode,
    r.confirmed_at, r.confirmed_by, r.cancelled_at, r.cancelled_by, r.cancellation_reason,
    r.no_show_at, r.no_show_by, r.completed_at, r.customer_notes, r.internal_notes, r.created_at, r.updated_at,
    s.name AS service_name, res.name AS resource_name
FROM reservations r
JOIN services s ON s.id = r.service_id
LEFT JOIN resources res ON res.id = r.resource_id` + reservationFilter + `ORDER BY r.start_time, r.id
LIMIT $8 OFFSET $9
`

type ListReservationsParams struct {
	ShopID     uuid.UUID          `json:"shop_id"`
	Status     pgtype.Text        `json:"status"`
	ServiceID  pgtype.UUID        `json:"service_id"`
	ResourceID pgtype.UUID        `json:"resource_id"`
	AppUserID  pgtype.UUID        `json:"app_user_id"`
	From       pgtype.Timestamptz `json:"from"`
	To         pgtype.Timestamptz `json:"to"`
	Limit      int32              `json:"limit"`
	Offset     int32              `json:"offset"`
}

type ListReservationsRow struct {
	Reservations Reservations `json:"reservations"`
	ServiceName  string       `json:"service_name"`
	ResourceName pgtype.Text  `json:"resource_name"`
}

func (q *Queries) ListReservations(ctx context.Context, db DBTX, arg ListReservationsParams) ([]ListReservationsRow, error) {
	rows, err := db.Query(ctx, listReservations,
		arg.ShopID,
		arg.Status,
		arg.ServiceID,
		arg.ResourceID,
		arg.AppUserID,
		arg.From,
		arg.To,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListReservationsRow{}
	for rows.Next() {
		var i ListReservationsRow
		dest := append(reservationDest(&i.Reservations), &i.ServiceName, &i.ResourceName)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countReservations = `-- name: CountReservations :one
SELECT count(*) FROM reservations r` + reservationFilter

type CountReservationsParams struct {
	ShopID     uuid.UUID          `json:"shop_id"`
	Status     pgtype.Text        `json:"status"`
	ServiceID  pgtype.UUID        `json:"service_id"`
	ResourceID pgtype.UUID        `json:"resource_id"`
	AppUserID  pgtype.UUID        `json:"app_user_id"`
	From       pgtype.Timestamptz `json:"from"`
	To         pgtype.Timestamptz `json:"to"`
}

func (q *Queries) CountReservations(ctx context.Context, db DBTX, arg CountReservationsParams) (int64, error) {
	row := db.QueryRow(ctx, countReservations,
		arg.ShopID,
		arg.Status,
		arg.ServiceID,
		arg.ResourceID,
		arg.AppUserID,
		arg.From,
		arg.To,
	)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getReservationView = `-- name: GetReservationView :one
SELECT r.id, r.shop_id, r.service_id, r.resource_id, r.app_user_id, r.guest_name, r.guest_phone, r.guest_email,
    r.start_time, r.end_time, r.party_size, r.price, r.status, r.confirmation_mode,
    r.confirmed_at, r.confirmed_by, r.cancelled_at, r.cancelled_by, r.cancellation_reason,
    r.no_show_at, r.no_show_by, r.completed_at, r.customer_notes, r.internal_notes, r.created_at, r.updated_at,
    s.name AS service_name, res.name AS resource_name
FROM reservations r
JOIN services s ON s.id = r.service_id
LEFT JOIN resources res ON res.id = r.resource_id
WHERE r.id = $1
`

func (q *Queries) GetReservationView(ctx context.Context, db DBTX, id uuid.UUID) (ListReservationsRow, error) {
	var i ListReservationsRow
	dest := append(reservationDest(&i.Reservations), &i.ServiceName, &i.ResourceName)
	err := db.QueryRow(ctx, getReservationView, id).Scan(dest...)
	return i, err
}

const countReservationsByStatus = `-- name: CountReservationsByStatus :many
SELECT status, count(*) AS count
FROM reservations
WHERE shop_id = $1
  AND ($2::timestamptz IS NULL OR start_time >= $2)
  AND ($3::timestamptz IS NULL OR start_time < $3)
GROUP BY status
`

type CountReservationsByStatusParams struct {
	ShopID uuid.UUID          `json:"shop_id"`
	From   pgtype.Timestamptz `json:"from"`
	To     pgtype.Timestamptz `json:"to"`
}

type CountReservationsByStatusRow struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

func (q *Queries) CountReservationsByStatus(ctx context.Context, db DBTX, arg CountReservationsByStatusParams) ([]CountReservationsByStatusRow, error) {
	rows, err := db.Query(ctx, countReservationsByStatus, arg.ShopID, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []CountReservationsByStatusRow{}
	for rows.Next() {
		var i CountReservationsByStatusRow
		if err := rows.Scan(&i.Status, &i.Count); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
