package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const tryInsertIdempotencyKey = `-- name: TryInsertIdempotencyKey :execrows
INSERT INTO idempotency_keys (key, actor_key, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'processing', $5)
ON CONFLICT (key, actor_key) DO NOTHING
`

type TryInsertIdempotencyKeyParams struct {
	Key         uuid.UUID          `json:"key"`
	ActorKey    string             `json:"actor_key"`
	Endpoint    string             `json:"endpoint"`
	RequestHash string             `json:"request_hash"`
	ExpiresAt   pgtype.Timestamptz `json:"expires_at"`
}

func (q *Queries) TryInsertIdempotencyKey(ctx context.Context, db DBTX, arg TryInsertIdempotencyKeyParams) (int64, error) {
	result, err := db.Exec(ctx, tryInsertIdempotencyKey,
		arg.Key,
		arg.ActorKey,
		arg.Endpoint,
		arg.RequestHash,
		arg.ExpiresAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getIdempotencyKey = `-- name: GetIdempotencyKey :one
SELECT key, actor_key, endpoint, request_hash, status, result_reservation_id, expires_at, created_at, updated_at
FROM idempotency_keys
WHERE key = $1 AND actor_key = $2
`

type GetIdempotencyKeyParams struct {
	Key      uuid.UUID `json:"key"`
	ActorKey string    `json:"actor_key"`
}

func (q *Queries) GetIdempotencyKey(ctx context.Context, db DBTX, arg GetIdempotencyKeyParams) (IdempotencyKeys, error) {
	row := db.QueryRow(ctx, getIdempotencyKey, arg.Key, arg.ActorKey)
	var i IdempotencyKeys
	err := row.Scan(
		&i.Key,
		&i.ActorKey,
		&i.Endpoint,
		&i.RequestHash,
		&i.Status,
		&i.ResultReservationID,
		&i.ExpiresAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const claimExpiredIdempotencyKey = `-- name: ClaimExpiredIdempotencyKey :execrows
UPDATE idempotency_keys
SET request_hash = $3,
    status = 'processing',
    result_reservation_id = NULL,
    expires_at = $4,
    updated_at = now()
WHERE key = $1 AND actor_key = $2 AND expires_at < now()
`

type ClaimExpiredIdempotencyKeyParams struct {
	Key         uuid.UUID          `json:"key"`
	ActorKey    string             `json:"actor_key"`
	RequestHash string             `json:"request_hash"`
	ExpiresAt   pgtype.Timestamptz `json:"expires_at"`
}

func (q *Queries) ClaimExpiredIdempotencyKey(ctx context.Context, db DBTX, arg ClaimExpiredIdempotencyKeyParams) (int64, error) {
	result, err := db.Exec(ctx, claimExpiredIdempotencyKey,
		arg.Key,
		arg.ActorKey,
		arg.RequestHash,
		arg.ExpiresAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateIdempotencyKeyCompleted = `-- name: UpdateIdempotencyKeyCompleted :exec
UPDATE idempotency_keys
SET status = 'completed',
    result_reservation_id = $3,
    updated_at = now()
WHERE key = $1 AND actor_key = $2
`

type UpdateIdempotencyKeyCompletedParams struct {
	Key                 uuid.UUID   `json:"key"`
	ActorKey            string      `json:"actor_key"`
	ResultReservationID pgtype.UUID `json:"result_reservation_id"`
}

func (q *Queries) UpdateIdempotencyKeyCompleted(ctx context.Context, db DBTX, arg UpdateIdempotencyKeyCompletedParams) error {
	_, err := db.Exec(ctx, updateIdempotencyKeyCompleted, arg.Key, arg.ActorKey, arg.ResultReservationID)
	return err
}

const deleteProcessingIdempotencyKey = `-- name: DeleteProcessingIdempotencyKey :exec
DELETE FROM idempotency_keys
WHERE key = $1 AND actor_key = $2 AND status = 'processing'
`

type DeleteProcessingIdempotencyKeyParams struct {
	Key      uuid.UUID `json:"key"`
	ActorKey string    `json:"actor_key"`
}

func (q *Queries) DeleteProcessingIdempotencyKey(ctx context.Context, db DBTX, arg DeleteProcessingIdempotencyKeyParams) error {
	_, err := db.Exec(ctx, deleteProcessingIdempotencyKey, arg.Key, arg.ActorKey)
	return err
}

const createNotificationJob = `-- name: CreateNotificationJob :exec
INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
VALUES ($1, $2, $3, $4, $5)
`

type CreateNotificationJobParams struct {
	Kind    string             `json:"kind"`
	Topic   string             `json:"topic"`
	Payload []byte             `json:"payload"`
	RunAt   pgtype.Timestamptz `json:"run_at"`
	Status  string             `json:"status"`
}

func (q *Queries) CreateNotificationJob(ctx context.Context, db DBTX, arg CreateNotificationJobParams) error {
	_, err := db.Exec(ctx, createNotificationJob,
		arg.Kind,
		arg.Topic,
		arg.Payload,
		arg.RunAt,
		arg.Status,
	)
	return err
}
