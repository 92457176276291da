package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const deleteAvailabilityRules = `-- name: DeleteAvailabilityRules :exec
DELETE FROM availability_rules
WHERE shop_id = $1 AND resource_id IS NOT DISTINCT FROM $2
`

type DeleteAvailabilityRulesParams struct {
	ShopID     uuid.UUID   `json:"shop_id"`
	ResourceID pgtype.UUID `json:"resource_id"`
}

func (q *Queries) DeleteAvailabilityRules(ctx context.Context, db DBTX, arg DeleteAvailabilityRulesParams) error {
	_, err := db.Exec(ctx, deleteAvailabilityRules, arg.ShopID, arg.ResourceID)
	return err
}

const insertAvailabilityRule = `-- name: InsertAvailabilityRule :exec
INSERT INTO availability_rules (id, shop_id, resource_id, day_of_week, start_time, end_time, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

type InsertAvailabilityRuleParams struct {
	ID         uuid.UUID   `json:"id"`
	ShopID     uuid.UUID   `json:"shop_id"`
	ResourceID pgtype.UUID `json:"resource_id"`
	DayOfWeek  int16       `json:"day_of_week"`
	StartTime  pgtype.Time `json:"start_time"`
	EndTime    pgtype.Time `json:"end_time"`
	IsActive   bool        `json:"is_active"`
}

func (q *Queries) InsertAvailabilityRule(ctx context.Context, db DBTX, arg InsertAvailabilityRuleParams) error {
	_, err := db.Exec(ctx, insertAvailabilityRule,
		arg.ID,
		arg.ShopID,
		arg.ResourceID,
		arg.DayOfWeek,
		arg.StartTime,
		arg.EndTime,
		arg.IsActive,
	)
	return err
}

const ruleColumns = `id, shop_id, resource_id, day_of_week, start_time, end_time, is_active, created_at`

func scanRules(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
	Close()
}) ([]AvailabilityRules, error) {
	defer rows.Close()
	items := []AvailabilityRules{}
	for rows.Next() {
		var i AvailabilityRules
		if err := rows.Scan(
			&i.ID,
			&i.ShopID,
			&i.ResourceID,
			&i.DayOfWeek,
			&i.StartTime,
			&i.EndTime,
			&i.IsActive,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listAvailabilityRules = `-- name: ListAvailabilityRules :many
SELECT ` + ruleColumns + ` FROM availability_rules
WHERE shop_id = $1 AND resource_id IS NOT DISTINCT FROM $2 AND is_active
ORDER BY day_of_week, start_time
`

type ListAvailabilityRulesParams struct {
	ShopID     uuid.UUID   `json:"shop_id"`
	ResourceID pgtype.UUID `json:"resource_id"`
}

func (q *Queries) ListAvailabilityRules(ctx context.Context, db DBTX, arg ListAvailabilityRulesParams) ([]AvailabilityRules, error) {
	rows, err := db.Query(ctx, listAvailabilityRules, arg.ShopID, arg.ResourceID)
	if err != nil {
		return nil, err
	}
	return scanRules(rows)
}

const listAllActiveRules = `-- name: ListAllActiveRules :many
SELECT ` + ruleColumns + ` FROM availability_rules
WHERE shop_id = $1 AND is_active
ORDER BY day_of_week, start_time
`

func (q *Queries) ListAllActiveRules(ctx context.Context, db DBTX, shopID uuid.UUID) ([]AvailabilityRules, error) {
	rows, err := db.Query(ctx, listAllActiveRules, shopID)
	if err != nil {
		return nil, err
	}
	return scanRules(rows)
}

const createBlock = `-- name: CreateBlock :exec
INSERT INTO blocks (id, shop_id, resource_id, start_datetime, end_datetime, reason, block_type, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

type CreateBlockParams struct {
	ID            uuid.UUID          `json:"id"`
	ShopID        uuid.UUID          `json:"shop_id"`
	ResourceID    pgtype.UUID        `json:"resource_id"`
	StartDatetime pgtype.Timestamptz `json:"start_datetime"`
	EndDatetime   pgtype.Timestamptz `json:"end_datetime"`
	Reason        pgtype.Text        `json:"reason"`
	BlockType     string             `json:"block_type"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateBlock(ctx context.Context, db DBTX, arg CreateBlockParams) error {
	_, err := db.Exec(ctx, createBlock,
		arg.ID,
		arg.ShopID,
		arg.ResourceID,
		arg.StartDatetime,
		arg.EndDatetime,
		arg.Reason,
		arg.BlockType,
		arg.CreatedAt,
	)
	return err
}

const listBlocks = `-- name: ListBlocks :many
SELECT id, shop_id, resource_id, start_datetime, end_datetime, reason, block_type, created_at
FROM blocks
WHERE shop_id = $1
  AND ($2::timestamptz IS NULL OR end_datetime >= $2)
  AND ($3::timestamptz IS NULL OR start_datetime <= $3)
  AND (NOT $4::boolean OR resource_id IS NOT DISTINCT FROM $5)
ORDER BY start_datetime, id
`

type ListBlocksParams struct {
	ShopID     uuid.UUID          `json:"shop_id"`
	From       pgtype.Timestamptz `json:"from"`
	To         pgtype.Timestamptz `json:"to"`
	ScopeSet   bool               `json:"scope_set"`
	ResourceID pgtype.UUID        `json:"resource_id"`
}

func (q *Queries) ListBlocks(ctx context.Context, db DBTX, arg ListBlocksParams) ([]Blocks, error) {
	rows, err := db.Query(ctx, listBlocks, arg.ShopID, arg.From, arg.To, arg.ScopeSet, arg.ResourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Blocks{}
	for rows.Next() {
		var i Blocks
		if err := rows.Scan(
			&i.ID,
			&i.ShopID,
			&i.ResourceID,
			&i.StartDatetime,
			&i.EndDatetime,
			&i.Reason,
			&i.BlockType,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteBlock = `-- name: DeleteBlock :execrows
DELETE FROM blocks WHERE id = $1 AND shop_id = $2
`

type DeleteBlockParams struct {
	ID     uuid.UUID `json:"id"`
	ShopID uuid.UUID `json:"shop_id"`
}

func (q *Queries) DeleteBlock(ctx context.Context, db DBTX, arg DeleteBlockParams) (int64, error) {
	result, err := db.Exec(ctx, deleteBlock, arg.ID, arg.ShopID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getShopSettings = `-- name: GetShopSettings :one
SELECT reservation_settings FROM shops WHERE id = $1
`

func (q *Queries) GetShopSettings(ctx context.Context, db DBTX, id uuid.UUID) ([]byte, error) {
	row := db.QueryRow(ctx, getShopSettings, id)
	var reservationSettings []byte
	err := row.Scan(&reservationSettings)
	return reservationSettings, err
}

const updateShopSettings = `-- name: UpdateShopSettings :execrows
UPDATE shops SET reservation_settings = $2, updated_at = now() WHERE id = $1
`

type UpdateShopSettingsParams struct {
	ID                  uuid.UUID `json:"id"`
	ReservationSettings []byte    `json:"reservation_settings"`
}

func (q *Queries) UpdateShopSettings(ctx context.Context, db DBTX, arg UpdateShopSettingsParams) (int64, error) {
	result, err := db.Exec(ctx, updateShopSettings, arg.ID, arg.ReservationSettings)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const incrementNoShowCount = `-- name: IncrementNoShowCount :exec
UPDATE app_users SET no_show_count = no_show_count + 1, updated_at = now() WHERE id = $1
`

func (q *Queries) IncrementNoShowCount(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, incrementNoShowCount, id)
	return err
}
