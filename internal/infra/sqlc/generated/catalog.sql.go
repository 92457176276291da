package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const serviceColumns = `id, shop_id, name, description, duration_minutes, price, capacity, requires_resource, is_active, sort_order, created_at, updated_at`

func scanService(row interface{ Scan(...any) error }) (Services, error) {
	var i Services
	err := row.Scan(
		&i.ID,
		&i.ShopID,
		&i.Name,
		&i.Description,
		&i.DurationMinutes,
		&i.Price,
		&i.Capacity,
		&i.RequiresResource,
		&i.IsActive,
		&i.SortOrder,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createService = `-- name: CreateService :exec
INSERT INTO services (id, shop_id, name, description, duration_minutes, price, capacity, requires_resource, is_active, sort_order, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
`

type CreateServiceParams struct {
	ID               uuid.UUID          `json:"id"`
	ShopID           uuid.UUID          `json:"shop_id"`
	Name             string             `json:"name"`
	Description      pgtype.Text        `json:"description"`
	DurationMinutes  pgtype.Int4        `json:"duration_minutes"`
	Price            pgtype.Int8        `json:"price"`
	Capacity         int32              `json:"capacity"`
	RequiresResource bool               `json:"requires_resource"`
	IsActive         bool               `json:"is_active"`
	SortOrder        int32              `json:"sort_order"`
	CreatedAt        pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateService(ctx context.Context, db DBTX, arg CreateServiceParams) error {
	_, err := db.Exec(ctx, createService,
		arg.ID,
		arg.ShopID,
		arg.Name,
		arg.Description,
		arg.DurationMinutes,
		arg.Price,
		arg.Capacity,
		arg.RequiresResource,
		arg.IsActive,
		arg.SortOrder,
		arg.CreatedAt,
	)
	return err
}

const getService = `-- name: GetService :one
SELECT ` + serviceColumns + ` FROM services
WHERE id = $1 AND shop_id = $2
`

type GetServiceParams struct {
	ID     uuid.UUID `json:"id"`
	ShopID uuid.UUID `json:"shop_id"`
}

func (q *Queries) GetService(ctx context.Context, db DBTX, arg GetServiceParams) (Services, error) {
	return scanService(db.QueryRow(ctx, getService, arg.ID, arg.ShopID))
}

const listServices = `-- name: ListServices :many
SELECT ` + serviceColumns + ` FROM services
WHERE shop_id = $1 AND (NOT $2::boolean OR is_active)
ORDER BY sort_order, name, id
`

type ListServicesParams struct {
	ShopID     uuid.UUID `json:"shop_id"`
	ActiveOnly bool      `json:"active_only"`
}

func (q *Queries) ListServices(ctx context.Context, db DBTX, arg ListServicesParams) ([]Services, error) {
	rows, err := db.Query(ctx, listServices, arg.ShopID, arg.ActiveOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Services{}
	for rows.Next() {
		i, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateService = `-- name: UpdateService :execrows
UPDATE services
SET name = $3,
    description = $4,
    duration_minutes = $5,
    price = $6,
    capacity = $7,
    requires_resource = $8,
    is_active = $9,
    sort_order = $10,
    updated_at = $11
WHERE id = $1 AND shop_id = $2
`

type UpdateServiceParams struct {
	ID               uuid.UUID          `json:"id"`
	ShopID           uuid.UUID          `json:"shop_id"`
	Name             string             `json:"name"`
	Description      pgtype.Text        `json:"description"`
	DurationMinutes  pgtype.Int4        `json:"duration_minutes"`
	Price            pgtype.Int8        `json:"price"`
	Capacity         int32              `json:"capacity"`
	RequiresResource bool               `json:"requires_resource"`
	IsActive         bool               `json:"is_active"`
	SortOrder        int32              `json:"sort_order"`
	UpdatedAt        pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateService(ctx context.Context, db DBTX, arg UpdateServiceParams) (int64, error) {
	result, err := db.Exec(ctx, updateService,
		arg.ID,
		arg.ShopID,
		arg.Name,
		arg.Description,
		arg.DurationMinutes,
		arg.Price,
		arg.Capacity,
		arg.RequiresResource,
		arg.IsActive,
		arg.SortOrder,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteService = `-- name: DeleteService :execrows
DELETE FROM services WHERE id = $1 AND shop_id = $2
`

type DeleteServiceParams struct {
	ID     uuid.UUID `json:"id"`
	ShopID uuid.UUID `json:"shop_id"`
}

func (q *Queries) DeleteService(ctx context.Context, db DBTX, arg DeleteServiceParams) (int64, error) {
	result, err := db.Exec(ctx, deleteService, arg.ID, arg.ShopID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const countServiceReservations = `-- name: CountServiceReservations :one
SELECT count(*) FROM reservations WHERE service_id = $1
`

func (q *Queries) CountServiceReservations(ctx context.Context, db DBTX, serviceID uuid.UUID) (int64, error) {
	row := db.QueryRow(ctx, countServiceReservations, serviceID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const resourceColumns = `id, shop_id, name, type, is_active, sort_order, created_at, updated_at`

func scanResource(row interface{ Scan(...any) error }) (Resources, error) {
	var i Resources
	err := row.Scan(
		&i.ID,
		&i.ShopID,
		&i.Name,
		&i.Type,
		&i.IsActive,
		&i.SortOrder,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createResource = `-- name: CreateResource :exec
INSERT INTO resources (id, shop_id, name, type, is_active, sort_order, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
`

type CreateResourceParams struct {
	ID        uuid.UUID          `json:"id"`
	ShopID    uuid.UUID          `json:"shop_id"`
	Name      string             `json:"name"`
	Type      string             `json:"type"`
	IsActive  bool               `json:"is_active"`
	SortOrder int32              `json:"sort_order"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateResource(ctx context.Context, db DBTX, arg CreateResourceParams) error {
	_, err := db.Exec(ctx, createResource,
		arg.ID,
		arg.ShopID,
		arg.Name,
		arg.Type,
		arg.IsActive,
		arg.SortOrder,
		arg.CreatedAt,
	)
	return err
}

const getResource = `-- name: GetResource :one
SELECT ` + resourceColumns + ` FROM resources
WHERE id = $1 AND shop_id = $2
`

type GetResourceParams struct {
	ID     uuid.UUID `json:"id"`
	ShopID uuid.UUID `json:"shop_id"`
}

func (q *Queries) GetResource(ctx context.Context, db DBTX, arg GetResourceParams) (Resources, error) {
	return scanResource(db.QueryRow(ctx, getResource, arg.ID, arg.ShopID))
}

const listResources = `-- name: ListResources :many
SELECT ` + resourceColumns + ` FROM resources
WHERE shop_id = $1 AND (NOT $2::boolean OR is_active)
ORDER BY sort_order, name, id
`

type ListResourcesParams struct {
	ShopID     uuid.UUID `json:"shop_id"`
	ActiveOnly bool      `json:"active_only"`
}

func (q *Queries) ListResources(ctx context.Context, db DBTX, arg ListResourcesParams) ([]Resources, error) {
	rows, err := db.Query(ctx, listResources, arg.ShopID, arg.ActiveOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Resources{}
	for rows.Next() {
		i, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateResource = `-- name: UpdateResource :execrows
UPDATE resources
SET name = $3,
    type = $4,
    is_active = $5,
    sort_order = $6,
    updated_at = $7
WHERE id = $1 AND shop_id = $2
`

type UpdateResourceParams struct {
	ID        uuid.UUID          `json:"id"`
	ShopID    uuid.UUID          `json:"shop_id"`
	Name      string             `json:"name"`
	Type      string             `json:"type"`
	IsActive  bool               `json:"is_active"`
	SortOrder int32              `json:"sort_order"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateResource(ctx context.Context, db DBTX, arg UpdateResourceParams) (int64, error) {
	result, err := db.Exec(ctx, updateResource,
		arg.ID,
		arg.ShopID,
		arg.Name,
		arg.Type,
		arg.IsActive,
		arg.SortOrder,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteResource = `-- name: DeleteResource :execrows
DELETE FROM resources WHERE id = $1 AND shop_id = $2
`

type DeleteResourceParams struct {
	ID     uuid.UUID `json:"id"`
	ShopID uuid.UUID `json:"shop_id"`
}

func (q *Queries) DeleteResource(ctx context.Context, db DBTX, arg DeleteResourceParams) (int64, error) {
	result, err := db.Exec(ctx, deleteResource, arg.ID, arg.ShopID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const countResourceReservations = `-- name: CountResourceReservations :one
SELECT count(*) FROM reservations WHERE resource_id = $1
`

func (q *Queries) CountResourceReservations(ctx context.Context, db DBTX, resourceID uuid.UUID) (int64, error) {
	row := db.QueryRow(ctx, countResourceReservations, resourceID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const deleteResourceServices = `-- name: DeleteResourceServices :exec
DELETE FROM resource_services WHERE resource_id = $1
`

func (q *Queries) DeleteResourceServices(ctx context.Context, db DBTX, resourceID uuid.UUID) error {
	_, err := db.Exec(ctx, deleteResourceServices, resourceID)
	return err
}

const insertResourceService = `-- name: InsertResourceService :exec
INSERT INTO resource_services (resource_id, service_id, price_override, duration_override, is_active)
VALUES ($1, $2, $3, $4, $5)
`

type InsertResourceServiceParams struct {
	ResourceID       uuid.UUID   `json:"resource_id"`
	ServiceID        uuid.UUID   `json:"service_id"`
	PriceOverride    pgtype.Int8 `json:"price_override"`
	DurationOverride pgtype.Int4 `json:"duration_override"`
	IsActive         bool        `json:"is_active"`
}

func (q *Queries) InsertResourceService(ctx context.Context, db DBTX, arg InsertResourceServiceParams) error {
	_, err := db.Exec(ctx, insertResourceService,
		arg.ResourceID,
		arg.ServiceID,
		arg.PriceOverride,
		arg.DurationOverride,
		arg.IsActive,
	)
	return err
}

const getActiveResourceServiceLink = `-- name: GetActiveResourceServiceLink :one
SELECT rs.resource_id, rs.service_id, rs.price_override, rs.duration_override, rs.is_active
FROM resource_services rs
JOIN resources r ON r.id = rs.resource_id
WHERE rs.resource_id = $1
  AND rs.service_id = $2
  AND r.shop_id = $3
  AND rs.is_active
  AND r.is_active
`

type GetActiveResourceServiceLinkParams struct {
	ResourceID uuid.UUID `json:"resource_id"`
	ServiceID  uuid.UUID `json:"service_id"`
	ShopID     uuid.UUID `json:"shop_id"`
}

func (q *Queries) GetActiveResourceServiceLink(ctx context.Context, db DBTX, arg GetActiveResourceServiceLinkParams) (ResourceServices, error) {
	row := db.QueryRow(ctx, getActiveResourceServiceLink, arg.ResourceID, arg.ServiceID, arg.ShopID)
	var i ResourceServices
	err := row.Scan(
		&i.ResourceID,
		&i.ServiceID,
		&i.PriceOverride,
		&i.DurationOverride,
		&i.IsActive,
	)
	return i, err
}

const listServiceResources = `-- name: ListServiceResources :many
SELECT r.id, r.shop_id, r.name, r.type, r.is_active, r.sort_order, r.created_at, r.updated_at,
       rs.price_override, rs.duration_override, rs.is_active AS link_active
FROM resource_services rs
JOIN resources r ON r.id = rs.resource_id
WHERE rs.service_id = $1 AND r.shop_id = $2
  AND (NOT $3::boolean OR (rs.is_active AND r.is_active))
ORDER BY r.sort_order, r.name, r.id
`

type ListServiceResourcesParams struct {
	ServiceID  uuid.UUID `json:"service_id"`
	ShopID     uuid.UUID `json:"shop_id"`
	ActiveOnly bool      `json:"active_only"`
}

type ListServiceResourcesRow struct {
	Resources        Resources   `json:"resources"`
	PriceOverride    pgtype.Int8 `json:"price_override"`
	DurationOverride pgtype.Int4 `json:"duration_override"`
	LinkActive       bool        `json:"link_active"`
}

func (q *Queries) ListServiceResources(ctx context.Context, db DBTX, arg ListServiceResourcesParams) ([]ListServiceResourcesRow, error) {
	rows, err := db.Query(ctx, listServiceResources, arg.ServiceID, arg.ShopID, arg.ActiveOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListServiceResourcesRow{}
	for rows.Next() {
		var i ListServiceResourcesRow
		if err := rows.Scan(
			&i.Resources.ID,
			&i.Resources.ShopID,
			&i.Resources.Name,
			&i.Resources.Type,
			&i.Resources.IsActive,
			&i.Resources.SortOrder,
			&i.Resources.CreatedAt,
			&i.Resources.UpdatedAt,
			&i.PriceOverride,
			&i.DurationOverride,
			&i.LinkActive,
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

const listResourceServices = `-- name: ListResourceServices :many
SELECT s.id, s.shop_id, s.name, s.description, s.duration_minutes, s.price, s.capacity, s.requires_resource, s.is_active, s.sort_order, s.created_at, s.updated_at,
       rs.price_override, rs.duration_override, rs.is_active AS link_active
FROM resource_services rs
JOIN services s ON s.id = rs.service_id
WHERE rs.resource_id = $1 AND s.shop_id = $2
ORDER BY s.sort_order, s.name, s.id
`

type ListResourceServicesParams struct {
	ResourceID uuid.UUID `json:"resource_id"`
	ShopID     uuid.UUID `json:"shop_id"`
}

type ListResourceServicesRow struct {
	Services         Services    `json:"services"`
	PriceOverride    pgtype.Int8 `json:"price_override"`
	DurationOverride pgtype.Int4 `json:"duration_override"`
	LinkActive       bool        `json:"link_active"`
}

func (q *Queries) ListResourceServices(ctx context.Context, db DBTX, arg ListResourceServicesParams) ([]ListResourceServicesRow, error) {
	rows, err := db.Query(ctx, listResourceServices, arg.ResourceID, arg.ShopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListResourceServicesRow{}
	for rows.Next() {
		var i ListResourceServicesRow
		if err := rows.Scan(
			&i.Services.ID,
			&i.Services.ShopID,
			&i.Services.Name,
			&i.Services.Description,
			&i.Services.DurationMinutes,
			&i.Services.Price,
			&i.Services.Capacity,
			&i.Services.RequiresResource,
			&i.Services.IsActive,
			&i.Services.SortOrder,
			&i.Services.CreatedAt,
			&i.Services.UpdatedAt,
			&i.PriceOverride,
			&i.DurationOverride,
			&i.LinkActive,
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

const countServicesInShop = `-- name: CountServicesInShop :one
SELECT count(*) FROM services WHERE shop_id = $1 AND id = ANY($2::uuid[])
`

type CountServicesInShopParams struct {
	ShopID     uuid.UUID   `json:"shop_id"`
	ServiceIds []uuid.UUID `json:"service_ids"`
}

func (q *Queries) CountServicesInShop(ctx context.Context, db DBTX, arg CountServicesInShopParams) (int64, error) {
	row := db.QueryRow(ctx, countServicesInShop, arg.ShopID, arg.ServiceIds)
	var count int64
	err := row.Scan(&count)
	return count, err
}
