package repository

import (
	"context"

	"shop-reservation/internal/domain/catalog"
	"shop-reservation/internal/infra"
	"shop-reservation/internal/infra/repository/converter"
	sqlc "shop-reservation/internal/infra/sqlc/generated"
	"shop-reservation/internal/pkg/pgconv"
	"shop-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type ServiceWriteQueries interface {
	CreateService(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateServiceParams) error
	GetService(ctx context.Context, db sqlc.DBTX, arg sqlc.GetServiceParams) (sqlc.Services, error)
	ListServices(ctx context.Context, db sqlc.DBTX, arg sqlc.ListServicesParams) ([]sqlc.Services, error)
	UpdateService(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateServiceParams) (int64, error)
	DeleteService(ctx context.Context, db sqlc.DBTX, arg sqlc.DeleteServiceParams) (int64, error)
	CountServiceReservations(ctx context.Context, db sqlc.DBTX, serviceID uuid.UUID) (int64, error)
}

type ServiceRepository struct {
	queries ServiceWriteQueries
	db      sqlc.DBTX
}

func NewServiceRepository(queries ServiceWriteQueries, db sqlc.DBTX) *ServiceRepository {
	return &ServiceRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ServiceRepository) Create(ctx context.Context, s *catalog.Service) error {
	if err := r.queries.CreateService(ctx, r.db, converter.ServiceToCreateParams(s)); err != nil {
		return infra.WrapRepoErr("failed to create service", err)
	}
	return nil
}

func (r *ServiceRepository) Get(ctx context.Context, shopID, id uuid.UUID) (*catalog.Service, error) {
	row, err := r.queries.GetService(ctx, r.db, sqlc.GetServiceParams{ID: id, ShopID: shopID})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service", err)
	}
	return converter.ServiceFromRow(row), nil
}

func (r *ServiceRepository) List(ctx context.Context, shopID uuid.UUID, activeOnly bool) ([]*catalog.Service, error) {
	rows, err := r.queries.ListServices(ctx, r.db, sqlc.ListServicesParams{ShopID: shopID, ActiveOnly: activeOnly})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}
	result := make([]*catalog.Service, len(rows))
	for i, row := range rows {
		result[i] = converter.ServiceFromRow(row)
	}
	return result, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *catalog.Service) error {
	n, err := r.queries.UpdateService(ctx, r.db, converter.ServiceToUpdateParams(s))
	if err != nil {
		return infra.WrapRepoErr("failed to update service", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, shopID, id uuid.UUID) error {
	n, err := r.queries.DeleteService(ctx, r.db, sqlc.DeleteServiceParams{ID: id, ShopID: shopID})
	if err != nil {
		return infra.WrapRepoErr("failed to delete service", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ServiceRepository) CountReservations(ctx context.Context, id uuid.UUID) (int64, error) {
	n, err := r.queries.CountServiceReservations(ctx, r.db, id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count service reservations", err)
	}
	return n, nil
}

type ResourceWriteQueries interface {
	CreateResource(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateResourceParams) error
	GetResource(ctx context.Context, db sqlc.DBTX, arg sqlc.GetResourceParams) (sqlc.Resources, error)
	ListResources(ctx context.Context, db sqlc.DBTX, arg sqlc.ListResourcesParams) ([]sqlc.Resources, error)
	UpdateResource(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateResourceParams) (int64, error)
	DeleteResource(ctx context.Context, db sqlc.DBTX, arg sqlc.DeleteResourceParams) (int64, error)
	CountResourceReservations(ctx context.Context, db sqlc.DBTX, resourceID uuid.UUID) (int64, error)
}

type ResourceRepository struct {
	queries ResourceWriteQueries
	db      sqlc.DBTX
}

func NewResourceRepository(queries ResourceWriteQueries, db sqlc.DBTX) *ResourceRepository {
	return &ResourceRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ResourceRepository) Create(ctx context.Context, res *catalog.Resource) error {
	if err := r.queries.CreateResource(ctx, r.db, converter.ResourceToCreateParams(res)); err != nil {
		return infra.WrapRepoErr("failed to create resource", err)
	}
	return nil
}

func (r *ResourceRepository) Get(ctx context.Context, shopID, id uuid.UUID) (*catalog.Resource, error) {
	row, err := r.queries.GetResource(ctx, r.db, sqlc.GetResourceParams{ID: id, ShopID: shopID})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource", err)
	}
	return converter.ResourceFromRow(row), nil
}

func (r *ResourceRepository) List(ctx context.Context, shopID uuid.UUID, activeOnly bool) ([]*catalog.Resource, error) {
	rows, err := r.queries.ListResources(ctx, r.db, sqlc.ListResourcesParams{ShopID: shopID, ActiveOnly: activeOnly})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resources", err)
	}
	result := make([]*catalog.Resource, len(rows))
	for i, row := range rows {
		result[i] = converter.ResourceFromRow(row)
	}
	return result, nil
}

func (r *ResourceRepository) Update(ctx context.Context, res *catalog.Resource) error {
	n, err := r.queries.UpdateResource(ctx, r.db, converter.ResourceToUpdateParams(res))
	if err != nil {
		return infra.WrapRepoErr("failed to update resource", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ResourceRepository) Delete(ctx context.Context, shopID, id uuid.UUID) error {
	n, err := r.queries.DeleteResource(ctx, r.db, sqlc.DeleteResourceParams{ID: id, ShopID: shopID})
	if err != nil {
		return infra.WrapRepoErr("failed to delete resource", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ResourceRepository) CountReservations(ctx context.Context, id uuid.UUID) (int64, error) {
	n, err := r.queries.CountResourceReservations(ctx, r.db, id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count resource reservations", err)
	}
	return n, nil
}

type LinkWriteQueries interface {
	DeleteResourceServices(ctx context.Context, db sqlc.DBTX, resourceID uuid.UUID) error
	InsertResourceService(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertResourceServiceParams) error
	GetActiveResourceServiceLink(ctx context.Context, db sqlc.DBTX, arg sqlc.GetActiveResourceServiceLinkParams) (sqlc.ResourceServices, error)
	ListServiceResources(ctx context.Context, db sqlc.DBTX, arg sqlc.ListServiceResourcesParams) ([]sqlc.ListServiceResourcesRow, error)
	ListResourceServices(ctx context.Context, db sqlc.DBTX, arg sqlc.ListResourceServicesParams) ([]sqlc.ListResourceServicesRow, error)
	CountServicesInShop(ctx context.Context, db sqlc.DBTX, arg sqlc.CountServicesInShopParams) (int64, error)
}

type LinkRepository struct {
	queries LinkWriteQueries
	db      sqlc.DBTX
}

func NewLinkRepository(queries LinkWriteQueries, db sqlc.DBTX) *LinkRepository {
	return &LinkRepository{
		queries: queries,
		db:      db,
	}
}

func (r *LinkRepository) DeleteByResource(ctx context.Context, resourceID uuid.UUID) error {
	if err := r.queries.DeleteResourceServices(ctx, r.db, resourceID); err != nil {
		return infra.WrapRepoErr("failed to delete resource services", err)
	}
	return nil
}

func (r *LinkRepository) Insert(ctx context.Context, link catalog.Link) error {
	if err := r.queries.InsertResourceService(ctx, r.db, converter.LinkToInsertParams(link)); err != nil {
		return infra.WrapRepoErr("failed to insert resource service", err)
	}
	return nil
}

func (r *LinkRepository) GetActive(ctx context.Context, shopID, resourceID, serviceID uuid.UUID) (*catalog.Link, error) {
	row, err := r.queries.GetActiveResourceServiceLink(ctx, r.db, sqlc.GetActiveResourceServiceLinkParams{
		ResourceID: resourceID,
		ServiceID:  serviceID,
		ShopID:     shopID,
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource service link not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource service link", err)
	}
	link := converter.LinkFromRow(row)
	return &link, nil
}

func (r *LinkRepository) ListByService(ctx context.Context, shopID, serviceID uuid.UUID, activeOnly bool) ([]shared.LinkedResource, error) {
	rows, err := r.queries.ListServiceResources(ctx, r.db, sqlc.ListServiceResourcesParams{
		ServiceID:  serviceID,
		ShopID:     shopID,
		ActiveOnly: activeOnly,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list service resources", err)
	}

	result := make([]shared.LinkedResource, len(rows))
	for i, row := range rows {
		result[i] = shared.LinkedResource{
			Resource: converter.ResourceFromRow(row.Resources),
			Link: catalog.Link{
				ResourceID:       row.Resources.ID,
				ServiceID:        serviceID,
				PriceOverride:    pgconv.Int64PtrFromPgtype(row.PriceOverride),
				DurationOverride: pgconv.IntPtrFromPgtype(row.DurationOverride),
				IsActive:         row.LinkActive,
			},
		}
	}
	return result, nil
}

func (r *LinkRepository) ListByResource(ctx context.Context, shopID, resourceID uuid.UUID) ([]shared.LinkedService, error) {
	rows, err := r.queries.ListResourceServices(ctx, r.db, sqlc.ListResourceServicesParams{
		ResourceID: resourceID,
		ShopID:     shopID,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resource services", err)
	}

	result := make([]shared.LinkedService, len(rows))
	for i, row := range rows {
		result[i] = shared.LinkedService{
			Service: converter.ServiceFromRow(row.Services),
			Link: catalog.Link{
				ResourceID:       resourceID,
				ServiceID:        row.Services.ID,
				PriceOverride:    pgconv.Int64PtrFromPgtype(row.PriceOverride),
				DurationOverride: pgconv.IntPtrFromPgtype(row.DurationOverride),
				IsActive:         row.LinkActive,
			},
		}
	}
	return result, nil
}

func (r *LinkRepository) CountServicesInShop(ctx context.Context, shopID uuid.UUID, serviceIDs []uuid.UUID) (int64, error) {
	n, err := r.queries.CountServicesInShop(ctx, r.db, sqlc.CountServicesInShopParams{
		ShopID:     shopID,
		ServiceIds: serviceIDs,
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count services in shop", err)
	}
	return n, nil
}
