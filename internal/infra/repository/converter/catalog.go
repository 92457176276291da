package converter

import (
	"shop-reservation/internal/domain/catalog"
	sqlc "shop-reservation/internal/infra/sqlc/generated"
	"shop-reservation/internal/pkg/pgconv"
)

func ServiceToCreateParams(s *catalog.Service) sqlc.CreateServiceParams {
	return sqlc.CreateServiceParams{
		ID:               s.ID(),
		ShopID:           s.ShopID(),
		Name:             s.Name(),
		Description:      pgconv.StringPtrToPgtype(s.Description()),
		DurationMinutes:  pgconv.IntPtrToPgtype(s.DurationMinutes()),
		Price:            pgconv.Int64PtrToPgtype(s.Price()),
		Capacity:         pgconv.IntToInt32(s.Capacity()),
		RequiresResource: s.RequiresResource(),
		IsActive:         s.IsActive(),
		SortOrder:        pgconv.IntToInt32(s.SortOrder()),
		CreatedAt:        pgconv.TimeToPgtype(s.CreatedAt()),
	}
}

func ServiceToUpdateParams(s *catalog.Service) sqlc.UpdateServiceParams {
	return sqlc.UpdateServiceParams{
		ID:               s.ID(),
		ShopID:           s.ShopID(),
		Name:             s.Name(),
		Description:      pgconv.StringPtrToPgtype(s.Description()),
		DurationMinutes:  pgconv.IntPtrToPgtype(s.DurationMinutes()),
		Price:            pgconv.Int64PtrToPgtype(s.Price()),
		Capacity:         pgconv.IntToInt32(s.Capacity()),
		RequiresResource: s.RequiresResource(),
		IsActive:         s.IsActive(),
		SortOrder:        pgconv.IntToInt32(s.SortOrder()),
		UpdatedAt:        pgconv.TimeToPgtype(s.UpdatedAt()),
	}
}

func ServiceFromRow(row sqlc.Services) *catalog.Service {
	return catalog.ReconstructService(
		row.ID,
		row.ShopID,
		row.Name,
		pgconv.StringPtrFromPgtype(row.Description),
		pgconv.IntPtrFromPgtype(row.DurationMinutes),
		pgconv.Int64PtrFromPgtype(row.Price),
		int(row.Capacity),
		row.RequiresResource,
		row.IsActive,
		int(row.SortOrder),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func ResourceToCreateParams(r *catalog.Resource) sqlc.CreateResourceParams {
	return sqlc.CreateResourceParams{
		ID:        r.ID(),
		ShopID:    r.ShopID(),
		Name:      r.Name(),
		Type:      string(r.Type()),
		IsActive:  r.IsActive(),
		SortOrder: pgconv.IntToInt32(r.SortOrder()),
		CreatedAt: pgconv.TimeToPgtype(r.CreatedAt()),
	}
}

func ResourceToUpdateParams(r *catalog.Resource) sqlc.UpdateResourceParams {
	return sqlc.UpdateResourceParams{
		ID:        r.ID(),
		ShopID:    r.ShopID(),
		Name:      r.Name(),
		Type:      string(r.Type()),
		IsActive:  r.IsActive(),
		SortOrder: pgconv.IntToInt32(r.SortOrder()),
		UpdatedAt: pgconv.TimeToPgtype(r.UpdatedAt()),
	}
}

func ResourceFromRow(row sqlc.Resources) *catalog.Resource {
	return catalog.ReconstructResource(
		row.ID,
		row.ShopID,
		row.Name,
		catalog.ResourceType(row.Type),
		row.IsActive,
		int(row.SortOrder),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func LinkToInsertParams(l catalog.Link) sqlc.InsertResourceServiceParams {
	return sqlc.InsertResourceServiceParams{
		ResourceID:       l.ResourceID,
		ServiceID:        l.ServiceID,
		PriceOverride:    pgconv.Int64PtrToPgtype(l.PriceOverride),
		DurationOverride: pgconv.IntPtrToPgtype(l.DurationOverride),
		IsActive:         l.IsActive,
	}
}

func LinkFromRow(row sqlc.ResourceServices) catalog.Link {
	return catalog.Link{
		ResourceID:       row.ResourceID,
		ServiceID:        row.ServiceID,
		PriceOverride:    pgconv.Int64PtrFromPgtype(row.PriceOverride),
		DurationOverride: pgconv.IntPtrFromPgtype(row.DurationOverride),
		IsActive:         row.IsActive,
	}
}
