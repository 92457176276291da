package queries

import (
	"context"

	"shop-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type CatalogQueries interface {
	ListServices(ctx context.Context, shopID uuid.UUID, activeOnly bool) ([]*ServiceView, error)
	GetService(ctx context.Context, shopID, serviceID uuid.UUID) (*ServiceView, error)
	ListResources(ctx context.Context, shopID uuid.UUID, activeOnly bool) ([]*ResourceView, error)
	GetResource(ctx context.Context, shopID, resourceID uuid.UUID) (*ResourceView, error)
}

type catalogQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewCatalogQueries(uow shared.UnitOfWork) CatalogQueries {
	return &catalogQueriesImpl{uow: uow}
}

func (q *catalogQueriesImpl) ListServices(ctx context.Context, shopID uuid.UUID, activeOnly bool) ([]*ServiceView, error) {
	var out []*ServiceView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		services, err := tx.Services().List(ctx, shopID, activeOnly)
		if err != nil {
			return shared.TranslateRepoErr(err, "services")
		}
		out = make([]*ServiceView, len(services))
		for i, s := range services {
			out[i] = ToServiceView(s)
		}
		return nil
	})
	return out, err
}

// GetService includes every linked resource, inactive links too, so that
// admins can see what is switched off.
func (q *catalogQueriesImpl) GetService(ctx context.Context, shopID, serviceID uuid.UUID) (*ServiceView, error) {
	var out *ServiceView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		svc, err := tx.Services().Get(ctx, shopID, serviceID)
		if err != nil {
			return shared.TranslateRepoErr(err, "service")
		}
		linked, err := tx.Links().ListByService(ctx, shopID, serviceID, false)
		if err != nil {
			return shared.TranslateRepoErr(err, "service resources")
		}
		out = ToServiceView(svc)
		out.Resources = toLinkedResourceViews(linked)
		return nil
	})
	return out, err
}

func (q *catalogQueriesImpl) ListResources(ctx context.Context, shopID uuid.UUID, activeOnly bool) ([]*ResourceView, error) {
	var out []*ResourceView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		resources, err := tx.Resources().List(ctx, shopID, activeOnly)
		if err != nil {
			return shared.TranslateRepoErr(err, "resources")
		}
		out = make([]*ResourceView, len(resources))
		for i, r := range resources {
			out[i] = ToResourceView(r)
		}
		return nil
	})
	return out, err
}

func (q *catalogQueriesImpl) GetResource(ctx context.Context, shopID, resourceID uuid.UUID) (*ResourceView, error) {
	var out *ResourceView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Resources().Get(ctx, shopID, resourceID)
		if err != nil {
			return shared.TranslateRepoErr(err, "resource")
		}
		linked, err := tx.Links().ListByResource(ctx, shopID, resourceID)
		if err != nil {
			return shared.TranslateRepoErr(err, "resource services")
		}
		id := res.ID()
		rules, err := tx.Schedules().ListRules(ctx, shopID, &id)
		if err != nil {
			return shared.TranslateRepoErr(err, "availability rules")
		}
		out = ToResourceView(res)
		out.Services = ToLinkedServiceViews(linked)
		out.Rules = ToRuleViews(rules)
		return nil
	})
	return out, err
}
