package commands

import (
	"context"

	"shop-reservation/internal/domain/catalog"
	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/pkg/clock"
	"shop-reservation/internal/pkg/errs"
	"shop-reservation/internal/usecase/queries"
	"shop-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrForeignService   = errs.Validation("one or more services do not belong to this shop")
	ErrServicesRequired = errs.Validation("services is required; send an empty list to remove every link")
)

type DeleteMode string

const (
	DeleteModeSoft DeleteMode = "soft"
	DeleteModeHard DeleteMode = "hard"
)

// DeleteResult reports whether the row was removed or only deactivated
// because reservations still reference it.
type DeleteResult struct {
	ID   uuid.UUID  `json:"id"`
	Mode DeleteMode `json:"mode"`
}

type LinkInput struct {
	ServiceID        uuid.UUID
	PriceOverride    *int64
	DurationOverride *int
}

type CatalogCommands interface {
	CreateService(ctx context.Context, actor reservation.Actor, shopID uuid.UUID, p catalog.ServiceParams) (*queries.ServiceView, error)
	UpdateService(ctx context.Context, actor reservation.Actor, shopID, id uuid.UUID, p catalog.ServicePatch) (*queries.ServiceView, error)
	DeleteService(ctx context.Context, actor reservation.Actor, shopID, id uuid.UUID) (*DeleteResult, error)
	CreateResource(ctx context.Context, actor reservation.Actor, shopID uuid.UUID, p catalog.ResourceParams) (*queries.ResourceView, error)
	UpdateResource(ctx context.Context, actor reservation.Actor, shopID, id uuid.UUID, p catalog.ResourcePatch) (*queries.ResourceView, error)
	DeleteResource(ctx context.Context, actor reservation.Actor, shopID, id uuid.UUID) (*DeleteResult, error)
	// SetResourceServices replaces the resource's whole link set.
	SetResourceServices(ctx context.Context, actor reservation.Actor, shopID, resourceID uuid.UUID, links []LinkInput) ([]queries.LinkedServiceView, error)
}

type catalogCommandsImpl struct {
	uow   shared.UnitOfWork
	cache shared.AvailabilityCache
	clock clock.Clock
}

func NewCatalogCommands(uow shared.UnitOfWork, cache shared.AvailabilityCache, clock clock.Clock) CatalogCommands {
	return &catalogCommandsImpl{uow: uow, cache: cache, clock: clock}
}

func (u *catalogCommandsImpl) CreateService(ctx context.Context, actor reservation.Actor, shopID uuid.UUID, p catalog.ServiceParams) (*queries.ServiceView, error) {
	if err := shared.RequireShopAdmin(actor, shopID); err != nil {
		return nil, err
	}
	svc, err := catalog.NewService(shopID, p, u.clock.Now())
	if err != nil {
		return nil, err
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return shared.TranslateRepoErr(tx.Services().Create(ctx, svc), "service")
	})
	if err != nil {
		return nil, err
	}

	shared.InvalidateAvailability(ctx, u.cache, shopID)
	return queries.ToServiceView(svc), nil
}

func (u *catalogCommandsImpl) UpdateService(ctx context.Context, actor reservation.Actor, shopID, id uuid.UUID, p catalog.ServicePatch) (*queries.ServiceView, error) {
	if err := shared.RequireShopAdmin(actor, shopID); err != nil {
		return nil, err
	}

	var svc *catalog.Service
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		svc, err = tx.Services().Get(ctx, shopID, id)
		if err != nil {
			return shared.TranslateRepoErr(err, "service")
		}
		if err := svc.Apply(p, u.clock.Now()); err != nil {
			return err
		}
		return shared.TranslateRepoErr(tx.Services().Update(ctx, svc), "service")
	})
	if err != nil {
		return nil, err
	}

	shared.InvalidateAvailability(ctx, u.cache, shopID)
	return queries.ToServiceView(svc), nil
}

// DeleteService counts references and picks the strategy in the same
// transaction: referenced services are deactivated, others removed.
func (u *catalogCommandsImpl) DeleteService(ctx context.Context, actor reservation.Actor, shopID, id uuid.UUID) (*DeleteResult, error) {
	if err := shared.RequireShopAdmin(actor, shopID); err != nil {
		return nil, err
	}

	result := &DeleteResult{ID: id}
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		svc, err := tx.Services().Get(ctx, shopID, id)
		if err != nil {
			return shared.TranslateRepoErr(err, "service")
		}
		refs, err := tx.Services().CountReservations(ctx, id)
		if err != nil {
			return shared.TranslateRepoErr(err, "service")
		}
		if refs > 0 {
			svc.Deactivate(u.clock.Now())
			result.Mode = DeleteModeSoft
			return shared.TranslateRepoErr(tx.Services().Update(ctx, svc), "service")
		}
		result.Mode = DeleteModeHard
		return shared.TranslateRepoErr(tx.Services().Delete(ctx, shopID, id), "service")
	})
	if err != nil {
		return nil, err
	}

	shared.InvalidateAvailability(ctx, u.cache, shopID)
	return result, nil
}

func (u *catalogCommandsImpl) CreateResource(ctx context.Context, actor reservation.Actor, shopID uuid.UUID, p catalog.ResourceParams) (*queries.ResourceView, error) {
	if err := shared.RequireShopAdmin(actor, shopID); err != nil {
		return nil, err
	}
	res, err := catalog.NewResource(shopID, p, u.clock.Now())
	if err != nil {
		return nil, err
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return shared.TranslateRepoErr(tx.Resources().Create(ctx, res), "resource")
	})
	if err != nil {
		return nil, err
	}

	shared.InvalidateAvailability(ctx, u.cache, shopID)
	return queries.ToResourceView(res), nil
}

func (u *catalogCommandsImpl) UpdateResource(ctx context.Context, actor reservation.Actor, shopID, id uuid.UUID, p catalog.ResourcePatch) (*queries.ResourceView, error) {
	if err := shared.RequireShopAdmin(actor, shopID); err != nil {
		return nil, err
	}

	var res *catalog.Resource
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		res, err = tx.Resources().Get(ctx, shopID, id)
		if err != nil {
			return shared.TranslateRepoErr(err, "resource")
		}
		if err := res.Apply(p, u.clock.Now()); err != nil {
			return err
		}
		return shared.TranslateRepoErr(tx.Resources().Update(ctx, res), "resource")
	})
	if err != nil {
		return nil, err
	}

	shared.InvalidateAvailability(ctx, u.cache, shopID)
	return queries.ToResourceView(res), nil
}

func (u *catalogCommandsImpl) DeleteResource(ctx context.Context, actor reservation.Actor, shopID, id uuid.UUID) (*DeleteResult, error) {
	if err := shared.RequireShopAdmin(actor, shopID); err != nil {
		return nil, err
	}

	result := &DeleteResult{ID: id}
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Resources().Get(ctx, shopID, id)
		if err != nil {
			return shared.TranslateRepoErr(err, "resource")
		}
		refs, err := tx.Resources().CountReservations(ctx, id)
		if err != nil {
			return shared.TranslateRepoErr(err, "resource")
		}
		if refs > 0 {
			res.Deactivate(u.clock.Now())
			result.Mode = DeleteModeSoft
			return shared.TranslateRepoErr(tx.Resources().Update(ctx, res), "resource")
		}
		result.Mode = DeleteModeHard
		return shared.TranslateRepoErr(tx.Resources().Delete(ctx, shopID, id), "resource")
	})
	if err != nil {
		return nil, err
	}

	shared.InvalidateAvailability(ctx, u.cache, shopID)
	return result, nil
}

func (u *catalogCommandsImpl) SetResourceServices(ctx context.Context, actor reservation.Actor, shopID, resourceID uuid.UUID, in []LinkInput) ([]queries.LinkedServiceView, error) {
	if err := shared.RequireShopAdmin(actor, shopID); err != nil {
		return nil, err
	}
	// nil means the list was absent; only an explicit empty list clears links
	if in == nil {
		return nil, ErrServicesRequired
	}

	links := make([]catalog.Link, len(in))
	serviceIDs := make([]uuid.UUID, len(in))
	for i, li := range in {
		link, err := catalog.NewLink(resourceID, li.ServiceID, li.PriceOverride, li.DurationOverride)
		if err != nil {
			return nil, err
		}
		links[i] = link
		serviceIDs[i] = li.ServiceID
	}
	if err := catalog.ValidateLinkSet(links); err != nil {
		return nil, err
	}

	var out []queries.LinkedServiceView
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Resources().Get(ctx, shopID, resourceID); err != nil {
			return shared.TranslateRepoErr(err, "resource")
		}
		if len(serviceIDs) > 0 {
			n, err := tx.Links().CountServicesInShop(ctx, shopID, serviceIDs)
			if err != nil {
				return shared.TranslateRepoErr(err, "services")
			}
			if n != int64(len(serviceIDs)) {
				return ErrForeignService
			}
		}

		if err := tx.Links().DeleteByResource(ctx, resourceID); err != nil {
			return shared.TranslateRepoErr(err, "resource services")
		}
		for _, link := range links {
			if err := tx.Links().Insert(ctx, link); err != nil {
				return shared.TranslateRepoErr(err, "resource services")
			}
		}

		linked, err := tx.Links().ListByResource(ctx, shopID, resourceID)
		if err != nil {
			return shared.TranslateRepoErr(err, "resource services")
		}
		out = queries.ToLinkedServiceViews(linked)
		return nil
	})
	if err != nil {
		return nil, err
	}

	shared.InvalidateAvailability(ctx, u.cache, shopID)
	return out, nil
}
