//go:build unit || e2e

package builder

import (
	"time"

	"shop-reservation/internal/domain/catalog"

	"github.com/google/uuid"
)

type ServiceBuilder struct {
	ID               uuid.UUID
	ShopID           uuid.UUID
	Name             string
	DurationMinutes  *int
	Price            *int64
	Capacity         int
	RequiresResource bool
	IsActive         bool
	SortOrder        int
}

func NewServiceBuilder() *ServiceBuilder {
	duration := 60
	price := int64(5000)
	return &ServiceBuilder{
		ID:               uuid.New(),
		ShopID:           uuid.New(),
		Name:             "Cut",
		DurationMinutes:  &duration,
		Price:            &price,
		Capacity:         1,
		RequiresResource: true,
		IsActive:         true,
	}
}

func (b *ServiceBuilder) With(mutate func(*ServiceBuilder)) *ServiceBuilder {
	mutate(b)
	return b
}

func (b *ServiceBuilder) Params() catalog.ServiceParams {
	capacity := b.Capacity
	return catalog.ServiceParams{
		Name:             b.Name,
		DurationMinutes:  b.DurationMinutes,
		Price:            b.Price,
		Capacity:         &capacity,
		RequiresResource: b.RequiresResource,
		SortOrder:        b.SortOrder,
	}
}

// BuildDomain validates through the constructor.
func (b *ServiceBuilder) BuildDomain() (*catalog.Service, error) {
	return catalog.NewService(b.ShopID, b.Params(), time.Now())
}

// Build reconstructs without validation, keeping the builder's ID.
func (b *ServiceBuilder) Build() *catalog.Service {
	now := time.Now()
	return catalog.ReconstructService(
		b.ID, b.ShopID, b.Name, nil, b.DurationMinutes, b.Price, b.Capacity,
		b.RequiresResource, b.IsActive, b.SortOrder, now, now,
	)
}

func (b *ServiceBuilder) WithShopID(id uuid.UUID) *ServiceBuilder {
	b.ShopID = id
	return b
}

func (b *ServiceBuilder) WithName(name string) *ServiceBuilder {
	b.Name = name
	return b
}

func (b *ServiceBuilder) WithDuration(minutes int) *ServiceBuilder {
	b.DurationMinutes = &minutes
	return b
}

func (b *ServiceBuilder) WithoutDuration() *ServiceBuilder {
	b.DurationMinutes = nil
	return b
}

func (b *ServiceBuilder) WithPrice(price int64) *ServiceBuilder {
	b.Price = &price
	return b
}

func (b *ServiceBuilder) WithCapacity(capacity int) *ServiceBuilder {
	b.Capacity = capacity
	return b
}

func (b *ServiceBuilder) ShopLevel() *ServiceBuilder {
	b.RequiresResource = false
	return b
}

func (b *ServiceBuilder) AsInactive() *ServiceBuilder {
	b.IsActive = false
	return b
}

type ResourceBuilder struct {
	ID        uuid.UUID
	ShopID    uuid.UUID
	Name      string
	Type      catalog.ResourceType
	IsActive  bool
	SortOrder int
}

func NewResourceBuilder() *ResourceBuilder {
	return &ResourceBuilder{
		ID:       uuid.New(),
		ShopID:   uuid.New(),
		Name:     "Aiko",
		Type:     catalog.ResourceTypeStaff,
		IsActive: true,
	}
}

func (b *ResourceBuilder) Build() *catalog.Resource {
	now := time.Now()
	return catalog.ReconstructResource(b.ID, b.ShopID, b.Name, b.Type, b.IsActive, b.SortOrder, now, now)
}

func (b *ResourceBuilder) WithShopID(id uuid.UUID) *ResourceBuilder {
	b.ShopID = id
	return b
}

func (b *ResourceBuilder) WithName(name string) *ResourceBuilder {
	b.Name = name
	return b
}

func (b *ResourceBuilder) WithSortOrder(order int) *ResourceBuilder {
	b.SortOrder = order
	return b
}

func (b *ResourceBuilder) AsInactive() *ResourceBuilder {
	b.IsActive = false
	return b
}
