package catalog

import (
	"strings"
	"time"

	"shop-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidName         = errs.Validation("name is required")
	ErrInvalidDuration     = errs.Validation("duration must be a positive number of minutes")
	ErrInvalidPrice        = errs.Validation("price cannot be negative")
	ErrInvalidCapacity     = errs.Validation("capacity must be at least 1")
	ErrInvalidResourceType = errs.Validation("invalid resource type")
)

const DefaultCapacity = 1

type ServiceParams struct {
	Name             string
	Description      *string
	DurationMinutes  *int
	Price            *int64
	Capacity         *int
	RequiresResource bool
	SortOrder        int
}

// Pointer fields left nil are untouched by Apply.
type ServicePatch struct {
	Name             *string
	Description      *string
	DurationMinutes  *int
	Price            *int64
	Capacity         *int
	RequiresResource *bool
	IsActive         *bool
	SortOrder        *int
}

type Service struct {
	id               uuid.UUID
	shopID           uuid.UUID
	name             string
	description      *string
	durationMinutes  *int
	price            *int64
	capacity         int
	requiresResource bool
	isActive         bool
	sortOrder        int
	createdAt        time.Time
	updatedAt        time.Time
}

func NewService(shopID uuid.UUID, p ServiceParams, now time.Time) (*Service, error) {
	s := &Service{
		id:               uuid.New(),
		shopID:           shopID,
		name:             strings.TrimSpace(p.Name),
		description:      p.Description,
		durationMinutes:  p.DurationMinutes,
		price:            p.Price,
		capacity:         DefaultCapacity,
		requiresResource: p.RequiresResource,
		isActive:         true,
		sortOrder:        p.SortOrder,
		createdAt:        now,
		updatedAt:        now,
	}
	if p.Capacity != nil {
		s.capacity = *p.Capacity
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func ReconstructService(
	id, shopID uuid.UUID,
	name string,
	description *string,
	durationMinutes *int,
	price *int64,
	capacity int,
	requiresResource, isActive bool,
	sortOrder int,
	createdAt, updatedAt time.Time,
) *Service {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Service{
		id:               id,
		shopID:           shopID,
		name:             name,
		description:      description,
		durationMinutes:  durationMinutes,
		price:            price,
		capacity:         capacity,
		requiresResource: requiresResource,
		isActive:         isActive,
		sortOrder:        sortOrder,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (s *Service) Apply(p ServicePatch, now time.Time) error {
	next := *s
	if p.Name != nil {
		next.name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		next.description = p.Description
	}
	if p.DurationMinutes != nil {
		next.durationMinutes = p.DurationMinutes
	}
	if p.Price != nil {
		next.price = p.Price
	}
	if p.Capacity != nil {
		next.capacity = *p.Capacity
	}
	if p.RequiresResource != nil {
		next.requiresResource = *p.RequiresResource
	}
	if p.IsActive != nil {
		next.isActive = *p.IsActive
	}
	if p.SortOrder != nil {
		next.sortOrder = *p.SortOrder
	}
	if err := next.validate(); err != nil {
		return err
	}
	next.updatedAt = now
	*s = next
	return nil
}

func (s *Service) Deactivate(now time.Time) {
	s.isActive = false
	s.updatedAt = now
}

func (s *Service) validate() error {
	if s.name == "" {
		return ErrInvalidName
	}
	if s.durationMinutes != nil && *s.durationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if s.price != nil && *s.price < 0 {
		return ErrInvalidPrice
	}
	if s.capacity < 1 {
		return ErrInvalidCapacity
	}
	return nil
}

func (s *Service) ID() uuid.UUID          { return s.id }
func (s *Service) ShopID() uuid.UUID      { return s.shopID }
func (s *Service) Name() string           { return s.name }
func (s *Service) Description() *string   { return s.description }
func (s *Service) DurationMinutes() *int  { return s.durationMinutes }
func (s *Service) Price() *int64          { return s.price }
func (s *Service) Capacity() int          { return s.capacity }
func (s *Service) RequiresResource() bool { return s.requiresResource }
func (s *Service) IsActive() bool         { return s.isActive }
func (s *Service) SortOrder() int         { return s.sortOrder }
func (s *Service) CreatedAt() time.Time   { return s.createdAt }
func (s *Service) UpdatedAt() time.Time   { return s.updatedAt }

type ResourceType string

const (
	ResourceTypeStaff ResourceType = "staff"
	ResourceTypeTable ResourceType = "table"
	ResourceTypeRoom  ResourceType = "room"
	ResourceTypeOther ResourceType = "other"
)

func ParseResourceType(s string) (ResourceType, error) {
	switch t := ResourceType(strings.ToLower(strings.TrimSpace(s))); t {
	case ResourceTypeStaff, ResourceTypeTable, ResourceTypeRoom, ResourceTypeOther:
		return t, nil
	case "":
		return ResourceTypeStaff, nil
	default:
		return "", ErrInvalidResourceType
	}
}

type ResourceParams struct {
	Name      string
	Type      string
	SortOrder int
}

type ResourcePatch struct {
	Name      *string
	Type      *string
	IsActive  *bool
	SortOrder *int
}

type Resource struct {
	id           uuid.UUID
	shopID       uuid.UUID
	name         string
	resourceType ResourceType
	isActive     bool
	sortOrder    int
	createdAt    time.Time
	updatedAt    time.Time
}

func NewResource(shopID uuid.UUID, p ResourceParams, now time.Time) (*Resource, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, ErrInvalidName
	}
	rt, err := ParseResourceType(p.Type)
	if err != nil {
		return nil, err
	}
	return &Resource{
		id:           uuid.New(),
		shopID:       shopID,
		name:         name,
		resourceType: rt,
		isActive:     true,
		sortOrder:    p.SortOrder,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructResource(id, shopID uuid.UUID, name string, rt ResourceType, isActive bool, sortOrder int, createdAt, updatedAt time.Time) *Resource {
	return &Resource{
		id:           id,
		shopID:       shopID,
		name:         name,
		resourceType: rt,
		isActive:     isActive,
		sortOrder:    sortOrder,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (r *Resource) Apply(p ResourcePatch, now time.Time) error {
	next := *r
	if p.Name != nil {
		next.name = strings.TrimSpace(*p.Name)
		if next.name == "" {
			return ErrInvalidName
		}
	}
	if p.Type != nil {
		rt, err := ParseResourceType(*p.Type)
		if err != nil {
			return err
		}
		next.resourceType = rt
	}
	if p.IsActive != nil {
		next.isActive = *p.IsActive
	}
	if p.SortOrder != nil {
		next.sortOrder = *p.SortOrder
	}
	next.updatedAt = now
	*r = next
	return nil
}

func (r *Resource) Deactivate(now time.Time) {
	r.isActive = false
	r.updatedAt = now
}

func (r *Resource) ID() uuid.UUID        { return r.id }
func (r *Resource) ShopID() uuid.UUID    { return r.shopID }
func (r *Resource) Name() string         { return r.name }
func (r *Resource) Type() ResourceType   { return r.resourceType }
func (r *Resource) IsActive() bool       { return r.isActive }
func (r *Resource) SortOrder() int       { return r.sortOrder }
func (r *Resource) CreatedAt() time.Time { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time { return r.updatedAt }
