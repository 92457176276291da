package request

import (
	"shop-reservation/internal/domain/catalog"
	"shop-reservation/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateServiceRequest struct {
	Name             string  `json:"name" binding:"required"`
	Description      *string `json:"description,omitempty"`
	DurationMinutes  *int    `json:"duration_minutes,omitempty"`
	Price            *int64  `json:"price,omitempty"`
	Capacity         *int    `json:"capacity,omitempty"`
	RequiresResource bool    `json:"requires_resource"`
	SortOrder        int     `json:"sort_order"`
}

func (r CreateServiceRequest) ToParams() catalog.ServiceParams {
	return catalog.ServiceParams{
		Name:             r.Name,
		Description:      r.Description,
		DurationMinutes:  r.DurationMinutes,
		Price:            r.Price,
		Capacity:         r.Capacity,
		RequiresResource: r.RequiresResource,
		SortOrder:        r.SortOrder,
	}
}

type UpdateServiceRequest struct {
	Name             *string `json:"name,omitempty"`
	Description      *string `json:"description,omitempty"`
	DurationMinutes  *int    `json:"duration_minutes,omitempty"`
	Price            *int64  `json:"price,omitempty"`
	Capacity         *int    `json:"capacity,omitempty"`
	RequiresResource *bool   `json:"requires_resource,omitempty"`
	IsActive         *bool   `json:"is_active,omitempty"`
	SortOrder        *int    `json:"sort_order,omitempty"`
}

func (r UpdateServiceRequest) ToPatch() catalog.ServicePatch {
	return catalog.ServicePatch{
		Name:             r.Name,
		Description:      r.Description,
		DurationMinutes:  r.DurationMinutes,
		Price:            r.Price,
		Capacity:         r.Capacity,
		RequiresResource: r.RequiresResource,
		IsActive:         r.IsActive,
		SortOrder:        r.SortOrder,
	}
}

type CreateResourceRequest struct {
	Name      string `json:"name" binding:"required"`
	Type      string `json:"type"`
	SortOrder int    `json:"sort_order"`
}

func (r CreateResourceRequest) ToParams() catalog.ResourceParams {
	return catalog.ResourceParams{
		Name:      r.Name,
		Type:      r.Type,
		SortOrder: r.SortOrder,
	}
}

type UpdateResourceRequest struct {
	Name      *string `json:"name,omitempty"`
	Type      *string `json:"type,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}

func (r UpdateResourceRequest) ToPatch() catalog.ResourcePatch {
	return catalog.ResourcePatch{
		Name:      r.Name,
		Type:      r.Type,
		IsActive:  r.IsActive,
		SortOrder: r.SortOrder,
	}
}

type ResourceServiceLink struct {
	ServiceID        uuid.UUID `json:"service_id" binding:"required"`
	PriceOverride    *int64    `json:"price_override,omitempty"`
	DurationOverride *int      `json:"duration_override,omitempty"`
}

type SetResourceServicesRequest struct {
	Services []ResourceServiceLink `json:"services" binding:"required,dive"`
}

func (r SetResourceServicesRequest) ToLinks() []commands.LinkInput {
	out := make([]commands.LinkInput, len(r.Services))
	for i, s := range r.Services {
		out[i] = commands.LinkInput{
			ServiceID:        s.ServiceID,
			PriceOverride:    s.PriceOverride,
			DurationOverride: s.DurationOverride,
		}
	}
	return out
}
