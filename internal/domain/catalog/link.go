package catalog

import (
	"shop-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrDuplicateLink = errs.Validation("service listed more than once")

// Link says a resource can perform a service, optionally at its own
// price or duration.
type Link struct {
	ResourceID       uuid.UUID
	ServiceID        uuid.UUID
	PriceOverride    *int64
	DurationOverride *int
	IsActive         bool
}

func NewLink(resourceID, serviceID uuid.UUID, priceOverride *int64, durationOverride *int) (Link, error) {
	if priceOverride != nil && *priceOverride < 0 {
		return Link{}, ErrInvalidPrice
	}
	if durationOverride != nil && *durationOverride <= 0 {
		return Link{}, ErrInvalidDuration
	}
	return Link{
		ResourceID:       resourceID,
		ServiceID:        serviceID,
		PriceOverride:    priceOverride,
		DurationOverride: durationOverride,
		IsActive:         true,
	}, nil
}

// ValidateLinkSet rejects a replacement set that names the same service twice.
func ValidateLinkSet(links []Link) error {
	seen := make(map[uuid.UUID]struct{}, len(links))
	for _, l := range links {
		if _, ok := seen[l.ServiceID]; ok {
			return ErrDuplicateLink
		}
		seen[l.ServiceID] = struct{}{}
	}
	return nil
}

// EffectiveDuration picks the link override, then the service duration,
// then the shop default.
func EffectiveDuration(linkOverride, serviceDuration *int, shopDefault int) int {
	if linkOverride != nil && *linkOverride > 0 {
		return *linkOverride
	}
	if serviceDuration != nil && *serviceDuration > 0 {
		return *serviceDuration
	}
	return shopDefault
}

func EffectivePrice(linkOverride, servicePrice *int64) *int64 {
	if linkOverride != nil {
		v := *linkOverride
		return &v
	}
	if servicePrice != nil {
		v := *servicePrice
		return &v
	}
	return nil
}
