package reservation

import (
	"shop-reservation/internal/domain/catalog"
)

// PriceInput is what a price snapshot is taken from at booking time.
type PriceInput struct {
	ServicePrice      *int64
	LinkPriceOverride *int64
	PartySize         int
}

type PriceCalculator interface {
	CalculatePrice(in PriceInput) *int64
}

// DefaultPriceCalculator snapshots the per-booking price: the resource's
// override when it has one, otherwise the service list price. Party size
// does not scale the price.
type DefaultPriceCalculator struct{}

func NewDefaultPriceCalculator() *DefaultPriceCalculator {
	return &DefaultPriceCalculator{}
}

func (c *DefaultPriceCalculator) CalculatePrice(in PriceInput) *int64 {
	return catalog.EffectivePrice(in.LinkPriceOverride, in.ServicePrice)
}
