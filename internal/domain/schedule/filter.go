package schedule

import (
	"time"

	"github.com/google/uuid"
)

// ResourceScope distinguishes "any scope" from "shop-level only" from a
// single resource, which a plain *uuid.UUID cannot.
type ResourceScope struct {
	set        bool
	resourceID *uuid.UUID
}

func AnyScope() ResourceScope { return ResourceScope{} }

func ShopLevelOnly() ResourceScope { return ResourceScope{set: true} }

func ForResource(id uuid.UUID) ResourceScope {
	return ResourceScope{set: true, resourceID: &id}
}

func (s ResourceScope) IsSet() bool            { return s.set }
func (s ResourceScope) ResourceID() *uuid.UUID { return s.resourceID }

func (s ResourceScope) Matches(resourceID *uuid.UUID) bool {
	if !s.set {
		return true
	}
	if s.resourceID == nil {
		return resourceID == nil
	}
	return resourceID != nil && *resourceID == *s.resourceID
}

// BlockFilter keeps blocks with end >= From and start <= To.
type BlockFilter struct {
	From  *time.Time
	To    *time.Time
	Scope ResourceScope
}

func (f BlockFilter) Matches(b Block) bool {
	if f.From != nil && b.End().Before(*f.From) {
		return false
	}
	if f.To != nil && b.Start().After(*f.To) {
		return false
	}
	return f.Scope.Matches(b.ResourceID())
}
