package shared

import (
	"context"
	"time"

	"shop-reservation/internal/domain/catalog"
	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/domain/schedule"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx hands out repositories bound to one open transaction.
type Tx interface {
	Shops() ShopRepository
	Services() ServiceRepository
	Resources() ResourceRepository
	Links() LinkRepository
	Schedules() ScheduleRepository
	Reservations() ReservationRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Users() UserRepository
}

type ShopRepository interface {
	// GetSettings returns the raw stored settings blob; a missing shop is NOT_FOUND.
	GetSettings(ctx context.Context, shopID uuid.UUID) ([]byte, error)
	UpdateSettings(ctx context.Context, shopID uuid.UUID, raw []byte) error
}

type ServiceRepository interface {
	Create(ctx context.Context, s *catalog.Service) error
	Get(ctx context.Context, shopID, id uuid.UUID) (*catalog.Service, error)
	List(ctx context.Context, shopID uuid.UUID, activeOnly bool) ([]*catalog.Service, error)
	Update(ctx context.Context, s *catalog.Service) error
	Delete(ctx context.Context, shopID, id uuid.UUID) error
	CountReservations(ctx context.Context, id uuid.UUID) (int64, error)
}

type ResourceRepository interface {
	Create(ctx context.Context, r *catalog.Resource) error
	Get(ctx context.Context, shopID, id uuid.UUID) (*catalog.Resource, error)
	List(ctx context.Context, shopID uuid.UUID, activeOnly bool) ([]*catalog.Resource, error)
	Update(ctx context.Context, r *catalog.Resource) error
	Delete(ctx context.Context, shopID, id uuid.UUID) error
	CountReservations(ctx context.Context, id uuid.UUID) (int64, error)
}

// LinkedResource is a resource together with its link to one service.
type LinkedResource struct {
	Resource *catalog.Resource
	Link     catalog.Link
}

// LinkedService is a service together with its link to one resource.
type LinkedService struct {
	Service *catalog.Service
	Link    catalog.Link
}

type LinkRepository interface {
	DeleteByResource(ctx context.Context, resourceID uuid.UUID) error
	Insert(ctx context.Context, link catalog.Link) error
	// GetActive returns the link only when both it and its resource are active.
	GetActive(ctx context.Context, shopID, resourceID, serviceID uuid.UUID) (*catalog.Link, error)
	ListByService(ctx context.Context, shopID, serviceID uuid.UUID, activeOnly bool) ([]LinkedResource, error)
	ListByResource(ctx context.Context, shopID, resourceID uuid.UUID) ([]LinkedService, error)
	CountServicesInShop(ctx context.Context, shopID uuid.UUID, serviceIDs []uuid.UUID) (int64, error)
}

type ScheduleRepository interface {
	DeleteRules(ctx context.Context, shopID uuid.UUID, resourceID *uuid.UUID) error
	InsertRule(ctx context.Context, r schedule.Rule) error
	// ListRules returns the active rules of exactly one scope.
	ListRules(ctx context.Context, shopID uuid.UUID, resourceID *uuid.UUID) ([]schedule.Rule, error)
	ListAllActiveRules(ctx context.Context, shopID uuid.UUID) ([]schedule.Rule, error)
	CreateBlock(ctx context.Context, b schedule.Block) error
	ListBlocks(ctx context.Context, shopID uuid.UUID, f schedule.BlockFilter) ([]schedule.Block, error)
	DeleteBlock(ctx context.Context, shopID, id uuid.UUID) error
}

type ReservationRepository interface {
	// LockResource serialises writers for one (shop, resource) until the transaction ends.
	LockResource(ctx context.Context, shopID, resourceID uuid.UUID) error
	HasConflict(ctx context.Context, shopID, resourceID uuid.UUID, slot reservation.TimeSlot, excludeID *uuid.UUID) (bool, error)
	Create(ctx context.Context, r *reservation.Reservation) error
	Get(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	Update(ctx context.Context, r *reservation.Reservation) error
	// UpdateStatus moves a reservation to `to` only if it is currently in
	// one of `from`; otherwise NOT_FOUND and the row is unchanged.
	UpdateStatus(ctx context.Context, change StatusChange) (*reservation.Reservation, error)
	ListActiveInRange(ctx context.Context, shopID uuid.UUID, from, to time.Time) ([]*reservation.Reservation, error)
}

type StatusChange struct {
	ID     uuid.UUID
	ShopID uuid.UUID
	To     reservation.Status
	From   []reservation.Status
	By     string
	At     time.Time
}

type IdempotencyRepository interface {
	// TryInsert reports false when the key already exists.
	TryInsert(ctx context.Context, rec IdempotencyRecord) (bool, error)
	Get(ctx context.Context, key uuid.UUID, actorKey string) (*IdempotencyRecord, error)
	ClaimExpired(ctx context.Context, rec IdempotencyRecord) (bool, error)
	MarkCompleted(ctx context.Context, key uuid.UUID, actorKey string, reservationID uuid.UUID) error
	Release(ctx context.Context, key uuid.UUID, actorKey string) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

type UserRepository interface {
	IncrementNoShowCount(ctx context.Context, userID uuid.UUID) error
}
