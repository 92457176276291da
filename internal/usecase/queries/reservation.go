package queries

import (
	"context"
	"time"

	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/pkg/config"
	"shop-reservation/internal/pkg/errs"
	"shop-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	GetReservation(ctx context.Context, actor reservation.Actor, shopID, id uuid.UUID) (*ReservationView, error)
	ListReservations(ctx context.Context, actor reservation.Actor, shopID uuid.UUID, filter ReservationFilter) (*ReservationPage, error)
	GetReservationStats(ctx context.Context, actor reservation.Actor, shopID uuid.UUID, from, to *time.Time) (*ReservationStats, error)
	// GetByIDSystem skips access checks; used for read-after-write and replay.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, shopID uuid.UUID, filter ReservationFilter) ([]*ReservationView, error)
	Count(ctx context.Context, shopID uuid.UUID, filter ReservationFilter) (int64, error)
	CountByStatus(ctx context.Context, shopID uuid.UUID, from, to *time.Time) (map[string]int64, error)
}

type reservationQueriesImpl struct {
	repo         ReservationViewRepo
	defaultLimit int
	maxLimit     int
}

func NewReservationQueries(repo ReservationViewRepo, cfg config.Config) ReservationQueries {
	return &reservationQueriesImpl{
		repo:         repo,
		defaultLimit: cfg.Reservation.ListDefaultLimit,
		maxLimit:     cfg.Reservation.ListMaxLimit,
	}
}

func (q *reservationQueriesImpl) GetReservation(ctx context.Context, actor reservation.Actor, shopID, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.TranslateRepoErr(err, "reservation")
	}
	if view.ShopID != shopID || !canView(actor, view) {
		return nil, errs.NotFound("reservation")
	}
	if !actor.IsShopAdmin(view.ShopID) {
		view.InternalNotes = nil
	}
	return view, nil
}

func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.TranslateRepoErr(err, "reservation")
	}
	return view, nil
}

// ListReservations lets shop admins see everything; customers only ever see
// their own reservations regardless of the filter they pass.
func (q *reservationQueriesImpl) ListReservations(ctx context.Context, actor reservation.Actor, shopID uuid.UUID, filter ReservationFilter) (*ReservationPage, error) {
	isAdmin := actor.IsShopAdmin(shopID)
	switch {
	case isAdmin:
	case actor.Kind() == reservation.ActorCustomer:
		userID := actor.UserID()
		filter.AppUserID = &userID
	default:
		return nil, errs.Forbidden("only shop administrators and customers can list reservations")
	}

	if filter.Status != nil && !reservation.Status(*filter.Status).IsValid() {
		return nil, errs.Validationf("unknown status %q", *filter.Status)
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, errs.Validation("from must not be after to")
	}
	filter.Limit, filter.Offset = q.normalizePage(filter.Limit, filter.Offset)

	items, err := q.repo.List(ctx, shopID, filter)
	if err != nil {
		return nil, shared.TranslateRepoErr(err, "reservations")
	}
	total, err := q.repo.Count(ctx, shopID, filter)
	if err != nil {
		return nil, shared.TranslateRepoErr(err, "reservations")
	}

	if !isAdmin {
		for _, v := range items {
			v.InternalNotes = nil
		}
	}

	return &ReservationPage{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

func (q *reservationQueriesImpl) GetReservationStats(ctx context.Context, actor reservation.Actor, shopID uuid.UUID, from, to *time.Time) (*ReservationStats, error) {
	if err := shared.RequireShopAdmin(actor, shopID); err != nil {
		return nil, err
	}
	counts, err := q.repo.CountByStatus(ctx, shopID, from, to)
	if err != nil {
		return nil, shared.TranslateRepoErr(err, "reservation stats")
	}

	stats := &ReservationStats{
		Pending:   counts[string(reservation.StatusPending)],
		Confirmed: counts[string(reservation.StatusConfirmed)],
		Cancelled: counts[string(reservation.StatusCancelled)],
		Completed: counts[string(reservation.StatusCompleted)],
		NoShow:    counts[string(reservation.StatusNoShow)],
	}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

func (q *reservationQueriesImpl) normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = q.defaultLimit
	}
	if q.maxLimit > 0 && limit > q.maxLimit {
		limit = q.maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func canView(actor reservation.Actor, v *ReservationView) bool {
	if actor.IsShopAdmin(v.ShopID) {
		return true
	}
	switch actor.Kind() {
	case reservation.ActorCustomer:
		return v.AppUserID != nil && *v.AppUserID == actor.UserID()
	case reservation.ActorGuest:
		if v.GuestName == nil {
			return false
		}
		stored := reservation.ReconstructGuestContact(*v.GuestName, v.GuestPhone, v.GuestEmail)
		return actor.Contact().Matches(stored)
	default:
		return false
	}
}
