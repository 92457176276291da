package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"shop-reservation/internal/domain/availability"
	"shop-reservation/internal/domain/catalog"
	"shop-reservation/internal/domain/reservation"
	"shop-reservation/internal/domain/schedule"
	"shop-reservation/internal/infra"
	"shop-reservation/internal/pkg/clock"
	"shop-reservation/internal/pkg/config"
	"shop-reservation/internal/pkg/errs"
	"shop-reservation/internal/pkg/metrics"
	"shop-reservation/internal/usecase/queries"
	"shop-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	createReservationEndpoint = "POST /shops/:shopID/reservations"

	notificationKindPush = "push"

	TopicReservationCreated   = "reservation.created"
	TopicReservationCancelled = "reservation.cancelled"
	TopicReservationConfirmed = "reservation.confirmed"
	TopicReservationNoShow    = "reservation.no_show"
)

var (
	ErrResourceCannotProvide = errs.Validation("Resource cannot provide this service")
	ErrResourceRequired      = errs.Validation("This service requires a resource to be selected")
	ErrInternalNotesAdmin    = errs.Validation("internal_notes can only be set by shop administrators")
	ErrIdempotencyInProgress = errs.Conflict("a request with this idempotency key is already in progress")
	ErrIdempotencyMismatch   = errs.Conflict("idempotency key was already used for a different request")
)

// GuestInput is the contact of a guest booked by shop staff.
type GuestInput struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
}

type CreateReservationInput struct {
	ServiceID     uuid.UUID   `json:"service_id"`
	ResourceID    *uuid.UUID  `json:"resource_id,omitempty"`
	StartTime     time.Time   `json:"start_time"`
	PartySize     int         `json:"party_size"`
	AppUserID     *uuid.UUID  `json:"app_user_id,omitempty"`
	Guest         *GuestInput `json:"guest,omitempty"`
	CustomerNotes *string     `json:"customer_notes,omitempty"`
	InternalNotes *string     `json:"internal_notes,omitempty"`
}

// UpdateReservationInput is a patch; nil fields are left as they are.
type UpdateReservationInput struct {
	StartTime     *time.Time
	PartySize     *int
	CustomerNotes *string
	InternalNotes *string
}

type CreateReservationResult struct {
	Reservation *queries.ReservationView
	IsReplayed  bool
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, actor reservation.Actor, shopID uuid.UUID, in CreateReservationInput, idempotencyKey *uuid.UUID) (*CreateReservationResult, error)
	UpdateReservation(ctx context.Context, actor reservation.Actor, shopID, id uuid.UUID, in UpdateReservationInput) (*queries.ReservationView, error)
	CancelReservation(ctx context.Context, actor reservation.Actor, shopID, id uuid.UUID, reason *string) (*queries.ReservationView, error)
	ConfirmReservation(ctx context.Context, actor reservation.Actor, shopID, id uuid.UUID) (*queries.ReservationView, error)
	CompleteReservation(ctx context.Context, actor reservation.Actor, shopID, id uuid.UUID) (*queries.ReservationView, error)
	MarkNoShow(ctx context.Context, actor reservation.Actor, shopID, id uuid.UUID) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	uow                shared.UnitOfWork
	reservationFactory *reservation.Factory
	reservationQueries queries.ReservationQueries
	cache              shared.AvailabilityCache
	clock              clock.Clock
	defaults           shared.SettingsDefaults
	phoneRegion        string
	idempotencyTTL     time.Duration
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	reservationFactory *reservation.Factory,
	reservationQueries queries.ReservationQueries,
	cache shared.AvailabilityCache,
	clock clock.Clock,
	defaults shared.SettingsDefaults,
	cfg config.Config,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:                uow,
		reservationFactory: reservationFactory,
		reservationQueries: reservationQueries,
		cache:              cache,
		clock:              clock,
		defaults:           defaults,
		phoneRegion:        cfg.Reservation.PhoneRegion,
		idempotencyTTL:     cfg.Reservation.IdempotencyTTL,
	}
}

func (u *reservationCommandsImpl) CreateReservation(
	ctx context.Context,
	actor reservation.Actor,
	shopID uuid.UUID,
	in CreateReservationInput,
	idempotencyKey *uuid.UUID,
) (*CreateReservationResult, error) {
	if idempotencyKey == nil {
		view, err := u.createNewReservation(ctx, actor, shopID, in, nil)
		if err != nil {
			return nil, err
		}
		return &CreateReservationResult{Reservation: view}, nil
	}

	rec := shared.IdempotencyRecord{
		Key:         *idempotencyKey,
		ActorKey:    actor.Ref(),
		Endpoint:    createReservationEndpoint,
		Status:      shared.IdempotencyProcessing,
		RequestHash: u.calculateRequestHash(shopID, in),
		ExpiresAt:   u.clock.Now().Add(u.idempotencyTTL),
	}

	replayed, err := u.handleIdempotency(ctx, actor, rec)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &CreateReservationResult{Reservation: replayed, IsReplayed: true}, nil
	}

	view, err := u.createNewReservation(ctx, actor, shopID, in, &rec)
	if err != nil {
		u.releaseIdempotencyKey(ctx, rec)
		return nil, err
	}
	return &CreateReservationResult{Reservation: view}, nil
}

// handleIdempotency claims the key for this request, or returns the stored
// reservation when the same key already completed.
func (u *reservationCommandsImpl) handleIdempotency(ctx context.Context, actor reservation.Actor, rec shared.IdempotencyRecord) (*queries.ReservationView, error) {
	var existing *shared.IdempotencyRecord
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing = nil
		inserted, err := tx.Idempotency().TryInsert(ctx, rec)
		if err != nil {
			return shared.TranslateRepoErr(err, "idempotency key")
		}
		if inserted {
			return nil
		}

		found, err := tx.Idempotency().Get(ctx, rec.Key, rec.ActorKey)
		if err != nil {
			return shared.TranslateRepoErr(err, "idempotency key")
		}
		if found.IsExpired(u.clock.Now()) {
			claimed, err := tx.Idempotency().ClaimExpired(ctx, rec)
			if err != nil {
				return shared.TranslateRepoErr(err, "idempotency key")
			}
			if claimed {
				return nil
			}
		}
		existing = found
		return nil
	})
	if err != nil || existing == nil {
		return nil, err
	}

	switch existing.Status {
	case shared.IdempotencyCompleted:
		if existing.ResultReservationID == nil {
			return nil, errs.New("completed idempotency key has no result reservation")
		}
		view, err := u.reservationQueries.GetByIDSystem(ctx, *existing.ResultReservationID)
		if err != nil {
			return nil, err
		}
		if !actor.IsShopAdmin(view.ShopID) {
			view.InternalNotes = nil
		}
		return view, nil
	case shared.IdempotencyProcessing:
		if existing.RequestHash != rec.RequestHash {
			return nil, ErrIdempotencyMismatch
		}
		return nil, ErrIdempotencyInProgress
	default:
		return nil, errs.New("invalid idempotency key status: " + existing.Status)
	}
}

func (u *reservationCommandsImpl) releaseIdempotencyKey(ctx context.Context, rec shared.IdempotencyRecord) {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, rec.Key, rec.ActorKey)
	})
	if err != nil {
		slog.Warn("failed to release idempotency key",
			"key", rec.Key.String(),
			"error", err.Error())
	}
}

func (u *reservationCommandsImpl) createNewReservation(
	ctx context.Context,
	actor reservation.Actor,
	shopID uuid.UUID,
	in CreateReservationInput,
	idem *shared.IdempotencyRecord,
) (*queries.ReservationView, error) {
	isAdmin := actor.IsShopAdmin(shopID)
	if in.InternalNotes != nil && !isAdmin {
		return nil, ErrInternalNotesAdmin
	}
	if in.PartySize < 0 {
		return nil, reservation.ErrPartySize
	}

	identity, err := u.resolveIdentity(actor, in)
	if err != nil {
		return nil, err
	}
	customerNotes, err := reservation.NotePtr(in.CustomerNotes)
	if err != nil {
		return nil, err
	}
	internalNotes, err := reservation.NotePtr(in.InternalNotes)
	if err != nil {
		return nil, err
	}

	var created *reservation.Reservation
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		settings, err := shared.LoadSettings(ctx, tx, shopID, u.defaults)
		if err != nil {
			return err
		}

		svc, err := tx.Services().Get(ctx, shopID, in.ServiceID)
		if err != nil {
			return shared.TranslateRepoErr(err, "service")
		}
		if !svc.IsActive() {
			return errs.NotFound("service")
		}

		if err := reservation.ValidateBookingWindow(in.StartTime, u.clock.Now(), settings); err != nil {
			return err
		}

		link, err := u.resolveLink(ctx, tx, svc, in.ResourceID, in.StartTime, settings)
		if err != nil {
			return err
		}

		res, err := u.reservationFactory.CreateReservation(reservation.Booking{
			Service:       svc,
			Link:          link,
			Start:         in.StartTime,
			PartySize:     in.PartySize,
			Identity:      identity,
			Actor:         actor,
			Settings:      settings,
			CustomerNotes: customerNotes,
			InternalNotes: internalNotes,
		})
		if err != nil {
			return err
		}

		if err := u.ensureSlotFree(ctx, tx, res, nil); err != nil {
			return err
		}
		if err := tx.Reservations().Create(ctx, res); err != nil {
			return u.translateWriteErr(err)
		}
		if err := u.enqueueNotification(ctx, tx, TopicReservationCreated, res); err != nil {
			return err
		}
		if idem != nil {
			if err := tx.Idempotency().MarkCompleted(ctx, idem.Key, idem.ActorKey, res.ID()); err != nil {
				return shared.TranslateRepoErr(err, "idempotency key")
			}
		}

		created = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncReservationCreated(created.Status().String())
	shared.InvalidateAvailability(ctx, u.cache, shopID)

	return u.reservationQueries.GetReservation(ctx, actor, shopID, created.ID())
}

func (u *reservationCommandsImpl) resolveIdentity(actor reservation.Actor, in CreateReservationInput) (reservation.Identity, error) {
	var guest *reservation.GuestContact
	if in.Guest != nil && actor.Kind() != reservation.ActorGuest {
		g, err := reservation.NewGuestContact(in.Guest.Name, in.Guest.Phone, in.Guest.Email, u.phoneRegion)
		if err != nil {
			return reservation.Identity{}, err
		}
		guest = &g
	}
	return reservation.ResolveIdentity(actor, in.AppUserID, guest)
}

// resolveLink returns the link the booking lands on, or nil for services
// booked at shop level. Without an explicit resource it picks the first
// linked resource that is on shift, unblocked and free for the window.
func (u *reservationCommandsImpl) resolveLink(
	ctx context.Context,
	tx shared.Tx,
	svc *catalog.Service,
	resourceID *uuid.UUID,
	start time.Time,
	settings reservation.Settings,
) (*catalog.Link, error) {
	if resourceID != nil {
		link, err := tx.Links().GetActive(ctx, svc.ShopID(), *resourceID, svc.ID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrResourceCannotProvide
			}
			return nil, shared.TranslateRepoErr(err, "resource")
		}
		return link, nil
	}

	if !svc.RequiresResource() {
		return nil, nil
	}
	if !settings.AllowAnyStaff {
		return nil, ErrResourceRequired
	}

	linked, err := tx.Links().ListByService(ctx, svc.ShopID(), svc.ID(), true)
	if err != nil {
		return nil, shared.TranslateRepoErr(err, "service resources")
	}
	if len(linked) == 0 {
		return nil, ErrResourceRequired
	}

	rules, err := tx.Schedules().ListAllActiveRules(ctx, svc.ShopID())
	if err != nil {
		return nil, shared.TranslateRepoErr(err, "availability rules")
	}
	until := start.Add(24 * time.Hour)
	blocks, err := tx.Schedules().ListBlocks(ctx, svc.ShopID(), schedule.BlockFilter{
		From:  &start,
		To:    &until,
		Scope: schedule.AnyScope(),
	})
	if err != nil {
		return nil, shared.TranslateRepoErr(err, "blocks")
	}
	loc := u.clock.Now().Location()

	for _, lr := range linked {
		link := lr.Link
		slot, err := u.reservationFactory.SlotFor(svc, &link, start, settings)
		if err != nil {
			return nil, err
		}
		if !availability.Schedulable(rules, blocks, &link.ResourceID, slot.Start().In(loc), slot.End().In(loc)) {
			continue
		}
		taken, err := tx.Reservations().HasConflict(ctx, svc.ShopID(), link.ResourceID, slot, nil)
		if err != nil {
			return nil, shared.TranslateRepoErr(err, "reservations")
		}
		if !taken {
			return &link, nil
		}
	}
	metrics.IncReservationConflict()
	return nil, errs.Conflict(shared.SlotTakenMessage)
}

// ensureSlotFree takes the (shop, resource) lock and re-checks for overlaps.
// Shop-level bookings have no resource to lock; their capacity is advisory.
func (u *reservationCommandsImpl) ensureSlotFree(ctx context.Context, tx shared.Tx, res *reservation.Reservation, excludeID *uuid.UUID) error {
	resourceID := res.ResourceID()
	if resourceID == nil {
		return nil
	}
	if err := tx.Reservations().LockResource(ctx, res.ShopID(), *resourceID); err != nil {
		return shared.TranslateRepoErr(err, "reservation lock")
	}
	taken, err := tx.Reservations().HasConflict(ctx, res.ShopID(), *resourceID, res.Slot(), excludeID)
	if err != nil {
		return shared.TranslateRepoErr(err, "reservations")
	}
	if taken {
		metrics.IncReservationConflict()
		return errs.Conflict(shared.SlotTakenMessage)
	}
	return nil
}

func (u *reservationCommandsImpl) translateWriteErr(err error) error {
	err = shared.TranslateRepoErr(err, "reservation")
	if errs.Is(err, errs.ErrConflict) {
		metrics.IncReservationConflict()
	}
	return err
}

func (u *reservationCommandsImpl) UpdateReservation(
	ctx context.Context,
	actor reservation.Actor,
	shopID, id uuid.UUID,
	in UpdateReservationInput,
) (*queries.ReservationView, error) {
	isAdmin := actor.IsShopAdmin(shopID)
	if in.InternalNotes != nil && !isAdmin {
		return nil, ErrInternalNotesAdmin
	}

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := u.loadForWrite(ctx, tx, actor, shopID, id)
		if err != nil {
			return err
		}
		if res.Status().IsTerminal() {
			return errs.InvalidStatef("reservation is %s and can no longer be modified", res.Status())
		}
		now := u.clock.Now()

		if in.StartTime != nil && !in.StartTime.Equal(res.StartTime()) {
			if err := u.reschedule(ctx, tx, res, *in.StartTime, isAdmin, now); err != nil {
				return err
			}
		}
		if in.PartySize != nil {
			if err := res.ChangePartySize(*in.PartySize, now); err != nil {
				return err
			}
		}
		if in.CustomerNotes != nil {
			n, err := reservation.NotePtr(in.CustomerNotes)
			if err != nil {
				return err
			}
			if err := res.SetCustomerNotes(n, now); err != nil {
				return err
			}
		}
		if in.InternalNotes != nil {
			n, err := reservation.NotePtr(in.InternalNotes)
			if err != nil {
				return err
			}
			if err := res.SetInternalNotes(n, now); err != nil {
				return err
			}
		}

		if err := tx.Reservations().Update(ctx, res); err != nil {
			return u.translateWriteErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	shared.InvalidateAvailability(ctx, u.cache, shopID)
	return u.reservationQueries.GetReservation(ctx, actor, shopID, id)
}

// reschedule recomputes the stored window from the reservation's own
// service and resource link, then re-checks the new window.
func (u *reservationCommandsImpl) reschedule(
	ctx context.Context,
	tx shared.Tx,
	res *reservation.Reservation,
	start time.Time,
	isAdmin bool,
	now time.Time,
) error {
	settings, err := shared.LoadSettings(ctx, tx, res.ShopID(), u.defaults)
	if err != nil {
		return err
	}
	svc, err := tx.Services().Get(ctx, res.ShopID(), res.ServiceID())
	if err != nil {
		return shared.TranslateRepoErr(err, "service")
	}

	var link *catalog.Link
	if rid := res.ResourceID(); rid != nil {
		link, err = tx.Links().GetActive(ctx, res.ShopID(), *rid, res.ServiceID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrResourceCannotProvide
			}
			return shared.TranslateRepoErr(err, "resource")
		}
	}

	slot, err := u.reservationFactory.SlotFor(svc, link, start, settings)
	if err != nil {
		return err
	}
	if !isAdmin {
		if err := reservation.ValidateBookingWindow(start, now, settings); err != nil {
			return err
		}
	}
	if err := res.Reschedule(slot, now); err != nil {
		return err
	}
	id := res.ID()
	return u.ensureSlotFree(ctx, tx, res, &id)
}

func (u *reservationCommandsImpl) CancelReservation(
	ctx context.Context,
	actor reservation.Actor,
	shopID, id uuid.UUID,
	reason *string,
) (*queries.ReservationView, error) {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := u.loadForWrite(ctx, tx, actor, shopID, id)
		if err != nil {
			return err
		}
		if !res.Status().CanTransitionTo(reservation.StatusCancelled) {
			return errs.InvalidStatef("reservation is already %s", res.Status())
		}

		now := u.clock.Now()
		if !actor.IsShopAdmin(shopID) {
			settings, err := shared.LoadSettings(ctx, tx, shopID, u.defaults)
			if err != nil {
				return err
			}
			if err := reservation.ValidateCancellationDeadline(res.StartTime(), now, settings); err != nil {
				return err
			}
		}

		if err := res.Cancel(actor, reason, now); err != nil {
			return err
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return u.translateWriteErr(err)
		}
		return u.enqueueNotification(ctx, tx, TopicReservationCancelled, res)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncReservationTransition(reservation.StatusCancelled.String())
	shared.InvalidateAvailability(ctx, u.cache, shopID)
	return u.reservationQueries.GetReservation(ctx, actor, shopID, id)
}

func (u *reservationCommandsImpl) ConfirmReservation(ctx context.Context, actor reservation.Actor, shopID, id uuid.UUID) (*queries.ReservationView, error) {
	return u.transition(ctx, actor, shopID, id, reservation.StatusConfirmed)
}

func (u *reservationCommandsImpl) CompleteReservation(ctx context.Context, actor reservation.Actor, shopID, id uuid.UUID) (*queries.ReservationView, error) {
	return u.transition(ctx, actor, shopID, id, reservation.StatusCompleted)
}

func (u *reservationCommandsImpl) MarkNoShow(ctx context.Context, actor reservation.Actor, shopID, id uuid.UUID) (*queries.ReservationView, error) {
	return u.transition(ctx, actor, shopID, id, reservation.StatusNoShow)
}

// transition applies an admin status change as a single conditional
// UPDATE. A reservation that is not in a source state is reported as
// not found and left untouched.
func (u *reservationCommandsImpl) transition(
	ctx context.Context,
	actor reservation.Actor,
	shopID, id uuid.UUID,
	to reservation.Status,
) (*queries.ReservationView, error) {
	if err := shared.RequireShopAdmin(actor, shopID); err != nil {
		return nil, err
	}

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Reservations().UpdateStatus(ctx, shared.StatusChange{
			ID:     id,
			ShopID: shopID,
			To:     to,
			From:   reservation.SourceStatuses(to),
			By:     actor.Ref(),
			At:     u.clock.Now(),
		})
		if err != nil {
			return shared.TranslateRepoErr(err, "reservation")
		}

		switch to {
		case reservation.StatusConfirmed:
			return u.enqueueNotification(ctx, tx, TopicReservationConfirmed, res)
		case reservation.StatusNoShow:
			if userID := res.AppUserID(); userID != nil {
				if err := tx.Users().IncrementNoShowCount(ctx, *userID); err != nil {
					return shared.TranslateRepoErr(err, "app user")
				}
			}
			return u.enqueueNotification(ctx, tx, TopicReservationNoShow, res)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncReservationTransition(to.String())
	shared.InvalidateAvailability(ctx, u.cache, shopID)
	return u.reservationQueries.GetReservation(ctx, actor, shopID, id)
}

// loadForWrite locks the row and hides reservations the actor may not touch.
func (u *reservationCommandsImpl) loadForWrite(ctx context.Context, tx shared.Tx, actor reservation.Actor, shopID, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := tx.Reservations().GetForUpdate(ctx, id)
	if err != nil {
		return nil, shared.TranslateRepoErr(err, "reservation")
	}
	if res.ShopID() != shopID || !actor.CanAccess(res) {
		return nil, errs.NotFound("reservation")
	}
	return res, nil
}

type notificationPayload struct {
	ReservationID uuid.UUID  `json:"reservation_id"`
	ShopID        uuid.UUID  `json:"shop_id"`
	Status        string     `json:"status"`
	StartTime     time.Time  `json:"start_time"`
	AppUserID     *uuid.UUID `json:"app_user_id,omitempty"`
}

func (u *reservationCommandsImpl) enqueueNotification(ctx context.Context, tx shared.Tx, topic string, res *reservation.Reservation) error {
	payload, err := json.Marshal(notificationPayload{
		ReservationID: res.ID(),
		ShopID:        res.ShopID(),
		Status:        res.Status().String(),
		StartTime:     res.StartTime(),
		AppUserID:     res.AppUserID(),
	})
	if err != nil {
		return errs.Wrap(err, "marshal notification payload")
	}
	if err := tx.Notifications().CreateJob(ctx, notificationKindPush, topic, payload, u.clock.Now()); err != nil {
		return shared.TranslateRepoErr(err, "notification job")
	}
	return nil
}

func (u *reservationCommandsImpl) calculateRequestHash(shopID uuid.UUID, in CreateReservationInput) string {
	data, _ := json.Marshal(struct {
		ShopID uuid.UUID `json:"shop_id"`
		CreateReservationInput
	}{shopID, in})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
