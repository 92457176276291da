package api

import (
	"context"
	"net/http"
	"time"

	"shop-reservation/internal/domain/reservation"
	reqdto "shop-reservation/internal/handler/dto/request"
	resdto "shop-reservation/internal/handler/dto/response"
	"shop-reservation/internal/handler/httperr"
	"shop-reservation/internal/handler/middleware"
	"shop-reservation/internal/pkg/config"
	"shop-reservation/internal/pkg/errs"
	"shop-reservation/internal/usecase/commands"
	"shop-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "Idempotent-Replayed"
)

var errGuestIdentityRequired = errs.New("guest identity required")

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	reservationQueries  queries.ReservationQueries
	phoneRegion         string
	location            *time.Location
}

func NewReservationHandler(
	reservationCommands commands.ReservationCommands,
	reservationQueries queries.ReservationQueries,
	cfg config.Config,
	location *time.Location,
) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		reservationQueries:  reservationQueries,
		phoneRegion:         cfg.Reservation.PhoneRegion,
		location:            location,
	}
}

// @Summary Create reservation
// @Description Book a service. Without a bearer token the caller books as a guest identified by the guest object.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param Idempotency-Key header string false "Idempotency key; retries with the same key replay the first result"
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} queries.ReservationView
// @Success 200 {object} queries.ReservationView "replayed"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /shops/{shopID}/reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	idempotencyKey, ok := h.getIdempotencyKey(c)
	if !ok {
		return
	}

	var req reqdto.CreateReservationRequest
	if !bindJSON(c, &req) {
		return
	}

	actor, guestIsCaller, ok := h.resolveActor(c, req.Guest)
	if !ok {
		return
	}

	result, err := h.reservationCommands.CreateReservation(c.Request.Context(), actor, shopID, req.ToInput(guestIsCaller), idempotencyKey)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	if result.IsReplayed {
		c.Header(replayedHeader, "true")
		c.JSON(http.StatusOK, result.Reservation)
		return
	}
	c.JSON(http.StatusCreated, result.Reservation)
}

// @Summary Update reservation
// @Description Reschedule or edit a reservation. Customers and guests may only edit their own.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Patch"
// @Success 200 {object} queries.ReservationView
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /shops/{shopID}/reservations/{id} [patch]
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	shopID, id, ok := h.reservationPath(c)
	if !ok {
		return
	}

	var req reqdto.UpdateReservationRequest
	if !bindJSON(c, &req) {
		return
	}

	actor, _, ok := h.resolveActor(c, req.Guest)
	if !ok {
		return
	}

	view, err := h.reservationCommands.UpdateReservation(c.Request.Context(), actor, shopID, id, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Cancel reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest false "Cancellation"
// @Success 200 {object} queries.ReservationView
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /shops/{shopID}/reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	shopID, id, ok := h.reservationPath(c)
	if !ok {
		return
	}

	var req reqdto.CancelReservationRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	actor, _, ok := h.resolveActor(c, req.Guest)
	if !ok {
		return
	}

	view, err := h.reservationCommands.CancelReservation(c.Request.Context(), actor, shopID, id, req.GetReason())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Confirm reservation
// @Description Only pending reservations can be confirmed; anything else is reported as not found.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param id path string true "Reservation ID"
// @Success 200 {object} queries.ReservationView
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /shops/{shopID}/reservations/{id}/confirm [post]
func (h *ReservationHandler) ConfirmReservation(c *gin.Context) {
	h.transition(c, h.reservationCommands.ConfirmReservation)
}

// @Summary Complete reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param id path string true "Reservation ID"
// @Success 200 {object} queries.ReservationView
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /shops/{shopID}/reservations/{id}/complete [post]
func (h *ReservationHandler) CompleteReservation(c *gin.Context) {
	h.transition(c, h.reservationCommands.CompleteReservation)
}

// @Summary Mark reservation as no-show
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param id path string true "Reservation ID"
// @Success 200 {object} queries.ReservationView
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /shops/{shopID}/reservations/{id}/no-show [post]
func (h *ReservationHandler) MarkNoShow(c *gin.Context) {
	h.transition(c, h.reservationCommands.MarkNoShow)
}

type transitionFunc func(ctx context.Context, actor reservation.Actor, shopID, id uuid.UUID) (*queries.ReservationView, error)

func (h *ReservationHandler) transition(c *gin.Context, fn transitionFunc) {
	shopID, id, ok := h.reservationPath(c)
	if !ok {
		return
	}

	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errGuestIdentityRequired, "Access token required", nil)
		return
	}

	view, err := fn(c.Request.Context(), actor, shopID, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param id path string true "Reservation ID"
// @Success 200 {object} queries.ReservationView
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /shops/{shopID}/reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	shopID, id, ok := h.reservationPath(c)
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	view, err := h.reservationQueries.GetReservation(c.Request.Context(), actor, shopID, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List reservations
// @Description Shop administrators see every reservation of the shop; customers only their own.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param status query string false "Status filter"
// @Param service_id query string false "Service filter"
// @Param resource_id query string false "Resource filter"
// @Param app_user_id query string false "Customer filter"
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD), inclusive"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /shops/{shopID}/reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	page, err := h.reservationQueries.ListReservations(c.Request.Context(), actor, shopID, filter)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationPage(page))
}

// @Summary Reservation statistics
// @Description Counts per status for reservations starting in [from, to].
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD), inclusive"
// @Success 200 {object} queries.ReservationStats
// @Failure 403 {object} httperr.Response
// @Router /shops/{shopID}/reservations/stats [get]
func (h *ReservationHandler) GetReservationStats(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	from, to, ok := h.parseDayRange(c)
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	stats, err := h.reservationQueries.GetReservationStats(c.Request.Context(), actor, shopID, from, to)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *ReservationHandler) reservationPath(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	id, ok := uuidParam(c, "id", "reservation")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return shopID, id, true
}

// resolveActor prefers the authenticated actor. Without one the guest
// contact from the body becomes the caller, reported by guestIsCaller.
func (h *ReservationHandler) resolveActor(c *gin.Context, guest *reqdto.GuestContact) (reservation.Actor, bool, bool) {
	if actor, ok := middleware.GetActor(c); ok {
		return actor, false, true
	}

	if guest == nil {
		httperr.AbortWithError(c, http.StatusUnauthorized, errGuestIdentityRequired, "Access token or guest contact required", nil)
		return reservation.Actor{}, false, false
	}

	contact, err := guest.ToDomain(h.phoneRegion)
	if err != nil {
		httperr.Abort(c, err)
		return reservation.Actor{}, false, false
	}
	return reservation.Guest(contact), true, true
}

func (h *ReservationHandler) getIdempotencyKey(c *gin.Context) (*uuid.UUID, bool) {
	keyStr := c.GetHeader(idempotencyKeyHeader)
	if keyStr == "" {
		return nil, true
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		httperr.BadRequest(c, err, "Invalid idempotency key format")
		return nil, false
	}
	return &key, true
}

func (h *ReservationHandler) parseFilter(c *gin.Context) (queries.ReservationFilter, bool) {
	var f queries.ReservationFilter
	var ok bool

	if s := c.Query("status"); s != "" {
		f.Status = &s
	}
	if f.ServiceID, ok = optionalUUIDQuery(c, "service_id"); !ok {
		return f, false
	}
	if f.ResourceID, ok = optionalUUIDQuery(c, "resource_id"); !ok {
		return f, false
	}
	if f.AppUserID, ok = optionalUUIDQuery(c, "app_user_id"); !ok {
		return f, false
	}
	if f.From, f.To, ok = h.parseDayRange(c); !ok {
		return f, false
	}
	if f.Limit, ok = intQuery(c, "limit"); !ok {
		return f, false
	}
	if f.Offset, ok = intQuery(c, "offset"); !ok {
		return f, false
	}
	return f, true
}

// parseDayRange turns the inclusive from/to days into [from, to+1day).
func (h *ReservationHandler) parseDayRange(c *gin.Context) (*time.Time, *time.Time, bool) {
	from, ok := optionalDateQuery(c, "from", h.location)
	if !ok {
		return nil, nil, false
	}
	to, ok := optionalDateQuery(c, "to", h.location)
	if !ok {
		return nil, nil, false
	}
	if to != nil {
		end := to.AddDate(0, 0, 1)
		to = &end
	}
	return from, to, true
}
