package api

import (
	"net/http"

	resdto "shop-reservation/internal/handler/dto/response"
	"shop-reservation/internal/handler/httperr"
	"shop-reservation/internal/pkg/clock"
	"shop-reservation/internal/pkg/timegrid"
	"shop-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
	clock               clock.Clock
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries, clock clock.Clock) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries: availabilityQueries,
		clock:               clock,
	}
}

// @Summary Get availability
// @Description Bookable slots per day for one service. from defaults to today, to defaults to from.
// @Tags availability
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param serviceID path string true "Service ID"
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD), inclusive"
// @Param resource_id query string false "Restrict to one resource"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /shops/{shopID}/services/{serviceID}/availability [get]
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}
	serviceID, ok := uuidParam(c, "serviceID", "service")
	if !ok {
		return
	}
	resourceID, ok := optionalUUIDQuery(c, "resource_id")
	if !ok {
		return
	}

	now := h.clock.Now()
	from, ok := optionalDateQuery(c, "from", now.Location())
	if !ok {
		return
	}
	if from == nil {
		today := timegrid.StartOfDay(now)
		from = &today
	}
	to, ok := optionalDateQuery(c, "to", now.Location())
	if !ok {
		return
	}
	if to == nil {
		to = from
	}

	days, err := h.availabilityQueries.GetAvailability(c.Request.Context(), shopID, serviceID, *from, *to, resourceID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.AvailabilityResponse{
		ShopID:     shopID,
		ServiceID:  serviceID,
		ResourceID: resourceID,
		DateFrom:   timegrid.FormatDate(*from),
		DateTo:     timegrid.FormatDate(*to),
		Days:       days,
	})
}

// @Summary Get next available slot
// @Tags availability
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param serviceID path string true "Service ID"
// @Param resource_id query string false "Restrict to one resource"
// @Success 200 {object} resdto.NextSlotResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /shops/{shopID}/services/{serviceID}/next-slot [get]
func (h *AvailabilityHandler) GetNextAvailableSlot(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}
	serviceID, ok := uuidParam(c, "serviceID", "service")
	if !ok {
		return
	}
	resourceID, ok := optionalUUIDQuery(c, "resource_id")
	if !ok {
		return
	}

	slot, err := h.availabilityQueries.GetNextAvailableSlot(c.Request.Context(), shopID, serviceID, resourceID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.NextSlotResponse{
		ShopID:    shopID,
		ServiceID: serviceID,
		Slot:      slot,
	})
}
