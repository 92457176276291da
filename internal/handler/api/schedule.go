package api

import (
	"net/http"

	"shop-reservation/internal/domain/schedule"
	reqdto "shop-reservation/internal/handler/dto/request"
	resdto "shop-reservation/internal/handler/dto/response"
	"shop-reservation/internal/handler/httperr"
	"shop-reservation/internal/handler/middleware"
	"shop-reservation/internal/pkg/clock"
	"shop-reservation/internal/usecase/commands"
	"shop-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// shopLevelScope selects shop-wide blocks only in ?resource_id=.
const shopLevelScope = "null"

type ScheduleHandler struct {
	scheduleCommands commands.ScheduleCommands
	scheduleQueries  queries.ScheduleQueries
	clock            clock.Clock
}

func NewScheduleHandler(scheduleCommands commands.ScheduleCommands, scheduleQueries queries.ScheduleQueries, clock clock.Clock) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleCommands: scheduleCommands,
		scheduleQueries:  scheduleQueries,
		clock:            clock,
	}
}

// @Summary Get availability schedule
// @Description Active weekly rules. Without resource_id the shop-level rules are returned.
// @Tags schedule
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param resource_id query string false "Resource ID"
// @Success 200 {object} resdto.ListResponse[queries.RuleView]
// @Failure 404 {object} httperr.Response
// @Router /shops/{shopID}/availability [get]
func (h *ScheduleHandler) GetAvailabilitySchedule(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}
	resourceID, ok := optionalUUIDQuery(c, "resource_id")
	if !ok {
		return
	}

	rules, err := h.scheduleQueries.GetAvailabilitySchedule(c.Request.Context(), shopID, resourceID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewList(rules))
}

// @Summary Set availability schedule
// @Description Replaces every rule of the shop, or of one resource when resource_id is given.
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param request body reqdto.SetAvailabilityRequest true "Rules"
// @Success 200 {object} resdto.ListResponse[queries.RuleView]
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /shops/{shopID}/availability [put]
func (h *ScheduleHandler) SetAvailability(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	var req reqdto.SetAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	actor, _ := middleware.GetActor(c)
	rules, err := h.scheduleCommands.SetAvailability(c.Request.Context(), actor, shopID, req.ResourceID, req.ToRules())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewList(rules))
}

// @Summary List blocks
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param from query string false "First day (YYYY-MM-DD)"
// @Param to query string false "Last day (YYYY-MM-DD), inclusive"
// @Param resource_id query string false "Resource ID, or null for shop-level blocks only"
// @Success 200 {object} resdto.ListResponse[queries.BlockView]
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /shops/{shopID}/blocks [get]
func (h *ScheduleHandler) ListBlocks(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	filter, ok := h.parseBlockFilter(c)
	if !ok {
		return
	}

	blocks, err := h.scheduleQueries.ListBlocks(c.Request.Context(), shopID, filter)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewList(blocks))
}

// @Summary Create block
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param request body reqdto.CreateBlockRequest true "Block"
// @Success 201 {object} queries.BlockView
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /shops/{shopID}/blocks [post]
func (h *ScheduleHandler) CreateBlock(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	var req reqdto.CreateBlockRequest
	if !bindJSON(c, &req) {
		return
	}

	actor, _ := middleware.GetActor(c)
	block, err := h.scheduleCommands.CreateBlock(c.Request.Context(), actor, shopID, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, block)
}

// @Summary Delete block
// @Tags schedule
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param id path string true "Block ID"
// @Success 204
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /shops/{shopID}/blocks/{id} [delete]
func (h *ScheduleHandler) DeleteBlock(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}
	blockID, ok := uuidParam(c, "id", "block")
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	if err := h.scheduleCommands.DeleteBlock(c.Request.Context(), actor, shopID, blockID); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ScheduleHandler) parseBlockFilter(c *gin.Context) (schedule.BlockFilter, bool) {
	var f schedule.BlockFilter
	loc := h.clock.Now().Location()

	from, ok := optionalDateQuery(c, "from", loc)
	if !ok {
		return f, false
	}
	to, ok := optionalDateQuery(c, "to", loc)
	if !ok {
		return f, false
	}
	if to != nil {
		end := to.AddDate(0, 0, 1)
		to = &end
	}
	f.From, f.To = from, to

	switch raw := c.Query("resource_id"); raw {
	case "":
		f.Scope = schedule.AnyScope()
	case shopLevelScope:
		f.Scope = schedule.ShopLevelOnly()
	default:
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.BadRequest(c, err, "Invalid resource_id format")
			return f, false
		}
		f.Scope = schedule.ForResource(id)
	}
	return f, true
}
