package api

import (
	"net/http"

	reqdto "shop-reservation/internal/handler/dto/request"
	"shop-reservation/internal/handler/httperr"
	"shop-reservation/internal/handler/middleware"
	"shop-reservation/internal/usecase/commands"
	"shop-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsCommands commands.SettingsCommands
	settingsQueries  queries.SettingsQueries
}

func NewSettingsHandler(settingsCommands commands.SettingsCommands, settingsQueries queries.SettingsQueries) *SettingsHandler {
	return &SettingsHandler{
		settingsCommands: settingsCommands,
		settingsQueries:  settingsQueries,
	}
}

// @Summary Get reservation settings
// @Description Effective settings: the shop's own values merged over the global defaults.
// @Tags settings
// @Produce json
// @Param shopID path string true "Shop ID"
// @Success 200 {object} queries.SettingsView
// @Failure 404 {object} httperr.Response
// @Router /shops/{shopID}/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	view, err := h.settingsQueries.GetSettings(c.Request.Context(), shopID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Update reservation settings
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param request body reqdto.UpdateSettingsRequest true "Settings patch"
// @Success 200 {object} queries.SettingsView
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /shops/{shopID}/settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	var req reqdto.UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	actor, _ := middleware.GetActor(c)
	view, err := h.settingsCommands.UpdateSettings(c.Request.Context(), actor, shopID, req.ToPatch())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
