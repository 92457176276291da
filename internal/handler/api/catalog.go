package api

import (
	"net/http"

	reqdto "shop-reservation/internal/handler/dto/request"
	resdto "shop-reservation/internal/handler/dto/response"
	"shop-reservation/internal/handler/httperr"
	"shop-reservation/internal/handler/middleware"
	"shop-reservation/internal/usecase/commands"
	"shop-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalogCommands commands.CatalogCommands
	catalogQueries  queries.CatalogQueries
}

func NewCatalogHandler(catalogCommands commands.CatalogCommands, catalogQueries queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{
		catalogCommands: catalogCommands,
		catalogQueries:  catalogQueries,
	}
}

// activeOnly is true unless the caller manages the shop and asks for everything.
func activeOnly(c *gin.Context, shopID uuid.UUID) bool {
	if c.Query("include_inactive") != "true" {
		return true
	}
	actor, ok := middleware.GetActor(c)
	return !ok || !actor.IsShopAdmin(shopID)
}

// @Summary List services
// @Tags catalog
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param include_inactive query bool false "Include inactive services (shop admin only)"
// @Success 200 {object} resdto.ListResponse[queries.ServiceView]
// @Router /shops/{shopID}/services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	services, err := h.catalogQueries.ListServices(c.Request.Context(), shopID, activeOnly(c, shopID))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewList(services))
}

// @Summary Get service
// @Description Service with its linked resources, overrides flattened.
// @Tags catalog
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param serviceID path string true "Service ID"
// @Success 200 {object} queries.ServiceView
// @Failure 404 {object} httperr.Response
// @Router /shops/{shopID}/services/{serviceID} [get]
func (h *CatalogHandler) GetService(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}
	serviceID, ok := uuidParam(c, "serviceID", "service")
	if !ok {
		return
	}

	view, err := h.catalogQueries.GetService(c.Request.Context(), shopID, serviceID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Create service
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param request body reqdto.CreateServiceRequest true "Service"
// @Success 201 {object} queries.ServiceView
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /shops/{shopID}/services [post]
func (h *CatalogHandler) CreateService(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	var req reqdto.CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	actor, _ := middleware.GetActor(c)
	view, err := h.catalogCommands.CreateService(c.Request.Context(), actor, shopID, req.ToParams())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// @Summary Update service
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param serviceID path string true "Service ID"
// @Param request body reqdto.UpdateServiceRequest true "Patch"
// @Success 200 {object} queries.ServiceView
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /shops/{shopID}/services/{serviceID} [patch]
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}
	serviceID, ok := uuidParam(c, "serviceID", "service")
	if !ok {
		return
	}

	var req reqdto.UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	actor, _ := middleware.GetActor(c)
	view, err := h.catalogCommands.UpdateService(c.Request.Context(), actor, shopID, serviceID, req.ToPatch())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Delete service
// @Description Deactivates the service when reservations reference it, deletes it otherwise.
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param serviceID path string true "Service ID"
// @Success 200 {object} resdto.DeleteResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /shops/{shopID}/services/{serviceID} [delete]
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}
	serviceID, ok := uuidParam(c, "serviceID", "service")
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	result, err := h.catalogCommands.DeleteService(c.Request.Context(), actor, shopID, serviceID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDeleteResult("Service", result))
}

// @Summary List resources
// @Tags catalog
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param include_inactive query bool false "Include inactive resources (shop admin only)"
// @Success 200 {object} resdto.ListResponse[queries.ResourceView]
// @Router /shops/{shopID}/resources [get]
func (h *CatalogHandler) ListResources(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	resources, err := h.catalogQueries.ListResources(c.Request.Context(), shopID, activeOnly(c, shopID))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewList(resources))
}

// @Summary Get resource
// @Description Resource with its linked services and availability rules.
// @Tags catalog
// @Produce json
// @Param shopID path string true "Shop ID"
// @Param id path string true "Resource ID"
// @Success 200 {object} queries.ResourceView
// @Failure 404 {object} httperr.Response
// @Router /shops/{shopID}/resources/{id} [get]
func (h *CatalogHandler) GetResource(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}
	resourceID, ok := uuidParam(c, "id", "resource")
	if !ok {
		return
	}

	view, err := h.catalogQueries.GetResource(c.Request.Context(), shopID, resourceID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Create resource
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param request body reqdto.CreateResourceRequest true "Resource"
// @Success 201 {object} queries.ResourceView
// @Failure 403 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /shops/{shopID}/resources [post]
func (h *CatalogHandler) CreateResource(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}

	var req reqdto.CreateResourceRequest
	if !bindJSON(c, &req) {
		return
	}

	actor, _ := middleware.GetActor(c)
	view, err := h.catalogCommands.CreateResource(c.Request.Context(), actor, shopID, req.ToParams())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// @Summary Update resource
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param id path string true "Resource ID"
// @Param request body reqdto.UpdateResourceRequest true "Patch"
// @Success 200 {object} queries.ResourceView
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /shops/{shopID}/resources/{id} [patch]
func (h *CatalogHandler) UpdateResource(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}
	resourceID, ok := uuidParam(c, "id", "resource")
	if !ok {
		return
	}

	var req reqdto.UpdateResourceRequest
	if !bindJSON(c, &req) {
		return
	}

	actor, _ := middleware.GetActor(c)
	view, err := h.catalogCommands.UpdateResource(c.Request.Context(), actor, shopID, resourceID, req.ToPatch())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Delete resource
// @Description Deactivates the resource when reservations reference it, deletes it otherwise.
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.DeleteResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /shops/{shopID}/resources/{id} [delete]
func (h *CatalogHandler) DeleteResource(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}
	resourceID, ok := uuidParam(c, "id", "resource")
	if !ok {
		return
	}

	actor, _ := middleware.GetActor(c)
	result, err := h.catalogCommands.DeleteResource(c.Request.Context(), actor, shopID, resourceID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDeleteResult("Resource", result))
}

// @Summary Set resource services
// @Description Replaces every service link of the resource.
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param shopID path string true "Shop ID"
// @Param id path string true "Resource ID"
// @Param request body reqdto.SetResourceServicesRequest true "Links"
// @Success 200 {object} resdto.ListResponse[queries.LinkedServiceView]
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /shops/{shopID}/resources/{id}/services [put]
func (h *CatalogHandler) SetResourceServices(c *gin.Context) {
	shopID, ok := shopIDParam(c)
	if !ok {
		return
	}
	resourceID, ok := uuidParam(c, "id", "resource")
	if !ok {
		return
	}

	var req reqdto.SetResourceServicesRequest
	if !bindJSON(c, &req) {
		return
	}

	actor, _ := middleware.GetActor(c)
	links, err := h.catalogCommands.SetResourceServices(c.Request.Context(), actor, shopID, resourceID, req.ToLinks())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.NewList(links))
}
