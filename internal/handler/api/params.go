package api

import (
	"strconv"
	"time"

	"shop-reservation/internal/handler/httperr"
	"shop-reservation/internal/handler/middleware"
	"shop-reservation/internal/pkg/errs"
	"shop-reservation/internal/pkg/timegrid"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func shopIDParam(c *gin.Context) (uuid.UUID, bool) {
	return uuidParam(c, middleware.ShopIDParam, "shop")
}

func uuidParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, err, "Invalid "+label+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

// optionalUUIDQuery returns nil when the parameter is absent.
func optionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httperr.BadRequest(c, err, "Invalid "+name+" format")
		return nil, false
	}
	return &id, true
}

func intQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		httperr.BadRequest(c, err, "Invalid "+name+" format")
		return 0, false
	}
	return n, true
}

// optionalDateQuery parses a YYYY-MM-DD parameter as midnight in loc.
func optionalDateQuery(c *gin.Context, name string, loc *time.Location) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	d, err := timegrid.ParseDate(raw, loc)
	if err != nil {
		httperr.BadRequest(c, errs.Wrap(err, "parse "+name), "Invalid "+name+" format, expected YYYY-MM-DD")
		return nil, false
	}
	return &d, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return false
	}
	return true
}
