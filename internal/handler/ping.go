package handler

import (
	"net/http"
	"time"

	"taskboard/internal/api"
	"taskboard/internal/cache"
	"taskboard/internal/database"

	"github.com/labstack/echo/v4"
)

// PingHandler checks database and cache connectivity.
//
// @Summary     Health check
// @Description Verifies the database and cache are reachable
// @Tags        system
// @Produce     json
// @Success     200 {object} api.Envelope
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /api/v1/ping [get]
func PingHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return c.JSON(http.StatusInternalServerError, api.Err("database unhealthy"))
		}
		if err := cch.Set(ctx, "ping", "pong", 10*time.Second).Err(); err != nil {
			return c.JSON(http.StatusInternalServerError, api.Err("cache unhealthy"))
		}
		return c.JSON(http.StatusOK, api.OK("pong", nil))
	}
}
