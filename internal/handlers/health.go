package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/onlyfilms/backend/pkg/response"
)

// RegisterHealthRoutes registers the liveness probe.
func RegisterHealthRoutes(g *echo.Group) {
	g.GET("/health", func(c echo.Context) error {
		return response.OK(c, "ok", nil)
	})
}
