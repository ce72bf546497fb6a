package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/onlyfilms/backend/internal/tmdb"
	"github.com/onlyfilms/backend/pkg/response"
)

// TmdbHandler exposes the metadata sync endpoints.
type TmdbHandler struct {
	syncer *tmdb.Syncer
}

// NewTmdbHandler creates a new TmdbHandler
func NewTmdbHandler(syncer *tmdb.Syncer) *TmdbHandler {
	return &TmdbHandler{syncer: syncer}
}

// RegisterTmdbRoutes registers sync routes
func (h *TmdbHandler) RegisterTmdbRoutes(g *echo.Group) {
	g.POST("/tmdb/sync/genres", h.SyncGenres)
	g.POST("/tmdb/sync/popular", h.SyncPopular)
}

// SyncGenres refreshes the local genre table from TMDB.
func (h *TmdbHandler) SyncGenres(c echo.Context) error {
	count, err := h.syncer.SyncGenres(c.Request().Context())
	if err != nil {
		return response.ServerError(c, "Genre sync failed")
	}
	return response.OK(c, "Genres synced", echo.Map{"synced": count})
}

// SyncPopular imports popular titles into the local film table. The optional
// pages query parameter controls how many TMDB pages to pull, default 1.
func (h *TmdbHandler) SyncPopular(c echo.Context) error {
	pages, err := strconv.Atoi(c.QueryParam("pages"))
	if err != nil || pages < 1 {
		pages = 1
	}
	count, err := h.syncer.SyncPopular(c.Request().Context(), pages)
	if err != nil {
		return response.ServerError(c, "Popular sync failed")
	}
	return response.OK(c, "Popular films synced", echo.Map{"synced": count})
}
