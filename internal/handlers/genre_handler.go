package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/onlyfilms/backend/internal/repositories"
	"github.com/onlyfilms/backend/pkg/response"
)

// GenreHandler handles genre HTTP requests
type GenreHandler struct {
	genreRepository repositories.GenreRepository
}

// NewGenreHandler creates a new GenreHandler
func NewGenreHandler(genreRepo repositories.GenreRepository) *GenreHandler {
	return &GenreHandler{genreRepository: genreRepo}
}

// RegisterGenreRoutes registers genre routes
func (h *GenreHandler) RegisterGenreRoutes(g *echo.Group) {
	g.GET("/genres", h.GetGenres)
}

// GetGenres lists the locally synced genres.
func (h *GenreHandler) GetGenres(c echo.Context) error {
	genres, err := h.genreRepository.GetAll()
	if err != nil {
		return response.ServerError(c, "Failed to load genres")
	}
	return response.OK(c, "", genres)
}
