package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/onlyfilms/backend/internal/middleware"
	"github.com/onlyfilms/backend/internal/models"
	"github.com/onlyfilms/backend/internal/repositories"
	"github.com/onlyfilms/backend/pkg/response"
)

// FavoriteHandler handles favorite HTTP requests
type FavoriteHandler struct {
	favoriteRepository repositories.FavoriteRepository
	filmRepository     repositories.FilmRepository
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(favoriteRepo repositories.FavoriteRepository, filmRepo repositories.FilmRepository) *FavoriteHandler {
	return &FavoriteHandler{favoriteRepository: favoriteRepo, filmRepository: filmRepo}
}

// RegisterFavoriteRoutes registers favorite routes
func (h *FavoriteHandler) RegisterFavoriteRoutes(g *echo.Group) {
	g.POST("/favorites", h.AddFavorite)
	g.DELETE("/favorites/:tmdbId", h.RemoveFavorite)
	g.GET("/favorites/profile/:id", h.GetFavorites)
	g.GET("/favorites/check/:tmdbId", h.Check)
}

// AddFavorite marks a TMDB title as a favorite of the viewer, creating the
// local film row on first contact. Favoriting twice is a no-op.
func (h *FavoriteHandler) AddFavorite(c echo.Context) error {
	viewer := middleware.MustViewer(c)

	var req models.AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.New().Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	film, err := h.filmRepository.FindOrCreate(&models.Film{
		TmdbID:      req.TmdbID,
		Title:       req.FilmTitle,
		ReleaseYear: req.ReleaseYear,
		PosterURL:   req.PosterURL,
	})
	if err != nil {
		return response.ServerError(c, "Failed to resolve film")
	}

	already, err := h.favoriteRepository.IsFavorite(viewer.ProfileID, film.ID)
	if err != nil {
		return response.ServerError(c, "Failed to check favorite")
	}
	if already {
		return response.OK(c, "Already a favorite", nil)
	}

	favorite := &models.Favorite{ProfileID: viewer.ProfileID, FilmID: film.ID}
	if err := h.favoriteRepository.AddFavorite(favorite); err != nil {
		return response.ServerError(c, "Failed to add favorite")
	}
	return response.Created(c, "Favorite added", favorite)
}

// RemoveFavorite unfavorites a TMDB title for the viewer.
func (h *FavoriteHandler) RemoveFavorite(c echo.Context) error {
	viewer := middleware.MustViewer(c)
	tmdbID, err := pathID(c, "tmdbId")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	film, err := h.filmRepository.GetByTmdbID(int(tmdbID))
	if err != nil {
		return response.NotFound(c, "Favorite not found")
	}
	if err := h.favoriteRepository.RemoveFavorite(viewer.ProfileID, film.ID); err != nil {
		return response.NotFound(c, "Favorite not found")
	}
	return response.OK(c, "Favorite removed", nil)
}

// GetFavorites lists a profile's favorite films.
func (h *FavoriteHandler) GetFavorites(c echo.Context) error {
	profileID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	films, err := h.favoriteRepository.GetFavoritesByProfile(profileID)
	if err != nil {
		return response.ServerError(c, "Failed to load favorites")
	}
	return response.OK(c, "", films)
}

// Check reports whether the viewer has favorited a TMDB title; public, so it
// answers false without a viewer context.
func (h *FavoriteHandler) Check(c echo.Context) error {
	tmdbID, err := pathID(c, "tmdbId")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	viewer, ok := middleware.Viewer(c)
	if !ok {
		return response.OK(c, "", echo.Map{"favorite": false})
	}

	film, err := h.filmRepository.GetByTmdbID(int(tmdbID))
	if err != nil {
		return response.OK(c, "", echo.Map{"favorite": false})
	}
	favorite, err := h.favoriteRepository.IsFavorite(viewer.ProfileID, film.ID)
	if err != nil {
		return response.ServerError(c, "Failed to check favorite")
	}
	return response.OK(c, "", echo.Map{"favorite": favorite})
}
