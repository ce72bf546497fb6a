package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/onlyfilms/backend/internal/middleware"
	"github.com/onlyfilms/backend/internal/models"
	"github.com/onlyfilms/backend/internal/repositories"
	"github.com/onlyfilms/backend/pkg/response"
)

// WatchlistHandler handles watchlist HTTP requests. The watchlist is the
// intent-to-watch list; the watch log of things already seen lives on the
// activity handler.
type WatchlistHandler struct {
	watchlistRepository repositories.WatchlistRepository
	watchRepository     repositories.WatchRepository
	filmRepository      repositories.FilmRepository
}

// NewWatchlistHandler creates a new WatchlistHandler
func NewWatchlistHandler(
	watchlistRepo repositories.WatchlistRepository,
	watchRepo repositories.WatchRepository,
	filmRepo repositories.FilmRepository,
) *WatchlistHandler {
	return &WatchlistHandler{
		watchlistRepository: watchlistRepo,
		watchRepository:     watchRepo,
		filmRepository:      filmRepo,
	}
}

// RegisterWatchlistRoutes registers watchlist routes
func (h *WatchlistHandler) RegisterWatchlistRoutes(g *echo.Group) {
	g.GET("/watchlist", h.GetWatchlist)
	g.POST("/watchlist", h.AddItem)
	g.DELETE("/watchlist/:tmdbId", h.RemoveItem)
	g.GET("/watchlist/check/:tmdbId", h.Check)
}

// GetWatchlist returns the viewer's watchlist, most recently added first.
func (h *WatchlistHandler) GetWatchlist(c echo.Context) error {
	viewer := middleware.MustViewer(c)
	limit, offset, err := pageParams(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	films, err := h.watchlistRepository.GetByProfile(viewer.ProfileID, limit, offset)
	if err != nil {
		return response.ServerError(c, "Failed to load watchlist")
	}
	total, err := h.watchlistRepository.Count(viewer.ProfileID)
	if err != nil {
		return response.ServerError(c, "Failed to load watchlist")
	}
	return response.OK(c, "", echo.Map{
		"watchlist": films,
		"limit":     limit,
		"offset":    offset,
		"total":     total,
	})
}

// AddItem puts a TMDB title on the viewer's watchlist, creating the local
// film row on first contact. Adding twice is a no-op.
func (h *WatchlistHandler) AddItem(c echo.Context) error {
	viewer := middleware.MustViewer(c)

	var req models.AddWatchlistRequest
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

	already, err := h.watchlistRepository.Contains(viewer.ProfileID, film.ID)
	if err != nil {
		return response.ServerError(c, "Failed to check watchlist")
	}
	if already {
		return response.OK(c, "Already on watchlist", nil)
	}

	item := &models.WatchlistItem{ProfileID: viewer.ProfileID, FilmID: film.ID}
	if err := h.watchlistRepository.AddItem(item); err != nil {
		return response.ServerError(c, "Failed to add to watchlist")
	}
	return response.Created(c, "Added to watchlist", item)
}

// RemoveItem takes a TMDB title off the viewer's watchlist.
func (h *WatchlistHandler) RemoveItem(c echo.Context) error {
	viewer := middleware.MustViewer(c)
	tmdbID, err := pathID(c, "tmdbId")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	film, err := h.filmRepository.GetByTmdbID(int(tmdbID))
	if err != nil {
		return response.NotFound(c, "Film not on watchlist")
	}
	if err := h.watchlistRepository.RemoveItem(viewer.ProfileID, film.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Film not on watchlist")
		}
		return response.ServerError(c, "Failed to remove from watchlist")
	}
	return response.OK(c, "Removed from watchlist", nil)
}

// Check reports whether a TMDB title is on the viewer's watchlist and
// whether the viewer has already watched it.
func (h *WatchlistHandler) Check(c echo.Context) error {
	viewer := middleware.MustViewer(c)
	tmdbID, err := pathID(c, "tmdbId")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	film, err := h.filmRepository.GetByTmdbID(int(tmdbID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A title never seen locally is on nobody's watchlist.
			return response.OK(c, "", echo.Map{"tmdbId": tmdbID, "inWatchlist": false, "hasWatched": false})
		}
		return response.ServerError(c, "Failed to check watchlist")
	}

	inWatchlist, err := h.watchlistRepository.Contains(viewer.ProfileID, film.ID)
	if err != nil {
		return response.ServerError(c, "Failed to check watchlist")
	}
	hasWatched, err := h.watchRepository.HasWatched(viewer.ProfileID, film.ID)
	if err != nil {
		return response.ServerError(c, "Failed to check watchlist")
	}
	return response.OK(c, "", echo.Map{"tmdbId": tmdbID, "inWatchlist": inWatchlist, "hasWatched": hasWatched})
}
