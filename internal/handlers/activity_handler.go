package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/onlyfilms/backend/internal/feed"
	"github.com/onlyfilms/backend/internal/middleware"
	"github.com/onlyfilms/backend/internal/models"
	"github.com/onlyfilms/backend/internal/repositories"
	"github.com/onlyfilms/backend/pkg/response"
)

// ActivityHandler serves the merged activity feeds and the watch log.
type ActivityHandler struct {
	aggregator      *feed.Aggregator
	watchRepository repositories.WatchRepository
	filmRepository  repositories.FilmRepository
	likeRepository  repositories.LikeRepository
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(
	aggregator *feed.Aggregator,
	watchRepo repositories.WatchRepository,
	filmRepo repositories.FilmRepository,
	likeRepo repositories.LikeRepository,
) *ActivityHandler {
	return &ActivityHandler{
		aggregator:      aggregator,
		watchRepository: watchRepo,
		filmRepository:  filmRepo,
		likeRepository:  likeRepo,
	}
}

// RegisterActivityRoutes registers activity routes
func (h *ActivityHandler) RegisterActivityRoutes(g *echo.Group) {
	g.GET("/activity/recent", h.RecentFeed)
	g.GET("/activity/user/:id", h.ProfileFeed)
	g.GET("/activity/feed", h.PersonalFeed)
	g.POST("/activity/watch", h.LogWatch)
	g.DELETE("/activity/watch/:id", h.DeleteWatch)
}

// RecentFeed returns the global activity stream, everyone's events merged.
func (h *ActivityHandler) RecentFeed(c echo.Context) error {
	return h.serveFeed(c, feed.Global())
}

// ProfileFeed returns one profile's activity stream.
func (h *ActivityHandler) ProfileFeed(c echo.Context) error {
	profileID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	return h.serveFeed(c, feed.ForProfile(profileID))
}

// PersonalFeed returns the viewer's followed-profiles stream. The route is
// protected, so a viewer context is always present here.
func (h *ActivityHandler) PersonalFeed(c echo.Context) error {
	viewer := middleware.MustViewer(c)
	return h.serveFeed(c, feed.ForViewer(viewer.ProfileID))
}

func (h *ActivityHandler) serveFeed(c echo.Context, scope feed.Scope) error {
	limit, offset, err := pageParams(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	events, err := h.aggregator.GetFeed(c.Request().Context(), scope, limit, offset)
	if err != nil {
		return response.ServerError(c, "Failed to load activity feed")
	}

	if viewer, ok := middleware.Viewer(c); ok {
		if err := h.markLiked(events, viewer.ProfileID); err != nil {
			return response.ServerError(c, "Failed to load activity feed")
		}
	}
	return response.OK(c, "", events)
}

// markLiked flags review events the viewer has already liked.
func (h *ActivityHandler) markLiked(events []models.ActivityEvent, viewerID uint) error {
	var reviewIDs []uint
	for i := range events {
		if events[i].Review != nil {
			reviewIDs = append(reviewIDs, events[i].Review.ReviewID)
		}
	}
	if len(reviewIDs) == 0 {
		return nil
	}

	liked, err := h.likeRepository.LikedReviewIDs(viewerID, reviewIDs)
	if err != nil {
		return err
	}
	for i := range events {
		if events[i].Review != nil {
			events[i].Review.LikedByViewer = liked[events[i].Review.ReviewID]
		}
	}
	return nil
}

// LogWatch records that the viewer watched a TMDB title, creating the local
// film row on first contact.
func (h *ActivityHandler) LogWatch(c echo.Context) error {
	viewer := middleware.MustViewer(c)

	var req models.LogWatchRequest
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

	watched := true
	if req.Watched != nil {
		watched = *req.Watched
	}
	event := &models.WatchEvent{
		ProfileID: viewer.ProfileID,
		FilmID:    film.ID,
		Watched:   watched,
	}
	if err := h.watchRepository.CreateWatchEvent(event); err != nil {
		return response.ServerError(c, "Failed to log watch")
	}
	return response.Created(c, "Watch logged", event)
}

// DeleteWatch removes one of the viewer's own watch log entries.
func (h *ActivityHandler) DeleteWatch(c echo.Context) error {
	viewer := middleware.MustViewer(c)
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.watchRepository.DeleteWatchEvent(id, viewer.ProfileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Watch entry not found")
		}
		return response.ServerError(c, "Failed to delete watch entry")
	}
	return response.OK(c, "Watch entry deleted", nil)
}
