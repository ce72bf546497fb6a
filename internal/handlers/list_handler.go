package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/onlyfilms/backend/internal/middleware"
	"github.com/onlyfilms/backend/internal/models"
	"github.com/onlyfilms/backend/internal/repositories"
	"github.com/onlyfilms/backend/pkg/response"
)

// ListHandler handles film list HTTP requests
type ListHandler struct {
	listRepository repositories.ListRepository
	filmRepository repositories.FilmRepository
}

// NewListHandler creates a new ListHandler
func NewListHandler(listRepo repositories.ListRepository, filmRepo repositories.FilmRepository) *ListHandler {
	return &ListHandler{listRepository: listRepo, filmRepository: filmRepo}
}

// RegisterListRoutes registers list routes
func (h *ListHandler) RegisterListRoutes(g *echo.Group) {
	g.POST("/lists", h.CreateList)
	g.GET("/lists/:id", h.GetList)
	g.GET("/lists/profile/:id", h.GetListsByProfile)
	g.POST("/lists/:id/films", h.AddFilm)
	g.DELETE("/lists/:id", h.DeleteList)
}

// listView is a list joined with the locally known film rows for its members.
type listView struct {
	models.FilmList
	Films []models.Film `json:"films"`
}

// CreateList creates a film list owned by the viewer. Lists default to
// public.
func (h *ListHandler) CreateList(c echo.Context) error {
	viewer := middleware.MustViewer(c)

	var req models.CreateListRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.New().Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	public := true
	if req.Public != nil {
		public = *req.Public
	}
	list := &models.FilmList{
		ProfileID:   viewer.ProfileID,
		Name:        req.Name,
		Description: req.Description,
		Public:      public,
		FilmTmdbIDs: []int{},
	}
	if err := h.listRepository.CreateList(c.Request().Context(), list); err != nil {
		return response.ServerError(c, "Failed to create list")
	}
	return response.Created(c, "List created", list)
}

// listID validates the hex id path parameter before it reaches Mongo.
func listID(c echo.Context) (string, error) {
	id := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return "", err
	}
	return id, nil
}

// GetList returns one list with its member films. Private lists are only
// visible to their owner.
func (h *ListHandler) GetList(c echo.Context) error {
	id, err := listID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid list id")
	}
	list, err := h.listRepository.GetListByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return response.NotFound(c, "List not found")
		}
		return response.ServerError(c, "Failed to load list")
	}

	if !list.Public {
		viewer, ok := middleware.Viewer(c)
		if !ok || viewer.ProfileID != list.ProfileID {
			return response.NotFound(c, "List not found")
		}
	}

	films, err := h.filmRepository.GetByTmdbIDs(list.FilmTmdbIDs)
	if err != nil {
		return response.ServerError(c, "Failed to load list films")
	}
	return response.OK(c, "", listView{FilmList: *list, Films: films})
}

// GetListsByProfile returns a profile's lists. Private lists are included
// only when the owner is asking.
func (h *ListHandler) GetListsByProfile(c echo.Context) error {
	profileID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	includePrivate := false
	if viewer, ok := middleware.Viewer(c); ok && viewer.ProfileID == profileID {
		includePrivate = true
	}

	lists, err := h.listRepository.GetListsByProfile(c.Request().Context(), profileID, includePrivate)
	if err != nil {
		return response.ServerError(c, "Failed to load lists")
	}
	return response.OK(c, "", lists)
}

// AddFilm appends a TMDB title to one of the viewer's lists. Adding a film
// that is already a member is a no-op.
func (h *ListHandler) AddFilm(c echo.Context) error {
	viewer := middleware.MustViewer(c)

	var req models.AddListFilmRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.New().Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	id, err := listID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid list id")
	}
	if err := h.listRepository.AddFilm(c.Request().Context(), id, viewer.ProfileID, req.TmdbID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return response.NotFound(c, "List not found")
		}
		return response.ServerError(c, "Failed to add film to list")
	}
	return response.OK(c, "Film added to list", nil)
}

// DeleteList removes one of the viewer's own lists.
func (h *ListHandler) DeleteList(c echo.Context) error {
	viewer := middleware.MustViewer(c)

	id, err := listID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid list id")
	}
	if err := h.listRepository.DeleteList(c.Request().Context(), id, viewer.ProfileID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return response.NotFound(c, "List not found")
		}
		return response.ServerError(c, "Failed to delete list")
	}
	return response.OK(c, "List deleted", nil)
}
