package handlers

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/onlyfilms/backend/internal/rating"
	"github.com/onlyfilms/backend/internal/repositories"
	"github.com/onlyfilms/backend/internal/tmdb"
	"github.com/onlyfilms/backend/pkg/response"
)

// MovieHandler proxies TMDB browse endpoints and attaches the blended
// critic/user rating to movie detail responses.
type MovieHandler struct {
	client           *tmdb.Client
	filmRepository   repositories.FilmRepository
	reviewRepository repositories.ReviewRepository
}

// NewMovieHandler creates a new MovieHandler
func NewMovieHandler(client *tmdb.Client, filmRepo repositories.FilmRepository, reviewRepo repositories.ReviewRepository) *MovieHandler {
	return &MovieHandler{client: client, filmRepository: filmRepo, reviewRepository: reviewRepo}
}

// RegisterMovieRoutes registers movie routes
func (h *MovieHandler) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies/popular", h.Popular)
	g.GET("/movies/top-rated", h.TopRated)
	g.GET("/movies/now-playing", h.NowPlaying)
	g.GET("/movies/upcoming", h.Upcoming)
	g.GET("/movies/search", h.Search)
	g.GET("/movies/genre/:id", h.ByGenre)
	g.GET("/movies/:id", h.Details)
	g.GET("/movies/:id/credits", h.Credits)
	g.GET("/movies/:id/videos", h.Videos)
	g.GET("/movies/:id/similar", h.Similar)
	g.GET("/movies/:id/rating", h.Rating)
	g.GET("/person/:id", h.Person)
}

func pageQuery(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (h *MovieHandler) Popular(c echo.Context) error {
	raw, err := h.client.Popular(c.Request().Context(), pageQuery(c))
	if err != nil {
		return response.ServerError(c, "Failed to fetch movies")
	}
	return response.OK(c, "", raw)
}

func (h *MovieHandler) TopRated(c echo.Context) error {
	raw, err := h.client.TopRated(c.Request().Context(), pageQuery(c))
	if err != nil {
		return response.ServerError(c, "Failed to fetch movies")
	}
	return response.OK(c, "", raw)
}

func (h *MovieHandler) NowPlaying(c echo.Context) error {
	raw, err := h.client.NowPlaying(c.Request().Context(), pageQuery(c))
	if err != nil {
		return response.ServerError(c, "Failed to fetch movies")
	}
	return response.OK(c, "", raw)
}

func (h *MovieHandler) Upcoming(c echo.Context) error {
	raw, err := h.client.Upcoming(c.Request().Context(), pageQuery(c))
	if err != nil {
		return response.ServerError(c, "Failed to fetch movies")
	}
	return response.OK(c, "", raw)
}

func (h *MovieHandler) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return response.BadRequest(c, "Query parameter 'query' is required")
	}
	raw, err := h.client.Search(c.Request().Context(), query, pageQuery(c))
	if err != nil {
		return response.ServerError(c, "Failed to search movies")
	}
	return response.OK(c, "", raw)
}

func (h *MovieHandler) ByGenre(c echo.Context) error {
	genreID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	raw, err := h.client.ByGenre(c.Request().Context(), int(genreID), pageQuery(c))
	if err != nil {
		return response.ServerError(c, "Failed to fetch movies")
	}
	return response.OK(c, "", raw)
}

// movieDetail is the detail payload: the raw TMDB document plus the blended
// rating computed over both populations.
type movieDetail struct {
	Movie  json.RawMessage `json:"movie"`
	Rating rating.Combined `json:"rating"`
}

// Details returns the TMDB document for a title together with its combined
// rating.
func (h *MovieHandler) Details(c echo.Context) error {
	tmdbID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	raw, err := h.client.Details(c.Request().Context(), int(tmdbID))
	if err != nil {
		return response.ServerError(c, "Failed to fetch movie")
	}

	return response.OK(c, "", movieDetail{
		Movie:  raw,
		Rating: h.combinedRating(c, int(tmdbID)),
	})
}

// Rating returns just the combined rating for a title.
func (h *MovieHandler) Rating(c echo.Context) error {
	tmdbID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.OK(c, "", h.combinedRating(c, int(tmdbID)))
}

// combinedRating blends the TMDB population with local review stats. A
// provider failure degrades to an empty critic population rather than failing
// the whole request; local stats are authoritative and must not be hidden by
// an upstream outage.
func (h *MovieHandler) combinedRating(c echo.Context, tmdbID int) rating.Combined {
	critic, err := h.client.MovieRating(c.Request().Context(), tmdbID)
	if err != nil {
		critic = rating.Population{}
	}

	// A film unknown locally simply has no user population yet; repository
	// errors degrade to empty the same way rather than failing the page.
	var user rating.Population
	if film, err := h.filmRepository.GetByTmdbID(tmdbID); err == nil {
		if stats, err := h.reviewRepository.RatingStats(film.ID); err == nil {
			user = rating.Population{Score: stats.Average, Count: stats.Count}
		}
	}

	return rating.Combine(critic, user)
}

// Person returns an actor's or director's details with filmography.
func (h *MovieHandler) Person(c echo.Context) error {
	personID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	raw, err := h.client.Person(c.Request().Context(), int(personID))
	if err != nil {
		return response.ServerError(c, "Failed to fetch person details")
	}
	return response.OK(c, "", raw)
}

func (h *MovieHandler) Credits(c echo.Context) error {
	tmdbID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	raw, err := h.client.Credits(c.Request().Context(), int(tmdbID))
	if err != nil {
		return response.ServerError(c, "Failed to fetch credits")
	}
	return response.OK(c, "", raw)
}

func (h *MovieHandler) Videos(c echo.Context) error {
	tmdbID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	raw, err := h.client.Videos(c.Request().Context(), int(tmdbID))
	if err != nil {
		return response.ServerError(c, "Failed to fetch videos")
	}
	return response.OK(c, "", raw)
}

func (h *MovieHandler) Similar(c echo.Context) error {
	tmdbID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	raw, err := h.client.Similar(c.Request().Context(), int(tmdbID))
	if err != nil {
		return response.ServerError(c, "Failed to fetch similar movies")
	}
	return response.OK(c, "", raw)
}
