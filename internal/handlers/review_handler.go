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

// ReviewHandler handles review HTTP requests
type ReviewHandler struct {
	reviewRepository  repositories.ReviewRepository
	filmRepository    repositories.FilmRepository
	profileRepository repositories.ProfileRepository
	likeRepository    repositories.LikeRepository
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(
	reviewRepo repositories.ReviewRepository,
	filmRepo repositories.FilmRepository,
	profileRepo repositories.ProfileRepository,
	likeRepo repositories.LikeRepository,
) *ReviewHandler {
	return &ReviewHandler{
		reviewRepository:  reviewRepo,
		filmRepository:    filmRepo,
		profileRepository: profileRepo,
		likeRepository:    likeRepo,
	}
}

// RegisterReviewRoutes registers review routes
func (h *ReviewHandler) RegisterReviewRoutes(g *echo.Group) {
	g.POST("/reviews", h.CreateReview)
	g.GET("/reviews/:id", h.GetReview)
	g.PUT("/reviews/:id", h.UpdateReview)
	g.DELETE("/reviews/:id", h.DeleteReview)
	g.GET("/reviews/film/:tmdbId", h.GetReviewsByFilm)
	g.GET("/reviews/profile/:id", h.GetReviewsByProfile)
}

// reviewView is a review joined with its author and like state for display.
type reviewView struct {
	models.Review
	Author    models.ProfileSummary `json:"author"`
	Likes     int64                 `json:"likes"`
	LikedByMe bool                  `json:"liked_by_me"`
}

// CreateReview posts a review for a TMDB title. The film row is created
// locally on first contact; one review per profile and film.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	viewer := middleware.MustViewer(c)

	var req models.CreateReviewRequest
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

	if _, err := h.reviewRepository.GetReviewByProfileAndFilm(viewer.ProfileID, film.ID); err == nil {
		return response.BadRequest(c, "You have already reviewed this film")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.ServerError(c, "Failed to check existing review")
	}

	review := &models.Review{
		ProfileID: viewer.ProfileID,
		FilmID:    film.ID,
		Rating:    req.Rating,
		Body:      req.Body,
	}
	if err := h.reviewRepository.CreateReview(review); err != nil {
		return response.ServerError(c, "Failed to create review")
	}
	return response.Created(c, "Review created", review)
}

// GetReview returns a single review with author and like state.
func (h *ReviewHandler) GetReview(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	review, err := h.reviewRepository.GetReviewByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Review not found")
		}
		return response.ServerError(c, "Failed to load review")
	}

	views, err := h.decorate(c, []models.Review{*review})
	if err != nil {
		return response.ServerError(c, "Failed to load review")
	}
	return response.OK(c, "", views[0])
}

// UpdateReview edits the viewer's own review.
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	viewer := middleware.MustViewer(c)
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req models.UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.New().Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	review, err := h.reviewRepository.GetReviewByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Review not found")
		}
		return response.ServerError(c, "Failed to load review")
	}
	if review.ProfileID != viewer.ProfileID {
		return response.Forbidden(c, "You can only edit your own reviews")
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Body != nil {
		review.Body = *req.Body
	}
	if err := h.reviewRepository.UpdateReview(review); err != nil {
		return response.ServerError(c, "Failed to update review")
	}
	return response.OK(c, "Review updated", review)
}

// DeleteReview removes the viewer's own review.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	viewer := middleware.MustViewer(c)
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.reviewRepository.DeleteReview(id, viewer.ProfileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Review not found")
		}
		return response.ServerError(c, "Failed to delete review")
	}
	return response.OK(c, "Review deleted", nil)
}

// GetReviewsByFilm lists reviews for a TMDB title, newest first.
func (h *ReviewHandler) GetReviewsByFilm(c echo.Context) error {
	tmdbID, err := pathID(c, "tmdbId")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	limit, offset, err := pageParams(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	film, err := h.filmRepository.GetByTmdbID(int(tmdbID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.OK(c, "", []reviewView{})
		}
		return response.ServerError(c, "Failed to load film")
	}

	reviews, err := h.reviewRepository.GetReviewsByFilm(film.ID, limit, offset)
	if err != nil {
		return response.ServerError(c, "Failed to load reviews")
	}
	views, err := h.decorate(c, reviews)
	if err != nil {
		return response.ServerError(c, "Failed to load reviews")
	}
	return response.OK(c, "", views)
}

// GetReviewsByProfile lists a profile's reviews, newest first.
func (h *ReviewHandler) GetReviewsByProfile(c echo.Context) error {
	profileID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	limit, offset, err := pageParams(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	reviews, err := h.reviewRepository.GetReviewsByProfile(profileID, limit, offset)
	if err != nil {
		return response.ServerError(c, "Failed to load reviews")
	}
	views, err := h.decorate(c, reviews)
	if err != nil {
		return response.ServerError(c, "Failed to load reviews")
	}
	return response.OK(c, "", views)
}

// decorate joins reviews with author summaries, like counts and, when a
// viewer context is present, the viewer's own like state.
func (h *ReviewHandler) decorate(c echo.Context, reviews []models.Review) ([]reviewView, error) {
	views := make([]reviewView, 0, len(reviews))
	if len(reviews) == 0 {
		return views, nil
	}

	profileIDs := make([]uint, 0, len(reviews))
	reviewIDs := make([]uint, 0, len(reviews))
	for _, r := range reviews {
		profileIDs = append(profileIDs, r.ProfileID)
		reviewIDs = append(reviewIDs, r.ID)
	}

	authors, err := h.profileRepository.SummariesByIDs(profileIDs)
	if err != nil {
		return nil, err
	}

	liked := map[uint]bool{}
	if viewer, ok := middleware.Viewer(c); ok {
		liked, err = h.likeRepository.LikedReviewIDs(viewer.ProfileID, reviewIDs)
		if err != nil {
			return nil, err
		}
	}

	for _, r := range reviews {
		count, err := h.likeRepository.CountForReview(r.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, reviewView{
			Review:    r,
			Author:    authors[r.ProfileID],
			Likes:     count,
			LikedByMe: liked[r.ID],
		})
	}
	return views, nil
}
