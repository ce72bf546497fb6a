package handlers

import (
	"errors"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/onlyfilms/backend/internal/middleware"
	"github.com/onlyfilms/backend/internal/models"
	"github.com/onlyfilms/backend/internal/repositories"
	"github.com/onlyfilms/backend/pkg/response"
)

// LikeHandler handles review like HTTP requests
type LikeHandler struct {
	likeRepository   repositories.LikeRepository
	reviewRepository repositories.ReviewRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, reviewRepo repositories.ReviewRepository) *LikeHandler {
	return &LikeHandler{likeRepository: likeRepo, reviewRepository: reviewRepo}
}

// RegisterLikeRoutes registers like routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/likes/:reviewId", h.Like)
	g.DELETE("/likes/:reviewId", h.Unlike)
	g.GET("/likes/count/:reviewId", h.Count)
}

// Like records the viewer's like on a review. Liking twice is a no-op.
func (h *LikeHandler) Like(c echo.Context) error {
	viewer := middleware.MustViewer(c)
	reviewID, err := pathID(c, "reviewId")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if _, err := h.reviewRepository.GetReviewByID(reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Review not found")
		}
		return response.ServerError(c, "Failed to load review")
	}

	already, err := h.likeRepository.IsLikedBy(reviewID, viewer.ProfileID)
	if err != nil {
		return response.ServerError(c, "Failed to check like")
	}
	if already {
		return response.OK(c, "Already liked", nil)
	}

	like := &models.Like{ProfileID: viewer.ProfileID, ReviewID: reviewID}
	if err := h.likeRepository.CreateLike(like); err != nil {
		return response.ServerError(c, "Failed to like review")
	}
	return response.Created(c, "Review liked", like)
}

// Unlike removes the viewer's like from a review.
func (h *LikeHandler) Unlike(c echo.Context) error {
	viewer := middleware.MustViewer(c)
	reviewID, err := pathID(c, "reviewId")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.likeRepository.DeleteLike(viewer.ProfileID, reviewID); err != nil {
		return response.NotFound(c, "Like not found")
	}
	return response.OK(c, "Like removed", nil)
}

// Count returns a review's like count.
func (h *LikeHandler) Count(c echo.Context) error {
	reviewID, err := pathID(c, "reviewId")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	count, err := h.likeRepository.CountForReview(reviewID)
	if err != nil {
		return response.ServerError(c, "Failed to count likes")
	}
	return response.OK(c, "", echo.Map{"count": count})
}
