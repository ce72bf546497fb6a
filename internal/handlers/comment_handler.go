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

// CommentHandler handles review comment HTTP requests
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	reviewRepository  repositories.ReviewRepository
	profileRepository repositories.ProfileRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	reviewRepo repositories.ReviewRepository,
	profileRepo repositories.ProfileRepository,
) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		reviewRepository:  reviewRepo,
		profileRepository: profileRepo,
	}
}

// RegisterCommentRoutes registers comment routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comments", h.CreateComment)
	g.GET("/comments/review/:reviewId", h.GetCommentsByReview)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// commentView is a comment joined with its author for display.
type commentView struct {
	models.Comment
	Author models.ProfileSummary `json:"author"`
}

// CreateComment posts a reply on a review.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	viewer := middleware.MustViewer(c)

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.New().Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	if _, err := h.reviewRepository.GetReviewByID(req.ReviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Review not found")
		}
		return response.ServerError(c, "Failed to load review")
	}

	comment := &models.Comment{
		ProfileID: viewer.ProfileID,
		ReviewID:  req.ReviewID,
		Body:      req.Body,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return response.ServerError(c, "Failed to create comment")
	}
	return response.Created(c, "Comment created", comment)
}

// GetCommentsByReview lists a review's comments, oldest first.
func (h *CommentHandler) GetCommentsByReview(c echo.Context) error {
	reviewID, err := pathID(c, "reviewId")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	limit, offset, err := pageParams(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	comments, err := h.commentRepository.GetCommentsByReview(reviewID, limit, offset)
	if err != nil {
		return response.ServerError(c, "Failed to load comments")
	}

	profileIDs := make([]uint, 0, len(comments))
	for _, cm := range comments {
		profileIDs = append(profileIDs, cm.ProfileID)
	}
	authors, err := h.profileRepository.SummariesByIDs(profileIDs)
	if err != nil {
		return response.ServerError(c, "Failed to load comments")
	}

	views := make([]commentView, 0, len(comments))
	for _, cm := range comments {
		views = append(views, commentView{Comment: cm, Author: authors[cm.ProfileID]})
	}
	return response.OK(c, "", views)
}

// DeleteComment removes the viewer's own comment.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	viewer := middleware.MustViewer(c)
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.commentRepository.DeleteComment(id, viewer.ProfileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Comment not found")
		}
		return response.ServerError(c, "Failed to delete comment")
	}
	return response.OK(c, "Comment deleted", nil)
}
