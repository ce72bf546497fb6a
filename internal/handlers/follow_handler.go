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

// FollowHandler handles follow-graph HTTP requests
type FollowHandler struct {
	followRepository  repositories.FollowRepository
	profileRepository repositories.ProfileRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, profileRepo repositories.ProfileRepository) *FollowHandler {
	return &FollowHandler{followRepository: followRepo, profileRepository: profileRepo}
}

// RegisterFollowRoutes registers follow routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follows/:id", h.Follow)
	g.DELETE("/follows/:id", h.Unfollow)
	g.GET("/follows/check/:id", h.Check)
}

// Follow creates a follow edge from the viewer to the target profile.
func (h *FollowHandler) Follow(c echo.Context) error {
	viewer := middleware.MustViewer(c)
	targetID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if targetID == viewer.ProfileID {
		return response.BadRequest(c, "Cannot follow yourself")
	}

	if _, err := h.profileRepository.GetProfileByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Profile not found")
		}
		return response.ServerError(c, "Failed to load profile")
	}

	already, err := h.followRepository.IsFollowing(viewer.ProfileID, targetID)
	if err != nil {
		return response.ServerError(c, "Failed to check follow state")
	}
	if already {
		return response.BadRequest(c, "Already following")
	}

	follow := &models.Follow{FollowerID: viewer.ProfileID, FollowingID: targetID}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		return response.ServerError(c, "Failed to follow")
	}
	return response.Created(c, "Following", follow)
}

// Unfollow removes the viewer's follow edge to the target profile.
func (h *FollowHandler) Unfollow(c echo.Context) error {
	viewer := middleware.MustViewer(c)
	targetID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.followRepository.DeleteFollow(viewer.ProfileID, targetID); err != nil {
		return response.NotFound(c, "Not following this profile")
	}
	return response.OK(c, "Unfollowed", nil)
}

// Check reports whether the viewer follows the target profile; public, so
// it answers false without a viewer context.
func (h *FollowHandler) Check(c echo.Context) error {
	targetID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	viewer, ok := middleware.Viewer(c)
	if !ok {
		return response.OK(c, "", echo.Map{"following": false})
	}

	following, err := h.followRepository.IsFollowing(viewer.ProfileID, targetID)
	if err != nil {
		return response.ServerError(c, "Failed to check follow state")
	}
	return response.OK(c, "", echo.Map{"following": following})
}
