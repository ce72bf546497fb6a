package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/onlyfilms/backend/internal/middleware"
	"github.com/onlyfilms/backend/internal/models"
	"github.com/onlyfilms/backend/internal/repositories"
	"github.com/onlyfilms/backend/pkg/response"
)

// UserHandler handles HTTP requests related to profiles and account
// settings
type UserHandler struct {
	profileRepository repositories.ProfileRepository
	followRepository  repositories.FollowRepository
	userRepository    repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(profileRepo repositories.ProfileRepository, followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{profileRepository: profileRepo, followRepository: followRepo, userRepository: userRepo}
}

// RegisterUserRoutes registers profile routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users/me", h.GetMe)
	g.PUT("/users/me", h.UpdateMe)
	g.PUT("/users/me/password", h.ChangePassword)
	g.DELETE("/users/me", h.DeleteAccount)
	g.GET("/users/search", h.Search)
	g.GET("/users/username/:name", h.GetProfileByUsername)
	g.GET("/users/:id", h.GetProfile)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// GetMe returns the caller's own profile with follow counts.
func (h *UserHandler) GetMe(c echo.Context) error {
	viewer := middleware.MustViewer(c)
	profile, err := h.profileRepository.GetProfileByID(viewer.ProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Profile not found")
		}
		return response.ServerError(c, "Failed to load profile")
	}
	return h.respondWithCounts(c, profile)
}

// UpdateMe edits the caller's own profile.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	viewer := middleware.MustViewer(c)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request payload")
	}
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	profile, err := h.profileRepository.GetProfileByID(viewer.ProfileID)
	if err != nil {
		return response.NotFound(c, "Profile not found")
	}

	if req.DisplayName != "" {
		profile.DisplayName = req.DisplayName
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.AvatarURL != "" {
		profile.AvatarURL = req.AvatarURL
	}

	if err := h.profileRepository.UpdateProfile(profile); err != nil {
		return response.ServerError(c, "Failed to update profile")
	}
	return response.OK(c, "Profile updated", profile)
}

// ChangePassword rotates the caller's password after re-proving the current
// one.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	viewer := middleware.MustViewer(c)

	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request payload")
	}
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.userRepository.GetUserByID(viewer.AccountID())
	if err != nil {
		return response.ServerError(c, "Failed to load account")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return response.Unauthorized(c, "Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return response.ServerError(c, "Failed to hash password")
	}
	if err := h.userRepository.UpdatePassword(user.ID, string(hashed)); err != nil {
		return response.ServerError(c, "Failed to update password")
	}
	return response.OK(c, "Password updated", nil)
}

// DeleteAccount removes the caller's account and profile.
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	viewer := middleware.MustViewer(c)

	if err := h.profileRepository.DeleteProfileByUserID(viewer.AccountID()); err != nil {
		return response.ServerError(c, "Failed to delete account")
	}
	if err := h.userRepository.DeleteUser(viewer.AccountID()); err != nil {
		return response.ServerError(c, "Failed to delete account")
	}
	return response.OK(c, "Account deleted", nil)
}

// GetProfileByUsername looks a profile up by display name; public.
func (h *UserHandler) GetProfileByUsername(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return response.BadRequest(c, "Username required")
	}

	profile, err := h.profileRepository.GetProfileByDisplayName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Profile not found")
		}
		return response.ServerError(c, "Failed to load profile")
	}
	return h.respondWithCounts(c, profile)
}

// GetProfile returns a profile by id; public.
func (h *UserHandler) GetProfile(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	profile, err := h.profileRepository.GetProfileByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Profile not found")
		}
		return response.ServerError(c, "Failed to load profile")
	}
	return h.respondWithCounts(c, profile)
}

// Search finds profiles by display name.
func (h *UserHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return response.BadRequest(c, "Query parameter q is required")
	}

	profiles, err := h.profileRepository.SearchProfiles(query, defaultLimit)
	if err != nil {
		return response.ServerError(c, "Search failed")
	}
	return response.OK(c, "", profiles)
}

// GetFollowers lists the profiles following the given one.
func (h *UserHandler) GetFollowers(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	profiles, err := h.followRepository.GetFollowers(id)
	if err != nil {
		return response.ServerError(c, "Failed to load followers")
	}
	return response.OK(c, "", summaries(profiles))
}

// GetFollowing lists the profiles the given one follows.
func (h *UserHandler) GetFollowing(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	profiles, err := h.followRepository.GetFollowing(id)
	if err != nil {
		return response.ServerError(c, "Failed to load following")
	}
	return response.OK(c, "", summaries(profiles))
}

func (h *UserHandler) respondWithCounts(c echo.Context, profile *models.Profile) error {
	followers, err := h.followRepository.GetFollowersCount(profile.ID)
	if err != nil {
		return response.ServerError(c, "Failed to load follow counts")
	}
	following, err := h.followRepository.GetFollowingCount(profile.ID)
	if err != nil {
		return response.ServerError(c, "Failed to load follow counts")
	}

	return response.OK(c, "", echo.Map{
		"profile":         profile,
		"followers_count": followers,
		"following_count": following,
	})
}

func summaries(profiles []models.Profile) []models.ProfileSummary {
	out := make([]models.ProfileSummary, len(profiles))
	for i := range profiles {
		out[i] = profiles[i].Summary()
	}
	return out
}
