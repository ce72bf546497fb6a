package handlers

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/onlyfilms/backend/internal/auth"
	"github.com/onlyfilms/backend/internal/models"
	"github.com/onlyfilms/backend/internal/repositories"
	"github.com/onlyfilms/backend/pkg/response"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	userRepository    repositories.UserRepository
	profileRepository repositories.ProfileRepository
	authority         *auth.Authority
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository, authority *auth.Authority) *AuthHandler {
	return &AuthHandler{
		userRepository:    userRepo,
		profileRepository: profileRepo,
		authority:         authority,
	}
}

// RegisterAuthRoutes registers authentication routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}

// Register creates an account and its profile, then returns a token so the
// client is signed in immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	email := strings.TrimSpace(req.Email)
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		// Default display name from the email local part.
		displayName = strings.SplitN(email, "@", 2)[0]
	}

	exists, err := h.userRepository.EmailExists(email)
	if err != nil {
		return response.ServerError(c, "Failed to check email")
	}
	if exists {
		return response.BadRequest(c, "Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return response.ServerError(c, "Failed to hash password")
	}

	user := &models.User{Email: email, Password: string(hashed)}
	if err := h.userRepository.CreateUser(user); err != nil {
		return response.ServerError(c, "Failed to create user")
	}

	profile := &models.Profile{UserID: user.ID, DisplayName: displayName}
	if err := h.profileRepository.CreateProfile(profile); err != nil {
		return response.ServerError(c, "Failed to create profile")
	}

	token, err := h.authority.Issue(user.ID, profile.ID, profile.DisplayName)
	if err != nil {
		return response.ServerError(c, "Failed to generate token")
	}

	return response.Created(c, "Account created", models.AuthResponse{
		Token:       token,
		UserID:      user.ID,
		ProfileID:   profile.ID,
		Email:       user.Email,
		DisplayName: profile.DisplayName,
	})
}

// Login verifies credentials and returns a fresh token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, err := h.userRepository.GetUserByEmail(strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a bad password so logins don't probe emails.
			return response.Unauthorized(c, "Invalid email or password")
		}
		return response.ServerError(c, "Failed to look up user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return response.Unauthorized(c, "Invalid email or password")
	}

	profile, err := h.profileRepository.GetProfileByUserID(user.ID)
	if err != nil {
		return response.ServerError(c, "User profile not found")
	}

	token, err := h.authority.Issue(user.ID, profile.ID, profile.DisplayName)
	if err != nil {
		return response.ServerError(c, "Failed to generate token")
	}

	return response.OK(c, "Logged in", models.AuthResponse{
		Token:       token,
		UserID:      user.ID,
		ProfileID:   profile.ID,
		Email:       user.Email,
		DisplayName: profile.DisplayName,
	})
}
