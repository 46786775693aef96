package api

import (
	"net/http"
	"time"

	"trainlog/workout-app/internal/domain"
	"trainlog/workout-app/internal/service"
	"trainlog/workout-app/internal/validation"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
	validator   *validation.Validator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, validator *validation.Validator) *AuthHandler {
	return &AuthHandler{authService: authService, validator: validator}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,contains_upper,contains_digit,contains_special"`
	Username string `json:"username"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a user. Never carries the hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// --- Handler Methods ---

// Register creates a new user account.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("Invalid request body"))
		return
	}
	req.Email = validation.NormalizeEmail(req.Email)
	if err := h.validator.Struct(req); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, mapUserToResponse(user))
}

// Login authenticates a user and returns a signed token.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("Invalid request body"))
		return
	}
	req.Email = validation.NormalizeEmail(req.Email)
	if err := h.validator.Struct(req); err != nil {
		respondError(c, err)
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, LoginResponse{
		Token: token,
		User:  mapUserToResponse(user),
	})
}

// Profile returns the authenticated user's public view.
// GET /api/v1/auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		respondError(c, domain.NewValidationError("User id wasn't provided"))
		return
	}

	user, err := h.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, mapUserToResponse(user))
}

// mapUserToResponse converts a domain User to its public DTO.
func mapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        user.ID.Hex(),
		Email:     user.Email,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}
