package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finance/internal/errors"
	"finance/internal/middleware"
	"finance/internal/models"
	"finance/internal/services"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
	sessions     *middleware.SessionManager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer, auditService services.AuditServicer, sessions *middleware.SessionManager) *AuthHandler {
	return &AuthHandler{userService: userService, auditService: auditService, sessions: sessions}
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,email,max=255"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
	FullName    string `json:"full_name" binding:"required,max=100"`
	PhoneNumber string `json:"phone_number" binding:"required,max=30"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

// AuthResponse represents the login response. The token is also set as the
// session cookie.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		FullName:    user.FullName,
		PhoneNumber: user.PhoneNumber,
	}
}

// Register handles user registration
// @Summary     Register a new user
// @Description Register a new user; the default categories are created with the account
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     201 {object} UserResponse "User registered"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Username already exists"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req.Username, req.Password, req.FullName, req.PhoneNumber)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), user.ID, services.AuditActionRegister, "USER", user.ID, c.ClientIP(),
		map[string]any{"username": user.Username})

	c.JSON(http.StatusCreated, gin.H{"user": newUserResponse(user)})
}

// Login handles user login
// @Summary     Login user
// @Description Authenticate a user and start a session
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} AuthResponse "User authenticated, session cookie set"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := h.sessions.Issue(user.Username)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	h.sessions.SetCookie(c, token)

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: newUserResponse(user)})
}

// Logout ends the session
// @Summary     Logout user
// @Description Clear the session cookie
// @Tags        auth
// @Produce     json
// @Success     200 {object} MessageResponse "Logged out"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.ClearCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// GetProfile returns the user's profile
// @Summary     Get user profile
// @Description Get the authenticated user's profile information
// @Tags        user
// @Accept      json
// @Produce     json
// @Security    SessionCookie
// @Success     200 {object} UserResponse "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /users/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}
