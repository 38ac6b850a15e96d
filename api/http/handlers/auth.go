package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shiptrack/api/api/http/presenter"
	"github.com/shiptrack/api/pkg/auth"
	"github.com/shiptrack/api/pkg/logging"
	"github.com/shiptrack/api/pkg/security/jwt"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
	log     logging.Logger
}

func NewAuthHandler(useCase auth.AuthUseCase, log logging.Logger) *AuthHandler {
	return &AuthHandler{useCase: useCase, log: log}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Message  string `json:"message,omitempty"`
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

type profileResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// Register handles user registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "registration payload"
// @Success 201 {object} authResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	result, err := h.useCase.Register(c.UserContext(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrValidation):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrUserAlreadyExists):
			return presenter.Error(c, http.StatusBadRequest, "User already exists")
		default:
			return presenter.Internal(c, h.log, "register failed", err)
		}
	}

	return presenter.JSON(c, http.StatusCreated, authResponse{
		Message:  "User registered successfully",
		ID:       result.User.ID.String(),
		Username: result.User.Username,
		Token:    result.Token,
	})
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body credentialsRequest true "login payload"
// @Success 200 {object} authResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "username and password are required")
	}

	result, err := h.useCase.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return presenter.Error(c, http.StatusBadRequest, "Invalid credentials")
		}
		return presenter.Internal(c, h.log, "login failed", err)
	}

	return presenter.JSON(c, http.StatusOK, authResponse{
		ID:       result.User.ID.String(),
		Username: result.User.Username,
		Token:    result.Token,
	})
}

// Logout is stateless: tokens stay valid until they expire, the client
// simply discards its copy.
// @Summary Logout
// @Tags    auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router  /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, fiber.Map{"message": "Logged out successfully"})
}

// Me returns the identity bound to the bearer token.
// @Summary  Current user
// @Tags     auth
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} profileResponse
// @Failure  401 {object} presenter.ErrorResponse
// @Failure  404 {object} presenter.ErrorResponse
// @Router   /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := jwt.SubjectFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "Not authorized")
	}
	user, err := h.useCase.Profile(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "User not found")
		}
		return presenter.Internal(c, h.log, "profile lookup failed", err)
	}
	return presenter.JSON(c, http.StatusOK, profileResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
}
