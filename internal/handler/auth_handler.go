package handler

import (
	"errors"

	"inventory-spa/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// CredentialsRequest is the register and login body, as JSON or form fields.
type CredentialsRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Register creates a user account
// POST /api/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "Invalid request body")
	}

	err := h.authService.Register(c.UserContext(), req.Username, req.Password)
	switch {
	case err == nil:
		return message(c, fiber.StatusOK, "User registered successfully")
	case errors.Is(err, service.ErrValidation):
		return message(c, fiber.StatusBadRequest, "Username and password are required")
	case errors.Is(err, service.ErrConflict):
		return message(c, fiber.StatusBadRequest, "Username already exists")
	default:
		return serverError(c, "register", err)
	}
}

// Login handles user authentication
// POST /api/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrValidation):
		return message(c, fiber.StatusBadRequest, "Username and password are required")
	case errors.Is(err, service.ErrUserNotFound):
		return message(c, fiber.StatusBadRequest, "User not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		return message(c, fiber.StatusBadRequest, "Invalid password")
	default:
		return serverError(c, "login", err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"token":    resp.Token,
		"username": resp.Username,
	})
}
