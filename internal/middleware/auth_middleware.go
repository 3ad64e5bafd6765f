package middleware

import (
	"errors"
	"strings"

	"inventory-spa/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer token and stores the username in
// c.Locals("username"). It runs before the body is processed, so refused
// requests never reach the upload store.
func RequireAuth(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Extract token from "Bearer <token>"
		token := ""
		if parts := strings.Fields(c.Get(fiber.HeaderAuthorization)); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			token = parts[1]
		}

		username, err := auth.Authenticate(token)
		switch {
		case err == nil:
		case errors.Is(err, service.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No token provided"})
		default:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Invalid or expired token"})
		}

		c.Locals("username", username)
		return c.Next()
	}
}

// Username returns the name RequireAuth stored for this request.
func Username(c *fiber.Ctx) string {
	name, _ := c.Locals("username").(string)
	return name
}
