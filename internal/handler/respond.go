package handler

import (
	"log"

	"inventory-spa/internal/service"

	"github.com/gofiber/fiber/v2"
)

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

// serverError logs err and answers with a generic 500.
func serverError(c *fiber.Ctx, op string, err error) error {
	log.Printf("%s %s: %s: %v", c.Method(), c.Path(), op, err)
	return message(c, fiber.StatusInternalServerError, "Server error")
}

func validationMessage(err error) string {
	return service.ValidationDetail(err)
}

func formValue(c *fiber.Ctx) func(string) string {
	return func(key string) string { return c.FormValue(key) }
}
