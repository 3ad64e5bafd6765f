package handler

import (
	"errors"

	"inventory-spa/internal/middleware"
	"inventory-spa/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	service service.StockService
}

func NewStockHandler(s service.StockService) *StockHandler {
	return &StockHandler{service: s}
}

// CreateStock stores one stock item and its optional image
// POST /api/stock (multipart: name, purchasePrice|price, quantity, date, image)
func (h *StockHandler) CreateStock(c *fiber.Ctx) error {
	in, err := service.ParseStockForm(formValue(c))
	if err != nil {
		return message(c, fiber.StatusBadRequest, validationMessage(err))
	}

	// A request without a file is stored with an empty image reference
	image, _ := c.FormFile("image")

	_, err = h.service.CreateStock(c.UserContext(), in, image, middleware.Username(c))
	switch {
	case err == nil:
		return message(c, fiber.StatusOK, "Stock added successfully")
	case errors.Is(err, service.ErrValidation):
		return message(c, fiber.StatusBadRequest, validationMessage(err))
	default:
		return serverError(c, "create stock", err)
	}
}

// GetStock lists every stock item
// GET /api/stock
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	items, err := h.service.GetAllStock(c.UserContext())
	if err != nil {
		return serverError(c, "list stock", err)
	}
	return c.JSON(items)
}
