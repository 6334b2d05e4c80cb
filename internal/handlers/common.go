package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/zubairahm3d/pak-style-backend/internal/models"
	"github.com/zubairahm3d/pak-style-backend/internal/services"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

func buildPaginationMeta(page, limit, total int) models.PaginationMeta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return models.PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

func parsePositiveInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

// requesterID resolves the authenticated user from the token claims the
// auth middleware stored on the context.
func requesterID(c *fiber.Ctx) (int64, error) {
	raw, _ := c.Locals("user_id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid user id")
	}
	return id, nil
}

func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// mapServiceError translates service sentinels into the error taxonomy
// the API promises: 400 means fix the input, 404 means the reference is
// gone, 409 means the whole request may be retried, anything else is a
// server failure.
func mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, services.ErrDesignerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Designer not found"})
	case errors.Is(err, services.ErrBrandNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Brand not found"})
	case errors.Is(err, services.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	case errors.Is(err, services.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	case errors.Is(err, services.ErrConversationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
	case errors.Is(err, services.ErrOrderAlreadyPaid):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Order has already been paid"})
	case errors.Is(err, services.ErrWrongPassword):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Incorrect old password"})
	case errors.Is(err, services.ErrDuplicateOrderID):
		return c.Status(fiber.StatusConflict).
			JSON(fiber.Map{"error": "Could not allocate an order id, please retry"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}
}
