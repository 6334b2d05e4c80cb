package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/zubairahm3d/pak-style-backend/internal/models"
	"github.com/zubairahm3d/pak-style-backend/internal/repository"
)

type ProductHandler struct {
	productRepo *repository.ProductRepository
}

func NewProductHandler(productRepo *repository.ProductRepository) *ProductHandler {
	return &ProductHandler{productRepo: productRepo}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.productRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list products"})
	}
	return c.JSON(fiber.Map{"products": products})
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product id"})
	}

	product, err := h.productRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}
	return c.JSON(fiber.Map{"product": product})
}

// ListByDateRange returns products created within the queried window.
// Dates arrive as RFC 3339 timestamps or date-only values; a date-only
// "to" covers the whole day.
func (h *ProductHandler) ListByDateRange(c *fiber.Ctx) error {
	from, _, err := parseDateParam(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid from date"})
	}
	to, dateOnly, err := parseDateParam(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid to date"})
	}
	if dateOnly {
		to = to.Add(24 * time.Hour)
	}
	if to.Before(from) {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "to must not be before from"})
	}

	products, err := h.productRepo.ListByDateRange(c.Context(), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list products"})
	}
	return c.JSON(fiber.Map{"products": products})
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if product.Name == "" || product.Price <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Name and a positive price are required"})
	}

	if err := h.productRepo.Create(c.Context(), &product); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create product"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product": product})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product id"})
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := h.productRepo.Update(c.Context(), id, &product)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to update product"})
	}
	return c.JSON(fiber.Map{"product": updated})
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product id"})
	}

	if err := h.productRepo.Delete(c.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to delete product"})
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// BackfillTimestamps stamps created_at/updated_at on rows imported
// without them. One-off maintenance endpoint.
func (h *ProductHandler) BackfillTimestamps(c *fiber.Ctx) error {
	updated, err := h.productRepo.BackfillTimestamps(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to backfill timestamps"})
	}
	return c.JSON(fiber.Map{"message": "Timestamps added", "updated": updated})
}

func parseDateParam(value string) (time.Time, bool, error) {
	if value == "" {
		return time.Time{}, false, errors.New("missing date")
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts.UTC(), false, nil
	}
	ts, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false, err
	}
	return ts.UTC(), true, nil
}
