package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/zubairahm3d/pak-style-backend/internal/models"
	"github.com/zubairahm3d/pak-style-backend/internal/repository"
)

type BrandHandler struct {
	brandRepo *repository.BrandRepository
}

func NewBrandHandler(brandRepo *repository.BrandRepository) *BrandHandler {
	return &BrandHandler{brandRepo: brandRepo}
}

func (h *BrandHandler) List(c *fiber.Ctx) error {
	brands, err := h.brandRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list brands"})
	}
	return c.JSON(fiber.Map{"brands": brands})
}

func (h *BrandHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid brand id"})
	}

	brand, err := h.brandRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Brand not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}
	return c.JSON(fiber.Map{"brand": brand})
}

func (h *BrandHandler) Create(c *fiber.Ctx) error {
	var brand models.Brand
	if err := c.BodyParser(&brand); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if brand.Name == "" || brand.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name and email are required"})
	}

	brand.BrandID = uuid.NewString()
	if err := h.brandRepo.Create(c.Context(), &brand); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create brand"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"brand": brand})
}

func (h *BrandHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid brand id"})
	}

	var brand models.Brand
	if err := c.BodyParser(&brand); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := h.brandRepo.Update(c.Context(), id, &brand)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Brand not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to update brand"})
	}
	return c.JSON(fiber.Map{"brand": updated})
}

func (h *BrandHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid brand id"})
	}

	if err := h.brandRepo.Delete(c.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Brand not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to delete brand"})
	}
	return c.JSON(fiber.Map{"message": "Brand deleted successfully"})
}
