package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/zubairahm3d/pak-style-backend/internal/models"
	"github.com/zubairahm3d/pak-style-backend/internal/repository"
)

type DesignerHandler struct {
	designerRepo *repository.DesignerRepository
}

func NewDesignerHandler(designerRepo *repository.DesignerRepository) *DesignerHandler {
	return &DesignerHandler{designerRepo: designerRepo}
}

func (h *DesignerHandler) List(c *fiber.Ctx) error {
	designers, err := h.designerRepo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to list designers"})
	}
	return c.JSON(fiber.Map{"designers": designers})
}

func (h *DesignerHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid designer id"})
	}

	designer, err := h.designerRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Designer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}
	return c.JSON(fiber.Map{"designer": designer})
}

func (h *DesignerHandler) Create(c *fiber.Ctx) error {
	var designer models.Designer
	if err := c.BodyParser(&designer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if designer.Name == "" || designer.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name and email are required"})
	}

	designer.DesignerID = uuid.NewString()
	if err := h.designerRepo.Create(c.Context(), &designer); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create designer"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"designer": designer})
}

func (h *DesignerHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid designer id"})
	}

	var designer models.Designer
	if err := c.BodyParser(&designer); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := h.designerRepo.Update(c.Context(), id, &designer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Designer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to update designer"})
	}
	return c.JSON(fiber.Map{"designer": updated})
}

func (h *DesignerHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid designer id"})
	}

	if err := h.designerRepo.Delete(c.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Designer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to delete designer"})
	}
	return c.JSON(fiber.Map{"message": "Designer deleted successfully"})
}
