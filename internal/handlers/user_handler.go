package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/zubairahm3d/pak-style-backend/internal/models"
	"github.com/zubairahm3d/pak-style-backend/internal/repository"
)

type userApplicationService interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, input repository.UpdateUserInput) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ChangePassword(ctx context.Context, id int64, oldPassword, newPassword, confirm string) error
	BrandApproval(ctx context.Context, id int64, decision string) (*models.User, error)
	AddPortfolioImages(ctx context.Context, id int64, urls []string) (*models.User, error)
	RemovePortfolioImage(ctx context.Context, id int64, url string) (*models.User, error)
	GetPortfolio(ctx context.Context, id int64) ([]string, error)
}

type UserHandler struct {
	service userApplicationService
}

func NewUserHandler(service userApplicationService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	user, err := h.service.GetUser(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

type updateUserRequest struct {
	Name     string         `json:"name"`
	Username string         `json:"username"`
	Phone    string         `json:"phone"`
	Website  string         `json:"website"`
	Address  models.Address `json:"address"`
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.service.UpdateUser(c.Context(), id, repository.UpdateUserInput{
		Name:     req.Name,
		Username: req.Username,
		Phone:    req.Phone,
		Website:  req.Website,
		Address:  req.Address,
	})
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	if err := h.service.DeleteUser(c.Context(), id); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

type changePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	err = h.service.ChangePassword(c.Context(), id, req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

type brandApprovalRequest struct {
	Decision string `json:"decision"`
}

// BrandApproval resolves a pending brand signup with an accept or reject
// decision.
func (h *UserHandler) BrandApproval(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req brandApprovalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.service.BrandApproval(c.Context(), id, req.Decision)
	if err != nil {
		return mapServiceError(c, err)
	}

	if req.Decision == "reject" {
		return c.JSON(fiber.Map{"message": "Brand account rejected and removed"})
	}
	return c.JSON(fiber.Map{"message": "Brand account activated", "user": user})
}

type portfolioRequest struct {
	Images []string `json:"images"`
}

func (h *UserHandler) GetPortfolio(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	images, err := h.service.GetPortfolio(c.Context(), id)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"portfolio_images": images})
}

func (h *UserHandler) AddPortfolioImages(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req portfolioRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.service.AddPortfolioImages(c.Context(), id, req.Images)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"portfolio_images": user.PortfolioImages})
}

type removePortfolioImageRequest struct {
	Image string `json:"image"`
}

func (h *UserHandler) RemovePortfolioImage(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req removePortfolioImageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.service.RemovePortfolioImage(c.Context(), id, req.Image)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"portfolio_images": user.PortfolioImages})
}
