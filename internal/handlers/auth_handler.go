package handlers

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/mail"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zubairahm3d/pak-style-backend/internal/models"
	"github.com/zubairahm3d/pak-style-backend/internal/repository"
	"github.com/zubairahm3d/pak-style-backend/internal/services"
	"github.com/zubairahm3d/pak-style-backend/pkg/utils"
)

const defaultProfilePicture = "https://res.cloudinary.com/drhzmuvil/image/upload/v1726947332/profile_pictures/fp6pmmmtbc5xcgiiukhp.png"

type AuthHandler struct {
	userRepo  *repository.UserRepository
	mailer    services.Mailer
	jwtSecret string
}

func NewAuthHandler(userRepo *repository.UserRepository, mailer services.Mailer, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepo:  userRepo,
		mailer:    mailer,
		jwtSecret: jwtSecret,
	}
}

type signupRequest struct {
	Name     string         `json:"name"`
	Username string         `json:"username"`
	Email    string         `json:"email"`
	Password string         `json:"password"`
	UserType string         `json:"user_type"`
	Phone    string         `json:"phone"`
	Website  string         `json:"website"`
	Address  models.Address `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	parsedEmail, err := mail.ParseAddress(strings.TrimSpace(req.Email))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email format"})
	}
	req.Email = strings.ToLower(parsedEmail.Address)
	if len(req.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Password must be at least 8 characters"})
	}
	switch req.UserType {
	case "user", "designer", "brand":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user type"})
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to hash password"})
	}

	// Brand accounts stay pending until an admin approves them.
	status := "active"
	if req.UserType == "brand" {
		status = "pending"
	}

	user := &models.User{
		PublicID:       uuid.NewString(),
		Name:           req.Name,
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   hashed,
		UserType:       req.UserType,
		ProfilePicture: defaultProfilePicture,
		Address:        req.Address,
		Phone:          req.Phone,
		Website:        req.Website,
		Status:         status,
	}
	if err := h.userRepo.Create(c.Context(), user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"error": "Email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create user"})
	}

	token, err := utils.GenerateToken(strconv.FormatInt(user.ID, 10), user.UserType, h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Email or password not provided"})
	}

	user, err := h.userRepo.GetByEmail(c.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"error": "Invalid email or password"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}

	if user.Status != "active" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Your account is not active. Please contact support or wait for approval.",
		})
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"error": "Invalid email or password"})
	}

	token, err := utils.GenerateToken(strconv.FormatInt(user.ID, 10), user.UserType, h.jwtSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"token":     token,
		"user_type": user.UserType,
		"id":        user.ID,
	})
}

type resetPasswordRequest struct {
	RecipientEmail string `json:"recipient_email"`
}

// ResetPassword issues a fresh random password and mails it to the user.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.userRepo.GetByEmail(c.Context(), strings.ToLower(strings.TrimSpace(req.RecipientEmail)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}

	newPassword := randomPassword(8)
	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to hash password"})
	}
	if err := h.userRepo.UpdatePassword(c.Context(), user.ID, hashed); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to reset password"})
	}

	if h.mailer != nil {
		body := fmt.Sprintf(
			"Dear %s,\n\nYour password has been reset. Your new password is: %s\n\nBest regards,\nPak Style Team",
			user.Name, newPassword,
		)
		if err := h.mailer.Send(user.Email, "Pak Style Password Reset", body); err != nil {
			log.Printf("password reset mail to %s: %v", user.Email, err)
		}
	}

	return c.JSON(fiber.Map{"message": "Password reset successfully. Check your email."})
}

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomPassword(length int) string {
	out := make([]byte, length)
	for i := range out {
		out[i] = passwordCharset[rand.Intn(len(passwordCharset))]
	}
	return string(out)
}
