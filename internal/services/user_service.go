package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/zubairahm3d/pak-style-backend/internal/models"
	"github.com/zubairahm3d/pak-style-backend/internal/repository"
	"github.com/zubairahm3d/pak-style-backend/pkg/utils"
)

var ErrWrongPassword = errors.New("wrong password")

type UserService struct {
	userRepo *repository.UserRepository
	mailer   Mailer
}

func NewUserService(userRepo *repository.UserRepository, mailer Mailer) *UserService {
	return &UserService{userRepo: userRepo, mailer: mailer}
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, refErr(err, ErrUserNotFound)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, input repository.UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.Update(ctx, id, input)
	if err != nil {
		return nil, refErr(err, ErrUserNotFound)
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return refErr(err, ErrUserNotFound)
	}
	return nil
}

// ChangePassword verifies the old password before storing the new hash.
func (s *UserService) ChangePassword(ctx context.Context, id int64, oldPassword, newPassword, confirm string) error {
	if newPassword == "" || newPassword != confirm {
		return ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return refErr(err, ErrUserNotFound)
	}
	if !utils.CheckPassword(oldPassword, user.PasswordHash) {
		return ErrWrongPassword
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, id, hashed)
}

// BrandApproval resolves a pending brand signup: accept activates the
// account, reject removes it. Either way the applicant is notified; mail
// failure is logged, the decision stands.
func (s *UserService) BrandApproval(ctx context.Context, id int64, decision string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, refErr(err, ErrUserNotFound)
	}

	switch decision {
	case "accept":
		if err := s.userRepo.SetStatus(ctx, id, "active"); err != nil {
			return nil, err
		}
		user.Status = "active"
		s.notify(user.Email, "Pak Style Brand Account Activation", fmt.Sprintf(
			"Dear %s,\n\nYour brand account has been activated successfully. You can now log in using your email and password.\n\nBest regards,\nPak Style Team",
			user.Name,
		))
		return user, nil
	case "reject":
		if err := s.userRepo.Delete(ctx, id); err != nil {
			return nil, err
		}
		s.notify(user.Email, "Pak Style Brand Account Rejection", fmt.Sprintf(
			"Dear %s,\n\nWe regret to inform you that your brand account cannot be created at this time. Please try again later.\n\nBest regards,\nPak Style Team",
			user.Name,
		))
		return user, nil
	default:
		return nil, ErrInvalidInput
	}
}

func (s *UserService) AddPortfolioImages(ctx context.Context, id int64, urls []string) (*models.User, error) {
	if len(urls) == 0 {
		return nil, ErrInvalidInput
	}
	if err := s.userRepo.AddPortfolioImages(ctx, id, urls); err != nil {
		return nil, refErr(err, ErrUserNotFound)
	}
	return s.GetUser(ctx, id)
}

func (s *UserService) RemovePortfolioImage(ctx context.Context, id int64, url string) (*models.User, error) {
	if url == "" {
		return nil, ErrInvalidInput
	}
	if err := s.userRepo.RemovePortfolioImage(ctx, id, url); err != nil {
		return nil, refErr(err, ErrUserNotFound)
	}
	return s.GetUser(ctx, id)
}

func (s *UserService) GetPortfolio(ctx context.Context, id int64) ([]string, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, refErr(err, ErrUserNotFound)
	}
	if user.PortfolioImages == nil {
		return []string{}, nil
	}
	return user.PortfolioImages, nil
}

func (s *UserService) notify(to, subject, body string) {
	if s.mailer == nil || to == "" {
		return
	}
	if err := s.mailer.Send(to, subject, body); err != nil {
		log.Printf("user mail to %s: %v", to, err)
	}
}
