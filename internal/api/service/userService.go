package service

import (
	"context"
	"errors"

	"nightshelf/internal/api/models"
	"nightshelf/internal/api/repository"
)

var ErrCannotDeleteAdmin = errors.New("cannot delete admin users")

type UserService interface {
	List(ctx context.Context, page, limit int) ([]models.User, int64, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) List(ctx context.Context, page, limit int) ([]models.User, int64, error) {
	return s.repo.List(ctx, page, limit)
}

// Delete removes a reader account. Admin accounts are protected; their
// removal is always refused.
func (s *userService) Delete(ctx context.Context, id string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return ErrUserNotFound
	}
	if user.IsAdmin() {
		return ErrCannotDeleteAdmin
	}
	return s.repo.Delete(ctx, id)
}
