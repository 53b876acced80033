package service

import (
	"context"

	"lifelessons/internal/models"
	"lifelessons/internal/repository"
)

type UserService interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*repository.UserWithLessonCount, error)
	UpdateRole(ctx context.Context, userID, role string) error
	DeleteUser(ctx context.Context, userID string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

func (s *userService) ListUsers(ctx context.Context) ([]*repository.UserWithLessonCount, error) {
	return s.userRepo.ListWithLessonCounts(ctx)
}

func (s *userService) UpdateRole(ctx context.Context, userID, role string) error {
	return s.userRepo.UpdateRole(ctx, userID, role)
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	return s.userRepo.Delete(ctx, userID)
}
