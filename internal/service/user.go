package service

import (
	"context"
	"fmt"

	"wordtrainer/internal/repository"
)

// UserService registers bot users
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// EnsureUser returns the internal id of the Telegram user, registering it on first contact
func (s *UserService) EnsureUser(ctx context.Context, tgID int64, username string) (int64, error) {
	id, err := s.userRepo.EnsureUser(ctx, tgID, username)
	if err != nil {
		return 0, fmt.Errorf("ensure user %d: %w", tgID, err)
	}
	return id, nil
}
