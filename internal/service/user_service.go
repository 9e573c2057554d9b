package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"twofa-api/internal/domain"
	"twofa-api/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// UserService resuelve consultas de usuarios para endpoints protegidos.
type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Get(ctx context.Context, id int64) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}
