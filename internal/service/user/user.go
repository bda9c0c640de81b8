package user

import (
	"context"
	"fmt"

	"github.com/osokin/authgate/internal/models"
	"github.com/osokin/authgate/internal/repository"
	"github.com/osokin/authgate/internal/service/auth"
)

type Service struct {
	hasher auth.PasswordHasher
	users  repository.UserRepo
}

func NewService(hasher auth.PasswordHasher, users repository.UserRepo) *Service {
	if hasher == nil {
		hasher = auth.DefaultHasher
	}

	return &Service{
		hasher: hasher,
		users:  users,
	}
}

// Register creates a user with the default base role.
// Duplicate nickname: apperrors.ErrUserAlreadyExists
func (s *Service) Register(ctx context.Context, username string, nickname string, password string) (models.User, error) {
	var user models.User

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return user, fmt.Errorf("can't use this as password. Err: %w", err)
	}

	user, err = s.users.Create(ctx, repository.CreateUserParams{
		Username:       username,
		Nickname:       nickname,
		HashedPassword: hash,
		Roles:          []string{models.RoleUser},
	})
	if err != nil {
		return user, fmt.Errorf("can't create user. Err: %w", err)
	}

	return user, nil
}

// GetByNickname returns the user behind a handle.
// Unknown handle: apperrors.ErrUserNotFound
func (s *Service) GetByNickname(ctx context.Context, nickname string) (models.User, error) {
	user, err := s.users.GetByNickname(ctx, nickname)
	if err != nil {
		return user, fmt.Errorf("can't get user. Err: %w", err)
	}

	return user, nil
}
