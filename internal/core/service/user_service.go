package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/farmaplus/pharmacy-api/internal/core/domain"
	"github.com/farmaplus/pharmacy-api/internal/core/ports"
)

// UserService implements account administration. Route-level RBAC already
// restricts every operation here to admins.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// List returns all accounts. Password hashes never leave the domain type's
// json:"-" boundary.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         input.Role,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("role", created.Role).Msg("user created")
	return created, nil
}

// Update mutates username/role and, when a new password is provided, the
// credential secret. Tokens issued before the change keep their old role
// claim until they expire.
func (s *UserService) Update(ctx context.Context, input ports.UpdateUserInput) (*domain.User, error) {
	if input.Username == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(input.Role) {
		return nil, domain.ErrInvalidRole
	}

	user := &domain.User{
		ID:       input.ID,
		Username: input.Username,
		Role:     input.Role,
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", updated.ID).Str("role", updated.Role).Msg("user updated")
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}
