package ports

import (
	"context"

	"github.com/farmaplus/pharmacy-api/internal/core/domain"
)

// CreateUserInput carries the fields needed to create an account.
type CreateUserInput struct {
	Username string
	Password string
	Role     string
}

// UpdateUserInput carries the mutable account fields. Password is optional;
// when empty the stored credential secret is left unchanged.
type UpdateUserInput struct {
	ID       int64
	Username string
	Password string
	Role     string
}

// UserService defines admin-only account administration.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
