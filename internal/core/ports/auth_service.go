package ports

import (
	"context"

	"github.com/99minutos/job-board/internal/core/domain"
)

// RegisterInput carries the fields accepted on registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Picture  string
}

// Authenticator resolves a bearer token to the account it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type AuthService interface {
	Authenticator
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
