package ports

import (
	"context"

	"github.com/99minutos/job-board/internal/core/domain"
)

// AuthRepository defines the interface for account persistence.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByRole returns every account holding role, oldest first.
	FindByRole(ctx context.Context, role string) ([]*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
