package port

import (
	"context"

	"github.com/google/uuid"

	"ledgerbook/internal/domain"
)

// BusinessRepository defines the contract for business persistence.
type BusinessRepository interface {
	Create(ctx context.Context, business *domain.Business) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	Update(ctx context.Context, business *domain.Business) error
}

// UserRepository defines the contract for user persistence.
// Phone numbers are unique across all businesses.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, businessID, userID uuid.UUID) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
}

// Registrar creates a business together with its first user atomically.
type Registrar interface {
	CreateBusinessWithOwner(ctx context.Context, business *domain.Business, owner *domain.User) error
}
