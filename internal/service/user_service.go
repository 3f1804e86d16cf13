package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/port"
)

// CreateMemberInput is the DTO for adding a user to a business.
type CreateMemberInput struct {
	Phone    string          `json:"phone" binding:"required,min=10,max=15"`
	Email    string          `json:"email" binding:"omitempty,email"`
	Password string          `json:"password" binding:"required,min=8"`
	FullName string          `json:"full_name" binding:"required"`
	Role     domain.UserRole `json:"role" binding:"required"`
}

// UpdateMemberInput is the DTO for updating a business user.
type UpdateMemberInput struct {
	Email    *string          `json:"email"`
	FullName *string          `json:"full_name"`
	Role     *domain.UserRole `json:"role"`
	IsActive *bool            `json:"is_active"`
}

// UserService manages the users of a business.
type UserService interface {
	Create(ctx context.Context, businessID uuid.UUID, input CreateMemberInput) (*domain.User, error)
	GetByID(ctx context.Context, businessID, userID uuid.UUID) (*domain.User, error)
	List(ctx context.Context, businessID uuid.UUID, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, businessID, userID uuid.UUID, input UpdateMemberInput) (*domain.User, error)
}

type userService struct {
	repo port.UserRepository
}

// NewUserService creates a new UserService implementation.
func NewUserService(repo port.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Create(ctx context.Context, businessID uuid.UUID, input CreateMemberInput) (*domain.User, error) {
	if !domain.ValidUserRoles[input.Role] {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		BusinessID:   businessID,
		Phone:        NormalizePhone(input.Phone),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(input.FullName),
		Role:         input.Role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, businessID, userID uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, businessID, userID)
}

func (s *userService) List(ctx context.Context, businessID uuid.UUID, offset, limit int) ([]domain.User, int, error) {
	return s.repo.ListByBusiness(ctx, businessID, offset, limit)
}

func (s *userService) Update(ctx context.Context, businessID, userID uuid.UUID, input UpdateMemberInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, businessID, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = strings.TrimSpace(*input.Email)
	}
	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Role != nil {
		if !domain.ValidUserRoles[*input.Role] {
			return nil, domain.ErrInvalidRole
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
