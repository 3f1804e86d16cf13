package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/port"
)

// UpdateBusinessInput is the DTO for editing the business profile.
type UpdateBusinessInput struct {
	Name          *string `json:"name" binding:"omitempty,max=255"`
	GSTRegistered *bool   `json:"gst_registered"`
	GSTIN         *string `json:"gstin" binding:"omitempty,max=15"`
	Phone         *string `json:"phone" binding:"omitempty,max=15"`
	Address       *string `json:"address" binding:"omitempty,max=500"`
}

// BusinessService manages the profile of the signed-in business.
type BusinessService interface {
	Get(ctx context.Context, businessID uuid.UUID) (*domain.Business, error)
	Update(ctx context.Context, businessID uuid.UUID, input UpdateBusinessInput) (*domain.Business, error)
}

type businessService struct {
	repo port.BusinessRepository
}

// NewBusinessService creates a new BusinessService implementation.
func NewBusinessService(repo port.BusinessRepository) BusinessService {
	return &businessService{repo: repo}
}

func (s *businessService) Get(ctx context.Context, businessID uuid.UUID) (*domain.Business, error) {
	return s.repo.GetByID(ctx, businessID)
}

func (s *businessService) Update(ctx context.Context, businessID uuid.UUID, input UpdateBusinessInput) (*domain.Business, error) {
	business, err := s.repo.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		business.Name = strings.TrimSpace(*input.Name)
	}
	if input.GSTRegistered != nil {
		business.GSTRegistered = *input.GSTRegistered
	}
	if input.GSTIN != nil {
		business.GSTIN = strings.ToUpper(strings.TrimSpace(*input.GSTIN))
	}
	if input.Phone != nil {
		business.Phone = NormalizePhone(*input.Phone)
	}
	if input.Address != nil {
		business.Address = strings.TrimSpace(*input.Address)
	}

	if business.GSTRegistered && business.GSTIN == "" {
		return nil, domain.ErrGSTINRequired
	}
	if business.GSTIN != "" && !gstinPattern.MatchString(business.GSTIN) {
		return nil, domain.ErrInvalidGSTIN
	}

	if err := s.repo.Update(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}
