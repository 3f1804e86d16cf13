package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/port"
)

var gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// bcryptCost is the work factor for stored password hashes.
const bcryptCost = 12

// SignupInput is the DTO for creating a business with its first user.
type SignupInput struct {
	BusinessName  string `json:"business_name" binding:"required,max=255"`
	GSTRegistered bool   `json:"gst_registered"`
	GSTIN         string `json:"gstin" binding:"max=15"`
	Address       string `json:"address" binding:"max=500"`
	FullName      string `json:"full_name" binding:"required,max=255"`
	Phone         string `json:"phone" binding:"required,min=10,max=15"`
	Email         string `json:"email" binding:"omitempty,email"`
	Password      string `json:"password" binding:"required,min=8"`
}

// SignupOutput contains the results of a successful signup.
type SignupOutput struct {
	Business *domain.Business `json:"business"`
	User     *domain.User     `json:"user"`
	Tokens   *TokenPair       `json:"tokens"`
}

// RegistrationService defines the signup contract.
type RegistrationService interface {
	Signup(ctx context.Context, input SignupInput) (*SignupOutput, error)
}

type registrationService struct {
	registrar port.Registrar
	authSvc   AuthService
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(registrar port.Registrar, authSvc AuthService) RegistrationService {
	return &registrationService{
		registrar: registrar,
		authSvc:   authSvc,
	}
}

func (s *registrationService) Signup(ctx context.Context, input SignupInput) (*SignupOutput, error) {
	gstin := strings.ToUpper(strings.TrimSpace(input.GSTIN))
	if input.GSTRegistered && gstin == "" {
		return nil, domain.ErrGSTINRequired
	}
	if gstin != "" && !gstinPattern.MatchString(gstin) {
		return nil, domain.ErrInvalidGSTIN
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	phone := NormalizePhone(input.Phone)
	business := &domain.Business{
		Name:          strings.TrimSpace(input.BusinessName),
		GSTIN:         gstin,
		GSTRegistered: input.GSTRegistered,
		Phone:         phone,
		Address:       strings.TrimSpace(input.Address),
		IsActive:      true,
	}
	user := &domain.User{
		Phone:        phone,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(input.FullName),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := s.registrar.CreateBusinessWithOwner(ctx, business, user); err != nil {
		return nil, err // ErrDuplicatePhone propagates naturally
	}

	tokens, err := s.authSvc.IssueTokens(user)
	if err != nil {
		return nil, fmt.Errorf("generating tokens: %w", err)
	}

	return &SignupOutput{
		Business: business,
		User:     user,
		Tokens:   tokens,
	}, nil
}

// NormalizePhone strips spaces, dashes and brackets from a phone number,
// keeping a leading plus sign.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
