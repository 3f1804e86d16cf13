package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"ledgerbook/internal/config"
	"ledgerbook/internal/domain"
	"ledgerbook/internal/port"
)

const (
	audienceAccess  = "access"
	audienceRefresh = "refresh"
)

// Claims represents the JWT claims with business context.
type Claims struct {
	jwt.RegisteredClaims
	BusinessID uuid.UUID       `json:"business_id"`
	UserID     uuid.UUID       `json:"user_id"`
	Phone      string          `json:"phone"`
	Role       domain.UserRole `json:"role"`
}

// TokenPair holds access and refresh tokens.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// LoginInput is the DTO for login requests.
type LoginInput struct {
	Phone    string `json:"phone" binding:"required,min=10,max=15"`
	Password string `json:"password" binding:"required,min=8"`
}

// RefreshInput is the DTO for token refresh requests.
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthService defines the authentication contract.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	ValidateToken(tokenString string) (*Claims, error)
	IssueTokens(user *domain.User) (*TokenPair, error)
}

type authService struct {
	userRepo     port.UserRepository
	businessRepo port.BusinessRepository
	cfg          config.JWTConfig
}

// NewAuthService creates a new AuthService implementation.
func NewAuthService(
	userRepo port.UserRepository,
	businessRepo port.BusinessRepository,
	cfg config.JWTConfig,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		businessRepo: businessRepo,
		cfg:          cfg,
	}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*TokenPair, error) {
	user, err := s.userRepo.GetByPhone(ctx, NormalizePhone(input.Phone))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := s.checkActive(ctx, user); err != nil {
		return nil, err
	}

	return s.IssueTokens(user)
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.validateTokenString(refreshToken, audienceRefresh)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, claims.BusinessID, claims.UserID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if err := s.checkActive(ctx, user); err != nil {
		return nil, err
	}

	return s.IssueTokens(user)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	return s.validateTokenString(tokenString, audienceAccess)
}

func (s *authService) checkActive(ctx context.Context, user *domain.User) error {
	if !user.IsActive {
		return domain.ErrUserInactive
	}
	business, err := s.businessRepo.GetByID(ctx, user.BusinessID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUnauthorized
		}
		return fmt.Errorf("auth: loading business: %w", err)
	}
	if !business.IsActive {
		return domain.ErrBusinessInactive
	}
	return nil
}

// IssueTokens signs a fresh access and refresh token pair for user.
func (s *authService) IssueTokens(user *domain.User) (*TokenPair, error) {
	now := time.Now()
	accessExpiry := now.Add(s.cfg.AccessTokenExpiry)

	accessToken, err := s.sign(user, now, accessExpiry, audienceAccess)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}
	refreshToken, err := s.sign(user, now, now.Add(s.cfg.RefreshTokenExpiry), audienceRefresh)
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpiry,
	}, nil
}

func (s *authService) sign(user *domain.User, now, expiry time.Time, audience string) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{audience},
		},
		BusinessID: user.BusinessID,
		UserID:     user.ID,
		Phone:      user.Phone,
		Role:       user.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
}

func (s *authService) validateTokenString(tokenString, audience string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithAudience(audience), jwt.WithIssuer(s.cfg.Issuer))
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
