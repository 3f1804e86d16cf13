package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/service"
	"ledgerbook/mocks"
)

func TestUserService_Create(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)
	businessID := uuid.New()

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.Create(context.Background(), businessID, service.CreateMemberInput{
		Phone:    "+91 98765-43210",
		Password: "supersecret",
		FullName: "  Ravi Kumar ",
		Role:     domain.RoleMember,
	})

	require.NoError(t, err)
	assert.Equal(t, businessID, user.BusinessID)
	assert.Equal(t, "+919876543210", user.Phone)
	assert.Equal(t, "Ravi Kumar", user.FullName)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), service.CreateMemberInput{
		Phone: "9876543210", Password: "supersecret", FullName: "X", Role: "owner",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRole)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Update_Deactivate(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)
	businessID, userID := uuid.New(), uuid.New()

	repo.On("GetByID", mock.Anything, businessID, userID).
		Return(&domain.User{ID: userID, BusinessID: businessID, Role: domain.RoleMember, IsActive: true}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return !u.IsActive && u.Role == domain.RoleAdmin
	})).Return(nil)

	inactive, admin := false, domain.RoleAdmin
	user, err := svc.Update(context.Background(), businessID, userID, service.UpdateMemberInput{
		IsActive: &inactive,
		Role:     &admin,
	})

	require.NoError(t, err)
	assert.False(t, user.IsActive)
	repo.AssertExpectations(t)
}

func TestUserService_Update_NotFound(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo)

	repo.On("GetByID", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), service.UpdateMemberInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
