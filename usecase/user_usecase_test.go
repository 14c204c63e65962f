package usecase_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"tubenotes/domain/model"
	"tubenotes/usecase"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// Upsert echoes the user with an id assigned, like the Mongo store does.
func (m *MockUserRepository) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if u, ok := args.Get(0).(*model.User); ok && u != nil {
		return u, nil
	}
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	return user, nil
}

const testSecret = "test-secret"

func TestLoginWithGoogle_FirstLoginCreatesAccount(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByGoogleID", mock.Anything, "g-1").Return(nil, nil).Once()
	userRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil, nil).Once()

	uc := usecase.NewUserUsecase(userRepo, testSecret)
	user, token, err := uc.LoginWithGoogle(context.Background(), "g-1", "u@example.com", "U", "access", "refresh")

	assert.NoError(t, err)
	assert.Equal(t, "g-1", user.GoogleID)
	assert.Equal(t, "access", user.AccessToken)
	assert.Equal(t, "refresh", user.RefreshToken)
	assert.False(t, user.LastLogin.IsZero())
	assert.NotEmpty(t, token)

	var claims model.UserClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "g-1", claims.GoogleID)
	userRepo.AssertExpectations(t)
}

func TestLoginWithGoogle_KeepsStoredRefreshTokenWhenOmitted(t *testing.T) {
	userRepo := new(MockUserRepository)
	existing := &model.User{ID: bson.NewObjectID(), GoogleID: "g-1", RefreshToken: "stored-refresh"}
	userRepo.On("GetByGoogleID", mock.Anything, "g-1").Return(existing, nil).Once()
	userRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil, nil).Once()

	uc := usecase.NewUserUsecase(userRepo, testSecret)
	user, _, err := uc.LoginWithGoogle(context.Background(), "g-1", "u@example.com", "U", "new-access", "")

	assert.NoError(t, err)
	assert.Equal(t, "new-access", user.AccessToken)
	assert.Equal(t, "stored-refresh", user.RefreshToken)
}

func TestLoginWithGoogle_EmptyGoogleIDIsValidation(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := usecase.NewUserUsecase(userRepo, testSecret)

	_, _, err := uc.LoginWithGoogle(context.Background(), "", "u@example.com", "U", "a", "r")

	assert.True(t, usecase.IsValidation(err))
	userRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUserGetByID_UnknownIsNotFound(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, "nope").Return(nil, nil).Once()

	uc := usecase.NewUserUsecase(userRepo, testSecret)
	user, err := uc.GetByID(context.Background(), "nope")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}
