package usecase

import (
	"context"
	"time"

	"tubenotes/domain/model"
	"tubenotes/domain/repository"
	"tubenotes/infrastructure/logger"
	"tubenotes/infrastructure/utils"
)

const sessionTTL = 30 * 24 * time.Hour

// IUserUsecase handles account upsert from the OAuth callback and session
// token issuance.
type IUserUsecase interface {
	// LoginWithGoogle creates the account on first login, refreshes the
	// Drive token pair and lastLogin on subsequent ones, and returns the
	// user together with a signed session JWT.
	LoginWithGoogle(ctx context.Context, googleID, email, name, accessToken, refreshToken string) (*model.User, string, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

type UserUsecase struct {
	userRepo  repository.IUser
	secretKey string
}

func NewUserUsecase(userRepo repository.IUser, secretKey string) IUserUsecase {
	return &UserUsecase{userRepo: userRepo, secretKey: secretKey}
}

func (u *UserUsecase) LoginWithGoogle(ctx context.Context, googleID, email, name, accessToken, refreshToken string) (*model.User, string, error) {
	if googleID == "" {
		return nil, "", newValidationError("google id is required")
	}

	user, err := u.userRepo.GetByGoogleID(ctx, googleID)
	if err != nil {
		return nil, "", err
	}
	now := utils.GetCurrentTime()
	if user == nil {
		user = &model.User{
			GoogleID:  googleID,
			Email:     email,
			Name:      name,
			CreatedAt: now,
		}
	}
	user.Email = email
	user.Name = name
	user.AccessToken = accessToken
	// A repeated consent flow may omit the refresh token; keep the stored one.
	if refreshToken != "" {
		user.RefreshToken = refreshToken
	}
	user.LastLogin = now

	saved, err := u.userRepo.Upsert(ctx, user)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("User upsert failed during login")
		return nil, "", err
	}

	token, err := utils.GenerateToken(map[string]interface{}{
		"userId":   saved.ID.Hex(),
		"googleId": saved.GoogleID,
		"email":    saved.Email,
		"exp":      now.Add(sessionTTL).Unix(),
	}, u.secretKey)
	if err != nil {
		return nil, "", err
	}
	return saved, token, nil
}

func (u *UserUsecase) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}
