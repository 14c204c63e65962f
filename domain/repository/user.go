package repository

import (
	"context"

	"tubenotes/domain/model"
)

// IUser persists user accounts created from the Google OAuth callback.
type IUser interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	// Upsert creates the user on first login and refreshes the token pair
	// and lastLogin on subsequent ones.
	Upsert(ctx context.Context, user *model.User) (*model.User, error)
}
