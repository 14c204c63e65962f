package model

import (
	"time"

	"github.com/golang-jwt/jwt"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is an account bound to a Google identity. The Drive token pair is
// cached here on every login; either token may be empty when the user has
// not granted (or has revoked) Drive access.
type User struct {
	ID           bson.ObjectID `json:"id"            bson:"_id,omitempty"`
	GoogleID     string        `json:"google_id"     bson:"googleId"`
	Email        string        `json:"email"         bson:"email"`
	Name         string        `json:"name"          bson:"name"`
	AccessToken  string        `json:"-"             bson:"accessToken,omitempty"`
	RefreshToken string        `json:"-"             bson:"refreshToken,omitempty"`
	LastLogin    time.Time     `json:"last_login"    bson:"lastLogin"`
	CreatedAt    time.Time     `json:"created_at"    bson:"createdAt"`
}

// HasDriveTokens reports whether both halves of the Drive credential pair are
// on file. Screenshot handling is skipped entirely when this is false.
func (u *User) HasDriveTokens() bool {
	return u != nil && u.AccessToken != "" && u.RefreshToken != ""
}

// UserClaims is the JWT payload carried by the session bearer token.
type UserClaims struct {
	UserID   string `json:"userId"`
	GoogleID string `json:"googleId"`
	Email    string `json:"email"`
	jwt.StandardClaims
}
