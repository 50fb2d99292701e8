package domain

import "context"

// UserRepository is the user store consumed by the identity services.
// GetByEmail matches case-insensitively and returns (nil, nil) when no
// user exists for the email.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) error
}

// RefreshTokenStore records opaque refresh tokens. Only Issue is called
// by the credential issuer; RedeemAndRotate and Revoke are reserved for
// the redemption flow, which has no endpoint yet.
type RefreshTokenStore interface {
	Issue(ctx context.Context, rt *RefreshToken) error
	RedeemAndRotate(ctx context.Context, token string, next *RefreshToken) (*RefreshToken, error)
	Revoke(ctx context.Context, id string) error
}
