package domain

import "time"

// User is a registered account. Email uniqueness is enforced
// case-insensitively by the backing store.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken is an opaque bearer credential recorded at issuance.
// Redemption is not exposed by this service yet; rows exist so a future
// redemption endpoint has something to rotate and revoke.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	Revoked   bool
}
