package model

import "time"

// roles known to access policy, RoleUser is granted on signup
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is user model entity
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Roles        []string
}

// RefreshToken is refresh token model entity
type RefreshToken struct {
	ID          string
	UserID      string
	Fingerprint string
	ExpiresIn   int
	CreatedAt   time.Time
}

// IsExpired verifies if token expired at the moment
func (r *RefreshToken) IsExpired(now time.Time) bool {
	return r.CreatedAt.Add(time.Duration(r.ExpiresIn) * time.Second).Before(now)
}
