package user

import (
	"time"

	"github.com/MohdOwais22/subaku-backend/internal/domain/asset"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is the account aggregate. Email is stored lower-cased and unique.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Avatar       asset.Image

	// ResetPasswordToken holds the sha256 hex of the emailed token. It is
	// set and cleared together with ResetPasswordExpire.
	ResetPasswordToken  *string
	ResetPasswordExpire *time.Time

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) SetResetToken(hash string, expiresAt time.Time) {
	u.ResetPasswordToken = &hash
	u.ResetPasswordExpire = &expiresAt
}

func (u *User) ClearResetToken() {
	u.ResetPasswordToken = nil
	u.ResetPasswordExpire = nil
}

// HasValidResetToken reports whether hash matches a pending reset that
// expires strictly after now.
func (u *User) HasValidResetToken(hash string, now time.Time) bool {
	if u.ResetPasswordToken == nil || u.ResetPasswordExpire == nil {
		return false
	}
	return *u.ResetPasswordToken == hash && u.ResetPasswordExpire.After(now)
}
