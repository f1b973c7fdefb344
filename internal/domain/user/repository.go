package user

import (
	"context"
	"time"
)

// Repository defines the interface for user persistence. Update succeeds
// only when the stored version equals u.Version and advances it.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error

	// ClearExpiredResetTokens clears every reset token pair whose expiry is
	// not after now and returns how many users were touched.
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}
