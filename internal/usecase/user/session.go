package user

import (
	"fmt"
	"time"

	"github.com/MohdOwais22/subaku-backend/internal/config"
	domainUser "github.com/MohdOwais22/subaku-backend/internal/domain/user"
	"github.com/MohdOwais22/subaku-backend/pkg/utils"
)

// SessionIssuer signs session tokens carrying the user's id and role.
type SessionIssuer struct {
	secret string
	expiry time.Duration
}

func NewSessionIssuer(cfg config.JWTConfig) *SessionIssuer {
	return &SessionIssuer{
		secret: cfg.Secret,
		expiry: cfg.Expiry(),
	}
}

func (i *SessionIssuer) Issue(u *domainUser.User) (*AuthResponse, error) {
	token, expiresAt, err := utils.GenerateToken(u.ID, u.Role, i.secret, i.expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{
		User:      ToUserResponse(u),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify parses a session token and returns its claims.
func (i *SessionIssuer) Verify(token string) (*utils.Claims, error) {
	return utils.ValidateToken(token, i.secret)
}
