package user

import (
	"time"

	"github.com/MohdOwais22/subaku-backend/internal/domain/asset"
	domainUser "github.com/MohdOwais22/subaku-backend/internal/domain/user"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=4,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,password_bytes"`
	Avatar   string `json:"avatar" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8,password_bytes"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type UpdatePasswordRequest struct {
	OldPassword     string `json:"oldPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,password_bytes"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// UpdateProfileRequest changes the caller's own profile. An empty Avatar
// keeps the current one.
type UpdateProfileRequest struct {
	Name   string `json:"name" validate:"omitempty,min=4,max=30"`
	Email  string `json:"email" validate:"omitempty,email"`
	Avatar string `json:"avatar"`
}

type UpdateRoleRequest struct {
	Name  string `json:"name" validate:"omitempty,min=4,max=30"`
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role" validate:"omitempty,user_role"`
}

type UserResponse struct {
	ID        string      `json:"_id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Avatar    asset.Image `json:"avatar"`
	Role      string      `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

// AuthResponse is returned by every operation that issues a session.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"-"`
}

func ToUserResponse(u *domainUser.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func ToUserResponses(users []*domainUser.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}
