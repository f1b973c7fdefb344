package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainUser "github.com/MohdOwais22/subaku-backend/internal/domain/user"
	"github.com/MohdOwais22/subaku-backend/internal/logger"
	appErrors "github.com/MohdOwais22/subaku-backend/pkg/errors"
	"github.com/MohdOwais22/subaku-backend/pkg/utils"

	"go.uber.org/zap"
)

const resetEmailSubject = "Ecommerce Password Recovery"

// ForgotPassword stores a hashed reset token and emails the raw token as a
// link under baseURL. The configured public base URL wins when set.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest, baseURL string) (string, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return "", appErrors.Validation(utils.ValidationMessage(err), err)
	}

	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		return "", err
	}

	rawToken, hashedToken, err := utils.GenerateResetToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	user.SetResetToken(hashedToken, s.now().Add(s.config.ResetPassword.TokenTTL))
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	if s.config.ResetPassword.PublicBaseURL != "" {
		baseURL = s.config.ResetPassword.PublicBaseURL
	}
	resetURL := strings.TrimRight(baseURL, "/") + "/password/reset/" + rawToken

	err = s.mailer.Send(ctx, Message{
		To:      user.Email,
		Subject: resetEmailSubject,
		Body: "Your password reset token is :- \n\n " + resetURL +
			" \n\nIf you have not requested this email then, please ignore it.",
	})
	if err != nil {
		logger.Error("Failed to send password reset email",
			zap.String("user_id", user.ID),
			zap.Error(err),
			zap.String("event", "password_reset_email_failed"),
		)
		user.ClearResetToken()
		if clearErr := s.userRepo.Update(ctx, user); clearErr != nil {
			logger.Error("Failed to clear reset token", zap.String("user_id", user.ID), zap.Error(clearErr))
		}
		return "", fmt.Errorf("failed to send reset email: %w", err)
	}

	logger.Info("Password reset requested",
		zap.String("user_id", user.ID),
		zap.String("event", "password_reset_requested"),
	)

	return user.Email, nil
}

// ResetPassword redeems a raw reset token. The new password and the cleared
// token pair are written in one update.
func (s *Service) ResetPassword(ctx context.Context, rawToken string, req *ResetPasswordRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetByResetToken(ctx, utils.HashResetToken(rawToken), s.now())
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidResetToken
		}
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}
	if req.Password != req.ConfirmPassword {
		return nil, appErrors.ErrPasswordMismatch
	}

	if err := s.setPassword(ctx, user, req.Password); err != nil {
		return nil, err
	}

	logger.Info("Password reset completed",
		zap.String("user_id", user.ID),
		zap.String("event", "password_reset"),
	)

	return s.sessions.Issue(user)
}

func (s *Service) UpdatePassword(ctx context.Context, userID string, req *UpdatePasswordRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !s.checkPassword(user.PasswordHash, req.OldPassword) {
		return nil, appErrors.ErrOldPasswordWrong
	}
	if req.NewPassword != req.ConfirmPassword {
		return nil, appErrors.ErrPasswordMismatch
	}

	if err := s.setPassword(ctx, user, req.NewPassword); err != nil {
		return nil, err
	}

	logger.Info("Password updated",
		zap.String("user_id", user.ID),
		zap.String("event", "password_updated"),
	)

	return s.sessions.Issue(user)
}

func (s *Service) setPassword(ctx context.Context, user *domainUser.User, password string) error {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hashed
	user.ClearResetToken()
	user.UpdatedAt = s.now()

	return s.userRepo.Update(ctx, user)
}
