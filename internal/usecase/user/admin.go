package user

import (
	"context"
	"fmt"

	domainUser "github.com/MohdOwais22/subaku-backend/internal/domain/user"
	"github.com/MohdOwais22/subaku-backend/internal/logger"
	appErrors "github.com/MohdOwais22/subaku-backend/pkg/errors"
	"github.com/MohdOwais22/subaku-backend/pkg/utils"

	"go.uber.org/zap"
)

func (s *Service) List(ctx context.Context) ([]*domainUser.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domainUser.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateRole lets an administrator change any user's name, email or role.
func (s *Service) UpdateRole(ctx context.Context, id string, req *UpdateRoleRequest) (*domainUser.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = utils.SanitizeString(req.Name)
	}
	if req.Email != "" {
		user.Email = utils.SanitizeEmail(req.Email)
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	user.UpdatedAt = s.now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User updated by admin",
		zap.String("user_id", user.ID),
		zap.String("role", user.Role),
		zap.String("event", "user_role_updated"),
	)

	return user, nil
}

// Delete removes the user record, then discards the avatar best-effort.
func (s *Service) Delete(ctx context.Context, id string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.images.Discard(ctx, user.Avatar)

	logger.Info("User deleted",
		zap.String("user_id", id),
		zap.String("event", "user_deleted"),
	)
	s.publish(ctx, TopicUserDeleted, id, UserDeletedData{ID: id})

	return nil
}
