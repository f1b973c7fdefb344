package user

import (
	"context"

	domainAsset "github.com/MohdOwais22/subaku-backend/internal/domain/asset"
	domainUser "github.com/MohdOwais22/subaku-backend/internal/domain/user"
	"github.com/MohdOwais22/subaku-backend/internal/logger"
	assetUsecase "github.com/MohdOwais22/subaku-backend/internal/usecase/asset"
	appErrors "github.com/MohdOwais22/subaku-backend/pkg/errors"
	"github.com/MohdOwais22/subaku-backend/pkg/utils"

	"go.uber.org/zap"
)

// UpdateProfile changes name, email and optionally the avatar. A new avatar
// is uploaded before the record is written; the old one is discarded after.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*domainUser.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = utils.SanitizeString(req.Name)
	}
	if req.Email != "" {
		user.Email = utils.SanitizeEmail(req.Email)
	}

	previous := user.Avatar
	var staged *domainAsset.Image
	if req.Avatar != "" {
		staged, err = s.images.Upload(ctx, req.Avatar, assetUsecase.Avatars)
		if err != nil {
			return nil, uploadError(err)
		}
		user.Avatar = *staged
	}
	user.UpdatedAt = s.now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		if staged != nil {
			s.images.Discard(ctx, *staged)
		}
		return nil, err
	}

	if staged != nil {
		s.images.Discard(ctx, previous)
	}

	logger.Info("Profile updated",
		zap.String("user_id", user.ID),
		zap.Bool("avatar_replaced", staged != nil),
		zap.String("event", "profile_updated"),
	)

	return user, nil
}
