package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MohdOwais22/subaku-backend/internal/domain/asset"
	domainUser "github.com/MohdOwais22/subaku-backend/internal/domain/user"
	"github.com/MohdOwais22/subaku-backend/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository implements domainUser.Repository
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) domainUser.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domainUser.User) error {
	u.ID = uuid.NewString()
	u.Email = strings.ToLower(u.Email)
	u.Version = 1
	if u.Role == "" {
		u.Role = domainUser.RoleCustomer
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.UpdatedAt = u.CreatedAt

	dbModel, err := toUserModel(u)
	if err != nil {
		return err
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isDuplicateKey(err) {
			return domainUser.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domainUser.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, domainUser.ErrUserNotFound
	}
	return r.first(ctx, "id = ?", userID)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(email))
}

func (r *UserRepository) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domainUser.User, error) {
	return r.first(ctx, "reset_password_token = ? AND reset_password_expire > ?", tokenHash, now)
}

func (r *UserRepository) first(ctx context.Context, query string, args ...interface{}) (*domainUser.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).
		Where(query, args...).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainUser.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domainUser.User, error) {
	var dbModels []models.UserModel
	if err := r.db.DB.WithContext(ctx).Order("created_at ASC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*domainUser.User, 0, len(dbModels))
	for i := range dbModels {
		users = append(users, toUserEntity(&dbModels[i]))
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domainUser.User) error {
	userID, err := uuid.Parse(u.ID)
	if err != nil {
		return domainUser.ErrUserNotFound
	}
	u.Email = strings.ToLower(u.Email)

	result := r.db.DB.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ? AND version = ?", userID, u.Version).
		Updates(map[string]interface{}{
			"name":                  u.Name,
			"email":                 u.Email,
			"password_hash":         u.PasswordHash,
			"role":                  u.Role,
			"avatar_public_id":      u.Avatar.PublicID,
			"avatar_url":            u.Avatar.URL,
			"reset_password_token":  u.ResetPasswordToken,
			"reset_password_expire": u.ResetPasswordExpire,
			"version":               gorm.Expr("version + 1"),
			"updated_at":            time.Now(),
		})

	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return domainUser.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.DB.WithContext(ctx).Model(&models.UserModel{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if count == 0 {
			return domainUser.ErrUserNotFound
		}
		return domainUser.ErrStaleUser
	}

	u.Version++
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return domainUser.ErrUserNotFound
	}

	result := r.db.DB.WithContext(ctx).
		Where("id = ?", userID).
		Delete(&models.UserModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainUser.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.DB.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("reset_password_expire IS NOT NULL AND reset_password_expire <= ?", now).
		Updates(map[string]interface{}{
			"reset_password_token":  nil,
			"reset_password_expire": nil,
			"version":               gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear reset tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key value")
}

func toUserModel(u *domainUser.User) (*models.UserModel, error) {
	id, err := uuid.Parse(u.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", u.ID, err)
	}

	return &models.UserModel{
		ID:                  id,
		Name:                u.Name,
		Email:               u.Email,
		PasswordHash:        u.PasswordHash,
		Role:                u.Role,
		AvatarPublicID:      u.Avatar.PublicID,
		AvatarURL:           u.Avatar.URL,
		ResetPasswordToken:  u.ResetPasswordToken,
		ResetPasswordExpire: u.ResetPasswordExpire,
		Version:             u.Version,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}, nil
}

func toUserEntity(m *models.UserModel) *domainUser.User {
	return &domainUser.User{
		ID:           m.ID.String(),
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		Avatar: asset.Image{
			PublicID: m.AvatarPublicID,
			URL:      m.AvatarURL,
		},
		ResetPasswordToken:  m.ResetPasswordToken,
		ResetPasswordExpire: m.ResetPasswordExpire,
		Version:             m.Version,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
