package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for User
type UserModel struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key"`
	Name                string     `gorm:"type:varchar(30);not null"`
	Email               string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash        string     `gorm:"type:varchar(255);not null"`
	Role                string     `gorm:"type:varchar(20);not null;default:'customer'"`
	AvatarPublicID      string     `gorm:"type:varchar(255)"`
	AvatarURL           string     `gorm:"type:text"`
	ResetPasswordToken  *string    `gorm:"type:varchar(64);index"`
	ResetPasswordExpire *time.Time `gorm:"index"`
	Version             int64      `gorm:"not null;default:1"`
	CreatedAt           time.Time  `gorm:"not null"`
	UpdatedAt           time.Time  `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}
