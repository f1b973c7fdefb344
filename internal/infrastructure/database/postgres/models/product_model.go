package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel represents the database model for Product. Reviews and images
// are embedded as JSONB so a review write touches a single row.
type ProductModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key"`
	Name         string     `gorm:"type:varchar(200);not null;index"`
	Description  string     `gorm:"type:text;not null"`
	Price        float64    `gorm:"type:numeric(12,2);not null;index"`
	Stock        int        `gorm:"not null;default:1"`
	Category     string     `gorm:"type:varchar(50);not null;index"`
	Images       ImageList  `gorm:"type:jsonb;not null;default:'[]'"`
	Reviews      ReviewList `gorm:"type:jsonb;not null;default:'[]'"`
	NumOfReviews int        `gorm:"not null;default:0"`
	Ratings      float64    `gorm:"not null;default:0;index"`
	UserID       *uuid.UUID `gorm:"type:uuid;index"`
	Version      int64      `gorm:"not null;default:1"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

func (ProductModel) TableName() string {
	return "products"
}
