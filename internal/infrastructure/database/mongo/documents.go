package mongo

import (
	"time"

	"github.com/MohdOwais22/subaku-backend/internal/domain/asset"
	domainProduct "github.com/MohdOwais22/subaku-backend/internal/domain/product"
	domainUser "github.com/MohdOwais22/subaku-backend/internal/domain/user"
)

type productDocument struct {
	ID           string                 `bson:"_id"`
	Name         string                 `bson:"name"`
	Description  string                 `bson:"description"`
	Price        float64                `bson:"price"`
	Stock        int                    `bson:"Stock"`
	Category     string                 `bson:"category"`
	Images       []asset.Image          `bson:"images"`
	Reviews      []domainProduct.Review `bson:"reviews"`
	NumOfReviews int                    `bson:"numOfReviews"`
	Ratings      float64                `bson:"ratings"`
	User         string                 `bson:"user,omitempty"`
	Version      int64                  `bson:"version"`
	CreatedAt    time.Time              `bson:"createdAt"`
	UpdatedAt    time.Time              `bson:"updatedAt"`
}

type userDocument struct {
	ID                  string      `bson:"_id"`
	Name                string      `bson:"name"`
	Email               string      `bson:"email"`
	Password            string      `bson:"password"`
	Role                string      `bson:"role"`
	Avatar              asset.Image `bson:"avatar"`
	ResetPasswordToken  *string     `bson:"resetPasswordToken,omitempty"`
	ResetPasswordExpire *time.Time  `bson:"resetPasswordExpire,omitempty"`
	Version             int64       `bson:"version"`
	CreatedAt           time.Time   `bson:"createdAt"`
	UpdatedAt           time.Time   `bson:"updatedAt"`
}

func toProductDocument(p *domainProduct.Product) *productDocument {
	images := p.Images
	if images == nil {
		images = []asset.Image{}
	}
	reviews := p.Reviews
	if reviews == nil {
		reviews = []domainProduct.Review{}
	}

	return &productDocument{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Stock:        p.Stock,
		Category:     p.Category,
		Images:       images,
		Reviews:      reviews,
		NumOfReviews: p.NumOfReviews,
		Ratings:      p.Ratings,
		User:         p.UserID,
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (d *productDocument) toEntity() *domainProduct.Product {
	return &domainProduct.Product{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		Price:        d.Price,
		Stock:        d.Stock,
		Category:     d.Category,
		Images:       d.Images,
		Reviews:      d.Reviews,
		NumOfReviews: d.NumOfReviews,
		Ratings:      d.Ratings,
		UserID:       d.User,
		Version:      d.Version,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func toUserDocument(u *domainUser.User) *userDocument {
	return &userDocument{
		ID:                  u.ID,
		Name:                u.Name,
		Email:               u.Email,
		Password:            u.PasswordHash,
		Role:                u.Role,
		Avatar:              u.Avatar,
		ResetPasswordToken:  u.ResetPasswordToken,
		ResetPasswordExpire: u.ResetPasswordExpire,
		Version:             u.Version,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func (d *userDocument) toEntity() *domainUser.User {
	return &domainUser.User{
		ID:                  d.ID,
		Name:                d.Name,
		Email:               d.Email,
		PasswordHash:        d.Password,
		Role:                d.Role,
		Avatar:              d.Avatar,
		ResetPasswordToken:  d.ResetPasswordToken,
		ResetPasswordExpire: d.ResetPasswordExpire,
		Version:             d.Version,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}
