package product

import (
	"time"

	"github.com/MohdOwais22/subaku-backend/internal/domain/asset"
)

// Product is the catalog aggregate. Reviews and images are embedded and
// NumOfReviews/Ratings are derived from Reviews.
type Product struct {
	ID           string
	Name         string
	Description  string
	Price        float64
	Stock        int
	Category     string
	Images       []asset.Image
	Reviews      []Review
	NumOfReviews int
	Ratings      float64
	UserID       string
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Review is embedded in a Product; at most one per (product, user).
type Review struct {
	ID      string `json:"_id" bson:"_id"`
	UserID  string `json:"user" bson:"user"`
	Name    string `json:"name" bson:"name"`
	Rating  int    `json:"rating" bson:"rating"`
	Comment string `json:"comment" bson:"comment"`
}

const (
	MinRating = 1
	MaxRating = 5

	DefaultStock = 1
)

// PublicIDs returns the asset handles of every image attached to the product.
func (p *Product) PublicIDs() []string {
	ids := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		ids = append(ids, img.PublicID)
	}
	return ids
}
