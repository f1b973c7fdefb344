package product

import (
	"context"
)

// Repository defines the interface for product persistence. Update and
// SaveReviews succeed only when the stored version equals p.Version; on
// success p.Version is advanced.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	Update(ctx context.Context, p *Product) error
	SaveReviews(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error

	CountAll(ctx context.Context) (int64, error)
	Count(ctx context.Context, filter *Filter) (int64, error)
	List(ctx context.Context, filter *Filter, page Page) ([]*Product, error)
	ListAll(ctx context.Context) ([]*Product, error)
}

// Filter is the public catalog search. Nil bounds are not applied.
type Filter struct {
	Keyword    string
	Category   string
	MinPrice   *float64
	MaxPrice   *float64
	MinRatings *float64
}

// Page selects a window of a filtered result.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	if p.Number <= 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}
