package product

import (
	"encoding/json"
	"time"

	"github.com/MohdOwais22/subaku-backend/internal/domain/asset"
	domainProduct "github.com/MohdOwais22/subaku-backend/internal/domain/product"
)

// ResultPerPage is the fixed public listing page size.
const ResultPerPage = 8

// ImagePayloads accepts either a single payload string or a list of them.
type ImagePayloads []string

func (p *ImagePayloads) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*p = nil
		} else {
			*p = ImagePayloads{single}
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*p = list
	return nil
}

type CreateProductRequest struct {
	Name        string        `json:"name" validate:"required,max=200"`
	Description string        `json:"description" validate:"required"`
	Price       float64       `json:"price" validate:"required,gt=0,lt=100000000"`
	Stock       *int          `json:"Stock" validate:"omitempty,min=0,max=9999"`
	Category    string        `json:"category" validate:"required,product_category"`
	Images      ImagePayloads `json:"images" validate:"required,min=1,dive,required"`
}

// UpdateProductRequest is a partial update; nil fields are left unchanged and
// an empty Images list keeps the current images.
type UpdateProductRequest struct {
	Name        *string       `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string       `json:"description" validate:"omitempty,min=1"`
	Price       *float64      `json:"price" validate:"omitempty,gt=0,lt=100000000"`
	Stock       *int          `json:"Stock" validate:"omitempty,min=0,max=9999"`
	Category    *string       `json:"category" validate:"omitempty,product_category"`
	Images      ImagePayloads `json:"images" validate:"omitempty,dive,required"`
}

type ReviewRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=2000"`
}

// Reviewer identifies the authenticated author of a review.
type Reviewer struct {
	UserID string
	Name   string
}

// ListQuery is the public catalog query string.
type ListQuery struct {
	Keyword    string   `form:"keyword"`
	Category   string   `form:"category"`
	MinPrice   *float64 `form:"price[gte]"`
	MaxPrice   *float64 `form:"price[lte]"`
	MinRatings *float64 `form:"ratings[gte]"`
	Page       int      `form:"page"`
}

func (q *ListQuery) Filter() *domainProduct.Filter {
	return &domainProduct.Filter{
		Keyword:    q.Keyword,
		Category:   q.Category,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
		MinRatings: q.MinRatings,
	}
}

func (q *ListQuery) PageRequest() domainProduct.Page {
	page := q.Page
	if page < 1 {
		page = 1
	}
	return domainProduct.Page{Number: page, Size: ResultPerPage}
}

type ProductResponse struct {
	ID           string                 `json:"_id"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	Price        float64                `json:"price"`
	Ratings      float64                `json:"ratings"`
	Images       []asset.Image          `json:"images"`
	Category     string                 `json:"category"`
	Stock        int                    `json:"Stock"`
	NumOfReviews int                    `json:"numOfReviews"`
	Reviews      []domainProduct.Review `json:"reviews"`
	UserID       string                 `json:"user"`
	CreatedAt    time.Time              `json:"createdAt"`
}

type ListResponse struct {
	Products              []ProductResponse `json:"products"`
	ProductsCount         int64             `json:"productsCount"`
	ResultPerPage         int               `json:"resultPerPage"`
	FilteredProductsCount int64             `json:"filteredProductsCount"`
}

func ToProductResponse(p *domainProduct.Product) ProductResponse {
	images := p.Images
	if images == nil {
		images = []asset.Image{}
	}
	reviews := p.Reviews
	if reviews == nil {
		reviews = []domainProduct.Review{}
	}

	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Ratings:      p.Ratings,
		Images:       images,
		Category:     p.Category,
		Stock:        p.Stock,
		NumOfReviews: p.NumOfReviews,
		Reviews:      reviews,
		UserID:       p.UserID,
		CreatedAt:    p.CreatedAt,
	}
}

func ToProductResponses(products []*domainProduct.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}
