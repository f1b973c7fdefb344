package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MohdOwais22/subaku-backend/internal/domain/asset"
	domainProduct "github.com/MohdOwais22/subaku-backend/internal/domain/product"
	"github.com/MohdOwais22/subaku-backend/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository implements domainProduct.Repository
type ProductRepository struct {
	db *DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *DB) domainProduct.Repository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domainProduct.Product) error {
	p.ID = uuid.NewString()
	p.Version = 1
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = p.CreatedAt

	dbModel, err := toProductModel(p)
	if err != nil {
		return err
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domainProduct.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, domainProduct.ErrProductNotFound
	}

	var dbModel models.ProductModel
	err = r.db.DB.WithContext(ctx).
		Where("id = ?", productID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainProduct.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return toProductEntity(&dbModel), nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domainProduct.Product) error {
	return r.updateVersioned(ctx, p, map[string]interface{}{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"stock":       p.Stock,
		"category":    p.Category,
		"images":      models.ImageList(p.Images),
		"updated_at":  p.UpdatedAt,
	})
}

func (r *ProductRepository) SaveReviews(ctx context.Context, p *domainProduct.Product) error {
	return r.updateVersioned(ctx, p, map[string]interface{}{
		"reviews":        models.ReviewList(p.Reviews),
		"num_of_reviews": p.NumOfReviews,
		"ratings":        p.Ratings,
	})
}

func (r *ProductRepository) updateVersioned(ctx context.Context, p *domainProduct.Product, fields map[string]interface{}) error {
	productID, err := uuid.Parse(p.ID)
	if err != nil {
		return domainProduct.ErrProductNotFound
	}
	fields["version"] = gorm.Expr("version + 1")

	result := r.db.DB.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ? AND version = ?", productID, p.Version).
		Updates(fields)

	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, productID)
	}

	p.Version++
	return nil
}

func (r *ProductRepository) missingOrStale(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := r.db.DB.WithContext(ctx).Model(&models.ProductModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check product: %w", err)
	}
	if count == 0 {
		return domainProduct.ErrProductNotFound
	}
	return domainProduct.ErrStaleProduct
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return domainProduct.ErrProductNotFound
	}

	result := r.db.DB.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&models.ProductModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainProduct.ErrProductNotFound
	}

	return nil
}

func (r *ProductRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.DB.WithContext(ctx).Model(&models.ProductModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *ProductRepository) Count(ctx context.Context, filter *domainProduct.Filter) (int64, error) {
	var count int64
	query := applyProductFilter(r.db.DB.WithContext(ctx).Model(&models.ProductModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *ProductRepository) List(ctx context.Context, filter *domainProduct.Filter, page domainProduct.Page) ([]*domainProduct.Product, error) {
	var dbModels []models.ProductModel
	query := applyProductFilter(r.db.DB.WithContext(ctx).Model(&models.ProductModel{}), filter)

	err := query.
		Order("created_at ASC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return toProductEntities(dbModels), nil
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]*domainProduct.Product, error) {
	var dbModels []models.ProductModel
	if err := r.db.DB.WithContext(ctx).Order("created_at ASC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return toProductEntities(dbModels), nil
}

func applyProductFilter(query *gorm.DB, filter *domainProduct.Filter) *gorm.DB {
	if filter == nil {
		return query
	}
	if filter.Keyword != "" {
		query = query.Where("name ILIKE ?", "%"+escapeLike(filter.Keyword)+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.MinRatings != nil {
		query = query.Where("ratings >= ?", *filter.MinRatings)
	}
	return query
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func toProductModel(p *domainProduct.Product) (*models.ProductModel, error) {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id %q: %w", p.ID, err)
	}

	var owner *uuid.UUID
	if p.UserID != "" {
		if parsed, err := uuid.Parse(p.UserID); err == nil {
			owner = &parsed
		}
	}

	return &models.ProductModel{
		ID:           id,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Stock:        p.Stock,
		Category:     p.Category,
		Images:       models.ImageList(p.Images),
		Reviews:      models.ReviewList(p.Reviews),
		NumOfReviews: p.NumOfReviews,
		Ratings:      p.Ratings,
		UserID:       owner,
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}, nil
}

func toProductEntity(m *models.ProductModel) *domainProduct.Product {
	p := &domainProduct.Product{
		ID:           m.ID.String(),
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		Stock:        m.Stock,
		Category:     m.Category,
		Images:       []asset.Image(m.Images),
		Reviews:      []domainProduct.Review(m.Reviews),
		NumOfReviews: m.NumOfReviews,
		Ratings:      m.Ratings,
		Version:      m.Version,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.UserID != nil {
		p.UserID = m.UserID.String()
	}
	return p
}

func toProductEntities(ms []models.ProductModel) []*domainProduct.Product {
	products := make([]*domainProduct.Product, 0, len(ms))
	for i := range ms {
		products = append(products, toProductEntity(&ms[i]))
	}
	return products
}
