package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MohdOwais22/subaku-backend/internal/domain/asset"
	domainProduct "github.com/MohdOwais22/subaku-backend/internal/domain/product"
	"github.com/MohdOwais22/subaku-backend/internal/logger"
	assetUsecase "github.com/MohdOwais22/subaku-backend/internal/usecase/asset"
	appErrors "github.com/MohdOwais22/subaku-backend/pkg/errors"
	"github.com/MohdOwais22/subaku-backend/pkg/utils"

	"go.uber.org/zap"
)

// Service implements product and review use cases
type Service struct {
	productRepo domainProduct.Repository
	images      *assetUsecase.Manager
	cache       Cache
	events      EventPublisher
}

// NewService creates a new product service. cache and events may be nil.
func NewService(
	productRepo domainProduct.Repository,
	images *assetUsecase.Manager,
	cache Cache,
	events EventPublisher,
) *Service {
	return &Service{
		productRepo: productRepo,
		images:      images,
		cache:       cache,
		events:      events,
	}
}

func (s *Service) Create(ctx context.Context, ownerID string, req *CreateProductRequest) (*domainProduct.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	images, err := s.images.UploadAll(ctx, req.Images, assetUsecase.ProductImages)
	if err != nil {
		return nil, fmt.Errorf("failed to upload product images: %w", err)
	}

	stock := domainProduct.DefaultStock
	if req.Stock != nil {
		stock = *req.Stock
	}

	now := time.Now()
	product := &domainProduct.Product{
		Name:        utils.SanitizeString(req.Name),
		Description: utils.SanitizeText(req.Description),
		Price:       req.Price,
		Stock:       stock,
		Category:    req.Category,
		Images:      images,
		Reviews:     []domainProduct.Review{},
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.images.Discard(ctx, images...)
		return nil, err
	}

	logger.Info("Product created",
		zap.String("product_id", product.ID),
		zap.String("user_id", ownerID),
		zap.Int("images", len(images)),
		zap.String("event", "product_created"),
	)
	s.publish(ctx, TopicProductCreated, product.ID, productEventData(product))

	return product, nil
}

// Update applies a partial update. New images are uploaded before the record
// is written and the previous images are discarded only after it succeeds.
func (s *Service) Update(ctx context.Context, id string, req *UpdateProductRequest) (*domainProduct.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	if req.Name != nil {
		product.Name = utils.SanitizeString(*req.Name)
	}
	if req.Description != nil {
		product.Description = utils.SanitizeText(*req.Description)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Category != nil {
		product.Category = *req.Category
	}

	previous := product.Images
	var staged []asset.Image
	if len(req.Images) > 0 {
		staged, err = s.images.UploadAll(ctx, req.Images, assetUsecase.ProductImages)
		if err != nil {
			return nil, fmt.Errorf("failed to upload product images: %w", err)
		}
		product.Images = staged
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.images.Discard(ctx, staged...)
		return nil, err
	}

	if len(staged) > 0 {
		s.images.Discard(ctx, previous...)
	}
	s.invalidate(ctx, product.ID, product.Version)

	logger.Info("Product updated",
		zap.String("product_id", product.ID),
		zap.Bool("images_replaced", len(staged) > 0),
		zap.String("event", "product_updated"),
	)
	s.publish(ctx, TopicProductUpdated, product.ID, productEventData(product))

	return product, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.images.Discard(ctx, product.Images...)
	s.invalidate(ctx, id, product.Version+1)

	logger.Info("Product deleted",
		zap.String("product_id", id),
		zap.String("event", "product_deleted"),
	)
	s.publish(ctx, TopicProductDeleted, id, ProductDeletedData{ID: id})

	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*domainProduct.Product, error) {
	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, id)
		if err != nil {
			logger.Warn("Product cache read failed", zap.String("product_id", id), zap.Error(err))
		} else if found {
			return cached, nil
		}
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, product); err != nil {
			logger.Warn("Product cache write failed", zap.String("product_id", id), zap.Error(err))
		}
	}

	return product, nil
}

// ListPublic returns one page of the filtered catalog together with the
// unfiltered and filtered totals.
func (s *Service) ListPublic(ctx context.Context, query *ListQuery) (*ListResponse, error) {
	filter := query.Filter()
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	total, err := s.productRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	filtered, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count filtered products: %w", err)
	}

	products, err := s.productRepo.List(ctx, filter, query.PageRequest())
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &ListResponse{
		Products:              ToProductResponses(products),
		ProductsCount:         total,
		ResultPerPage:         ResultPerPage,
		FilteredProductsCount: filtered,
	}, nil
}

func (s *Service) ListAdmin(ctx context.Context) ([]*domainProduct.Product, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func validateFilter(f *domainProduct.Filter) error {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return appErrors.Validation("price[gte] cannot exceed price[lte]", nil)
	}
	if f.MinRatings != nil && (*f.MinRatings < 0 || *f.MinRatings > domainProduct.MaxRating) {
		return appErrors.Validation("ratings[gte] must be between 0 and 5", nil)
	}
	return nil
}

// invalidate runs after a successful write; version is the first version a
// reader may cache again.
func (s *Service) invalidate(ctx context.Context, id string, version int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id, version); err != nil {
		logger.Warn("Product cache invalidation failed", zap.String("product_id", id), zap.Error(err))
	}
}

func (s *Service) publish(ctx context.Context, topic, id string, data any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, topic, id, AggregateTypeProduct, data); err != nil {
		logger.Warn("Failed to publish product event",
			zap.String("topic", topic),
			zap.String("product_id", id),
			zap.Error(err),
		)
	}
}

func productEventData(p *domainProduct.Product) ProductEventData {
	return ProductEventData{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Stock:    p.Stock,
	}
}

func isStale(err error) bool {
	return errors.Is(err, domainProduct.ErrStaleProduct)
}
