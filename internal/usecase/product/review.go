package product

import (
	"context"
	"fmt"

	domainProduct "github.com/MohdOwais22/subaku-backend/internal/domain/product"
	"github.com/MohdOwais22/subaku-backend/internal/logger"
	appErrors "github.com/MohdOwais22/subaku-backend/pkg/errors"
	"github.com/MohdOwais22/subaku-backend/pkg/utils"

	"go.uber.org/zap"
)

// reviewWriteAttempts bounds the reload-and-reapply loop when a concurrent
// writer bumps the product version between read and write.
const reviewWriteAttempts = 3

// UpsertReview creates the reviewer's review or overwrites the existing one.
func (s *Service) UpsertReview(ctx context.Context, reviewer Reviewer, req *ReviewRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.Validation(utils.ValidationMessage(err), err)
	}
	if !domainProduct.ValidRating(req.Rating) {
		return appErrors.Validation("Rating must be between 1 and 5", nil)
	}
	comment := utils.SanitizeText(req.Comment)

	err := s.mutateReviews(ctx, req.ProductID, func(p *domainProduct.Product) error {
		p.UpsertReview(reviewer.UserID, reviewer.Name, req.Rating, comment)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Review saved",
		zap.String("product_id", req.ProductID),
		zap.String("user_id", reviewer.UserID),
		zap.Int("rating", req.Rating),
		zap.String("event", "review_upserted"),
	)
	return nil
}

func (s *Service) ListReviews(ctx context.Context, productID string) ([]domainProduct.Review, error) {
	if productID == "" {
		return nil, appErrors.Validation("Please enter product id", nil)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.Reviews == nil {
		return []domainProduct.Review{}, nil
	}
	return product.Reviews, nil
}

func (s *Service) DeleteReview(ctx context.Context, productID, reviewID string) error {
	if productID == "" || reviewID == "" {
		return appErrors.Validation("Please enter productId and id", nil)
	}

	err := s.mutateReviews(ctx, productID, func(p *domainProduct.Product) error {
		if !p.RemoveReview(reviewID) {
			return domainProduct.ErrReviewNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Review deleted",
		zap.String("product_id", productID),
		zap.String("review_id", reviewID),
		zap.String("event", "review_deleted"),
	)
	return nil
}

// mutateReviews loads the product, applies fn and persists only the review
// fields, reloading on version conflicts.
func (s *Service) mutateReviews(ctx context.Context, productID string, fn func(p *domainProduct.Product) error) error {
	var lastErr error
	for attempt := 0; attempt < reviewWriteAttempts; attempt++ {
		product, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			return err
		}

		if err := fn(product); err != nil {
			return err
		}

		err = s.productRepo.SaveReviews(ctx, product)
		if err == nil {
			s.invalidate(ctx, productID, product.Version)
			return nil
		}
		if !isStale(err) {
			return fmt.Errorf("failed to save reviews: %w", err)
		}
		lastErr = err
	}
	return lastErr
}
