package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	domainProduct "github.com/MohdOwais22/subaku-backend/internal/domain/product"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepository implements domainProduct.Repository on a mongo collection.
type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) domainProduct.Repository {
	return &ProductRepository{coll: db.Collection(productsCollection)}
}

func (r *ProductRepository) Create(ctx context.Context, p *domainProduct.Product) error {
	p.ID = uuid.NewString()
	p.Version = 1
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = p.CreatedAt

	if _, err := r.coll.InsertOne(ctx, toProductDocument(p)); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domainProduct.Product, error) {
	var doc productDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domainProduct.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domainProduct.Product) error {
	images := toProductDocument(p).Images
	return r.updateVersioned(ctx, p, bson.M{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"Stock":       p.Stock,
		"category":    p.Category,
		"images":      images,
		"updatedAt":   p.UpdatedAt,
	})
}

func (r *ProductRepository) SaveReviews(ctx context.Context, p *domainProduct.Product) error {
	reviews := toProductDocument(p).Reviews
	return r.updateVersioned(ctx, p, bson.M{
		"reviews":      reviews,
		"numOfReviews": p.NumOfReviews,
		"ratings":      p.Ratings,
	})
}

func (r *ProductRepository) updateVersioned(ctx context.Context, p *domainProduct.Product, fields bson.M) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": p.ID, "version": p.Version},
		bson.M{"$set": fields, "$inc": bson.M{"version": 1}},
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return r.missingOrStale(ctx, p.ID)
	}

	p.Version++
	return nil
}

func (r *ProductRepository) missingOrStale(ctx context.Context, id string) error {
	count, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to check product: %w", err)
	}
	if count == 0 {
		return domainProduct.ErrProductNotFound
	}
	return domainProduct.ErrStaleProduct
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return domainProduct.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) CountAll(ctx context.Context) (int64, error) {
	count, err := r.coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *ProductRepository) Count(ctx context.Context, filter *domainProduct.Filter) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, productQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *ProductRepository) List(ctx context.Context, filter *domainProduct.Filter, page domainProduct.Page) ([]*domainProduct.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Size))
	return r.find(ctx, productQuery(filter), opts)
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]*domainProduct.Product, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}

func (r *ProductRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*domainProduct.Product, error) {
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]*domainProduct.Product, 0, len(docs))
	for i := range docs {
		products = append(products, docs[i].toEntity())
	}
	return products, nil
}

// productQuery matches the keyword literally and case-insensitively.
func productQuery(filter *domainProduct.Filter) bson.M {
	query := bson.M{}
	if filter == nil {
		return query
	}
	if filter.Keyword != "" {
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(filter.Keyword), "$options": "i"}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	price := bson.M{}
	if filter.MinPrice != nil {
		price["$gte"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		price["$lte"] = *filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}
	if filter.MinRatings != nil {
		query["ratings"] = bson.M{"$gte": *filter.MinRatings}
	}
	return query
}
