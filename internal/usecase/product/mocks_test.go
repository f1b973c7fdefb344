package product

import (
	"context"
	"time"

	domainAsset "github.com/MohdOwais22/subaku-backend/internal/domain/asset"
	domainProduct "github.com/MohdOwais22/subaku-backend/internal/domain/product"
	assetUsecase "github.com/MohdOwais22/subaku-backend/internal/usecase/asset"

	"github.com/stretchr/testify/mock"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, p *domainProduct.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*domainProduct.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*domainProduct.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, p *domainProduct.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepo) SaveReviews(ctx context.Context, p *domainProduct.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepo) Count(ctx context.Context, filter *domainProduct.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepo) List(ctx context.Context, filter *domainProduct.Filter, page domainProduct.Page) ([]*domainProduct.Product, error) {
	args := m.Called(ctx, filter, page)
	if ps := args.Get(0); ps != nil {
		return ps.([]*domainProduct.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) ListAll(ctx context.Context) ([]*domainProduct.Product, error) {
	args := m.Called(ctx)
	if ps := args.Get(0); ps != nil {
		return ps.([]*domainProduct.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Upload(ctx context.Context, input domainAsset.UploadInput) (*domainAsset.Image, error) {
	args := m.Called(ctx, input)
	if img := args.Get(0); img != nil {
		return img.(*domainAsset.Image), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) Delete(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, id string) (*domainProduct.Product, bool, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*domainProduct.Product), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, p *domainProduct.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockCache) Invalidate(ctx context.Context, id string, minVersion int64) error {
	args := m.Called(ctx, id, minVersion)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	args := m.Called(ctx, topic, aggregateID, aggregateType, data)
	return args.Error(0)
}

func newTestService(repo *mockProductRepo, store *mockStore) *Service {
	policy := assetUsecase.DefaultRetryPolicy()
	policy.Sleep = func(context.Context, time.Duration) error { return nil }
	return NewService(repo, assetUsecase.NewManager(store, nil, policy), nil, nil)
}

func newCachedTestService(repo *mockProductRepo, cache *mockCache) *Service {
	policy := assetUsecase.DefaultRetryPolicy()
	policy.Sleep = func(context.Context, time.Duration) error { return nil }
	return NewService(repo, assetUsecase.NewManager(new(mockStore), nil, policy), cache, nil)
}
