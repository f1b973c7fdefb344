package user

import (
	"context"
	"time"

	"github.com/MohdOwais22/subaku-backend/internal/config"
	domainAsset "github.com/MohdOwais22/subaku-backend/internal/domain/asset"
	domainUser "github.com/MohdOwais22/subaku-backend/internal/domain/user"
	assetUsecase "github.com/MohdOwais22/subaku-backend/internal/usecase/asset"

	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domainUser.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domainUser.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*domainUser.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*domainUser.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domainUser.User, error) {
	args := m.Called(ctx, tokenHash, now)
	if u := args.Get(0); u != nil {
		return u.(*domainUser.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*domainUser.User, error) {
	args := m.Called(ctx)
	if us := args.Get(0); us != nil {
		return us.([]*domainUser.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domainUser.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepo) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
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

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, msg Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type testDeps struct {
	repo   *mockUserRepo
	store  *mockStore
	mailer *mockMailer
	sleeps []time.Duration
}

func testConfig() *config.Config {
	return &config.Config{
		JWT:           config.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		ResetPassword: config.ResetPasswordConfig{TokenTTL: 15 * time.Minute},
	}
}

func newTestService() (*Service, *testDeps) {
	deps := &testDeps{
		repo:   new(mockUserRepo),
		store:  new(mockStore),
		mailer: new(mockMailer),
	}

	cfg := testConfig()
	policy := assetUsecase.DefaultRetryPolicy()
	policy.Sleep = func(_ context.Context, d time.Duration) error {
		deps.sleeps = append(deps.sleeps, d)
		return nil
	}

	svc := NewService(
		deps.repo,
		assetUsecase.NewManager(deps.store, nil, policy),
		NewSessionIssuer(cfg.JWT),
		deps.mailer,
		nil,
		cfg,
	)
	return svc, deps
}
