package asset

import (
	"context"
	"sync"

	domainAsset "github.com/MohdOwais22/subaku-backend/internal/domain/asset"

	"github.com/stretchr/testify/mock"
)

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

type sliceQueue struct {
	mu  sync.Mutex
	ids []string
}

func (q *sliceQueue) Push(_ context.Context, publicIDs ...string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ids = append(q.ids, publicIDs...)
	return nil
}

func (q *sliceQueue) Pop(_ context.Context, max int) ([]string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if max > len(q.ids) {
		max = len(q.ids)
	}
	out := append([]string(nil), q.ids[:max]...)
	q.ids = q.ids[max:]
	return out, nil
}
