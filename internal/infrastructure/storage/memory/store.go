package memory

import (
	"context"
	"fmt"
	"path"
	"sync"

	"github.com/MohdOwais22/subaku-backend/internal/domain/asset"

	"github.com/google/uuid"
)

// Store is an in-process asset.Store used when no hosted store is configured.
type Store struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]asset.UploadInput
}

func NewStore(baseURL string) *Store {
	if baseURL == "" {
		baseURL = "memory://assets"
	}
	return &Store{
		baseURL: baseURL,
		objects: make(map[string]asset.UploadInput),
	}
}

func (s *Store) Upload(ctx context.Context, input asset.UploadInput) (*asset.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input.Data == "" {
		return nil, fmt.Errorf("memory store: empty payload: %w", asset.ErrUpstream)
	}

	publicID := path.Join(input.Folder, uuid.NewString())

	s.mu.Lock()
	s.objects[publicID] = input
	s.mu.Unlock()

	return &asset.Image{
		PublicID: publicID,
		URL:      s.baseURL + "/" + publicID,
	}, nil
}

// Delete is idempotent: unknown ids are not an error.
func (s *Store) Delete(ctx context.Context, publicID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.objects, publicID)
	s.mu.Unlock()
	return nil
}

func (s *Store) Has(publicID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[publicID]
	return ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
