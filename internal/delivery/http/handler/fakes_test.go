package handler

import (
	"context"
	"strings"
	"sync"
	"time"

	domainProduct "github.com/MohdOwais22/subaku-backend/internal/domain/product"
	domainUser "github.com/MohdOwais22/subaku-backend/internal/domain/user"
	userUsecase "github.com/MohdOwais22/subaku-backend/internal/usecase/user"

	"github.com/google/uuid"
)

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*domainUser.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*domainUser.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, u *domainUser.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == strings.ToLower(u.Email) {
			return domainUser.ErrUserAlreadyExists
		}
	}
	u.ID = uuid.NewString()
	u.Email = strings.ToLower(u.Email)
	u.Version = 1
	if u.Role == "" {
		u.Role = domainUser.RoleCustomer
	}
	u.CreatedAt = time.Now()
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	return r.find(func(u *domainUser.User) bool { return u.Email == strings.ToLower(email) })
}

func (r *memoryUserRepo) GetByResetToken(_ context.Context, hash string, now time.Time) (*domainUser.User, error) {
	return r.find(func(u *domainUser.User) bool { return u.HasValidResetToken(hash, now) })
}

func (r *memoryUserRepo) find(match func(*domainUser.User) bool) (*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *memoryUserRepo) List(_ context.Context) ([]*domainUser.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domainUser.User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memoryUserRepo) Update(_ context.Context, u *domainUser.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[u.ID]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	if stored.Version != u.Version {
		return domainUser.ErrStaleUser
	}
	u.Version++
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domainUser.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepo) ClearExpiredResetTokens(_ context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func (r *memoryUserRepo) promote(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[id].Role = domainUser.RoleAdmin
}

type memoryProductRepo struct {
	mu       sync.Mutex
	products []*domainProduct.Product
}

func (r *memoryProductRepo) Create(_ context.Context, p *domainProduct.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.NewString()
	p.Version = 1
	copied := *p
	r.products = append(r.products, &copied)
	return nil
}

func (r *memoryProductRepo) index(id string) int {
	for i, p := range r.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (r *memoryProductRepo) GetByID(_ context.Context, id string) (*domainProduct.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return nil, domainProduct.ErrProductNotFound
	}
	copied := *r.products[i]
	copied.Reviews = append([]domainProduct.Review(nil), r.products[i].Reviews...)
	return &copied, nil
}

func (r *memoryProductRepo) Update(_ context.Context, p *domainProduct.Product) error {
	return r.save(p)
}

func (r *memoryProductRepo) SaveReviews(_ context.Context, p *domainProduct.Product) error {
	return r.save(p)
}

func (r *memoryProductRepo) save(p *domainProduct.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(p.ID)
	if i < 0 {
		return domainProduct.ErrProductNotFound
	}
	if r.products[i].Version != p.Version {
		return domainProduct.ErrStaleProduct
	}
	p.Version++
	copied := *p
	r.products[i] = &copied
	return nil
}

func (r *memoryProductRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return domainProduct.ErrProductNotFound
	}
	r.products = append(r.products[:i], r.products[i+1:]...)
	return nil
}

func (r *memoryProductRepo) CountAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

func (r *memoryProductRepo) Count(ctx context.Context, filter *domainProduct.Filter) (int64, error) {
	matched := r.filter(filter)
	return int64(len(matched)), nil
}

func (r *memoryProductRepo) List(_ context.Context, filter *domainProduct.Filter, page domainProduct.Page) ([]*domainProduct.Product, error) {
	matched := r.filter(filter)
	start := page.Offset()
	if start >= len(matched) {
		return []*domainProduct.Product{}, nil
	}
	end := start + page.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (r *memoryProductRepo) ListAll(_ context.Context) ([]*domainProduct.Product, error) {
	return r.filter(nil), nil
}

func (r *memoryProductRepo) filter(f *domainProduct.Filter) []*domainProduct.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domainProduct.Product{}
	for _, p := range r.products {
		if f != nil {
			if f.Keyword != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Keyword)) {
				continue
			}
			if f.Category != "" && p.Category != f.Category {
				continue
			}
			if f.MinPrice != nil && p.Price < *f.MinPrice {
				continue
			}
			if f.MaxPrice != nil && p.Price > *f.MaxPrice {
				continue
			}
			if f.MinRatings != nil && p.Ratings < *f.MinRatings {
				continue
			}
		}
		copied := *p
		out = append(out, &copied)
	}
	return out
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []userUsecase.Message
}

func (m *recordingMailer) Send(_ context.Context, msg userUsecase.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}
