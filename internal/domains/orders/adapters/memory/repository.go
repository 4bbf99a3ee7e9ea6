package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter. Orders are kept in
// insertion order and every read or write copies the aggregate.
type Repository struct {
	mu     sync.RWMutex
	orders []*domain.Order
	byID   map[string]int
}

func NewRepository() *Repository {
	return &Repository{byID: map[string]int{}}
}

func (r *Repository) Insert(_ context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[order.ID]; exists {
		return ports.ErrDuplicateID
	}
	r.byID[order.ID] = len(r.orders)
	r.orders = append(r.orders, order.Clone())
	return nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.orders[idx].Clone(), nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if filter.Contact != "" && domain.NormalizeContact(order.CustomerDetails.Contact) != filter.Contact {
			continue
		}
		list = append(list, order.Clone())
	}
	return list, nil
}

// Update holds the write lock across the read-modify-write so concurrent
// status changes cannot lose updates. A failing mutate leaves the order untouched.
func (r *Repository) Update(_ context.Context, id string, mutate func(*domain.Order) error) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	working := r.orders[idx].Clone()
	if err := mutate(working); err != nil {
		return nil, err
	}
	r.orders[idx] = working.Clone()
	return working, nil
}
