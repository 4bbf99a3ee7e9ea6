package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-marketplace-api/internal/domains/orders/domain"
)

var (
	ErrNotFound    = errors.New("order not found")
	ErrDuplicateID = errors.New("order id already exists")
)

// ListFilter narrows order listings. Contact must already be normalized.
type ListFilter struct {
	Contact string
}

// Repository persists orders. Update runs mutate on the stored order and
// saves the result atomically with respect to other writers.
type Repository interface {
	Insert(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Order, error)
	Update(ctx context.Context, id string, mutate func(*domain.Order) error) (*domain.Order, error)
}
