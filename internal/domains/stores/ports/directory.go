package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/domain"
)

var (
	ErrStoreNotFound = errors.New("store not found")
	ErrItemNotFound  = errors.New("inventory item not found")
)

// Directory is the read-only store and inventory repository.
type Directory interface {
	// ListStores returns every store in a stable order.
	ListStores(ctx context.Context) ([]domain.Store, error)
	GetStore(ctx context.Context, id string) (*domain.Store, error)
	// Inventory returns the items of a store, or an empty slice when the store is unknown.
	Inventory(ctx context.Context, storeID string) ([]domain.InventoryItem, error)
	FindItem(ctx context.Context, storeID, sku string) (*domain.InventoryItem, error)
}
