package ports

import (
	"context"

	"github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/domain"
)

// Service exposes store lookup use cases to adapters.
type Service interface {
	FindStores(ctx context.Context, query domain.StoreQuery) ([]domain.NearbyStore, error)
	GetInventory(ctx context.Context, query domain.InventoryQuery) (*domain.StoreInventory, error)
}
