package ports

import (
	"context"

	"github.com/Apurer/go-gin-marketplace-api/internal/domains/catalog/domain"
)

// Service builds cross-store product catalogs.
type Service interface {
	BuildCatalog(ctx context.Context, query domain.Query) (*domain.Catalog, error)
}
