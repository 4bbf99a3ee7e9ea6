package marketplaceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/Apurer/go-gin-marketplace-api/internal/domains/catalog/adapters/http/mapper"
	catalogdomain "github.com/Apurer/go-gin-marketplace-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-marketplace-api/internal/domains/catalog/ports"
)

// CatalogAPI wires HTTP transport with the catalog aggregator.
type CatalogAPI struct {
	service catalogports.Service
}

// NewCatalogAPI creates a CatalogAPI backed by the provided service.
func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Get /api/products
// Aggregates products across nearby stores
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	query := catalogdomain.Query{
		Location:    parseLocation(c),
		RadiusKm:    parseRadius(c),
		StoreText:   c.Query("store"),
		ProductText: c.Query("q"),
		Category:    c.Query("category"),
		Brand:       c.Query("brand"),
		SortBy:      catalogdomain.ParseSortKey(c.Query("sort")),
	}
	catalog, err := api.service.BuildCatalog(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainCatalog(catalog))
}
