package marketplaceserver

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	storeshttpmapper "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/adapters/http/mapper"
	storesdomain "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/domain"
	storesports "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/ports"
)

// StoreAPI wires HTTP transport with the store finder.
type StoreAPI struct {
	service storesports.Service
}

// NewStoreAPI creates a StoreAPI backed by the provided service.
func NewStoreAPI(service storesports.Service) StoreAPI {
	return StoreAPI{service: service}
}

// Get /api/stores
// Finds stores near a location, optionally matching a search term
func (api *StoreAPI) FindStores(c *gin.Context) {
	query := storesdomain.StoreQuery{
		Location: parseLocation(c),
		RadiusKm: parseRadius(c),
		Text:     c.Query("q"),
	}
	stores, err := api.service.FindStores(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, storeshttpmapper.NearbyStoresResponse{Stores: storeshttpmapper.FromNearbyStores(stores)})
}

// Get /api/stores/:storeId/inventory
// Lists a store's inventory, optionally matching a search term
func (api *StoreAPI) GetStoreInventory(c *gin.Context) {
	query := storesdomain.InventoryQuery{
		StoreID: c.Param("storeId"),
		Text:    c.Query("q"),
	}
	inventory, err := api.service.GetInventory(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, storeshttpmapper.FromInventory(inventory))
}

// parseLocation honors lat/lng only when both parse as finite numbers.
func parseLocation(c *gin.Context) *storesdomain.Coordinate {
	lat, ok := parseFloatQuery(c, "lat")
	if !ok {
		return nil
	}
	lng, ok := parseFloatQuery(c, "lng")
	if !ok {
		return nil
	}
	return &storesdomain.Coordinate{Lat: lat, Lng: lng}
}

// parseRadius returns nil for a missing or malformed radius so the service default applies.
func parseRadius(c *gin.Context) *float64 {
	radius, ok := parseFloatQuery(c, "radius")
	if !ok {
		return nil
	}
	return storesdomain.Radius(radius)
}

func parseFloatQuery(c *gin.Context, name string) (float64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
