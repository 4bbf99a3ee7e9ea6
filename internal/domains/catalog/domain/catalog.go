package domain

import (
	"strings"

	storesdomain "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/domain"
)

// SortKey orders aggregated products.
type SortKey string

const (
	SortByName         SortKey = "name"
	SortByPrice        SortKey = "price"
	SortByAvailability SortKey = "availability"
)

// ParseSortKey maps user input onto a known key, falling back to name ordering.
func ParseSortKey(raw string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(raw))) {
	case SortByPrice:
		return SortByPrice
	case SortByAvailability:
		return SortByAvailability
	default:
		return SortByName
	}
}

// Query narrows the stores and items that feed a catalog.
type Query struct {
	Location    *storesdomain.Coordinate
	RadiusKm    *float64
	StoreText   string
	ProductText string
	Category    string
	Brand       string
	SortBy      SortKey
}

// Offer is one store's listing of a product.
type Offer struct {
	StoreID           string
	StoreName         string
	Price             float64
	QuantityAvailable int
	DeliveryEta       string
	Address           string
}

// Product merges every offer of a SKU across the candidate stores.
type Product struct {
	SKU          string
	Name         string
	Description  string
	Category     string
	Unit         string
	Brand        string
	ImageURL     string
	Offers       []Offer
	StoreCount   int
	LowestPrice  float64
	HighestPrice float64
}

// Catalog is the result of one aggregation pass.
type Catalog struct {
	Products        []Product
	Categories      []string
	Brands          []string
	AvailableStores []storesdomain.NearbyStore
}

// Accepts applies the item filters in order: text, category, brand.
func (q Query) Accepts(item storesdomain.InventoryItem) bool {
	if !item.Matches(strings.TrimSpace(q.ProductText)) {
		return false
	}
	if !storesdomain.EqualFoldOrAll(item.Category, strings.TrimSpace(q.Category)) {
		return false
	}
	return storesdomain.EqualFoldOrAll(item.Brand, strings.TrimSpace(q.Brand))
}
