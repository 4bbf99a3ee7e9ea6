package domain

// Coordinate is a WGS84 point in decimal degrees.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Store is immutable vendor reference data.
type Store struct {
	ID          string
	Name        string
	Address     string
	Location    Coordinate
	Hours       string
	DeliveryEta string
}

// InventoryItem is a product sold by exactly one store. The same SKU may
// appear at several stores to represent one product offered by many vendors.
type InventoryItem struct {
	SKU               string
	Name              string
	Description       string
	Category          string
	Brand             string
	ImageURL          string
	Unit              string
	Price             float64
	QuantityAvailable int
}

// NearbyStore decorates a store with its distance from a reference point.
// DistanceKm is nil when no reference point was supplied.
type NearbyStore struct {
	Store
	DistanceKm *float64
}

// StoreQuery drives the store finder. A nil RadiusKm selects the default radius;
// any finite value, including zero or a negative one, is applied as given.
type StoreQuery struct {
	Location *Coordinate
	RadiusKm *float64
	Text     string
}

// Radius wraps km for StoreQuery.RadiusKm.
func Radius(km float64) *float64 {
	return &km
}

// InventoryQuery selects a store inventory, optionally narrowed by a search term.
type InventoryQuery struct {
	StoreID string
	Text    string
}

// StoreInventory pairs a store with its (possibly filtered) items.
type StoreInventory struct {
	Store Store
	Items []InventoryItem
}

// Matches reports whether the store name or address contains the query.
func (s Store) Matches(query string) bool {
	if query == "" {
		return true
	}
	return ContainsFold(s.Name, query) || ContainsFold(s.Address, query)
}

// Matches reports whether the item name, description, category or SKU contains the query.
func (i InventoryItem) Matches(query string) bool {
	if query == "" {
		return true
	}
	for _, field := range []string{i.Name, i.Description, i.Category, i.SKU} {
		if ContainsFold(field, query) {
			return true
		}
	}
	return false
}
