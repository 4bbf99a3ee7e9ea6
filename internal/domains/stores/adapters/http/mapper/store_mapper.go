package mapper

import (
	storesdomain "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/domain"
)

// Location is the transport shape of a coordinate.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Store is the transport shape of a store, with distance when known.
type Store struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Location    Location `json:"location"`
	Hours       string   `json:"hours"`
	DeliveryEta string   `json:"deliveryEta"`
	DistanceKm  *float64 `json:"distanceKm,omitempty"`
}

// InventoryItem is the transport shape of a store item.
type InventoryItem struct {
	SKU               string  `json:"sku"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Category          string  `json:"category"`
	Brand             *string `json:"brand"`
	ImageURL          *string `json:"imageUrl"`
	Unit              string  `json:"unit"`
	Price             float64 `json:"price"`
	QuantityAvailable int     `json:"quantityAvailable"`
}

// NearbyStoresResponse wraps the store finder result. DistanceKm is always
// emitted for located searches and null otherwise.
type NearbyStoresResponse struct {
	Stores []NearbyStore `json:"stores"`
}

// NearbyStore always renders distanceKm, including null.
type NearbyStore struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Location    Location `json:"location"`
	Hours       string   `json:"hours"`
	DeliveryEta string   `json:"deliveryEta"`
	DistanceKm  *float64 `json:"distanceKm"`
}

// InventoryResponse is the store inventory payload.
type InventoryResponse struct {
	Store     Store           `json:"store"`
	Inventory []InventoryItem `json:"inventory"`
}

func FromDomainStore(store storesdomain.Store) Store {
	return Store{
		ID:          store.ID,
		Name:        store.Name,
		Address:     store.Address,
		Location:    Location{Lat: store.Location.Lat, Lng: store.Location.Lng},
		Hours:       store.Hours,
		DeliveryEta: store.DeliveryEta,
	}
}

func FromNearbyStore(store storesdomain.NearbyStore) NearbyStore {
	return NearbyStore{
		ID:          store.ID,
		Name:        store.Name,
		Address:     store.Address,
		Location:    Location{Lat: store.Location.Lat, Lng: store.Location.Lng},
		Hours:       store.Hours,
		DeliveryEta: store.DeliveryEta,
		DistanceKm:  store.DistanceKm,
	}
}

func FromNearbyStores(stores []storesdomain.NearbyStore) []NearbyStore {
	result := make([]NearbyStore, 0, len(stores))
	for _, s := range stores {
		result = append(result, FromNearbyStore(s))
	}
	return result
}

func FromInventory(inv *storesdomain.StoreInventory) InventoryResponse {
	if inv == nil {
		return InventoryResponse{Inventory: []InventoryItem{}}
	}
	items := make([]InventoryItem, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, InventoryItem{
			SKU:               item.SKU,
			Name:              item.Name,
			Description:       item.Description,
			Category:          item.Category,
			Brand:             optional(item.Brand),
			ImageURL:          optional(item.ImageURL),
			Unit:              item.Unit,
			Price:             item.Price,
			QuantityAvailable: item.QuantityAvailable,
		})
	}
	return InventoryResponse{Store: FromDomainStore(inv.Store), Inventory: items}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
