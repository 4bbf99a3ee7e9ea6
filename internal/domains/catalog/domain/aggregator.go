package domain

import (
	storesdomain "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/domain"
)

// Aggregator folds per-store items into products keyed by SKU, keeping
// first-seen order.
type Aggregator struct {
	order    []string
	products map[string]*Product
}

func NewAggregator() *Aggregator {
	return &Aggregator{products: make(map[string]*Product)}
}

// Add records an offer for item at store. The first occurrence of a SKU
// seeds the shared fields; later ones only fill a missing brand or image.
func (a *Aggregator) Add(store storesdomain.Store, item storesdomain.InventoryItem) {
	product, ok := a.products[item.SKU]
	if !ok {
		product = &Product{
			SKU:         item.SKU,
			Name:        item.Name,
			Description: item.Description,
			Category:    item.Category,
			Unit:        item.Unit,
			Brand:       item.Brand,
			ImageURL:    item.ImageURL,
		}
		a.products[item.SKU] = product
		a.order = append(a.order, item.SKU)
	}
	if product.Brand == "" && item.Brand != "" {
		product.Brand = item.Brand
	}
	if product.ImageURL == "" && item.ImageURL != "" {
		product.ImageURL = item.ImageURL
	}
	product.Offers = append(product.Offers, Offer{
		StoreID:           store.ID,
		StoreName:         store.Name,
		Price:             item.Price,
		QuantityAvailable: item.QuantityAvailable,
		DeliveryEta:       store.DeliveryEta,
		Address:           store.Address,
	})
}

// Products finalizes the derived counters and price bounds.
func (a *Aggregator) Products() []Product {
	result := make([]Product, 0, len(a.order))
	for _, sku := range a.order {
		product := *a.products[sku]
		product.Offers = append([]Offer(nil), product.Offers...)
		product.StoreCount = len(product.Offers)
		for i, offer := range product.Offers {
			if i == 0 || offer.Price < product.LowestPrice {
				product.LowestPrice = offer.Price
			}
			if i == 0 || offer.Price > product.HighestPrice {
				product.HighestPrice = offer.Price
			}
		}
		result = append(result, product)
	}
	return result
}
