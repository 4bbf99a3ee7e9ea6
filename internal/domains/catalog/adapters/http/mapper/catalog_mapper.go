package mapper

import (
	catalogdomain "github.com/Apurer/go-gin-marketplace-api/internal/domains/catalog/domain"
	storesmapper "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/adapters/http/mapper"
)

type Offer struct {
	StoreID           string  `json:"storeId"`
	StoreName         string  `json:"storeName"`
	Price             float64 `json:"price"`
	QuantityAvailable int     `json:"quantityAvailable"`
	DeliveryEta       string  `json:"deliveryEta"`
	Address           string  `json:"address"`
}

type Product struct {
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Unit         string  `json:"unit"`
	Brand        *string `json:"brand"`
	ImageURL     *string `json:"imageUrl"`
	Stores       []Offer `json:"stores"`
	StoreCount   int     `json:"storeCount"`
	LowestPrice  float64 `json:"lowestPrice"`
	HighestPrice float64 `json:"highestPrice"`
}

// CatalogResponse is the /api/products payload.
type CatalogResponse struct {
	Products        []Product                  `json:"products"`
	Categories      []string                   `json:"categories"`
	Brands          []string                   `json:"brands"`
	AvailableStores []storesmapper.NearbyStore `json:"availableStores"`
}

func FromDomainCatalog(catalog *catalogdomain.Catalog) CatalogResponse {
	resp := CatalogResponse{
		Products:        []Product{},
		Categories:      []string{},
		Brands:          []string{},
		AvailableStores: []storesmapper.NearbyStore{},
	}
	if catalog == nil {
		return resp
	}
	for _, p := range catalog.Products {
		resp.Products = append(resp.Products, fromDomainProduct(p))
	}
	resp.Categories = append(resp.Categories, catalog.Categories...)
	resp.Brands = append(resp.Brands, catalog.Brands...)
	resp.AvailableStores = storesmapper.FromNearbyStores(catalog.AvailableStores)
	return resp
}

func fromDomainProduct(p catalogdomain.Product) Product {
	offers := make([]Offer, 0, len(p.Offers))
	for _, o := range p.Offers {
		offers = append(offers, Offer{
			StoreID:           o.StoreID,
			StoreName:         o.StoreName,
			Price:             o.Price,
			QuantityAvailable: o.QuantityAvailable,
			DeliveryEta:       o.DeliveryEta,
			Address:           o.Address,
		})
	}
	return Product{
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Unit:         p.Unit,
		Brand:        optional(p.Brand),
		ImageURL:     optional(p.ImageURL),
		Stores:       offers,
		StoreCount:   p.StoreCount,
		LowestPrice:  p.LowestPrice,
		HighestPrice: p.HighestPrice,
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
