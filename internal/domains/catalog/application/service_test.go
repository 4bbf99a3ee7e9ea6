package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-marketplace-api/internal/domains/catalog/domain"
	storesmemory "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/adapters/memory"
	storesapp "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/application"
	storesdomain "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/domain"
)

func newSeededService() *Service {
	directory := storesmemory.NewSeededDirectory()
	return NewService(storesapp.NewService(directory), directory)
}

func findProduct(t *testing.T, catalog *domain.Catalog, sku string) domain.Product {
	t.Helper()
	for _, p := range catalog.Products {
		if p.SKU == sku {
			return p
		}
	}
	t.Fatalf("product %s not in catalog", sku)
	return domain.Product{}
}

func TestBuildCatalog_AggregatesAcrossStores(t *testing.T) {
	catalog, err := newSeededService().BuildCatalog(context.Background(), domain.Query{})
	require.NoError(t, err)
	require.Len(t, catalog.AvailableStores, 3)

	apples := findProduct(t, catalog, "APL-001")
	require.Equal(t, 3, apples.StoreCount)
	require.Equal(t, 2.39, apples.LowestPrice)
	require.Equal(t, 2.58, apples.HighestPrice)
	require.Equal(t, "store-101", apples.Offers[0].StoreID)
	require.Equal(t, "Fresh Market Downtown", apples.Offers[0].StoreName)

	for _, p := range catalog.Products {
		require.NotEmpty(t, p.Offers)
		require.Equal(t, len(p.Offers), p.StoreCount)
		for _, offer := range p.Offers {
			require.GreaterOrEqual(t, offer.Price, p.LowestPrice)
			require.LessOrEqual(t, offer.Price, p.HighestPrice)
		}
	}
}

func TestBuildCatalog_SortsByNameByDefault(t *testing.T) {
	catalog, err := newSeededService().BuildCatalog(context.Background(), domain.Query{SortBy: "unknown"})
	require.NoError(t, err)
	require.Equal(t, "Aged Cheddar Cheese", catalog.Products[0].Name)
	for i := 1; i < len(catalog.Products); i++ {
		require.LessOrEqual(t, catalog.Products[i-1].Name, catalog.Products[i].Name)
	}
	require.Equal(t, []string{"Bakery", "Beverages", "Dairy", "Frozen", "Household", "Produce", "Snacks"}, catalog.Categories)
}

func TestBuildCatalog_SortsByPriceAndAvailability(t *testing.T) {
	svc := newSeededService()

	byPrice, err := svc.BuildCatalog(context.Background(), domain.Query{SortBy: domain.SortByPrice})
	require.NoError(t, err)
	for i := 1; i < len(byPrice.Products); i++ {
		require.LessOrEqual(t, byPrice.Products[i-1].LowestPrice, byPrice.Products[i].LowestPrice)
	}

	byAvailability, err := svc.BuildCatalog(context.Background(), domain.Query{SortBy: domain.SortByAvailability})
	require.NoError(t, err)
	require.Equal(t, 3, byAvailability.Products[0].StoreCount)
	for i := 1; i < len(byAvailability.Products); i++ {
		require.GreaterOrEqual(t, byAvailability.Products[i-1].StoreCount, byAvailability.Products[i].StoreCount)
	}
}

func TestBuildCatalog_AppliesFilters(t *testing.T) {
	svc := newSeededService()

	dairy, err := svc.BuildCatalog(context.Background(), domain.Query{Category: "dairy"})
	require.NoError(t, err)
	require.NotEmpty(t, dairy.Products)
	for _, p := range dairy.Products {
		require.Equal(t, "Dairy", p.Category)
	}
	require.Equal(t, []string{"Dairy"}, dairy.Categories)

	mega, err := svc.BuildCatalog(context.Background(), domain.Query{StoreText: "mega", ProductText: "apple"})
	require.NoError(t, err)
	require.Len(t, mega.AvailableStores, 1)
	require.Len(t, mega.Products, 1)
	require.Equal(t, 1, mega.Products[0].StoreCount)
	require.Equal(t, 2.52, mega.Products[0].LowestPrice)

	none, err := svc.BuildCatalog(context.Background(), domain.Query{ProductText: "caviar"})
	require.NoError(t, err)
	require.Empty(t, none.Products)
	require.Empty(t, none.Categories)
	require.Empty(t, none.Brands)
}

func TestBuildCatalog_BackfillsBrandFromLaterStore(t *testing.T) {
	stores := []storesdomain.Store{{ID: "a", Name: "Alpha"}, {ID: "b", Name: "Beta"}}
	directory := storesmemory.NewDirectory(stores, map[string][]storesdomain.InventoryItem{
		"a": {{SKU: "X", Name: "Oats", Price: 4}},
		"b": {{SKU: "X", Name: "Oats", Brand: "Acme", ImageURL: "oats.png", Price: 3}},
	})
	svc := NewService(storesapp.NewService(directory), directory)

	catalog, err := svc.BuildCatalog(context.Background(), domain.Query{})
	require.NoError(t, err)
	require.Len(t, catalog.Products, 1)
	require.Equal(t, "Acme", catalog.Products[0].Brand)
	require.Equal(t, "oats.png", catalog.Products[0].ImageURL)
	require.Equal(t, []string{"Acme"}, catalog.Brands)

	filtered, err := svc.BuildCatalog(context.Background(), domain.Query{Brand: "acme"})
	require.NoError(t, err)
	require.Len(t, filtered.Products, 1)
	require.Equal(t, 1, filtered.Products[0].StoreCount)
	require.Equal(t, "b", filtered.Products[0].Offers[0].StoreID)
}
