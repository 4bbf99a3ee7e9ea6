package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	storesdomain "github.com/Apurer/go-gin-marketplace-api/internal/domains/stores/domain"
)

func TestAggregator_MergesOffersAndPriceBounds(t *testing.T) {
	agg := NewAggregator()
	a := storesdomain.Store{ID: "a", Name: "A", DeliveryEta: "10 min", Address: "1 Main"}
	b := storesdomain.Store{ID: "b", Name: "B"}

	agg.Add(a, storesdomain.InventoryItem{SKU: "X", Name: "Thing", Price: 3.5, QuantityAvailable: 4})
	agg.Add(a, storesdomain.InventoryItem{SKU: "Y", Name: "Other", Price: 1})
	agg.Add(b, storesdomain.InventoryItem{SKU: "X", Name: "Renamed", Brand: "Acme", ImageURL: "img", Price: 2.25})

	products := agg.Products()
	require.Len(t, products, 2)
	require.Equal(t, "X", products[0].SKU)
	require.Equal(t, "Thing", products[0].Name)
	require.Equal(t, "Acme", products[0].Brand)
	require.Equal(t, "img", products[0].ImageURL)
	require.Equal(t, 2, products[0].StoreCount)
	require.Equal(t, 2.25, products[0].LowestPrice)
	require.Equal(t, 3.5, products[0].HighestPrice)
	require.Equal(t, []string{"a", "b"}, []string{products[0].Offers[0].StoreID, products[0].Offers[1].StoreID})
	require.Equal(t, "1 Main", products[0].Offers[0].Address)
	require.Equal(t, 1, products[1].StoreCount)
}

func TestAggregator_FirstBrandWins(t *testing.T) {
	agg := NewAggregator()
	agg.Add(storesdomain.Store{ID: "a"}, storesdomain.InventoryItem{SKU: "X", Brand: "First"})
	agg.Add(storesdomain.Store{ID: "b"}, storesdomain.InventoryItem{SKU: "X", Brand: "Second"})
	require.Equal(t, "First", agg.Products()[0].Brand)
}

func TestQuery_Accepts(t *testing.T) {
	item := storesdomain.InventoryItem{SKU: "MLK-002", Name: "Organic Whole Milk", Category: "Dairy", Brand: "Green Valley Dairy"}
	unbranded := storesdomain.InventoryItem{SKU: "GEN-1", Name: "Generic Milk", Category: "Dairy"}

	require.True(t, Query{}.Accepts(item))
	require.True(t, Query{ProductText: "milk", Category: "dairy"}.Accepts(item))
	require.True(t, Query{Category: "all", Brand: "ALL"}.Accepts(unbranded))
	require.False(t, Query{Category: "Produce"}.Accepts(item))
	require.True(t, Query{Brand: "green valley dairy"}.Accepts(item))
	require.False(t, Query{Brand: "green valley dairy"}.Accepts(unbranded))
	require.False(t, Query{ProductText: "bread"}.Accepts(item))
}

func TestParseSortKey(t *testing.T) {
	require.Equal(t, SortByPrice, ParseSortKey("price"))
	require.Equal(t, SortByAvailability, ParseSortKey(" Availability "))
	require.Equal(t, SortByName, ParseSortKey(""))
	require.Equal(t, SortByName, ParseSortKey("rating"))
}
