package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineKm(t *testing.T) {
	downtown := Coordinate{Lat: 40.71268, Lng: -74.00622}
	require.InDelta(t, 0, HaversineKm(downtown, downtown), 1e-9)

	// One degree of latitude is roughly 111.19 km on a 6371 km sphere.
	require.InDelta(t, 111.19, HaversineKm(Coordinate{Lat: 0, Lng: 0}, Coordinate{Lat: 1, Lng: 0}), 0.01)

	neighborhood := Coordinate{Lat: 40.72285, Lng: -74.00111}
	d := HaversineKm(downtown, neighborhood)
	assert.InDelta(t, d, HaversineKm(neighborhood, downtown), 1e-9)
	assert.Greater(t, d, 1.0)
	assert.Less(t, d, 1.5)
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("MegaMart Springfield", "mega"))
	assert.True(t, ContainsFold("anything", ""))
	assert.False(t, ContainsFold("Fresh Market", "oak"))
}

func TestEqualFoldOrAll(t *testing.T) {
	assert.True(t, EqualFoldOrAll("Dairy", ""))
	assert.True(t, EqualFoldOrAll("Dairy", "all"))
	assert.True(t, EqualFoldOrAll("Dairy", "dairy"))
	assert.False(t, EqualFoldOrAll("", "Orchard Fresh"))
	assert.False(t, EqualFoldOrAll("Produce", "dairy"))
}

func TestInventoryItemMatches(t *testing.T) {
	item := InventoryItem{SKU: "APL-001", Name: "Honeycrisp Apples", Description: "Fresh locally sourced apples.", Category: "Produce"}
	assert.True(t, item.Matches("apl-"))
	assert.True(t, item.Matches("produce"))
	assert.True(t, item.Matches("LOCALLY"))
	assert.False(t, item.Matches("milk"))
}
