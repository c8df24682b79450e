package services

import (
	"testing"

	"github.com/ntai0404/map-excel-api-chat/models"

	"github.com/mmcloughlin/geohash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nearbyCatalog() *models.Catalog {
	stores := []models.Store{
		{StoreID: "near", Latitude: 10.7660, Longitude: 106.6630},
		{StoreID: "close", Latitude: 10.7580, Longitude: 106.6650},
		{StoreID: "hanoi", Latitude: 21.0278, Longitude: 105.8342},
		{StoreID: "unlocated"}, // 0.0 sentinel, no geohash
	}
	for i := range stores {
		if stores[i].Latitude != 0 || stores[i].Longitude != 0 {
			stores[i].Geohash = geohash.Encode(stores[i].Latitude, stores[i].Longitude)
		}
	}
	return &models.Catalog{Stores: stores}
}

func TestGetNearbyStoresSortsAndFilters(t *testing.T) {
	service := NewStoreService(nearbyCatalog())

	nearby := service.GetNearbyStores(10.7626, 106.6602, 3.0)

	require.Len(t, nearby, 2)
	assert.Equal(t, "near", nearby[0].Store.StoreID)
	assert.Equal(t, "close", nearby[1].Store.StoreID)
	assert.Less(t, nearby[0].DistanceKm, nearby[1].DistanceKm)
}

func TestGetNearbyStoresExcludesUnlocatedStores(t *testing.T) {
	service := NewStoreService(nearbyCatalog())

	nearby := service.GetNearbyStores(10.7626, 106.6602, 500.0)

	for _, r := range nearby {
		assert.NotEqual(t, "unlocated", r.Store.StoreID)
	}
}

func TestGetAllStoresReturnsCatalogOrder(t *testing.T) {
	catalog := nearbyCatalog()
	service := NewStoreService(catalog)

	stores := service.GetAllStores()

	require.Len(t, stores, len(catalog.Stores))
	assert.Equal(t, "near", stores[0].StoreID)
}
