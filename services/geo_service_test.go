package services

import (
	"testing"

	"github.com/ntai0404/map-excel-api-chat/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// User position from the Bến Thành area of Ho Chi Minh City.
const (
	userLat = 10.7626
	userLng = 106.6602
)

func rankedFixtures() []models.Store {
	return []models.Store{
		{StoreID: "far", StoreName: "Far Store", Latitude: 10.7800, Longitude: 106.6900},   // ~3.8 km
		{StoreID: "near", StoreName: "Near Store", Latitude: 10.7660, Longitude: 106.6630}, // ~0.5 km
		{StoreID: "mid", StoreName: "Mid Store", Latitude: 10.7700, Longitude: 106.6700},   // ~1.4 km
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Hanoi to Ho Chi Minh City is about 1140-1170 km.
	distance := haversine(21.0278, 105.8342, 10.7769, 106.7009)
	assert.InDelta(t, 1150, distance, 30)

	assert.Zero(t, haversine(userLat, userLng, userLat, userLng))
}

func TestFindNearestStoresOrdersByDistance(t *testing.T) {
	service := NewGeoService()

	ranked := service.FindNearestStores(userLat, userLng, rankedFixtures(), nil, models.MatchNone, 3)

	require.Len(t, ranked, 3)
	assert.Equal(t, "near", ranked[0].Store.StoreID)
	assert.Equal(t, "mid", ranked[1].Store.StoreID)
	assert.Equal(t, "far", ranked[2].Store.StoreID)
	assert.Less(t, ranked[0].DistanceKm, ranked[1].DistanceKm)
	assert.Less(t, ranked[1].DistanceKm, ranked[2].DistanceKm)
}

func TestFindNearestStoresRespectsLimit(t *testing.T) {
	service := NewGeoService()

	ranked := service.FindNearestStores(userLat, userLng, rankedFixtures(), nil, models.MatchNone, 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, "near", ranked[0].Store.StoreID)
}

func TestFindNearestStoresIsDeterministic(t *testing.T) {
	service := NewGeoService()

	first := service.FindNearestStores(userLat, userLng, rankedFixtures(), nil, models.MatchNone, 3)
	second := service.FindNearestStores(userLat, userLng, rankedFixtures(), nil, models.MatchNone, 3)

	assert.Equal(t, first, second)
}

func TestFindNearestStoresSkipsInvalidCoordinates(t *testing.T) {
	service := NewGeoService()
	stores := append(rankedFixtures(), models.Store{StoreID: "bad", Latitude: 123.0, Longitude: 500.0})

	ranked := service.FindNearestStores(userLat, userLng, stores, nil, models.MatchNone, 10)

	require.Len(t, ranked, 3)
	for _, r := range ranked {
		assert.NotEqual(t, "bad", r.Store.StoreID)
	}
}

func TestSelectProductsRefiltersOnProductMatch(t *testing.T) {
	store := models.Store{
		StoreName: "TechZone",
		Products: []models.Product{
			{Name: "iPhone 15"},
			{Name: "iPhone 16 Pro"},
			{Name: "Ốp lưng iPhone 16"},
			{Name: "Samsung Galaxy S24"},
		},
	}
	intent := &models.SearchIntent{Product: "iPhone 16"}

	products := selectProducts(store, intent, models.MatchProduct)

	require.Len(t, products, 2)
	assert.Equal(t, "iPhone 16 Pro", products[0].Name)
	assert.Equal(t, "Ốp lưng iPhone 16", products[1].Name)
}

func TestSelectProductsFallsBackToFirstFive(t *testing.T) {
	store := models.Store{
		StoreName: "TechZone",
		Products: []models.Product{
			{Name: "P1"}, {Name: "P2"}, {Name: "P3"},
			{Name: "P4"}, {Name: "P5"}, {Name: "P6"},
		},
	}

	// No product match in the store: catalog order wins.
	intent := &models.SearchIntent{Product: "Nokia"}
	products := selectProducts(store, intent, models.MatchProduct)
	require.Len(t, products, 5)
	assert.Equal(t, "P1", products[0].Name)

	// Category-level match never refilters.
	products = selectProducts(store, intent, models.MatchCategory)
	require.Len(t, products, 5)
	assert.Equal(t, "P5", products[4].Name)
}
