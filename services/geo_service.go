package services

import (
	"math"
	"sort"
	"strings"

	"github.com/ntai0404/map-excel-api-chat/models"
)

// GeoService ranks candidate stores by distance from the user.
type GeoService struct{}

func NewGeoService() *GeoService {
	return &GeoService{}
}

const earthRadiusKm = 6371.0 // Radius of Earth in km

const defaultNearestLimit = 3

const maxProductsPerStore = 5

// haversine computes the great-circle distance in km between two points on a
// sphere of Earth radius. Spherical rather than ellipsoidal: the error is
// under 0.5% which is irrelevant at "which store is closest" scale.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1 = lat1 * (math.Pi / 180.0)
	lat2 = lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func validCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// FindNearestStores returns the closest stores to the user, at most limit,
// sorted ascending by distance. Stores with out-of-range coordinates are
// skipped instead of failing the batch.
func (s *GeoService) FindNearestStores(userLat, userLng float64, candidates []models.Store, intent *models.SearchIntent, matchType models.MatchType, limit int) []models.RankedStore {
	if limit <= 0 {
		limit = defaultNearestLimit
	}

	var ranked []models.RankedStore
	for _, store := range candidates {
		if !validCoordinates(store.Latitude, store.Longitude) {
			continue
		}
		ranked = append(ranked, models.RankedStore{
			Store:      store,
			DistanceKm: haversine(userLat, userLng, store.Latitude, store.Longitude),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	for i := range ranked {
		ranked[i].Products = selectProducts(ranked[i].Store, intent, matchType)
	}
	return ranked
}

// selectProducts picks up to 5 products for display. On an exact product
// match the store's own products are re-filtered by the same AND rule; when
// that finds nothing (or the match was broader) the first 5 in catalog order
// are shown.
func selectProducts(store models.Store, intent *models.SearchIntent, matchType models.MatchType) []models.Product {
	if matchType == models.MatchProduct && intent != nil && intent.Product != "" {
		terms := strings.Fields(intent.Product)
		var matched []models.Product
		for _, product := range store.Products {
			if productMatchesTerms(product, store.StoreName, terms) {
				matched = append(matched, product)
				if len(matched) == maxProductsPerStore {
					break
				}
			}
		}
		if len(matched) > 0 {
			return matched
		}
	}

	if len(store.Products) > maxProductsPerStore {
		return store.Products[:maxProductsPerStore]
	}
	return store.Products
}

func productMatchesTerms(product models.Product, storeName string, terms []string) bool {
	for _, term := range terms {
		if !containsFold(product.Name, term) && !containsFold(storeName, term) {
			return false
		}
	}
	return true
}
