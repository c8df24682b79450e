package services

import (
	"sort"
	"strings"

	"github.com/ntai0404/map-excel-api-chat/models"

	"github.com/mmcloughlin/geohash"
)

// StoreService serves the catalog endpoints used by the map view.
type StoreService struct {
	Catalog *models.Catalog
}

func NewStoreService(catalog *models.Catalog) *StoreService {
	return &StoreService{
		Catalog: catalog,
	}
}

func (s *StoreService) GetAllStores() []models.Store {
	return s.Catalog.Stores
}

// geohashPrefixLength of 5 covers roughly a 3 km cell.
const geohashPrefixLength = 5

// GetNearbyStores returns stores within radiusKm of the position, sorted by
// distance. A geohash prefix narrows the candidates before exact haversine,
// so stores just across a cell boundary can be missed; acceptable for the
// map preview this feeds.
func (s *StoreService) GetNearbyStores(latitude, longitude, radiusKm float64) []models.RankedStore {
	if radiusKm <= 0 {
		radiusKm = 3.0
	}

	targetGeoHash := geohash.Encode(latitude, longitude)
	prefix := targetGeoHash[:geohashPrefixLength]

	var nearby []models.RankedStore
	for _, store := range s.Catalog.Stores {
		if !strings.HasPrefix(store.Geohash, prefix) {
			continue
		}
		distance := haversine(latitude, longitude, store.Latitude, store.Longitude)
		if distance <= radiusKm {
			nearby = append(nearby, models.RankedStore{
				Store:      store,
				DistanceKm: distance,
				Products:   store.Products,
			})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	return nearby
}
