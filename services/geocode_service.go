package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/ntai0404/map-excel-api-chat/models"

	"github.com/mmcloughlin/geohash"
)

// GeocodeProvider resolves a free-text address to coordinates.
type GeocodeProvider interface {
	Geocode(ctx context.Context, address string) (float64, float64, error)
}

// NominatimProvider geocodes through the public Nominatim API.
type NominatimProvider struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
}

func NewNominatimProvider() *NominatimProvider {
	return &NominatimProvider{
		BaseURL:   "https://nominatim.openstreetmap.org/search",
		UserAgent: "map_excel_api_chat_v3",
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *NominatimProvider) Geocode(ctx context.Context, address string) (float64, float64, error) {
	query := url.Values{}
	query.Set("q", address+", Vietnam")
	query.Set("format", "json")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("User-Agent", p.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocoding request failed with status %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no geocoding result for %q", address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, err
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}

type coordinatePair struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeocodeService resolves addresses through a flat-file cache, hitting the
// external provider only on misses with a politeness pause between calls.
// The cache grows forever and is never invalidated; a stale entry for a
// re-addressed shop survives until the file is deleted by hand.
type GeocodeService struct {
	Provider  GeocodeProvider
	CacheFile string
	Pause     time.Duration
	Timeout   time.Duration

	mu    sync.Mutex
	cache map[string]coordinatePair
}

func NewGeocodeService(provider GeocodeProvider, cacheFile string, timeout time.Duration) *GeocodeService {
	return &GeocodeService{
		Provider:  provider,
		CacheFile: cacheFile,
		Pause:     time.Second,
		Timeout:   timeout,
		cache:     loadGeocodeCache(cacheFile),
	}
}

func loadGeocodeCache(path string) map[string]coordinatePair {
	cache := make(map[string]coordinatePair)
	data, err := os.ReadFile(path)
	if err != nil {
		return cache
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		log.Println("Error reading geocoding cache, starting empty:", err)
		return make(map[string]coordinatePair)
	}
	return cache
}

// saveCache rewrites the whole file. Best effort: a failed write only costs a
// repeat lookup later.
func (s *GeocodeService) saveCache() {
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		log.Println("Error encoding geocoding cache:", err)
		return
	}
	if err := os.WriteFile(s.CacheFile, data, 0644); err != nil {
		log.Println("Error saving geocoding cache:", err)
	}
}

// GeocodeAddress returns the coordinates for an address, or ok=false when the
// address is empty or the provider fails. Failures never propagate.
func (s *GeocodeService) GeocodeAddress(ctx context.Context, address string) (float64, float64, bool) {
	if address == "" {
		return 0, 0, false
	}

	s.mu.Lock()
	if cached, found := s.cache[address]; found {
		s.mu.Unlock()
		return cached.Latitude, cached.Longitude, true
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	lat, lng, err := s.Provider.Geocode(ctx, address)
	if err != nil {
		log.Printf("Geocoding error for %q: %v", address, err)
		return 0, 0, false
	}

	s.mu.Lock()
	s.cache[address] = coordinatePair{Latitude: lat, Longitude: lng}
	s.saveCache()
	s.mu.Unlock()

	// Politeness rate limit towards the public provider.
	time.Sleep(s.Pause)

	return lat, lng, true
}

// FillMissingCoordinates geocodes stores that came out of the sheet with the
// 0.0 sentinel and stamps every store with its geohash. Runs at startup,
// before the catalog snapshot is published.
func (s *GeocodeService) FillMissingCoordinates(ctx context.Context, stores []models.Store) {
	for i := range stores {
		if stores[i].Latitude == 0 && stores[i].Longitude == 0 && stores[i].Address != "" {
			lat, lng, ok := s.GeocodeAddress(ctx, stores[i].Address)
			if ok {
				stores[i].Latitude = lat
				stores[i].Longitude = lng
			}
		}
		// The 0.0 sentinel never gets a geohash, so the nearby lookup
		// cannot surface stores that were never located.
		if (stores[i].Latitude != 0 || stores[i].Longitude != 0) && validCoordinates(stores[i].Latitude, stores[i].Longitude) {
			stores[i].Geohash = geohash.Encode(stores[i].Latitude, stores[i].Longitude)
		}
	}
}
