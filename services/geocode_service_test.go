package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ntai0404/map-excel-api-chat/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGeocodeProvider struct {
	lat   float64
	lng   float64
	err   error
	calls int
}

func (f *fakeGeocodeProvider) Geocode(_ context.Context, _ string) (float64, float64, error) {
	f.calls++
	return f.lat, f.lng, f.err
}

func newTestGeocodeService(t *testing.T, provider GeocodeProvider) *GeocodeService {
	t.Helper()
	service := NewGeocodeService(provider, filepath.Join(t.TempDir(), "geocoding_cache.json"), time.Second)
	service.Pause = 0 // no politeness delay in tests
	return service
}

func TestGeocodeAddressIdempotence(t *testing.T) {
	provider := &fakeGeocodeProvider{lat: 10.7626, lng: 106.6602}
	service := newTestGeocodeService(t, provider)

	lat1, lng1, ok := service.GeocodeAddress(context.Background(), "Quận 1, TP.HCM")
	require.True(t, ok)

	lat2, lng2, ok := service.GeocodeAddress(context.Background(), "Quận 1, TP.HCM")
	require.True(t, ok)

	assert.Equal(t, lat1, lat2)
	assert.Equal(t, lng1, lng2)
	assert.Equal(t, 1, provider.calls, "second lookup must be served from cache")
}

func TestGeocodeAddressPersistsCacheFile(t *testing.T) {
	provider := &fakeGeocodeProvider{lat: 21.0278, lng: 105.8342}
	service := newTestGeocodeService(t, provider)

	_, _, ok := service.GeocodeAddress(context.Background(), "Hoàn Kiếm, Hà Nội")
	require.True(t, ok)

	data, err := os.ReadFile(service.CacheFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hoàn Kiếm, Hà Nội")

	// A fresh service over the same file starts warm.
	fresh := NewGeocodeService(&fakeGeocodeProvider{err: errors.New("should not be called")}, service.CacheFile, time.Second)
	fresh.Pause = 0
	lat, lng, ok := fresh.GeocodeAddress(context.Background(), "Hoàn Kiếm, Hà Nội")
	require.True(t, ok)
	assert.Equal(t, 21.0278, lat)
	assert.Equal(t, 105.8342, lng)
}

func TestGeocodeAddressDegradesOnProviderError(t *testing.T) {
	provider := &fakeGeocodeProvider{err: errors.New("upstream unavailable")}
	service := newTestGeocodeService(t, provider)

	_, _, ok := service.GeocodeAddress(context.Background(), "Nowhere")
	assert.False(t, ok)

	_, _, ok = service.GeocodeAddress(context.Background(), "")
	assert.False(t, ok)
	assert.Equal(t, 1, provider.calls, "empty addresses never reach the provider")
}

func TestFillMissingCoordinates(t *testing.T) {
	provider := &fakeGeocodeProvider{lat: 10.8, lng: 106.7}
	service := newTestGeocodeService(t, provider)

	stores := []models.Store{
		{StoreID: "geocoded", Address: "Quận 3, TP.HCM"},
		{StoreID: "kept", Latitude: 10.7626, Longitude: 106.6602},
		{StoreID: "no-address"},
	}
	service.FillMissingCoordinates(context.Background(), stores)

	assert.Equal(t, 10.8, stores[0].Latitude)
	assert.Equal(t, 106.7, stores[0].Longitude)
	assert.NotEmpty(t, stores[0].Geohash)

	assert.Equal(t, 10.7626, stores[1].Latitude)
	assert.NotEmpty(t, stores[1].Geohash)

	assert.Zero(t, stores[2].Latitude)
	assert.Empty(t, stores[2].Geohash)
	assert.Equal(t, 1, provider.calls)
}
