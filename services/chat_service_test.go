package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/ntai0404/map-excel-api-chat/models"
	"github.com/ntai0404/map-excel-api-chat/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider returns one canned response per call, in order: the chat
// pipeline calls the model twice (intent, then reply).
type scriptedProvider struct {
	responses []string
	calls     int
}

func (s *scriptedProvider) Generate(_ context.Context, _ string, _ bool) (string, error) {
	response := s.responses[s.calls%len(s.responses)]
	s.calls++
	return response, nil
}

func newTestChatService(provider ChatProvider, catalog *models.Catalog) *ChatService {
	return &ChatService{
		IntentService:   NewIntentService(provider),
		FilterService:   NewFilterService(),
		GeoService:      NewGeoService(),
		ResponseService: NewResponseService(provider),
		Catalog:         catalog,
	}
}

func chatCatalog() *models.Catalog {
	return &models.Catalog{
		Stores: []models.Store{
			{
				StoreID: "S1", StoreName: "TechZone", Address: "1 Lê Lợi Q1",
				Category: "Điện thoại", ProductInfo: "iPhone 16 Pro, iPhone 15",
				Latitude: 10.7660, Longitude: 106.6630, ZaloGroupLink: "https://zalo.me/g/tech",
				Products: []models.Product{{Name: "iPhone 16 Pro", Price: "30000000"}},
			},
			{
				StoreID: "S2", StoreName: "Mobile World", Address: "9 Trần Hưng Đạo Q5",
				Category: "Điện thoại", ProductInfo: "Samsung Galaxy S24",
				Latitude: 10.7800, Longitude: 106.6900,
			},
		},
		Categories: []string{"Điện thoại"},
	}
}

func TestChatEmptyCatalogFailsWithServiceUnavailable(t *testing.T) {
	service := newTestChatService(&fakeChatProvider{}, &models.Catalog{})

	_, err := service.Chat(context.Background(), models.ChatRequest{Message: "hi"})

	require.Error(t, err)
	customErr, ok := err.(*utils.CustomError)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, customErr.StatusCode)
}

func TestChatProductSearchReturnsRankedStores(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		`{"product": "iPhone 16", "generic_term": "iPhone", "category": "Điện thoại", "is_location_request": false}`,
		"Tin vui! TechZone gần bạn có iPhone 16 Pro.",
	}}
	service := newTestChatService(provider, chatCatalog())

	response, err := service.Chat(context.Background(), models.ChatRequest{
		Message:  "Tôi muốn mua iPhone 16",
		Latitude: 10.7626, Longitude: 106.6602,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
	assert.False(t, response.TriggerLocation)
	require.Len(t, response.NearestStores, 1)
	assert.Equal(t, "TechZone", response.NearestStores[0].Name)
	assert.Equal(t, "https://zalo.me/g/tech", response.NearestStores[0].ZaloGroupLink)
	assert.Greater(t, response.NearestStores[0].DistanceKm, 0.0)
	require.Len(t, response.NearestStores[0].Products, 1)
	assert.Equal(t, "iPhone 16 Pro", response.NearestStores[0].Products[0].Name)
}

func TestChatLocationRequestTriggersLocation(t *testing.T) {
	// "vị trí" is decided by the hard rules, so only the reply hits the model.
	provider := &scriptedProvider{responses: []string{"Đây là vị trí của bạn."}}
	service := newTestChatService(provider, chatCatalog())

	response, err := service.Chat(context.Background(), models.ChatRequest{
		Message:  "vị trí",
		Latitude: 10.7626, Longitude: 106.6602,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
	assert.True(t, response.TriggerLocation)
	assert.Empty(t, response.NearestStores)
}

func TestChatGenericShoppingAsksForClarification(t *testing.T) {
	provider := &scriptedProvider{responses: []string{"Bạn đang tìm kiếm sản phẩm nào cụ thể ạ?"}}
	service := newTestChatService(provider, chatCatalog())

	response, err := service.Chat(context.Background(), models.ChatRequest{
		Message:  "mua đồ",
		Latitude: 10.7626, Longitude: 106.6602,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, provider.calls)
	assert.False(t, response.TriggerLocation)
	assert.Empty(t, response.NearestStores)
	assert.Contains(t, response.Reply, "sản phẩm nào cụ thể")
}
