package services

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/ntai0404/map-excel-api-chat/config/database"
	"github.com/ntai0404/map-excel-api-chat/models"
	"github.com/ntai0404/map-excel-api-chat/utils"

	"cloud.google.com/go/firestore"
)

// ChatService orchestrates one chat request: intent extraction, progressive
// store filtering, distance ranking and reply composition, in that order.
type ChatService struct {
	IntentService   *IntentService
	FilterService   *FilterService
	GeoService      *GeoService
	ResponseService *ResponseService
	FirestoreClient *firestore.Client
	Catalog         *models.Catalog
}

func NewChatService(catalog *models.Catalog, provider ChatProvider) *ChatService {
	return &ChatService{
		IntentService:   NewIntentService(provider),
		FilterService:   NewFilterService(),
		GeoService:      NewGeoService(),
		ResponseService: NewResponseService(provider),
		FirestoreClient: database.GetFirestoreClient(),
		Catalog:         catalog,
	}
}

// Chat runs the full pipeline. The two model calls degrade independently
// (absent intent / apology reply); only an empty catalog fails the request,
// since that signals a startup failure rather than a legitimate empty result.
func (s *ChatService) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	if s.Catalog.IsEmpty() {
		return nil, utils.NewCustomError(http.StatusServiceUnavailable, "Store data not loaded")
	}

	intent := s.IntentService.ExtractSearchIntent(ctx, req.Message, s.Catalog.Categories)
	log.Printf("User intent: %+v", intent)

	candidates, matchType := s.FilterService.FilterStores(s.Catalog.Stores, intent)

	ranked := s.GeoService.FindNearestStores(req.Latitude, req.Longitude, candidates, intent, matchType, defaultNearestLimit)

	reply := s.ResponseService.GetAIResponse(ctx, req.Message, ranked, intent, matchType)

	nearestStores := make([]models.StoreInfo, 0, len(ranked))
	for _, r := range ranked {
		products := make([]models.ProductInfo, 0, len(r.Products))
		for _, p := range r.Products {
			products = append(products, models.ProductInfo{
				Name:     p.Name,
				Price:    p.Price,
				ImageURL: p.ImageURL,
				Link:     p.Link,
			})
		}
		nearestStores = append(nearestStores, models.StoreInfo{
			Name:          r.Store.StoreName,
			Address:       r.Store.Address,
			Lat:           r.Store.Latitude,
			Lng:           r.Store.Longitude,
			DistanceKm:    r.DistanceKm,
			ZaloGroupLink: r.Store.ZaloGroupLink,
			Products:      products,
		})
	}

	return &models.ChatResponse{
		Reply:           reply,
		NearestStores:   nearestStores,
		TriggerLocation: intent != nil && intent.IsLocationRequest,
	}, nil
}

// SaveChat appends one message to a room's history.
func (s *ChatService) SaveChat(ctx context.Context, userId, message, roomId string, fromAssistant bool) error {
	var chatData models.Chat

	chatData.RoomID = roomId
	chatData.Chat = message
	chatData.CreatedAt = time.Now().Format(time.RFC3339)

	if fromAssistant {
		chatData.UserID = "assistant"
	} else {
		chatData.UserID = userId
	}

	chatRef := s.FirestoreClient.Collection("users").Doc(userId).Collection("rooms").Doc(roomId).Collection("chats").NewDoc()
	_, err := chatRef.Set(ctx, chatData)
	if err != nil {
		return err
	}
	return nil
}

// HistoryEnabled reports whether Firestore-backed chat history is configured.
func (s *ChatService) HistoryEnabled() bool {
	return s.FirestoreClient != nil
}
