package services

import (
	"context"
	"time"

	"github.com/ntai0404/map-excel-api-chat/config/database"
	"github.com/ntai0404/map-excel-api-chat/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// RoomService manages per-user chat rooms in Firestore.
type RoomService struct {
	FirestoreClient *firestore.Client
}

func NewRoomService() *RoomService {
	return &RoomService{
		FirestoreClient: database.GetFirestoreClient(),
	}
}

func (s *RoomService) SaveRoom(ctx context.Context, userId, title string) (*models.Room, error) {
	var room models.Room
	roomRef := s.FirestoreClient.Collection("users").Doc(userId).Collection("rooms").NewDoc()

	room.UserID = userId
	room.RoomTitle = title
	room.CreatedAt = time.Now().Format(time.RFC3339)

	_, err := roomRef.Set(ctx, room)
	if err != nil {
		return nil, err
	}

	return &models.Room{
		RoomID:    roomRef.ID,
		UserID:    room.UserID,
		RoomTitle: room.RoomTitle,
		CreatedAt: room.CreatedAt,
	}, nil
}

func (s *RoomService) GetRooms(ctx context.Context, userId string) ([]*models.Room, error) {
	var rooms []*models.Room

	roomDocs, err := s.FirestoreClient.Collection("users").Doc(userId).Collection("rooms").Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	for _, doc := range roomDocs {
		var room models.Room
		if err := doc.DataTo(&room); err != nil {
			return nil, err
		}
		room.RoomID = doc.Ref.ID
		rooms = append(rooms, &room)
	}

	return rooms, nil
}

// GetRoomWithChats returns one room plus its messages in creation order.
func (s *RoomService) GetRoomWithChats(ctx context.Context, userId, roomId string) (*models.RoomWithChat, error) {
	roomDoc, err := s.FirestoreClient.Collection("users").Doc(userId).Collection("rooms").Doc(roomId).Get(ctx)
	if err != nil {
		return nil, err
	}

	var room models.Room
	if err := roomDoc.DataTo(&room); err != nil {
		return nil, err
	}
	room.RoomID = roomDoc.Ref.ID

	iter := s.FirestoreClient.Collection("users").Doc(userId).Collection("rooms").Doc(roomId).
		Collection("chats").OrderBy("CreatedAt", firestore.Asc).Documents(ctx)

	var chats []models.Chat
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var chat models.Chat
		if err := doc.DataTo(&chat); err != nil {
			return nil, err
		}
		chat.ChatID = doc.Ref.ID
		chats = append(chats, chat)
	}

	return &models.RoomWithChat{Room: room, Chats: chats}, nil
}
