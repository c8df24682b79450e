package models

// ChatRequest is the /chat payload from the frontend.
type ChatRequest struct {
	Message   string  `json:"message" binding:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type ProductInfo struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	ImageURL string `json:"image_url"`
	Link     string `json:"link"`
}

type StoreInfo struct {
	Name          string        `json:"name"`
	Address       string        `json:"address"`
	Lat           float64       `json:"lat"`
	Lng           float64       `json:"lng"`
	DistanceKm    float64       `json:"distance_km"`
	ZaloGroupLink string        `json:"zalo_group_link,omitempty"`
	Products      []ProductInfo `json:"products"`
}

// ChatResponse carries the generated reply plus the ranked stores.
// TriggerLocation tells the frontend to show the user's own position.
type ChatResponse struct {
	Reply           string      `json:"reply"`
	NearestStores   []StoreInfo `json:"nearest_stores"`
	TriggerLocation bool        `json:"trigger_location"`
}

// Room groups the chats of one user conversation.
type Room struct {
	RoomID    string `json:"room_id"`
	UserID    string `json:"user_id"`
	RoomTitle string `json:"room_title"`
	CreatedAt string `json:"created_at"`
}

type Chat struct {
	ChatID    string `json:"chat_id"`
	RoomID    string `json:"room_id"`
	UserID    string `json:"user_id"`
	Chat      string `json:"chat"`
	CreatedAt string `json:"created_at"`
}

type RoomWithChat struct {
	Room  Room   `json:"room"`
	Chats []Chat `json:"chats"`
}
