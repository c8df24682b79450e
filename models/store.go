package models

// Store is one aggregated shop from the product sheet. Built once at startup
// and never mutated by chat requests.
type Store struct {
	StoreID       string    `json:"store_id"`
	StoreName     string    `json:"store_name"`
	Address       string    `json:"address"`
	Category      string    `json:"category"`
	ProductInfo   string    `json:"product_info"`
	Promotion     string    `json:"promotion"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	ZaloGroupLink string    `json:"zalo_group_link,omitempty"`
	Geohash       string    `json:"geohash,omitempty"`
	Products      []Product `json:"products"`
	ProductCount  int       `json:"product_count"`
}

type Product struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	ImageURL string `json:"image_url"`
	Link     string `json:"link"`
	ShopID   string `json:"shop_id"`
}

// RankedStore is a Store plus its distance from the user and the (up to 5)
// products selected for display. Built per request, never stored.
type RankedStore struct {
	Store      Store     `json:"store"`
	DistanceKm float64   `json:"distance_km"`
	Products   []Product `json:"products"`
}

// Catalog is the immutable snapshot shared by all requests.
type Catalog struct {
	Stores     []Store
	Categories []string
}

func (c *Catalog) IsEmpty() bool {
	return c == nil || len(c.Stores) == 0
}
