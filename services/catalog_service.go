package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ntai0404/map-excel-api-chat/models"
)

// CatalogService loads the product sheet (CSV export) and aggregates its rows
// into the immutable store catalog.
type CatalogService struct {
	SheetURL string
	Client   *http.Client
}

func NewCatalogService(sheetURL string) *CatalogService {
	return &CatalogService{
		SheetURL: sheetURL,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Column name variants seen across sheet revisions, normalized once here so
// nothing downstream ever branches on column names again.
var columnAliases = map[string]string{
	"shop_id":      "store_id",
	"shop_name":    "store_name",
	"lat":          "latitude",
	"lng":          "longitude",
	"long":         "longitude",
	"name":         "product_name",
	"image":        "image_url",
	"product_link": "link",
	"zalo_link":    "zalo_group_link",
}

var requiredColumns = []string{"store_id", "store_name", "address", "category", "product_info", "promotion", "latitude", "longitude"}

const missingPriceSentinel = "Liên hệ"

// LoadCatalog fetches and parses the sheet. Returns an error only when the
// sheet cannot be fetched or read at all; partial data is loaded with a
// warning.
func (s *CatalogService) LoadCatalog(ctx context.Context) (*models.Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.SheetURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching store sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("store sheet request failed with status %d", resp.StatusCode)
	}

	catalog, err := ParseCatalog(resp.Body)
	if err != nil {
		return nil, err
	}
	log.Printf("Store data loaded successfully. %d stores, %d categories.", len(catalog.Stores), len(catalog.Categories))
	return catalog, nil
}

// ParseCatalog reads CSV rows and groups them by store, preserving sheet row
// order for both stores and products.
func ParseCatalog(r io.Reader) (*models.Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading sheet header: %w", err)
	}

	columns := make(map[string]int)
	for i, name := range header {
		normalized := strings.ToLower(strings.TrimSpace(name))
		if canonical, ok := columnAliases[normalized]; ok {
			normalized = canonical
		}
		columns[normalized] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		log.Printf("Warning: sheet is missing columns %v, proceeding with empty values", missing)
	}

	field := func(record []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var stores []models.Store
	var categories []string
	storeIndex := make(map[string]int)
	seenCategory := make(map[string]bool)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Println("Warning: skipping unreadable sheet row:", err)
			continue
		}

		storeID := field(record, "store_id")
		storeName := field(record, "store_name")
		if storeID == "" {
			storeID = storeName
		}
		if storeID == "" {
			continue
		}

		idx, exists := storeIndex[storeID]
		if !exists {
			store := models.Store{
				StoreID:       storeID,
				StoreName:     storeName,
				Address:       field(record, "address"),
				Category:      field(record, "category"),
				ProductInfo:   field(record, "product_info"),
				Promotion:     field(record, "promotion"),
				Latitude:      CleanCoordinate(field(record, "latitude")),
				Longitude:     CleanCoordinate(field(record, "longitude")),
				ZaloGroupLink: field(record, "zalo_group_link"),
			}
			stores = append(stores, store)
			idx = len(stores) - 1
			storeIndex[storeID] = idx

			if store.Category != "" && !seenCategory[store.Category] {
				seenCategory[store.Category] = true
				categories = append(categories, store.Category)
			}
		}

		productName := field(record, "product_name")
		if productName != "" {
			price := field(record, "price")
			if price == "" {
				price = missingPriceSentinel
			}
			stores[idx].Products = append(stores[idx].Products, models.Product{
				Name:     productName,
				Price:    price,
				ImageURL: field(record, "image_url"),
				Link:     field(record, "link"),
				ShopID:   storeID,
			})
		}
	}

	for i := range stores {
		stores[i].ProductCount = len(stores[i].Products)
		if stores[i].ProductInfo == "" && len(stores[i].Products) > 0 {
			names := make([]string, 0, len(stores[i].Products))
			for _, product := range stores[i].Products {
				names = append(names, product.Name)
			}
			stores[i].ProductInfo = strings.Join(names, ", ")
		}
	}

	return &models.Catalog{Stores: stores, Categories: categories}, nil
}

// CleanCoordinate normalizes coordinate strings that sometimes arrive with
// thousands-style dots from the sheet (e.g. "105.820.730" -> 105.820730).
// Unparsable values become the 0.0 sentinel.
func CleanCoordinate(value string) float64 {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0.0
	}
	if strings.Count(s, ".") > 1 {
		parts := strings.Split(s, ".")
		s = parts[0] + "." + strings.Join(parts[1:], "")
	}
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return parsed
}
