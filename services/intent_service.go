package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/ntai0404/map-excel-api-chat/models"
)

// IntentService classifies a user message into a SearchIntent. Deterministic
// keyword rules run first and short-circuit the model call; the model is only
// consulted for messages the rules cannot decide.
type IntentService struct {
	Provider ChatProvider
}

func NewIntentService(provider ChatProvider) *IntentService {
	return &IntentService{
		Provider: provider,
	}
}

var locationKeywords = []string{"vị trí", "tọa độ", "định vị", "ở đâu", "location", "gps"}

var firstPersonMarkers = []string{"tôi", "mình", "user", "hiện tại", "của tớ"}

var genericShoppingKeywords = []string{"mua đồ", "sắm đồ", "mua sắm", "shopping", "mua gì đó"}

// ExtractSearchIntent returns nil when no actionable intent is found. It
// never returns an error: any provider or parse failure degrades to nil.
func (s *IntentService) ExtractSearchIntent(ctx context.Context, message string, validCategories []string) *models.SearchIntent {
	if len(validCategories) == 0 {
		validCategories = []string{"Công nghệ", "Thời trang", "Ẩm thực"}
	}

	lower := strings.ToLower(message)
	tokenCount := len(strings.Fields(lower))

	// Hard rules: short location commands like "vị trí" or "xem tọa độ".
	if tokenCount <= 3 && containsAny(lower, locationKeywords) {
		log.Println("Detected location request (short command)")
		return &models.SearchIntent{IsLocationRequest: true}
	}

	// Longer sentences that pair a location keyword with the user themselves.
	if containsAny(lower, locationKeywords) && containsAny(lower, firstPersonMarkers) {
		log.Println("Detected location request (keyword combination)")
		return &models.SearchIntent{IsLocationRequest: true}
	}

	// Vague "I want to buy stuff" messages: force a clarifying reply instead
	// of letting the model guess a low-confidence product.
	if containsAny(lower, genericShoppingKeywords) && tokenCount <= 6 {
		log.Println("Detected generic shopping query, forcing clarification")
		return nil
	}

	return s.extractWithModel(ctx, message, validCategories)
}

func (s *IntentService) extractWithModel(ctx context.Context, message string, validCategories []string) *models.SearchIntent {
	systemInstruction := fmt.Sprintf(`Bạn là công cụ trích xuất ý định.
Nhiệm vụ: Trích xuất 'product', 'generic_term', 'category' và 'is_location_request'.
Output format: JSON ONLY.
Rules:
1. ƯU TIÊN TUYỆT ĐỐI: Nếu câu hỏi có chứa từ khóa "vị trí", "ở đâu", "tọa độ", "định vị" VÀ ám chỉ người dùng (tôi, mình, user) -> set "is_location_request": true. (Bất kể câu hỏi dài hay ngắn, lịch sự hay cộc lốc).
   * Ví dụ: "Xin hỏi vị trí hiện tại của tôi là ở đâu vậy" -> true.
   * Ví dụ: "Tôi đang ở chỗ nào" -> true.
2. Nếu tìm sản phẩm:
   - "product": Tên cụ thể (iPhone 16).
   - "generic_term": Từ khóa chung nhất (iPhone, Laptop, Giày).
     * ĐẶC BIỆT: "máy tính" -> generic_term: "Laptop".
     * "điện thoại" -> generic_term: "Điện thoại".
     * "áo", "quần" -> generic_term: "Quần áo".
   - "category": Chọn từ danh sách %v. Ưu tiên "Thời trang" nếu tìm áo/quần.

3. TRƯỜNG HỢP NGOẠI LỆ (QUAN TRỌNG):
   - Nếu người dùng nói chung chung như "mua đồ", "đi shopping", "muốn mua gì đó" mà KHÔNG có tên sản phẩm cụ thể -> Return tất cả là null.

Ví dụ:
- "Mua iPhone 16" -> {"product": "iPhone 16", "generic_term": "iPhone", "category": "Công nghệ", "is_location_request": false}
- "Tôi muốn mua đồ" -> {"product": null, "generic_term": null, "category": null, "is_location_request": false}
- "Vị trí của tôi ở đâu" -> {"product": null, "generic_term": null, "category": null, "is_location_request": true}`, validCategories)

	prompt := fmt.Sprintf("%s\n\nUser Message: %s", systemInstruction, message)

	content, err := s.Provider.Generate(ctx, prompt, true)
	if err != nil {
		log.Println("Error extracting intent:", err)
		return nil
	}

	var intent models.SearchIntent
	if err := json.Unmarshal([]byte(CleanJSONResponse(content)), &intent); err != nil {
		log.Println("Error parsing intent JSON:", err)
		return nil
	}

	// An object with nothing actionable collapses to no intent at all.
	if intent.IsEmpty() {
		return nil
	}
	return &intent
}

func containsAny(message string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return false
}
