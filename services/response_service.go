package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ntai0404/map-excel-api-chat/models"
)

// ResponseService composes the reply prompt from the ranked results and
// renders it through the chat provider.
type ResponseService struct {
	Provider ChatProvider
}

func NewResponseService(provider ChatProvider) *ResponseService {
	return &ResponseService{
		Provider: provider,
	}
}

const systemPersona = "Bạn là trợ lý ảo bán hàng. Nhiệm vụ của bạn là trả lời câu hỏi của khách hàng một cách thân thiện và mời họ đến cửa hàng gần nhất nếu có thông tin."

const fallbackReply = "Xin lỗi, tôi đang gặp vấn đề. Vui lòng thử lại sau."

// GetAIResponse renders the final reply. It never fails: provider errors
// degrade to a fixed apology string.
func (s *ResponseService) GetAIResponse(ctx context.Context, message string, rankedStores []models.RankedStore, intent *models.SearchIntent, matchType models.MatchType) string {
	prompt := s.buildPrompt(message, rankedStores, intent, matchType)

	reply, err := s.Provider.Generate(ctx, prompt, false)
	if err != nil {
		log.Println("Error generating AI response:", err)
		return fallbackReply
	}
	return reply
}

// buildPrompt branches on the results, mutually exclusive in this order:
// stores found > location request > intent without results > no intent.
func (s *ResponseService) buildPrompt(message string, rankedStores []models.RankedStore, intent *models.SearchIntent, matchType models.MatchType) string {
	var prompt strings.Builder
	prompt.WriteString(systemPersona)
	prompt.WriteString("\n\n")

	if len(rankedStores) > 0 {
		var context strings.Builder
		context.WriteString("Thông tin các cửa hàng gần nhất:\n")
		for i, ranked := range rankedStores {
			context.WriteString(fmt.Sprintf(
				"Cửa hàng %d:\n- Tên: %s\n- Khoảng cách: %.2f km\n- Sản phẩm: %s\n- Khuyến mãi: %s\n- Địa chỉ: %s\n\n",
				i+1, ranked.Store.StoreName, ranked.DistanceKm, ranked.Store.ProductInfo, ranked.Store.Promotion, ranked.Store.Address,
			))
		}
		prompt.WriteString(fmt.Sprintf("Context: %s\n\nUser Query: %s.\n\n", context.String(), message))

		switch {
		case matchType == models.MatchProduct:
			prompt.WriteString("Chỉ dẫn:\n1. Người dùng tìm đúng sản phẩm có trong Context. Hãy báo tin vui và mời họ đến.\n2. Tóm tắt khuyến mãi hấp dẫn nhất.")
		case matchType == models.MatchCategory && intent != nil && intent.Product != "":
			categoryName := intent.Category
			if categoryName == "" {
				categoryName = "danh mục này"
			}
			prompt.WriteString(fmt.Sprintf(
				"Chỉ dẫn:\n1. Người dùng tìm '%s' nhưng hiện tại KHÔNG có cửa hàng nào gần đây bán chính xác sản phẩm đó.\n2. Hệ thống tìm thấy các cửa hàng thuộc nhóm '%s' để thay thế.\n3. Hãy nói rõ: 'Tiếc là mình không thấy cửa hàng nào có sẵn %s ở gần bạn. Tuy nhiên, mình tìm thấy các cửa hàng %s này có thể phù hợp...'.\n4. Giới thiệu ngắn gọn.",
				intent.Product, categoryName, intent.Product, categoryName,
			))
		default:
			categoryName := "danh mục này"
			if intent != nil && intent.Category != "" {
				categoryName = intent.Category
			}
			prompt.WriteString(fmt.Sprintf(
				"Chỉ dẫn:\n1. Người dùng đang tìm kiếm chung về '%s' (hoặc các sản phẩm thuộc nhóm này).\n2. Hãy nói: 'Mình tìm thấy các cửa hàng %s này phù hợp với nhu cầu của bạn...'.\n3. Giới thiệu ngắn gọn.",
				categoryName, categoryName,
			))
		}
		return prompt.String()
	}

	if intent != nil && intent.IsLocationRequest {
		prompt.WriteString(fmt.Sprintf(
			"User Query: %s.\n\nChỉ dẫn:\nNgười dùng đang hỏi về vị trí. Hãy trả lời ngắn gọn: 'Đây là vị trí hiện tại của bạn trên bản đồ nhé.' (Frontend sẽ tự động xử lý phần còn lại).",
			message,
		))
		return prompt.String()
	}

	if intent != nil {
		searchName := intent.Product
		if searchName == "" {
			searchName = intent.Category
		}
		prompt.WriteString(fmt.Sprintf(
			"User Query: %s.\n\nChỉ dẫn:\nNgười dùng muốn tìm '%s' nhưng hiện tại không tìm thấy cửa hàng nào phù hợp trong hệ thống. Hãy xin lỗi khách hàng một cách khéo léo và hỏi họ muốn tìm sản phẩm khác không.",
			message, searchName,
		))
		return prompt.String()
	}

	prompt.WriteString(fmt.Sprintf(
		"User Query: %s.\n\nChỉ dẫn:\nĐây là hội thoại xã giao hoặc câu hỏi chưa rõ ý định.\n1. Tự xưng là 'Trợ lý ảo'.\n2. Nếu người dùng nói muốn mua đồ chung chung, hãy hỏi thẳng: 'Bạn đang tìm kiếm sản phẩm nào cụ thể ạ? (Ví dụ: Điện thoại, Quần áo, Laptop...)' (KHÔNG cần chào 'Chào bạn' ở đầu).\n3. CHỈ chào hỏi ('Chào bạn!...') NẾU người dùng có lời chào trước (như 'hi', 'xin chào').\n4. TUYỆT ĐỐI KHÔNG dùng các từ trong ngoặc vuông như '[...]'.",
		message,
	))
	return prompt.String()
}
