package services

import (
	"log"
	"strings"

	"github.com/ntai0404/map-excel-api-chat/models"
)

// FilterService narrows the store catalog by progressive relaxation: category
// first, then exact product terms, then the generic term, widening only when
// the tighter filter comes back empty.
type FilterService struct{}

func NewFilterService() *FilterService {
	return &FilterService{}
}

// FilterStores returns the candidate stores for the intent and how they were
// matched. A location request suppresses store search entirely.
func (s *FilterService) FilterStores(stores []models.Store, intent *models.SearchIntent) ([]models.Store, models.MatchType) {
	if intent == nil || intent.IsLocationRequest {
		return nil, models.MatchNone
	}

	// Stage 1: category filter. With a category in the intent we only look
	// at stores in that category; otherwise the whole catalog is in play.
	candidates := stores
	if intent.Category != "" {
		candidates = filterByCategory(stores, intent.Category)
		log.Printf("Filtered down to %d stores in category %q", len(candidates), intent.Category)
	}
	if len(candidates) == 0 {
		return nil, models.MatchNone
	}

	// Stage 2: every product sub-term must appear in product info or name.
	if intent.Product != "" {
		terms := strings.Fields(intent.Product)
		productFiltered := filterByTerms(candidates, terms)
		if len(productFiltered) > 0 {
			log.Printf("Found %d stores matching product %q", len(productFiltered), intent.Product)
			return productFiltered, models.MatchProduct
		}

		// Stage 2.5: the generic term is tried as a single unit. A hit is
		// still reported as a category match so the reply keeps the softer
		// "couldn't find the exact product" tone.
		if intent.GenericTerm != "" {
			genericFiltered := filterByTerms(candidates, []string{intent.GenericTerm})
			if len(genericFiltered) > 0 {
				log.Printf("Found %d stores matching generic term %q", len(genericFiltered), intent.GenericTerm)
				return genericFiltered, models.MatchCategory
			}
			log.Printf("Generic term %q not found, falling back to full category set", intent.GenericTerm)
		}

		// Broadest relaxation: the whole category-filtered set.
		return candidates, models.MatchCategory
	}

	// Category-only search.
	if intent.Category != "" {
		return candidates, models.MatchCategory
	}
	return candidates, models.MatchNone
}

func filterByCategory(stores []models.Store, category string) []models.Store {
	var matched []models.Store
	for _, store := range stores {
		if containsFold(store.Category, category) {
			matched = append(matched, store)
		}
	}
	return matched
}

// filterByTerms keeps stores where every term appears in the product info or
// the store name (AND across terms, OR across the two fields per term).
func filterByTerms(stores []models.Store, terms []string) []models.Store {
	var matched []models.Store
	for _, store := range stores {
		if storeMatchesTerms(store, terms) {
			matched = append(matched, store)
		}
	}
	return matched
}

func storeMatchesTerms(store models.Store, terms []string) bool {
	for _, term := range terms {
		if !containsFold(store.ProductInfo, term) && !containsFold(store.StoreName, term) {
			return false
		}
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
