package models

// SearchIntent is the structured reading of one user message. A nil
// *SearchIntent means no actionable intent was found; an intent whose
// product, category and location flag are all empty collapses to nil
// rather than surviving as a structured-but-empty object.
type SearchIntent struct {
	Product           string `json:"product"`
	GenericTerm       string `json:"generic_term"`
	Category          string `json:"category"`
	IsLocationRequest bool   `json:"is_location_request"`
}

// IsEmpty reports whether the intent carries nothing actionable.
func (i *SearchIntent) IsEmpty() bool {
	return i == nil || (i.Product == "" && i.Category == "" && !i.IsLocationRequest)
}

// MatchType records how broadly the final candidate set satisfied the
// request. It drives which reply template the composer uses.
type MatchType string

const (
	MatchNone     MatchType = ""
	MatchProduct  MatchType = "product"
	MatchCategory MatchType = "category"
)
