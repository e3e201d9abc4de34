package models

// Outfit is one scored recommendation. Outfits are constructed fresh per
// recommendation call and discarded after the call returns; persistence is
// the caller's responsibility.
type Outfit struct {
	Items            []WardrobeItem `json:"items"`
	Score            float64        `json:"score"`
	Scheme           ColorScheme    `json:"scheme"`
	SchemeConfidence float64        `json:"scheme_confidence"`
}
