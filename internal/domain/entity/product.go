package entity

// PlaceholderImageURL is substituted when the origin record carries no image.
const PlaceholderImageURL = "https://placehold.co/300x300/e0e0e0/000000?text=No+Image"

// Rating is the canonical (score, count) pair every origin rating shape is
// normalized into.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is a catalog item derived from an origin API response. It is never
// authoritatively owned by this system: instances live only in the product
// cache and are rebuilt from the origin on expiry.
type Product struct {
	ID          string  `json:"id"`          // Local id, coerced from the origin identifier.
	Name        string  `json:"name"`        // Origin "title".
	Description string  `json:"description"` //
	Price       float64 `json:"price"`       // Always numeric after boundary normalization.
	Category    string  `json:"category"`    //
	ImageURL    string  `json:"image_url"`   // Falls back to PlaceholderImageURL.
	Rating      Rating  `json:"rating"`      // Normalized (score, count) pair.
	ExternalID  string  `json:"external_id"` // The origin identifier as received.
	SourceAPI   string  `json:"source_api"`  // Origin tag, e.g. "dummyjson".
}
