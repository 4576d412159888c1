package catalog

import (
	"encoding/json"
	"strconv"

	"clearpass/internal/domain/entity"

	"github.com/pkg/errors"
)

// originProduct is a product record as the upstream API returns it. Field
// shapes vary between deployments: rating is either a bare number or a
// {rate, count} object, and price occasionally arrives as a numeric string.
type originProduct struct {
	ID          json.Number     `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	Category    string          `json:"category"`
	Thumbnail   string          `json:"thumbnail"`
	Images      []string        `json:"images"`
	Rating      json.RawMessage `json:"rating"`
}

type originPage struct {
	Products []originProduct `json:"products"`
	Total    int             `json:"total"`
}

// toEntity maps an upstream record to the application's product shape. An
// unparseable price rejects the whole record.
func (p originProduct) toEntity(sourceAPI string) (entity.Product, error) {
	price, err := parsePrice(p.Price)
	if err != nil {
		return entity.Product{}, err
	}

	imageURL := p.Thumbnail
	if imageURL == "" && len(p.Images) > 0 {
		imageURL = p.Images[0]
	}
	if imageURL == "" {
		imageURL = entity.PlaceholderImageURL
	}

	id := p.ID.String()

	return entity.Product{
		ID:          id,
		Name:        p.Title,
		Description: p.Description,
		Price:       price,
		Category:    p.Category,
		ImageURL:    imageURL,
		Rating:      parseRating(p.Rating),
		ExternalID:  id,
		SourceAPI:   sourceAPI,
	}, nil
}

// parsePrice accepts a JSON number or a numeric string.
func parsePrice(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num, nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		num, convErr := strconv.ParseFloat(str, 64)
		if convErr != nil {
			return 0, errors.Errorf("price %q is not numeric", str)
		}

		return num, nil
	}

	return 0, errors.Errorf("price has unsupported shape: %s", raw)
}

// parseRating accepts a bare number or a {rate, count} object. Anything else
// degrades to an empty rating.
func parseRating(raw json.RawMessage) entity.Rating {
	if len(raw) == 0 || string(raw) == "null" {
		return entity.Rating{}
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return entity.Rating{Rate: num}
	}

	var obj struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return entity.Rating{Rate: obj.Rate, Count: obj.Count}
	}

	return entity.Rating{}
}
