package geo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultBaseURL points at the French public address API (BAN).
const DefaultBaseURL = "https://api-adresse.data.gouv.fr"

type Client struct {
	Transport *Transport
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{Transport: NewTransport(baseURL)}
}

type Position struct {
	Latitude  decimal.Decimal
	Longitude decimal.Decimal
}

type featureCollection struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
		Properties struct {
			Label string  `json:"label"`
			Score float64 `json:"score"`
		} `json:"properties"`
	} `json:"features"`
}

// Geocode resolves a free-text address to a position. Returns nil when
// the API has no match for the query.
func (c *Client) Geocode(adresse string, cpVille string) (*Position, error) {
	query := strings.TrimSpace(strings.Join([]string{adresse, cpVille}, " "))
	if query == "" {
		return nil, nil
	}

	data, err := c.Transport.Get("/search/", map[string]string{
		"q":     query,
		"limit": "1",
	})
	if err != nil {
		return nil, err
	}

	var collection featureCollection
	if err := json.Unmarshal(data, &collection); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if len(collection.Features) == 0 {
		return nil, nil
	}

	coords := collection.Features[0].Geometry.Coordinates
	if len(coords) < 2 {
		return nil, nil
	}

	return &Position{
		Longitude: decimal.NewFromFloat(coords[0]).Round(6),
		Latitude:  decimal.NewFromFloat(coords[1]).Round(6),
	}, nil
}
