// README: Google Places lookups used to enrich resolved destinations.
package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	"tripmind/internal/types"
)

// Place represents a simplified location result.
type Place struct {
	Name             string
	Address          string
	Rating           float32
	PlaceID          string
	UserRatingsTotal int
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client *maps.Client
	region string
}

// NewPlacesService creates a new PlacesService with the given API Key.
// region biases results ("in" for India); extra options are passed to the maps client.
func NewPlacesService(apiKey, region string, opts ...maps.ClientOption) (*PlacesService, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client, region: region}, nil
}

// Search runs a text search and returns up to limit results in API order.
func (s *PlacesService) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	r := &maps.TextSearchRequest{
		Query:  query,
		Region: s.region,
	}

	resp, err := s.client.TextSearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var results []Place
	for _, result := range resp.Results {
		results = append(results, Place{
			Name:             result.Name,
			Address:          result.FormattedAddress,
			Rating:           result.Rating,
			PlaceID:          result.PlaceID,
			UserRatingsTotal: result.UserRatingsTotal,
		})
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results, nil
}

// Enrich fills address, rating and place id from the best text-search match for
// "<name>, <city>". Placeholder names are not looked up; no match leaves d as is.
func (s *PlacesService) Enrich(ctx context.Context, d types.Destination) (types.Destination, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" || name == types.UnknownDestination {
		return d, nil
	}

	query := name
	if d.City != "" {
		query = fmt.Sprintf("%s, %s", name, d.City)
	}
	results, err := s.Search(ctx, query, 1)
	if err != nil {
		return d, err
	}
	if len(results) == 0 {
		return d, nil
	}

	best := results[0]
	d.Address = best.Address
	d.Rating = float64(best.Rating)
	d.UserRatingsTotal = best.UserRatingsTotal
	d.PlaceID = best.PlaceID
	return d, nil
}
