// README: Structured trip produced by query resolution and read by every later stage.
package types

import "strings"

// UnknownDestination names a destination entry the model returned without a usable name.
const UnknownDestination = "Unknown"

type Destination struct {
	Name             string  `json:"name"`
	City             string  `json:"city"`
	Address          string  `json:"address,omitempty"`
	Rating           float64 `json:"rating,omitempty"`
	UserRatingsTotal int     `json:"user_ratings_total,omitempty"`
	PlaceID          string  `json:"place_id,omitempty"`
}

// DefaultedField records a field whose model value could not be decoded and was replaced by 0.
type DefaultedField struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type ResolvedTrip struct {
	State        string           `json:"state"`
	City         string           `json:"city"`
	Days         int              `json:"days"`
	Budget       int64            `json:"budget"`
	Style        string           `json:"style"`
	Destinations []Destination    `json:"destinations"`
	Defaulted    []DefaultedField `json:"defaulted,omitempty"`
}

// IsDefaulted reports whether field holds a fallback value instead of model output.
func (t ResolvedTrip) IsDefaulted(field string) bool {
	for _, d := range t.Defaulted {
		if d.Field == field {
			return true
		}
	}
	return false
}

// TopDestinations returns the names of the first n destinations.
func (t ResolvedTrip) TopDestinations(n int) []string {
	if n > len(t.Destinations) || n < 0 {
		n = len(t.Destinations)
	}
	names := make([]string, 0, n)
	for _, d := range t.Destinations[:n] {
		names = append(names, d.Name)
	}
	return names
}

// Location is "City, State", or whichever part is known.
func (t ResolvedTrip) Location() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{t.City, t.State} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
