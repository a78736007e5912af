package itinerary

import (
	"fmt"
	"strings"

	"tripmind/internal/types"
)

func itineraryPrompt(trip types.ResolvedTrip, places []string, style types.Style) string {
	first := trip.City
	if len(places) > 0 {
		first = places[0]
	} else {
		places = []string{trip.City}
	}
	return fmt.Sprintf(`Create a %d-day itinerary for %s, visiting %s. Include exactly %d entries in "daywise", one per day.
Return JSON: {"name":"%s","style":"%s","days":%d,"daywise":[{"day":1,"place":"%s","activities":["Visit %s"]}]}`,
		trip.Days, trip.City, strings.Join(places, ", "), trip.Days,
		style.Label, style.Name, trip.Days, first, first)
}
