package types

// DayPlan is one day of an itinerary.
type DayPlan struct {
	Day        int      `json:"day"`
	Place      string   `json:"place"`
	Activities []string `json:"activities"`
}

// ItineraryPlan is one generated alternative for a single style.
type ItineraryPlan struct {
	Name    string    `json:"name"`
	Style   string    `json:"style"`
	Days    int       `json:"days"`
	Daywise []DayPlan `json:"daywise"`
}
