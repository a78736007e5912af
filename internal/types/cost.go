package types

// Baseline is the per-city typical daily spend, shared by all plans of a request.
type Baseline struct {
	Accommodation float64 `json:"accommodation"`
	Food          float64 `json:"food"`
	Transport     float64 `json:"transport"`
	Activities    float64 `json:"activities"`
}

// Breakdown holds integer cost components.
type Breakdown struct {
	Accommodation int64 `json:"accommodation"`
	Food          int64 `json:"food"`
	Transport     int64 `json:"transport"`
	Activities    int64 `json:"activities"`
}

func (b Breakdown) Total() int64 {
	return b.Accommodation + b.Food + b.Transport + b.Activities
}

func (b Breakdown) Add(o Breakdown) Breakdown {
	return Breakdown{
		Accommodation: b.Accommodation + o.Accommodation,
		Food:          b.Food + o.Food,
		Transport:     b.Transport + o.Transport,
		Activities:    b.Activities + o.Activities,
	}
}

// CostedDay is a DayPlan enriched with its cost.
type CostedDay struct {
	DayPlan
	DailyCost     int64     `json:"daily_cost"`
	CostBreakdown Breakdown `json:"cost_breakdown"`
}

// CostedItinerary mirrors ItineraryPlan with costed days.
type CostedItinerary struct {
	Name    string      `json:"name"`
	Style   string      `json:"style"`
	Days    int         `json:"days"`
	Daywise []CostedDay `json:"daywise"`
}

type CostedPlan struct {
	PlanName      string          `json:"plan_name"`
	EstimatedCost int64           `json:"estimated_cost"`
	WithinBudget  bool            `json:"within_budget"`
	Breakdown     Breakdown       `json:"breakdown"`
	Plan          CostedItinerary `json:"plan"`
}
