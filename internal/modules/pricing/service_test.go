package pricing

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"tripmind/internal/ai"
	"tripmind/internal/ai/aitest"
	"tripmind/internal/extract"
	"tripmind/internal/types"
)

var (
	goaTrip = types.ResolvedTrip{State: "Goa", City: "Goa", Days: 3, Budget: 10000, Style: "balanced"}
	goaBase = types.Baseline{Accommodation: 1500, Food: 800, Transport: 500, Activities: 1000}
)

func plan(name, style string, days int) types.ItineraryPlan {
	p := types.ItineraryPlan{Name: name, Style: style, Days: days}
	for d := 1; d <= days; d++ {
		p.Daywise = append(p.Daywise, types.DayPlan{Day: d, Place: "Baga Beach", Activities: []string{"Swim"}})
	}
	return p
}

func goaPlans() []types.ItineraryPlan {
	return []types.ItineraryPlan{
		plan("Relaxed", "relaxed", 3),
		plan("Balanced", "balanced", 3),
		plan("Packed", "packed", 3),
	}
}

func byName(costed []types.CostedPlan, name string) types.CostedPlan {
	for _, c := range costed {
		if c.PlanName == name {
			return c
		}
	}
	return types.CostedPlan{}
}

func TestCost_GoaScenario(t *testing.T) {
	costed := Cost(goaTrip, goaPlans(), goaBase, types.DefaultStyles())

	tests := []struct {
		name      string
		wantTotal int64
		wantBreak types.Breakdown
		wantDaily []int64
	}{
		{"Relaxed", 11312, types.Breakdown{Accommodation: 4650, Food: 2479, Transport: 1549, Activities: 2634}, []int64{3527, 3770, 4015}},
		{"Balanced", 11777, types.Breakdown{Accommodation: 4650, Food: 2479, Transport: 1549, Activities: 3099}, []int64{3672, 3925, 4180}},
		{"Packed", 12398, types.Breakdown{Accommodation: 4650, Food: 2479, Transport: 1549, Activities: 3720}, []int64{3866, 4132, 4400}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := byName(costed, tt.name)
			if got.EstimatedCost != tt.wantTotal {
				t.Fatalf("EstimatedCost = %d, want %d", got.EstimatedCost, tt.wantTotal)
			}
			if got.Breakdown != tt.wantBreak {
				t.Fatalf("Breakdown = %+v, want %+v", got.Breakdown, tt.wantBreak)
			}
			if got.WithinBudget {
				t.Fatal("WithinBudget should be false for a 10000 budget")
			}
			for i, want := range tt.wantDaily {
				day := got.Plan.Daywise[i]
				if day.DailyCost != want || day.CostBreakdown.Total() != want {
					t.Fatalf("day %d cost = %d, want %d", i+1, day.DailyCost, want)
				}
			}
		})
	}

	// Undiscounted balanced total is 3*(1500+800+500+1000) = 11400. The ramp
	// averages (0.9667+1.0333+1.1)/3 = 1.0333, so the adjusted total sits
	// above that figure and both exceed the budget.
	balanced := byName(costed, "Balanced")
	undiscounted := int64(3 * (1500 + 800 + 500 + 1000))
	if undiscounted != 11400 || undiscounted <= goaTrip.Budget {
		t.Fatalf("undiscounted = %d", undiscounted)
	}
	if balanced.EstimatedCost <= undiscounted {
		t.Fatalf("ramp-adjusted %d should exceed undiscounted %d", balanced.EstimatedCost, undiscounted)
	}
	if d := float64(balanced.EstimatedCost) - 11400*31.0/30.0; math.Abs(d) > 4 {
		t.Fatalf("ramp-adjusted total %d too far from %.1f", balanced.EstimatedCost, 11400*31.0/30.0)
	}

	b1 := balanced.Plan.Daywise[0].CostBreakdown
	if b1 != (types.Breakdown{Accommodation: 1450, Food: 773, Transport: 483, Activities: 966}) {
		t.Fatalf("balanced day 1 = %+v", b1)
	}
}

func TestCost_StyleMonotonicity(t *testing.T) {
	bases := []types.Baseline{
		goaBase,
		{Accommodation: 0, Food: 0, Transport: 0, Activities: 1},
		{Accommodation: 3200, Food: 1100.5, Transport: 740, Activities: 2500},
	}
	for _, base := range bases {
		for _, days := range []int{1, 2, 5, 10} {
			trip := goaTrip
			trip.Days = days
			plans := []types.ItineraryPlan{plan("R", "relaxed", days), plan("B", "balanced", days), plan("P", "packed", days)}
			costed := Cost(trip, plans, base, types.DefaultStyles())
			r, b, p := byName(costed, "R").EstimatedCost, byName(costed, "B").EstimatedCost, byName(costed, "P").EstimatedCost
			if !(p >= b && b >= r) {
				t.Fatalf("base %+v days %d: packed %d, balanced %d, relaxed %d", base, days, p, b, r)
			}
		}
	}
}

func TestDayFactor_FiveDayBounds(t *testing.T) {
	want := []float64{0.94, 0.98, 1.02, 1.06, 1.10}
	for i, w := range want {
		if got := DayFactor(i+1, 5); math.Abs(got-w) > 1e-9 {
			t.Fatalf("DayFactor(%d, 5) = %v, want %v", i+1, got, w)
		}
	}
	if DayFactor(1, 0) != 1.0 {
		t.Fatal("zero total must not divide")
	}

	trip := goaTrip
	trip.Days = 5
	c := Cost(trip, []types.ItineraryPlan{plan("B", "balanced", 5)}, goaBase, types.DefaultStyles())[0]
	for _, day := range c.Plan.Daywise {
		b := day.CostBreakdown
		for _, pair := range []struct {
			got  int64
			base float64
		}{
			{b.Accommodation, goaBase.Accommodation},
			{b.Food, goaBase.Food},
			{b.Transport, goaBase.Transport},
			{b.Activities, goaBase.Activities},
		} {
			lo, hi := pair.base*0.94-1, pair.base*1.10
			if float64(pair.got) < lo || float64(pair.got) > hi {
				t.Fatalf("day %d component %d outside [%v, %v]", day.Day, pair.got, lo, hi)
			}
		}
	}
	if c.EstimatedCost != 19380 {
		t.Fatalf("5-day total = %d, want 19380", c.EstimatedCost)
	}
	if c.Plan.Daywise[0].CostBreakdown != (types.Breakdown{Accommodation: 1410, Food: 752, Transport: 470, Activities: 940}) {
		t.Fatalf("day 1 = %+v", c.Plan.Daywise[0].CostBreakdown)
	}
}

func TestRank(t *testing.T) {
	mk := func(names []string, totals []int64) []types.CostedPlan {
		out := make([]types.CostedPlan, len(names))
		for i := range names {
			out[i] = types.CostedPlan{PlanName: names[i], EstimatedCost: totals[i]}
		}
		return out
	}
	tests := []struct {
		name      string
		names     []string
		totals    []int64
		wantNames []string
	}{
		{"three totals", []string{"first", "second", "third"}, []int64{9000, 7000, 8200}, []string{"second", "third", "first"}},
		{"ties keep input order", []string{"a", "b", "c", "d"}, []int64{9000, 7000, 8200, 7000}, []string{"b", "d", "c", "a"}},
		{"already sorted", []string{"x", "y"}, []int64{1, 2}, []string{"x", "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			var totals []int64
			for _, c := range rank(mk(tt.names, tt.totals)) {
				got = append(got, c.PlanName)
				totals = append(totals, c.EstimatedCost)
			}
			if !reflect.DeepEqual(got, tt.wantNames) {
				t.Fatalf("order = %v (totals %v), want %v", got, totals, tt.wantNames)
			}
		})
	}
}

func TestCost_BudgetFlag(t *testing.T) {
	costed := Cost(types.ResolvedTrip{Days: 3}, []types.ItineraryPlan{plan("Balanced", "balanced", 3)}, goaBase, types.DefaultStyles())
	total := costed[0].EstimatedCost

	tests := []struct {
		budget int64
		want   bool
	}{
		{total, true},      // cost == budget
		{total + 1, true},  // under budget
		{total - 1, false}, // cost == budget + 1
		{0, false},
	}
	for _, tt := range tests {
		trip := goaTrip
		trip.Budget = tt.budget
		got := Cost(trip, []types.ItineraryPlan{plan("Balanced", "balanced", 3)}, goaBase, types.DefaultStyles())[0]
		if got.WithinBudget != tt.want {
			t.Fatalf("budget %d, cost %d: WithinBudget = %v, want %v", tt.budget, got.EstimatedCost, got.WithinBudget, tt.want)
		}
	}
}

func TestCost_DoesNotMutateInput(t *testing.T) {
	plans := goaPlans()
	before := make([]types.ItineraryPlan, len(plans))
	for i, p := range plans {
		before[i] = p
		before[i].Daywise = append([]types.DayPlan(nil), p.Daywise...)
	}

	costed := Cost(goaTrip, plans, goaBase, types.DefaultStyles())
	costed[0].Plan.Daywise[0].Activities[0] = "changed"
	costed[0].Plan.Daywise[0].Place = "changed"

	if !reflect.DeepEqual(plans, before) {
		t.Fatalf("input plans were modified")
	}
}

func TestCost_UnknownStyleAndDegenerateDays(t *testing.T) {
	// Unknown style uses multiplier 1.0.
	unknown := Cost(goaTrip, []types.ItineraryPlan{plan("Luxury", "luxury", 3)}, goaBase, types.DefaultStyles())[0]
	if unknown.EstimatedCost != 11777 {
		t.Fatalf("unknown style total = %d, want 11777", unknown.EstimatedCost)
	}

	// Days defaulted to 0: the ramp divides by the number of day entries.
	trip := goaTrip
	trip.Days = 0
	zero := Cost(trip, []types.ItineraryPlan{plan("Balanced", "balanced", 3)}, goaBase, types.DefaultStyles())[0]
	if zero.EstimatedCost != 11777 {
		t.Fatalf("zero-days total = %d, want 11777", zero.EstimatedCost)
	}

	// A short plan is costed as returned.
	short := Cost(goaTrip, []types.ItineraryPlan{plan("Balanced", "balanced", 2)}, goaBase, types.DefaultStyles())[0]
	if short.EstimatedCost != 7597 {
		t.Fatalf("short plan total = %d, want 7597", short.EstimatedCost)
	}

	// No day entries at all.
	empty := Cost(trip, []types.ItineraryPlan{{Name: "Empty", Style: "balanced"}}, goaBase, types.DefaultStyles())[0]
	if empty.EstimatedCost != 0 || empty.Plan.Daywise == nil {
		t.Fatalf("empty plan = %+v", empty)
	}
}

func TestEstimate(t *testing.T) {
	groq := aitest.New(ai.Groq, aitest.Rule{
		Match: "Estimate typical daily travel costs in Goa.",
		Reply: "<think>Goa is mid-priced.</think>\n{\"accommodation\":1500,\"food\":\"800\",\"transport\":500,\"activities\":1000,}",
	})
	route := ai.Route{Provider: ai.Groq, Model: "qwen/qwen3-32b", Temperature: 0.3, MaxTokens: 1200}
	svc := NewService(ai.NewInvoker(zerolog.Nop(), groq), Config{Route: route}, zerolog.Nop())

	costed, err := svc.Estimate(context.Background(), goaTrip, goaPlans())
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if n := len(groq.Calls()); n != 1 {
		t.Fatalf("baseline calls = %d, want 1", n)
	}
	var names []string
	for _, c := range costed {
		names = append(names, c.PlanName)
	}
	if strings.Join(names, ",") != "Relaxed,Balanced,Packed" {
		t.Fatalf("order = %v", names)
	}
	if costed[0].EstimatedCost != 11312 {
		t.Fatalf("cheapest = %d", costed[0].EstimatedCost)
	}
}

func TestEstimateBaselineFailure(t *testing.T) {
	groq := aitest.New(ai.Groq, aitest.Rule{Reply: "Costs vary widely."})
	svc := NewService(ai.NewInvoker(zerolog.Nop(), groq), Config{Route: ai.Route{Provider: ai.Groq}}, zerolog.Nop())

	_, err := svc.Estimate(context.Background(), goaTrip, goaPlans())
	if !errors.Is(err, extract.ErrNoStructuredData) {
		t.Fatalf("expected ErrNoStructuredData, got %v", err)
	}
}
