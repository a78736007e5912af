// README: Pricing service attaches cost breakdowns to itineraries and ranks them.
package pricing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"tripmind/internal/ai"
	"tripmind/internal/extract"
	"tripmind/internal/observability"
	"tripmind/internal/types"
)

type Service struct {
	llm ai.Client
	cfg Config
	log zerolog.Logger
}

func NewService(llm ai.Client, cfg Config, log zerolog.Logger) *Service {
	if len(cfg.Styles) == 0 {
		cfg.Styles = types.DefaultStyles()
	}
	return &Service{llm: llm, cfg: cfg, log: log}
}

// Estimate fetches the city baseline once and costs every plan against it.
func (s *Service) Estimate(ctx context.Context, trip types.ResolvedTrip, plans []types.ItineraryPlan) ([]types.CostedPlan, error) {
	start := time.Now()
	defer func() { observability.ObserveStage("pricing", time.Since(start)) }()

	base, err := s.Baseline(ctx, trip.City)
	if err != nil {
		return nil, err
	}
	costed := Cost(trip, plans, base, s.cfg.Styles)

	ev := s.log.Info().
		Str("stage", "pricing").
		Interface("baseline", base).
		Dur("duration", time.Since(start))
	if len(costed) > 0 {
		ev = ev.Str("cheapest", costed[0].PlanName).Int64("estimated_cost", costed[0].EstimatedCost)
	}
	ev.Msg("plans costed")
	return costed, nil
}

// Baseline asks the model for typical daily costs in city.
func (s *Service) Baseline(ctx context.Context, city string) (types.Baseline, error) {
	text, err := s.llm.Invoke(ctx, s.cfg.Route.Provider, s.cfg.Route.Completion(baselinePrompt(city)))
	if err != nil {
		return types.Baseline{}, fmt.Errorf("pricing: baseline: %w", err)
	}
	fields, err := extract.Object(text)
	if err != nil {
		return types.Baseline{}, fmt.Errorf("pricing: parse baseline: %w", err)
	}
	return parseBaseline(fields), nil
}

// DayFactor is the day-variation ramp 0.9 + 0.2*(day/total).
func DayFactor(day, total int) float64 {
	if total <= 0 {
		return 1.0
	}
	return 0.9 + 0.2*(float64(day)/float64(total))
}

// Cost builds a CostedPlan per plan and returns them cheapest first. Ties keep
// input order. Inputs are not modified.
//
// Only the activities component is scaled by the style multiplier. Each day's
// components are scaled by DayFactor and truncated; plan totals are the sums
// of the truncated daily values.
func Cost(trip types.ResolvedTrip, plans []types.ItineraryPlan, base types.Baseline, styles types.StyleSet) []types.CostedPlan {
	out := make([]types.CostedPlan, 0, len(plans))
	for _, p := range plans {
		out = append(out, costPlan(trip, p, base, styles.Multiplier(p.Style)))
	}
	return rank(out)
}

// rank orders plans by EstimatedCost ascending, keeping input order on ties.
func rank(plans []types.CostedPlan) []types.CostedPlan {
	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].EstimatedCost < plans[j].EstimatedCost
	})
	return plans
}

func costPlan(trip types.ResolvedTrip, p types.ItineraryPlan, base types.Baseline, mult float64) types.CostedPlan {
	total := trip.Days
	if total <= 0 {
		total = len(p.Daywise)
	}
	activities := base.Activities * mult

	days := make([]types.CostedDay, 0, len(p.Daywise))
	var sum types.Breakdown
	for _, d := range p.Daywise {
		f := DayFactor(d.Day, total)
		b := types.Breakdown{
			Accommodation: int64(base.Accommodation * f),
			Food:          int64(base.Food * f),
			Transport:     int64(base.Transport * f),
			Activities:    int64(activities * f),
		}
		day := d
		day.Activities = append([]string(nil), d.Activities...)
		days = append(days, types.CostedDay{DayPlan: day, DailyCost: b.Total(), CostBreakdown: b})
		sum = sum.Add(b)
	}

	cost := sum.Total()
	return types.CostedPlan{
		PlanName:      p.Name,
		EstimatedCost: cost,
		WithinBudget:  cost <= trip.Budget,
		Breakdown:     sum,
		Plan: types.CostedItinerary{
			Name:    p.Name,
			Style:   p.Style,
			Days:    p.Days,
			Daywise: days,
		},
	}
}
