// README: Itinerary generation produces one day-by-day plan per configured style.
package itinerary

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"tripmind/internal/ai"
	"tripmind/internal/extract"
	"tripmind/internal/observability"
	"tripmind/internal/types"
)

// DefaultTopDestinations is how many destinations each itinerary prompt names.
const DefaultTopDestinations = 3

type Config struct {
	Route           ai.Route
	Styles          types.StyleSet
	TopDestinations int
	Parallel        bool
}

type Service struct {
	llm ai.Client
	cfg Config
	log zerolog.Logger
}

func NewService(llm ai.Client, cfg Config, log zerolog.Logger) *Service {
	if len(cfg.Styles) == 0 {
		cfg.Styles = types.DefaultStyles()
	}
	if cfg.TopDestinations <= 0 {
		cfg.TopDestinations = DefaultTopDestinations
	}
	return &Service{llm: llm, cfg: cfg, log: log}
}

// Generate returns one plan per style, in style order. Any failure aborts the
// whole stage. The returned daywise length is not checked against trip.Days.
func (s *Service) Generate(ctx context.Context, trip types.ResolvedTrip) ([]types.ItineraryPlan, error) {
	start := time.Now()
	defer func() { observability.ObserveStage("itinerary", time.Since(start)) }()

	places := trip.TopDestinations(s.cfg.TopDestinations)
	plans := make([]types.ItineraryPlan, len(s.cfg.Styles))

	if s.cfg.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, style := range s.cfg.Styles {
			i, style := i, style
			g.Go(func() error {
				plan, err := s.generateOne(gctx, trip, places, style)
				if err != nil {
					return err
				}
				plans[i] = plan
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, style := range s.cfg.Styles {
			plan, err := s.generateOne(ctx, trip, places, style)
			if err != nil {
				return nil, err
			}
			plans[i] = plan
		}
	}

	s.log.Info().
		Str("stage", "itinerary").
		Int("plans", len(plans)).
		Bool("parallel", s.cfg.Parallel).
		Dur("duration", time.Since(start)).
		Msg("itineraries generated")
	return plans, nil
}

func (s *Service) generateOne(ctx context.Context, trip types.ResolvedTrip, places []string, style types.Style) (types.ItineraryPlan, error) {
	text, err := s.llm.Invoke(ctx, s.cfg.Route.Provider, s.cfg.Route.Completion(itineraryPrompt(trip, places, style)))
	if err != nil {
		return types.ItineraryPlan{}, fmt.Errorf("itinerary: %s plan: %w", style.Name, err)
	}
	fields, err := extract.Object(text)
	if err != nil {
		return types.ItineraryPlan{}, fmt.Errorf("itinerary: parse %s plan: %w", style.Name, err)
	}
	return buildPlan(fields, trip, style), nil
}

func buildPlan(fields map[string]any, trip types.ResolvedTrip, style types.Style) types.ItineraryPlan {
	plan := types.ItineraryPlan{
		Name:  extract.String(fields, "name", style.Label),
		Style: extract.String(fields, "style", style.Name),
		Days:  extract.Int(fields, "days", trip.Days),
	}
	entries := extract.Maps(fields, "daywise")
	plan.Daywise = make([]types.DayPlan, 0, len(entries))
	for i, e := range entries {
		day := extract.Int(e, "day", 0)
		if day <= 0 {
			day = i + 1
		}
		acts := extract.Strings(e, "activities")
		if acts == nil {
			acts = []string{}
		}
		plan.Daywise = append(plan.Daywise, types.DayPlan{
			Day:        day,
			Place:      extract.String(e, "place", ""),
			Activities: acts,
		})
	}
	return plan
}
