// README: Query resolution turns a free-text request into a ResolvedTrip with candidate destinations.
package resolver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tripmind/internal/ai"
	"tripmind/internal/extract"
	"tripmind/internal/observability"
	"tripmind/internal/types"
)

// DefaultMaxDestinations is how many destinations are requested and kept.
const DefaultMaxDestinations = 5

// PlaceLookup enriches a destination with place details. A destination with no
// match is returned unchanged.
type PlaceLookup interface {
	Enrich(ctx context.Context, d types.Destination) (types.Destination, error)
}

type Config struct {
	Extract         ai.Route
	Destinations    ai.Route
	MaxDestinations int
}

type Service struct {
	llm    ai.Client
	cfg    Config
	places PlaceLookup
	log    zerolog.Logger
}

func NewService(llm ai.Client, cfg Config, log zerolog.Logger) *Service {
	if cfg.MaxDestinations <= 0 {
		cfg.MaxDestinations = DefaultMaxDestinations
	}
	return &Service{llm: llm, cfg: cfg, log: log}
}

// WithPlaces turns on destination enrichment.
func (s *Service) WithPlaces(p PlaceLookup) *Service {
	s.places = p
	return s
}

// Resolve runs the extraction call and the destination call. Any call or parse
// failure aborts; only days/budget coercion degrades to 0, recorded in Defaulted.
func (s *Service) Resolve(ctx context.Context, query string) (types.ResolvedTrip, error) {
	start := time.Now()
	defer func() { observability.ObserveStage("resolve", time.Since(start)) }()

	text, err := s.llm.Invoke(ctx, s.cfg.Extract.Provider, s.cfg.Extract.Completion(extractPrompt(query)))
	if err != nil {
		return types.ResolvedTrip{}, fmt.Errorf("resolver: extract trip: %w", err)
	}
	fields, err := extract.Object(text)
	if err != nil {
		return types.ResolvedTrip{}, fmt.Errorf("resolver: parse trip: %w", err)
	}
	trip := buildTrip(fields)
	for _, d := range trip.Defaulted {
		s.log.Warn().Str("field", d.Field).Str("reason", d.Reason).Msg("trip field defaulted to 0")
	}

	text, err = s.llm.Invoke(ctx, s.cfg.Destinations.Provider,
		s.cfg.Destinations.Completion(destinationsPrompt(trip.City, trip.State, s.cfg.MaxDestinations)))
	if err != nil {
		return types.ResolvedTrip{}, fmt.Errorf("resolver: list destinations: %w", err)
	}
	places, err := extract.Array(text)
	if err != nil {
		return types.ResolvedTrip{}, fmt.Errorf("resolver: parse destinations: %w", err)
	}
	trip.Destinations = buildDestinations(places, trip.City, s.cfg.MaxDestinations)

	if s.places != nil {
		for i, d := range trip.Destinations {
			enriched, err := s.places.Enrich(ctx, d)
			if err != nil {
				return types.ResolvedTrip{}, fmt.Errorf("resolver: enrich %q: %w", d.Name, err)
			}
			trip.Destinations[i] = enriched
		}
	}

	s.log.Info().
		Str("stage", "resolve").
		Str("city", trip.City).
		Str("state", trip.State).
		Int("days", trip.Days).
		Int64("budget", trip.Budget).
		Int("destinations", len(trip.Destinations)).
		Dur("duration", time.Since(start)).
		Msg("query resolved")
	return trip, nil
}

func buildTrip(fields map[string]any) types.ResolvedTrip {
	trip := types.ResolvedTrip{
		State: extract.String(fields, "state", ""),
		City:  extract.String(fields, "city", ""),
		Style: extract.String(fields, "style", ""),
	}

	days := extract.CoerceInt(fields["days"])
	if !days.Decoded() {
		trip.Defaulted = append(trip.Defaulted, types.DefaultedField{Field: "days", Reason: days.Err.Error()})
	}
	trip.Days = int(days.Value)

	budget := extract.CoerceInt(fields["budget"])
	if !budget.Decoded() {
		trip.Defaulted = append(trip.Defaulted, types.DefaultedField{Field: "budget", Reason: budget.Err.Error()})
	}
	trip.Budget = budget.Value
	return trip
}

func buildDestinations(places []any, city string, max int) []types.Destination {
	if len(places) > max {
		places = places[:max]
	}
	out := make([]types.Destination, 0, len(places))
	for _, p := range places {
		name := types.UnknownDestination
		if obj, ok := p.(map[string]any); ok {
			name = strings.TrimSpace(extract.String(obj, "name", types.UnknownDestination))
		}
		out = append(out, types.Destination{Name: name, City: city})
	}
	return out
}
