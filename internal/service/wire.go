package service

import (
	"fmt"

	"github.com/rs/zerolog"

	"tripmind/internal/ai"
	"tripmind/internal/config"
	"tripmind/internal/maps"
	"tripmind/internal/modules/itinerary"
	"tripmind/internal/modules/pricing"
	"tripmind/internal/modules/resolver"
	"tripmind/internal/modules/summary"
)

// NewInvoker registers the Groq, Cohere and Gemini providers from cfg.
func NewInvoker(cfg config.Config, log zerolog.Logger) *ai.Invoker {
	p := cfg.Providers
	inv := ai.NewInvoker(log,
		ai.NewGroqProvider(p.Groq.APIKey, p.Groq.URL, p.Groq.Timeout),
		ai.NewCohereProvider(p.Cohere.APIKey, p.Cohere.URL, p.Cohere.Timeout),
		ai.NewGeminiProvider(p.Gemini.APIKey, p.Gemini.Timeout),
	)
	inv.SetRateLimit(ai.Groq, p.Groq.RPS)
	inv.SetRateLimit(ai.Cohere, p.Cohere.RPS)
	inv.SetRateLimit(ai.Gemini, p.Gemini.RPS)
	return inv
}

// New assembles a TripPlanner from configuration using llm for every model call.
func New(cfg config.Config, llm ai.Client, log zerolog.Logger) (*TripPlanner, error) {
	res := resolver.NewService(llm, resolver.Config{
		Extract:         cfg.Routes.Extract,
		Destinations:    cfg.Routes.Destinations,
		MaxDestinations: cfg.Planning.MaxDestinations,
	}, log)

	if cfg.Maps.Enrich {
		if cfg.Maps.APIKey == "" {
			return nil, fmt.Errorf("service: destination enrichment needs GOOGLE_MAPS_API_KEY")
		}
		places, err := maps.NewPlacesService(cfg.Maps.APIKey, cfg.Maps.Region)
		if err != nil {
			return nil, fmt.Errorf("service: %w", err)
		}
		res.WithPlaces(places)
	}

	gen := itinerary.NewService(llm, itinerary.Config{
		Route:           cfg.Routes.Itinerary,
		Styles:          cfg.Planning.Styles,
		TopDestinations: cfg.Planning.ItineraryDestinations,
		Parallel:        cfg.Planning.ParallelItineraries,
	}, log)

	cost := pricing.NewService(llm, pricing.Config{
		Route:  cfg.Routes.Baseline,
		Styles: cfg.Planning.Styles,
	}, log)

	sum := summary.NewService(llm, summary.Config{
		Route:    cfg.Routes.Summary,
		Currency: cfg.Planning.Currency,
	}, log)

	return NewTripPlanner(res, gen, cost, sum, log), nil
}
