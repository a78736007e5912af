// README: TripPlanner runs resolution, itinerary generation, costing and summary in order.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tripmind/internal/types"
)

// ErrEmptyQuery is returned for a blank trip description.
var ErrEmptyQuery = errors.New("empty trip query")

type Resolver interface {
	Resolve(ctx context.Context, query string) (types.ResolvedTrip, error)
}

type ItineraryGenerator interface {
	Generate(ctx context.Context, trip types.ResolvedTrip) ([]types.ItineraryPlan, error)
}

type CostEstimator interface {
	Estimate(ctx context.Context, trip types.ResolvedTrip, plans []types.ItineraryPlan) ([]types.CostedPlan, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, trip types.ResolvedTrip, costed []types.CostedPlan) (string, error)
}

// Request is one planning call. HomeState/HomeCity are optional context that is
// prepended to the query when the query does not mention either.
type Request struct {
	Query     string `json:"query"`
	HomeState string `json:"home_state,omitempty"`
	HomeCity  string `json:"home_city,omitempty"`
}

// Result carries every artifact of a successful run.
type Result struct {
	Query   string             `json:"query"`
	Trip    types.ResolvedTrip `json:"trip"`
	Plans   []types.CostedPlan `json:"plans"`
	Summary string             `json:"summary"`

	homeCity string
	original string
}

// TripPlanner orchestrates the four stages. It keeps no state between calls.
type TripPlanner struct {
	resolver   Resolver
	itinerary  ItineraryGenerator
	pricing    CostEstimator
	summarizer Summarizer
	log        zerolog.Logger
}

// NewTripPlanner creates a TripPlanner with initialized dependencies.
func NewTripPlanner(r Resolver, g ItineraryGenerator, c CostEstimator, s Summarizer, log zerolog.Logger) *TripPlanner {
	return &TripPlanner{resolver: r, itinerary: g, pricing: c, summarizer: s, log: log}
}

// PlanTrip turns a free-text trip description into a markdown summary.
func (p *TripPlanner) PlanTrip(ctx context.Context, query string) (string, error) {
	res, err := p.Plan(ctx, Request{Query: query})
	if err != nil {
		return "", err
	}
	return res.Summary, nil
}

// Plan runs the full pipeline. The first stage error aborts the run and is
// returned with its type intact; there are no partial results.
func (p *TripPlanner) Plan(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}
	start := time.Now()
	query := EnhanceQuery(req.Query, req.HomeState, req.HomeCity)
	p.log.Info().Str("query", query).Msg("planning trip")

	trip, err := p.resolver.Resolve(ctx, query)
	if err != nil {
		return nil, p.fail("resolve", err)
	}
	plans, err := p.itinerary.Generate(ctx, trip)
	if err != nil {
		return nil, p.fail("itinerary", err)
	}
	costed, err := p.pricing.Estimate(ctx, trip, plans)
	if err != nil {
		return nil, p.fail("pricing", err)
	}
	summary, err := p.summarizer.Summarize(ctx, trip, costed)
	if err != nil {
		return nil, p.fail("summary", err)
	}

	p.log.Info().
		Str("city", trip.City).
		Str("plan", costed[0].PlanName).
		Int64("estimated_cost", costed[0].EstimatedCost).
		Bool("within_budget", costed[0].WithinBudget).
		Dur("duration", time.Since(start)).
		Msg("trip planned")
	return &Result{
		Query:    query,
		Trip:     trip,
		Plans:    costed,
		Summary:  summary,
		homeCity: req.HomeCity,
		original: req.Query,
	}, nil
}

func (p *TripPlanner) fail(stage string, err error) error {
	p.log.Error().Err(err).Str("stage", stage).Msg("trip planning failed")
	return err
}

// EnhanceQuery prefixes "state <S> city <C>" when both are given and the query
// mentions neither (case-insensitive).
func EnhanceQuery(query, homeState, homeCity string) string {
	query = strings.TrimSpace(query)
	homeState, homeCity = strings.TrimSpace(homeState), strings.TrimSpace(homeCity)
	if homeState == "" || homeCity == "" {
		return query
	}
	q := strings.ToLower(query)
	if strings.Contains(q, strings.ToLower(homeState)) || strings.Contains(q, strings.ToLower(homeCity)) {
		return query
	}
	return fmt.Sprintf("state %s city %s %s", homeState, homeCity, query)
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Filename is the download name for the markdown summary:
// TripMind_<city>_<first word of the query>.md. The home city is preferred
// over the resolved one.
func (r *Result) Filename() string {
	city := r.homeCity
	if city == "" {
		city = r.Trip.City
	}
	first := ""
	query := r.original
	if query == "" {
		query = r.Query
	}
	if words := strings.Fields(query); len(words) > 0 {
		first = words[0]
	}
	clean := func(s string) string {
		s = unsafeFileChars.ReplaceAllString(s, "-")
		s = strings.Trim(s, "-")
		if s == "" {
			return "trip"
		}
		return s
	}
	return fmt.Sprintf("TripMind_%s_%s.md", clean(city), clean(first))
}

// PDFFilename is Filename with a .pdf extension.
func (r *Result) PDFFilename() string {
	return strings.TrimSuffix(r.Filename(), ".md") + ".pdf"
}
