// README: Summary stage narrates the cheapest costed plan as markdown.
package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tripmind/internal/ai"
	"tripmind/internal/observability"
	"tripmind/internal/types"
)

// ErrNoPlans is returned when there is no costed plan to summarize.
var ErrNoPlans = errors.New("summary: no costed plans")

type Config struct {
	Route    ai.Route
	Currency string
}

type Service struct {
	llm ai.Client
	cfg Config
	log zerolog.Logger
}

func NewService(llm ai.Client, cfg Config, log zerolog.Logger) *Service {
	if cfg.Currency == "" {
		cfg.Currency = types.DefaultCurrency
	}
	return &Service{llm: llm, cfg: cfg, log: log}
}

// Summarize narrates costed[0]; the other plans are ignored. The model output
// is returned verbatim.
func (s *Service) Summarize(ctx context.Context, trip types.ResolvedTrip, costed []types.CostedPlan) (string, error) {
	if len(costed) == 0 {
		return "", ErrNoPlans
	}
	start := time.Now()
	defer func() { observability.ObserveStage("summary", time.Since(start)) }()

	digest, err := Digest(trip, costed[0], s.cfg.Currency)
	if err != nil {
		return "", err
	}
	text, err := s.llm.Invoke(ctx, s.cfg.Route.Provider, s.cfg.Route.Completion(summaryPrompt(digest)))
	if err != nil {
		return "", fmt.Errorf("summary: %w", err)
	}

	s.log.Info().
		Str("stage", "summary").
		Str("plan", costed[0].PlanName).
		Int("chars", len(text)).
		Dur("duration", time.Since(start)).
		Msg("summary written")
	return text, nil
}

// Digest is the plain-text brief handed to the model.
func Digest(trip types.ResolvedTrip, best types.CostedPlan, currency string) (string, error) {
	days, err := json.MarshalIndent(best.Plan.Daywise, "", "  ")
	if err != nil {
		return "", fmt.Errorf("summary: encode itinerary: %w", err)
	}

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "Destination: %s, %s\n", trip.City, trip.State)
	fmt.Fprintf(&b, "Days: %d, Budget: %s%s\n", trip.Days, currency, strconv.FormatInt(trip.Budget, 10))
	fmt.Fprintf(&b, "Selected Plan: %s - Total Cost: %s\n", best.PlanName,
		types.Money{Amount: best.EstimatedCost, Currency: currency})
	fmt.Fprintf(&b, "Itinerary: %s\n", days)
	return b.String(), nil
}

func summaryPrompt(digest string) string {
	return "Write a friendly, engaging travel summary in markdown based on this data:\n" + digest
}
