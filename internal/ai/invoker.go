// README: Provider registry used by every pipeline stage. One Invoke is one provider call.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"tripmind/internal/observability"
)

// logPrefixLen bounds prompt/response text in debug logs.
const logPrefixLen = 200

// Invoker routes completions to registered providers.
// It is safe for concurrent use once construction is finished.
type Invoker struct {
	providers map[string]LLMProvider
	limiters  map[string]*rate.Limiter
	log       zerolog.Logger
}

// NewInvoker registers providers under their Name().
func NewInvoker(log zerolog.Logger, providers ...LLMProvider) *Invoker {
	inv := &Invoker{
		providers: make(map[string]LLMProvider, len(providers)),
		limiters:  make(map[string]*rate.Limiter),
		log:       log,
	}
	for _, p := range providers {
		inv.providers[p.Name()] = p
	}
	return inv
}

// SetRateLimit caps calls to provider at rps per second. rps <= 0 removes the cap.
// Call it before the invoker is shared.
func (i *Invoker) SetRateLimit(provider string, rps float64) {
	if rps <= 0 {
		delete(i.limiters, provider)
		return
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	i.limiters[provider] = rate.NewLimiter(rate.Limit(rps), burst)
}

// Has reports whether a provider is registered under name.
func (i *Invoker) Has(name string) bool {
	_, ok := i.providers[name]
	return ok
}

// Invoke issues exactly one call to the named provider. Errors are returned unchanged.
func (i *Invoker) Invoke(ctx context.Context, provider string, c Completion) (string, error) {
	p, ok := i.providers[provider]
	if !ok {
		return "", fmt.Errorf("ai: %q: %w", provider, ErrUnknownProvider)
	}
	if lim, ok := i.limiters[provider]; ok {
		if err := lim.Wait(ctx); err != nil {
			return "", fmt.Errorf("ai: %s: rate limit wait: %w", provider, err)
		}
	}

	i.log.Debug().
		Str("provider", provider).
		Str("model", c.Model).
		Str("prompt", observability.Prefix(c.Prompt, logPrefixLen)).
		Msg("llm request")

	start := time.Now()
	text, err := p.Complete(ctx, c)
	dur := time.Since(start)
	observability.ObserveLLM(provider, c.Model, outcome(err), dur)

	if err != nil {
		i.log.Warn().Err(err).
			Str("provider", provider).
			Str("model", c.Model).
			Dur("duration", dur).
			Msg("llm request failed")
		return "", err
	}

	i.log.Debug().
		Str("provider", provider).
		Str("model", c.Model).
		Dur("duration", dur).
		Str("response", observability.Prefix(text, logPrefixLen)).
		Msg("llm response")
	return text, nil
}

func outcome(err error) string {
	var pe *ProviderError
	var ue *UnexpectedResponseError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &pe):
		return "provider_error"
	case errors.As(err, &ue):
		return "unexpected_response"
	default:
		return "error"
	}
}
