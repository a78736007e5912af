// Package aitest provides a scripted LLMProvider for stage tests.
package aitest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"tripmind/internal/ai"
)

// Rule answers prompts containing Match. An empty Match answers any prompt.
type Rule struct {
	Match string
	Reply string
	Err   error
}

// Provider replies with the first rule whose Match is a substring of the prompt.
type Provider struct {
	ProviderName string
	Rules        []Rule

	mu    sync.Mutex
	calls []ai.Completion
}

// New returns a scripted provider registered under name.
func New(name string, rules ...Rule) *Provider {
	return &Provider{ProviderName: name, Rules: rules}
}

func (p *Provider) Name() string { return p.ProviderName }

func (p *Provider) Complete(ctx context.Context, c ai.Completion) (string, error) {
	p.mu.Lock()
	p.calls = append(p.calls, c)
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	for _, r := range p.Rules {
		if strings.Contains(c.Prompt, r.Match) {
			return r.Reply, r.Err
		}
	}
	return "", fmt.Errorf("aitest: no rule for prompt %q", c.Prompt)
}

// Calls returns a copy of every completion received so far.
func (p *Provider) Calls() []ai.Completion {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ai.Completion, len(p.calls))
	copy(out, p.calls)
	return out
}
