package ai

import (
	"context"
)

// LLMProvider defines the contract for a text-generation backend.
// Each implementation issues exactly one request per Complete call and never retries.
type LLMProvider interface {
	// Name is the registry key stages use to select the provider ("groq", "cohere", "gemini").
	Name() string

	// Complete sends a single-turn prompt and returns the raw text completion.
	Complete(ctx context.Context, c Completion) (string, error)
}

// Client is what the pipeline stages depend on: provider selection plus one call.
type Client interface {
	Invoke(ctx context.Context, provider string, c Completion) (string, error)
}
