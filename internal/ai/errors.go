package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey is returned on first use of a provider whose credential is empty.
	ErrMissingAPIKey = errors.New("missing api key")
	// ErrUnknownProvider is returned when a stage names a provider that is not registered.
	ErrUnknownProvider = errors.New("unknown provider")
)

// ProviderError is a non-success HTTP status from a model provider.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: provider returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// UnexpectedResponseError is a success status whose body lacks the expected completion text.
type UnexpectedResponseError struct {
	Provider string
	Body     string
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("%s: unexpected response shape: %s", e.Provider, e.Body)
}
