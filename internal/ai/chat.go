package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// postChat sends one chat request and returns the body of a 2xx response.
// Non-2xx responses become *ProviderError.
func postChat(ctx context.Context, hc *http.Client, provider, url, apiKey string, c Completion) ([]byte, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%s: %w", provider, ErrMissingAPIKey)
	}

	reqBody, err := json.Marshal(newChatRequest(c))
	if err != nil {
		return nil, fmt.Errorf("%s: marshal request: %w", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: do request: %w", provider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", provider, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ProviderError{Provider: provider, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
