package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// DefaultCohereURL is the Cohere v2 chat endpoint.
const DefaultCohereURL = "https://api.cohere.ai/v2/chat"

// CohereProvider implements LLMProvider against the Cohere v2 chat API.
type CohereProvider struct {
	apiKey string
	url    string
	hc     *http.Client
}

// NewCohereProvider builds the provider. An empty apiKey is reported on the first call.
func NewCohereProvider(apiKey, url string, timeout time.Duration) *CohereProvider {
	if url == "" {
		url = DefaultCohereURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &CohereProvider{apiKey: apiKey, url: url, hc: &http.Client{Timeout: timeout}}
}

func (p *CohereProvider) Name() string { return Cohere }

type cohereResponse struct {
	Message *struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"message"`
}

// Complete returns message.content[0].text.
func (p *CohereProvider) Complete(ctx context.Context, c Completion) (string, error) {
	body, err := postChat(ctx, p.hc, Cohere, p.url, p.apiKey, c)
	if err != nil {
		return "", err
	}

	var cr cohereResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", &UnexpectedResponseError{Provider: Cohere, Body: string(body)}
	}
	if cr.Message == nil || len(cr.Message.Content) == 0 {
		return "", &UnexpectedResponseError{Provider: Cohere, Body: string(body)}
	}
	return cr.Message.Content[0].Text, nil
}
