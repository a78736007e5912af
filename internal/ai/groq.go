package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// DefaultGroqURL is Groq's OpenAI-compatible chat completions endpoint.
const DefaultGroqURL = "https://api.groq.com/openai/v1/chat/completions"

// GroqProvider implements LLMProvider against an OpenAI-compatible chat completions API.
type GroqProvider struct {
	apiKey string
	url    string
	hc     *http.Client
}

// NewGroqProvider builds the provider. An empty apiKey is reported on the first call.
func NewGroqProvider(apiKey, url string, timeout time.Duration) *GroqProvider {
	if url == "" {
		url = DefaultGroqURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GroqProvider{apiKey: apiKey, url: url, hc: &http.Client{Timeout: timeout}}
}

func (p *GroqProvider) Name() string { return Groq }

type groqResponse struct {
	Choices []struct {
		Message *chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete returns choices[0].message.content.
func (p *GroqProvider) Complete(ctx context.Context, c Completion) (string, error) {
	body, err := postChat(ctx, p.hc, Groq, p.url, p.apiKey, c)
	if err != nil {
		return "", err
	}

	var gr groqResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", &UnexpectedResponseError{Provider: Groq, Body: string(body)}
	}
	if len(gr.Choices) == 0 || gr.Choices[0].Message == nil {
		return "", &UnexpectedResponseError{Provider: Groq, Body: string(body)}
	}
	return gr.Choices[0].Message.Content, nil
}
