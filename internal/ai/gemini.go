package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/option"
)

// GeminiProvider implements LLMProvider using Google's Gemini models through the official SDK.
// A client is created per call and closed afterwards.
type GeminiProvider struct {
	apiKey  string
	timeout time.Duration
	opts    []option.ClientOption
}

// NewGeminiProvider builds the provider. An empty apiKey is reported on the first call.
// Extra client options are appended after the API key.
func NewGeminiProvider(apiKey string, timeout time.Duration, opts ...option.ClientOption) *GeminiProvider {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GeminiProvider{apiKey: apiKey, timeout: timeout, opts: opts}
}

func (p *GeminiProvider) Name() string { return Gemini }

// Complete runs one GenerateContent call with the completion's sampling settings.
func (p *GeminiProvider) Complete(ctx context.Context, c Completion) (string, error) {
	if strings.TrimSpace(p.apiKey) == "" {
		return "", fmt.Errorf("gemini: %w", ErrMissingAPIKey)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(p.apiKey)}, p.opts...)...)
	if err != nil {
		return "", fmt.Errorf("gemini: create client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.Model)
	model.SetTemperature(float32(c.Temperature))
	if c.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(c.MaxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(c.Prompt))
	if err != nil {
		return "", geminiError(err)
	}
	return geminiText(resp)
}

// geminiText concatenates the text parts of the first candidate.
func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return "", &UnexpectedResponseError{Provider: Gemini, Body: fmt.Sprintf("%+v", resp)}
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if text.Len() == 0 {
		return "", &UnexpectedResponseError{Provider: Gemini, Body: fmt.Sprintf("%+v", resp.Candidates[0].Content)}
	}
	return text.String(), nil
}

// geminiError turns SDK errors that carry an HTTP status into *ProviderError.
func geminiError(err error) error {
	var ae *apierror.APIError
	if errors.As(err, &ae) && ae.HTTPCode() > 0 {
		return &ProviderError{Provider: Gemini, StatusCode: ae.HTTPCode(), Body: ae.Error()}
	}
	return fmt.Errorf("gemini: generate content: %w", err)
}
