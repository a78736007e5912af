package ai

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
)

func TestGeminiText(t *testing.T) {
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
		{Content: &genai.Content{Parts: []genai.Part{
			genai.Text(`{"city":`),
			genai.Blob{MIMEType: "image/png", Data: []byte{1}},
			genai.Text(`"Goa"}`),
		}}},
		{Content: &genai.Content{Parts: []genai.Part{genai.Text("second candidate")}}},
	}}
	got, err := geminiText(resp)
	if err != nil {
		t.Fatalf("geminiText: %v", err)
	}
	if got != `{"city":"Goa"}` {
		t.Fatalf("text = %q", got)
	}
}

func TestGeminiTextUnexpectedShape(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"no content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"no text parts", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}}},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := geminiText(tt.resp)
			var ue *UnexpectedResponseError
			if !errors.As(err, &ue) {
				t.Fatalf("expected UnexpectedResponseError, got %v", err)
			}
			if ue.Provider != Gemini {
				t.Fatalf("provider = %q", ue.Provider)
			}
		})
	}
}

func TestGeminiErrorMapsHTTPStatus(t *testing.T) {
	ae, ok := apierror.FromError(&googleapi.Error{Code: http.StatusTooManyRequests, Message: "quota exceeded"})
	if !ok {
		t.Fatal("FromError did not wrap googleapi.Error")
	}

	for _, in := range []error{ae, fmt.Errorf("generate: %w", ae)} {
		err := geminiError(in)
		var pe *ProviderError
		if !errors.As(err, &pe) {
			t.Fatalf("expected ProviderError, got %v", err)
		}
		if pe.Provider != Gemini || pe.StatusCode != http.StatusTooManyRequests {
			t.Fatalf("provider error = %+v", pe)
		}
	}
}

func TestGeminiErrorKeepsOtherErrors(t *testing.T) {
	cause := errors.New("connection reset")
	err := geminiError(cause)
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost: %v", err)
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		t.Fatalf("plain error mapped to ProviderError: %v", err)
	}
}
