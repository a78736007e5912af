package ai

// Provider names.
const (
	Groq   = "groq"
	Cohere = "cohere"
	Gemini = "gemini"
)

// Completion is one generation request.
type Completion struct {
	Model       string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Route pins a stage call to a provider and its generation settings.
type Route struct {
	Provider    string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Completion builds the request for prompt using the route's settings.
func (r Route) Completion(prompt string) Completion {
	return Completion{
		Model:       r.Model,
		Prompt:      prompt,
		Temperature: r.Temperature,
		MaxTokens:   r.MaxTokens,
	}
}

// chatRequest is the body shared by the OpenAI-compatible and Cohere v2 chat endpoints.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func newChatRequest(c Completion) chatRequest {
	return chatRequest{
		Model:       c.Model,
		Messages:    []chatMessage{{Role: "user", Content: c.Prompt}},
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
	}
}
