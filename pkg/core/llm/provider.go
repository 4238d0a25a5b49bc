package llm

import (
	"context"
)

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions transforms raw instructions into model-specific formats
	AdaptInstructions(rawInstructions string) string
}

// chat-completions wire types shared by the OpenAI-compatible providers
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string                 `json:"model"`
	Messages       []chatMessage          `json:"messages"`
	MaxTokens      int                    `json:"max_tokens,omitempty"`
	Temperature    float64                `json:"temperature"`
	Stream         bool                   `json:"stream"`
	ResponseFormat map[string]interface{} `json:"response_format,omitempty"`
}

// responseFormatOf pulls the caller's response_format option, if any.
func responseFormatOf(options map[string]interface{}) map[string]interface{} {
	if val, ok := options["response_format"].(map[string]interface{}); ok {
		return val
	}
	return nil
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
