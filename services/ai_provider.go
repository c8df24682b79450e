package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/ntai0404/map-excel-api-chat/config/environment"

	openai "github.com/sashabaranov/go-openai"
)

// ChatProvider is the single text-generation capability the pipeline needs:
// one call for "classify intent as JSON", one call for free-text replies.
type ChatProvider interface {
	Generate(ctx context.Context, prompt string, jsonMode bool) (string, error)
}

// OpenAIProvider talks to the OpenAI API or to any OpenAI-compatible server
// (Ollama, LM Studio, vLLM) depending on configuration.
type OpenAIProvider struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewChatProvider selects the provider variant once from the environment:
// AI_PROVIDER=openai uses the cloud API, AI_PROVIDER=local points the same
// client at AI_BASE_URL.
func NewChatProvider() ChatProvider {
	model := environment.GetAIModel()
	timeout := environment.GetAITimeout()

	if environment.GetAIProvider() == "local" {
		config := openai.DefaultConfig(environment.GetOpenAIKey())
		config.BaseURL = environment.GetAIBaseURL()
		return &OpenAIProvider{
			client:  openai.NewClientWithConfig(config),
			model:   model,
			timeout: timeout,
		}
	}

	return &OpenAIProvider{
		client:  openai.NewClient(environment.GetOpenAIKey()),
		model:   model,
		timeout: timeout,
	}
}

// Generate sends a single-turn prompt. Temperature is pinned to 0 so intent
// extraction stays deterministic.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no valid response received")
	}
	return resp.Choices[0].Message.Content, nil
}

var codeFenceRegexp = regexp.MustCompile("(?s)```(?:json)?(.*?)```")

// CleanJSONResponse strips markdown code block markers like ```json and ```
// that some models wrap around JSON output.
func CleanJSONResponse(response string) string {
	cleaned := codeFenceRegexp.ReplaceAllString(response, "$1")
	return strings.TrimSpace(cleaned)
}
