package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kardolus/onchain-agent/api"
	"github.com/kardolus/onchain-agent/api/http"
)

var ErrEmptyResponse = errors.New("empty response")

// LLM completes one assistant message given the conversation so far and the
// tools the model may call. The int is the number of tokens billed.
//
//go:generate mockgen -destination=llmmocks_test.go -package=agent_test github.com/kardolus/onchain-agent/agent LLM
type LLM interface {
	Complete(ctx context.Context, messages []api.Message, tools []api.Tool) (api.Message, int, error)
}

// OpenAILLM speaks the chat completions protocol with function tools.
type OpenAILLM struct {
	caller      http.Caller
	model       string
	endpoint    string
	temperature float64
}

var _ LLM = &OpenAILLM{}

func NewOpenAILLM(caller http.Caller, model, baseURL, completionsPath string) *OpenAILLM {
	return &OpenAILLM{
		caller:   caller,
		model:    model,
		endpoint: strings.TrimRight(baseURL, "/") + completionsPath,
	}
}

func (l *OpenAILLM) WithTemperature(t float64) *OpenAILLM {
	l.temperature = t
	return l
}

func (l *OpenAILLM) Complete(ctx context.Context, messages []api.Message, tools []api.Tool) (api.Message, int, error) {
	body, err := json.Marshal(api.CompletionsRequest{
		Model:       l.model,
		Messages:    messages,
		Tools:       tools,
		Temperature: l.temperature,
	})
	if err != nil {
		return api.Message{}, 0, err
	}

	raw, err := l.caller.Post(ctx, l.endpoint, body)
	if err != nil {
		return api.Message{}, 0, err
	}

	var response api.CompletionsResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return api.Message{}, 0, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(response.Choices) == 0 {
		return api.Message{}, response.Usage.TotalTokens, ErrEmptyResponse
	}

	message := response.Choices[0].Message
	if message.Role == "" {
		message.Role = api.AssistantRole
	}

	return message, response.Usage.TotalTokens, nil
}
