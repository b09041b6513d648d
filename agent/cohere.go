package agent

import (
	"context"
	"strings"

	co "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"github.com/kardolus/onchain-agent/api"
)

// CohereChat sends one chat request and returns the reply text and the
// billed token count.
type CohereChat func(ctx context.Context, request *co.ChatRequest) (string, int, error)

// CohereLLM answers without tool calls; the tools argument is ignored.
type CohereLLM struct {
	chat  CohereChat
	model string
}

var _ LLM = &CohereLLM{}

func NewCohereLLM(apiKey, model string) *CohereLLM {
	client := cohereclient.NewClient(cohereclient.WithToken(apiKey))

	return NewCohereLLMWithChat(func(ctx context.Context, request *co.ChatRequest) (string, int, error) {
		res, err := client.Chat(ctx, request)
		if err != nil {
			return "", 0, err
		}

		var tokens float64
		if res.Meta != nil && res.Meta.BilledUnits != nil {
			if in := res.Meta.BilledUnits.InputTokens; in != nil {
				tokens += *in
			}
			if out := res.Meta.BilledUnits.OutputTokens; out != nil {
				tokens += *out
			}
		}
		return res.Text, int(tokens), nil
	}, model)
}

func NewCohereLLMWithChat(chat CohereChat, model string) *CohereLLM {
	return &CohereLLM{chat: chat, model: model}
}

func (l *CohereLLM) Complete(ctx context.Context, messages []api.Message, _ []api.Tool) (api.Message, int, error) {
	if len(messages) == 0 {
		return api.Message{}, 0, ErrEmptyResponse
	}

	last := messages[len(messages)-1]
	req := &co.ChatRequest{
		Message:     last.Content,
		ChatHistory: coHistory(messages[:len(messages)-1]),
	}
	if l.model != "" {
		model := l.model
		req.Model = &model
	}

	text, tokens, err := l.chat(ctx, req)
	if err != nil {
		return api.Message{}, 0, err
	}

	return api.Message{Role: api.AssistantRole, Content: text}, tokens, nil
}

// coHistory maps the conversation onto cohere roles. Tool observations are
// replayed as chatbot turns so the model still sees what was looked up.
func coHistory(history []api.Message) []*co.ChatMessage {
	var chatHistory []*co.ChatMessage
	for _, msg := range history {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}

		switch msg.Role {
		case api.AssistantRole, api.ToolRole:
			chatHistory = append(chatHistory, &co.ChatMessage{
				Role:    co.ChatMessageRoleChatbot,
				Message: msg.Content,
			})
		case api.UserRole:
			chatHistory = append(chatHistory, &co.ChatMessage{
				Role:    co.ChatMessageRoleUser,
				Message: msg.Content,
			})
		case api.SystemRole:
			chatHistory = append(chatHistory, &co.ChatMessage{
				Role:    co.ChatMessageRoleSystem,
				Message: msg.Content,
			})
		}
	}
	return chatHistory
}
