// Package llm wraps the hosted chat-completion provider and assembles the
// prompt context sent to it.
package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/jardelmessias/portfolio-chat/internal/models"
)

// Client wraps a langchaingo chat model for reply generation.
type Client struct {
	llm       llms.Model
	modelName string
}

// NewClient creates a completion client for the hosted OpenAI chat model.
func NewClient(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key required")
	}

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create openai model: %w", err)
	}

	return &Client{llm: llm, modelName: model}, nil
}

// Model returns the chat model name.
func (c *Client) Model() string {
	return c.modelName
}

// Complete invokes the provider exactly once and extracts the reply text.
// No retry is performed; the orchestrator absorbs failures into the fallback
// reply.
func (c *Client) Complete(ctx context.Context, msgs []models.Message) (string, error) {
	content := make([]llms.MessageContent, 0, len(msgs))
	for _, m := range msgs {
		content = append(content, llms.TextParts(roleToMessageType(m.Role), m.Content))
	}

	response, err := c.llm.GenerateContent(ctx, content)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response choices")
	}

	return response.Choices[0].Content, nil
}

func roleToMessageType(role string) llms.ChatMessageType {
	switch role {
	case models.RoleSystem:
		return llms.ChatMessageTypeSystem
	case models.RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}

// BuildContext assembles the ordered prompt: exactly one system entry with the
// assistant directive first, the prior history in original order, and the new
// user turn last. No truncation or token-budget management happens here; the
// assembled context grows with session length, and that growth is a documented
// property of the service, not an oversight to patch silently.
func BuildContext(directive string, history []models.Message, userText string) []models.Message {
	ctx := make([]models.Message, 0, len(history)+2)
	ctx = append(ctx, models.NewMessage(models.RoleSystem, directive))
	ctx = append(ctx, history...)
	ctx = append(ctx, models.NewMessage(models.RoleUser, userText))
	return ctx
}
