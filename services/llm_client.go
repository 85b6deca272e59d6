package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/samuelurones28/Proyecto/config"
	"github.com/samuelurones28/Proyecto/models"

	openai "github.com/sashabaranov/go-openai"
)

// LLMClient sends one completion request to the coach model.
type LLMClient interface {
	Complete(ctx context.Context, systemPrompt string, history []models.ChatMessage, userMessage string) (string, error)
}

type openAIClient struct {
	client *openai.Client
	cfg    config.LLMConfig
}

// NewLLMClient builds a client for any OpenAI-compatible endpoint (Groq by default).
func NewLLMClient(cfg config.LLMConfig) LLMClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &openAIClient{client: openai.NewClientWithConfig(clientCfg), cfg: cfg}
}

// BuildMessages assembles system prompt, the trailing history window and the new user message.
func BuildMessages(systemPrompt string, history []models.ChatMessage, userMessage string, limit int) []openai.ChatCompletionMessage {
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt})
	}
	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		switch strings.ToLower(msg.Role) {
		case models.RoleAssistant, "ai":
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	return append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userMessage})
}

func (c *openAIClient) Complete(ctx context.Context, systemPrompt string, history []models.ChatMessage, userMessage string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("%w: LLM API key is not configured", models.ErrNetwork)
	}
	req := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    BuildMessages(systemPrompt, history, userMessage, c.cfg.HistoryLimit),
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			log.Printf("ERROR: [LLMClient] Completion rejected (status %d): %s", apiErr.HTTPStatusCode, apiErr.Message)
		} else {
			log.Printf("ERROR: [LLMClient] Completion request failed for model %s: %v", c.cfg.Model, err)
		}
		return "", fmt.Errorf("%w: %v", models.ErrNetwork, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: completion returned no choices", models.ErrNetwork)
	}
	reply := resp.Choices[0].Message.Content
	log.Printf("INFO: [LLMClient] Received reply from %s: %.100s...", c.cfg.Model, reply)
	return reply, nil
}
