// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/pdiddy/briefing-engine/pkg/types"
)

// OpenAIBackend calls an OpenAI-compatible chat completion service
// (OpenAI, DeepSeek, Qwen and similar) through an eino chat model.
type OpenAIBackend struct {
	chat model.BaseChatModel
}

// NewOpenAIBackend builds the eino chat model described by cfg.
func NewOpenAIBackend(ctx context.Context, cfg types.GenerationConfig, client *http.Client) (*OpenAIBackend, error) {
	if cfg.Model == "" || cfg.Model == types.DefaultModel {
		return nil, fmt.Errorf("openai provider needs an explicit model")
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = types.DefaultMaxTokens
	}

	chat, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		MaxTokens:  &maxTokens,
		HTTPClient: client,
	})
	if err != nil {
		return nil, fmt.Errorf("creating openai chat model: %w", err)
	}
	return &OpenAIBackend{chat: chat}, nil
}

// Name returns the backend identifier.
func (o *OpenAIBackend) Name() string { return string(types.GenerationOpenAI) }

// Generate sends prompt as the only user message and returns the reply content.
func (o *OpenAIBackend) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := o.chat.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", &Error{Provider: o.Name(), Cause: err}
	}
	if msg == nil {
		return "", nil
	}
	return msg.Content, nil
}
