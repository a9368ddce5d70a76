// Bob - Whiskey Collection Analysis and Recommendation Agent
// Copyright 2026 BAXUS
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/BAXUSNFT/bob

package intent

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// Config holds the LLM classifier configuration.
type Config struct {
	// APIKey authenticates against the endpoint. Empty disables the LLM
	// classifier entirely; the keyword fallback is used instead.
	APIKey string `koanf:"api_key"`

	// Endpoint is the OpenAI-compatible base URL. Empty uses the default.
	Endpoint string `koanf:"endpoint"`

	// Model is the chat model used for classification.
	Model string `koanf:"model"`
}

// DefaultConfig returns the standard classifier configuration.
func DefaultConfig() Config {
	return Config{Model: openai.GPT4oMini}
}

// LLMClassifier classifies messages with an OpenAI-compatible chat model and
// falls back to keyword matching when the model is unavailable or returns an
// answer outside the expected label set.
type LLMClassifier struct {
	client   *openai.Client
	model    string
	fallback *KeywordClassifier
	logger   zerolog.Logger
}

const classifyPrompt = `Extract the request type from the user's message.
The message is: %s
The possible request types are 'ANALYZE' (for analyzing a collection),
'RECOMMEND' (for recommending bottles), 'INFO' (for information about a
specific bottle), 'SIMILAR' (for bottles similar to a named one), or
'GENERAL' (for general whiskey talk).
Only respond with the request type, do not include any other text.`

const usernamePrompt = `Extract the username from the user's message if specified.
The message is: %s
Look for patterns like 'my collection', 'user: [name]', '@[name]', etc.
If no username is specified, respond with '%s' as the default.
Only respond with the username, do not include any other text.`

const bottlePrompt = `Extract the name of the bottle from the user's message.
The message is: %s
If the message is asking about a specific bottle, extract the bottle name.
Only respond with the bottle name, do not include any other text.`

// NewLLMClassifier creates an LLM-backed classifier.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLLMClassifier(cfg Config, logger zerolog.Logger) (*LLMClassifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientCfg.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")
	}

	return &LLMClassifier{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		fallback: NewKeywordClassifier(),
		logger:   logger.With().Str("component", "intent").Logger(),
	}, nil
}

// Classify asks the model for the request type and entities, falling back to
// keyword classification on any failure.
func (c *LLMClassifier) Classify(ctx context.Context, message string) (Intent, error) {
	reqType, err := c.complete(ctx, fmt.Sprintf(classifyPrompt, message))
	if err != nil {
		c.logger.Warn().Err(err).Msg("llm classification failed, using keyword fallback")
		return c.fallback.Classify(ctx, message)
	}

	out := Intent{Type: RequestType(strings.ToUpper(strings.TrimSpace(reqType)))}
	if !validType(out.Type) {
		c.logger.Debug().Str("answer", reqType).Msg("llm returned unknown request type")
		return c.fallback.Classify(ctx, message)
	}

	username, err := c.complete(ctx, fmt.Sprintf(usernamePrompt, message, DefaultUsername))
	if err != nil || strings.TrimSpace(username) == "" {
		username = DefaultUsername
	}
	out.Username = strings.TrimSpace(username)

	if out.Type == TypeInfo || out.Type == TypeSimilar {
		bottle, err := c.complete(ctx, fmt.Sprintf(bottlePrompt, message))
		if err == nil {
			out.BottleName = strings.TrimSpace(bottle)
		}
	}

	return out, nil
}

func (c *LLMClassifier) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0,
		Stop:        []string{"\n"},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}
