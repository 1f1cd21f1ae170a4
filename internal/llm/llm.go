// Package llm wraps the generative-AI providers used by the health assistant.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrLLMUnavailable indicates no provider is configured or reachable.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
	// ErrLLMRequest indicates an error during the provider API request.
	ErrLLMRequest = errors.New("LLM request failed")
	// ErrLLMResponse indicates the provider returned an unusable response.
	ErrLLMResponse = errors.New("invalid LLM response")
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// ChatLLM answers a single user message under a system prompt.
type ChatLLM interface {
	Complete(ctx context.Context, system, user string) (string, error)
	// Name identifies the provider and model, e.g. "openai:gpt-4o-mini".
	Name() string
}

// Config selects and configures a provider.
type Config struct {
	Provider    string
	OpenAIKey   string
	OpenAIModel string
	GeminiKey   string
	GeminiModel string
}

// New builds the configured provider. Without credentials it returns the
// rule-based assistant so consultations keep working offline.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (ChatLLM, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderOpenAI:
		if c := NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel); c != nil {
			logger.Info("llm provider configured", zap.String("provider", c.Name()))
			return c, nil
		}
	case ProviderGemini:
		c, err := NewGeminiClient(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		if c != nil {
			logger.Info("llm provider configured", zap.String("provider", c.Name()))
			return c, nil
		}
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}

	logger.Warn("llm provider has no API key, using rule-based assistant", zap.String("provider", cfg.Provider))
	return NewRuleBased(), nil
}
