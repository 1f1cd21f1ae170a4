package llm

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestRuleBased_Complete(t *testing.T) {
	tests := []struct {
		name    string
		message string
		topic   string
	}{
		{"greeting", "Hello there", "greeting"},
		{"case insensitive", "I have a terrible HEADACHE", "symptom"},
		{"diet", "what should I eat for breakfast?", "diet"},
		{"stress", "work makes me anxious", "stress"},
		{"no match", "what's the weather like", "general"},
		{"word boundary", "this is theirs", "general"},
	}

	rb := NewRuleBased()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rb.Complete(context.Background(), "ignored", tt.message)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := matchTopic(tt.message)
			if want.name != tt.topic {
				t.Errorf("expected topic %q, got %q", tt.topic, want.name)
			}
			if got != want.answer {
				t.Errorf("expected answer %q, got %q", want.answer, got)
			}
		})
	}
}

func TestNew_FallsBackWithoutKeys(t *testing.T) {
	for _, provider := range []string{"", ProviderOpenAI, ProviderGemini} {
		c, err := New(context.Background(), Config{Provider: provider}, zap.NewNop())
		if err != nil {
			t.Fatalf("provider %q: unexpected error: %v", provider, err)
		}
		if c.Name() != "rules" {
			t.Errorf("provider %q: expected rule-based fallback, got %s", provider, c.Name())
		}
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	if _, err := New(context.Background(), Config{Provider: "bard"}, zap.NewNop()); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNew_OpenAIWithKey(t *testing.T) {
	c, err := New(context.Background(), Config{Provider: "OpenAI", OpenAIKey: "sk-test"}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name() != "openai:gpt-4o-mini" {
		t.Errorf("expected default model, got %s", c.Name())
	}
}

func TestNilClients_Unavailable(t *testing.T) {
	var o *OpenAIClient
	if _, err := o.Complete(context.Background(), "", "hi"); !errors.Is(err, ErrLLMUnavailable) {
		t.Errorf("openai: expected ErrLLMUnavailable, got %v", err)
	}
	var g *GeminiClient
	if _, err := g.Complete(context.Background(), "", "hi"); !errors.Is(err, ErrLLMUnavailable) {
		t.Errorf("gemini: expected ErrLLMUnavailable, got %v", err)
	}
}
