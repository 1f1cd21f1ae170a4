package telemetry

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/healthsync/healthsync/internal/config"
)

func TestInitTracer_DisabledWithoutLangfuse(t *testing.T) {
	shutdown, err := InitTracer(context.Background(), &config.Config{}, "healthsync-test", zap.NewNop())
	if err != nil {
		t.Fatalf("InitTracer() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}

func TestBasicAuth(t *testing.T) {
	if got, want := basicAuth("pk", "sk"), "Basic cGs6c2s="; got != want {
		t.Errorf("basicAuth() = %q, want %q", got, want)
	}
}
